package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-stockledger/internal/model"
)

type RefreshTokenRepository interface {
	Create(token *model.RefreshToken) error
	FindByToken(token string) (*model.RefreshToken, error)
	DeleteByToken(token string) error
	DeleteByUserID(userID uuid.UUID) error
	DeleteExpired() error
}

type refreshTokenRepo struct {
	db *gorm.DB
}

func NewRefreshTokenRepo(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepo{db}
}

func (r *refreshTokenRepo) Create(token *model.RefreshToken) error {
	return r.db.Create(token).Error
}

func (r *refreshTokenRepo) FindByToken(token string) (*model.RefreshToken, error) {
	var rt model.RefreshToken
	if err := r.db.First(&rt, "token = ?", token).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *refreshTokenRepo) DeleteByToken(token string) error {
	return r.db.Delete(&model.RefreshToken{}, "token = ?", token).Error
}

func (r *refreshTokenRepo) DeleteByUserID(userID uuid.UUID) error {
	return r.db.Delete(&model.RefreshToken{}, "user_id = ?", userID).Error
}

func (r *refreshTokenRepo) DeleteExpired() error {
	return r.db.Delete(&model.RefreshToken{}, "expires_at < ?", time.Now()).Error
}
