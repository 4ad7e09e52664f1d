package repository

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-stockledger/internal/model"
)

type StakeholderRepository interface {
	Create(s *model.Stakeholder) error
	FindAll() ([]model.Stakeholder, error)
	FindByID(id uuid.UUID) (*model.Stakeholder, error)
	FindByEmail(email string) (*model.Stakeholder, error)
	Search(query string) ([]model.Stakeholder, error)
	Update(s *model.Stakeholder) error
	Delete(id uuid.UUID) error
}

type stakeholderRepo struct {
	db *gorm.DB
}

func NewStakeholderRepo(db *gorm.DB) StakeholderRepository {
	return &stakeholderRepo{db}
}

func (r *stakeholderRepo) Create(s *model.Stakeholder) error {
	return r.db.Create(s).Error
}

func (r *stakeholderRepo) FindAll() ([]model.Stakeholder, error) {
	var stakeholders []model.Stakeholder
	err := r.db.Order("created_at DESC").Find(&stakeholders).Error
	return stakeholders, err
}

func (r *stakeholderRepo) FindByID(id uuid.UUID) (*model.Stakeholder, error) {
	var s model.Stakeholder
	if err := r.db.First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *stakeholderRepo) FindByEmail(email string) (*model.Stakeholder, error) {
	var s model.Stakeholder
	if err := r.db.First(&s, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *stakeholderRepo) Search(query string) ([]model.Stakeholder, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var stakeholders []model.Stakeholder
	err := r.db.
		Where("lower(name) LIKE ? OR lower(email) LIKE ? OR lower(phone) LIKE ? OR lower(address) LIKE ?",
			pattern, pattern, pattern, pattern).
		Find(&stakeholders).Error
	return stakeholders, err
}

func (r *stakeholderRepo) Update(s *model.Stakeholder) error {
	return r.db.Save(s).Error
}

func (r *stakeholderRepo) Delete(id uuid.UUID) error {
	res := r.db.Delete(&model.Stakeholder{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
