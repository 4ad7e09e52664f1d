package model

import (
	"time"

	"github.com/google/uuid"
)

// User is an authenticated account. The credential is stored as an argon2id
// hash, never the raw password.
type User struct {
	BaseModel
	Username     string `gorm:"type:varchar(50);uniqueIndex;not null" json:"username" validate:"required,min=3,max=50"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
}

// UserResponse is used for API responses.
type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}

// RefreshToken is a persisted long-lived credential bound to a user.
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Token     string    `gorm:"type:varchar(512);uniqueIndex;not null" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
