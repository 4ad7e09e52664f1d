package model

import "github.com/google/uuid"

// StakeholderRole classifies the business relationship.
type StakeholderRole string

const (
	RoleCustomer StakeholderRole = "customer"
	RoleVendor   StakeholderRole = "vendor"
	RoleBoth     StakeholderRole = "both"
)

// Stakeholder is a customer or vendor contact record. Transactions reference
// stakeholders, but deleting one never cascades into recorded transactions.
type Stakeholder struct {
	BaseModel
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id" validate:"uuid_required"`
	BusinessID string          `gorm:"type:varchar(64);not null;index" json:"business_id" validate:"required"`
	Name       string          `gorm:"type:varchar(100);not null" json:"name" validate:"required,min=2,max=100"`
	Email      string          `gorm:"type:varchar(255);not null;index" json:"email" validate:"required,email"`
	Phone      string          `gorm:"type:varchar(30);not null" json:"phone" validate:"required"`
	Address    string          `gorm:"type:text;not null" json:"address" validate:"required"`
	Role       StakeholderRole `gorm:"type:varchar(10);not null;default:'customer'" json:"role" validate:"required,oneof=customer vendor both"`
}
