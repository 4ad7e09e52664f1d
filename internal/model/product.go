package model

import "github.com/shopspring/decimal"

type Product struct {
	BaseModel
	Name        string          `gorm:"type:varchar(100);not null" json:"name" validate:"required,min=2,max=100"`
	Slug        string          `gorm:"type:varchar(120);uniqueIndex;not null" json:"slug" validate:"required,slug"`
	Description string          `gorm:"type:text;not null" json:"description" validate:"required,min=10,max=500"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price" validate:"required,gt=0"`
	Stock       int             `gorm:"not null;default:0" json:"stock" validate:"min=0"`
	Category    string          `gorm:"type:varchar(50);not null" json:"category" validate:"required,min=3,max=50"`
	BusinessID  string          `gorm:"type:varchar(64);not null;index" json:"business_id" validate:"required"`
}
