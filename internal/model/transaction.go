package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TxSale     TransactionType = "sale"
	TxPurchase TransactionType = "purchase"
)

// Transaction is an immutable sale or purchase record. The total is always
// recomputed server-side from the line items, never taken from the caller.
// Exactly one of CustomerID (sale) or VendorID (purchase) is set.
type Transaction struct {
	BaseModel
	Type        TransactionType   `gorm:"type:varchar(10);not null;index" json:"type"`
	TotalAmount decimal.Decimal   `gorm:"type:numeric(14,2);not null" json:"total_amount"`
	Date        time.Time         `gorm:"not null;index" json:"date"`
	BusinessID  string            `gorm:"type:varchar(64);not null;index" json:"business_id"`
	CustomerID  *uuid.UUID        `gorm:"type:uuid" json:"customer_id,omitempty"`
	Customer    *Stakeholder      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	VendorID    *uuid.UUID        `gorm:"type:uuid" json:"vendor_id,omitempty"`
	Vendor      *Stakeholder      `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	Lines       []TransactionLine `gorm:"foreignKey:TransactionID" json:"products"`
}

// TransactionLine is one (product, quantity, unit price) entry, owned by value
// by its transaction.
type TransactionLine struct {
	ID            uint            `gorm:"primaryKey" json:"-"`
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null" json:"product_id"`
	Product       *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	UnitPrice     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
}
