package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"go-stockledger/internal/model"
)

// newTestDB opens a private in-memory database per test. The shared cache
// keeps every pooled connection pointed at the same data.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Product{},
		&model.Stakeholder{},
		&model.Transaction{},
		&model.TransactionLine{},
		&model.User{},
		&model.RefreshToken{},
	))
	return db
}

func mustCreateProduct(t *testing.T, db *gorm.DB, slug string, stock int, price string) *model.Product {
	t.Helper()

	product := &model.Product{
		Name:        "Product " + slug,
		Slug:        slug,
		Description: "A sufficiently long test description",
		Price:       decimal.RequireFromString(price),
		Stock:       stock,
		Category:    "general",
		BusinessID:  "biz-1",
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func mustCreateStakeholder(t *testing.T, db *gorm.DB, email string, role model.StakeholderRole) *model.Stakeholder {
	t.Helper()

	stakeholder := &model.Stakeholder{
		UserID:     uuid.New(),
		BusinessID: "biz-1",
		Name:       "Stakeholder " + email,
		Email:      email,
		Phone:      "+1-555-0100",
		Address:    "1 Test Street",
		Role:       role,
	}
	require.NoError(t, db.Create(stakeholder).Error)
	return stakeholder
}

func currentStock(t *testing.T, db *gorm.DB, id uuid.UUID) int {
	t.Helper()

	var product model.Product
	require.NoError(t, db.First(&product, "id = ?", id).Error)
	return product.Stock
}

func transactionCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&model.Transaction{}).Count(&count).Error)
	return count
}
