package repository

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"go-stockledger/internal/model"
)

// ErrInsufficientStock is returned by DecrementStock when the product exists
// but its stock does not cover the requested quantity.
var ErrInsufficientStock = errors.New("insufficient stock")

// InventoryRow is the reporting projection of a product.
type InventoryRow struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Stock    int             `json:"stock"`
	Price    decimal.Decimal `json:"price"`
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindBySlug(slug string) (*model.Product, error)
	Search(query string) ([]model.Product, error)
	Update(product *model.Product) error
	Delete(id uuid.UUID) error
	Snapshot() ([]InventoryRow, error)
	IncrementStock(tx *gorm.DB, id uuid.UUID, qty int) (*model.Product, error)
	DecrementStock(tx *gorm.DB, id uuid.UUID, qty int) (*model.Product, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Order("created_at DESC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindBySlug(slug string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "slug = ?", slug).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Search does a case-insensitive substring match over name, description,
// category and business id.
func (r *productRepo) Search(query string) ([]model.Product, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var products []model.Product
	err := r.db.
		Where("lower(name) LIKE ? OR lower(description) LIKE ? OR lower(category) LIKE ? OR lower(business_id) LIKE ?",
			pattern, pattern, pattern, pattern).
		Find(&products).Error
	return products, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(id uuid.UUID) error {
	res := r.db.Delete(&model.Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productRepo) Snapshot() ([]InventoryRow, error) {
	var rows []InventoryRow
	err := r.db.Model(&model.Product{}).
		Select("name, category, stock, price").
		Find(&rows).Error
	return rows, err
}

// IncrementStock adds qty to the product's stock inside tx and returns the
// updated snapshot.
func (r *productRepo) IncrementStock(tx *gorm.DB, id uuid.UUID, qty int) (*model.Product, error) {
	res := tx.Model(&model.Product{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", qty))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var product model.Product
	if err := tx.First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// DecrementStock subtracts qty from the product's stock inside tx. The guard
// lives in the WHERE clause, so two concurrent sales can never drive stock
// negative: whichever update runs second simply matches zero rows.
func (r *productRepo) DecrementStock(tx *gorm.DB, id uuid.UUID, qty int) (*model.Product, error) {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND stock >= ?", id, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return nil, res.Error
	}

	var product model.Product
	if err := tx.First(&product, "id = ?", id).Error; err != nil {
		return nil, err // missing product surfaces as gorm.ErrRecordNotFound
	}
	if res.RowsAffected == 0 {
		return &product, ErrInsufficientStock
	}
	return &product, nil
}
