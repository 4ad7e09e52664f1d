package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"go-stockledger/internal/model"
	"go-stockledger/internal/repository"
	"go-stockledger/internal/ws"
	"go-stockledger/pkg/apperror"
	"go-stockledger/pkg/validator"
)

// ProductUpdate carries a partial product edit. Nil fields keep their current
// value; the merged record is re-validated as a whole.
type ProductUpdate struct {
	Name        *string          `json:"name"`
	Slug        *string          `json:"slug"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	Category    *string          `json:"category"`
	BusinessID  *string          `json:"business_id"`
}

type CatalogService interface {
	Create(product *model.Product) (*model.Product, error)
	Update(id uuid.UUID, upd *ProductUpdate) (*model.Product, error)
	Delete(id uuid.UUID) error
	Get(id uuid.UUID) (*model.Product, error)
	GetAll() ([]model.Product, error)
	Search(query string) ([]model.Product, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
	hub         *ws.Hub
	log         zerolog.Logger
}

func NewCatalogService(productRepo repository.ProductRepository, hub *ws.Hub, log zerolog.Logger) CatalogService {
	return &catalogService{productRepo: productRepo, hub: hub, log: log}
}

func validateProduct(product *model.Product) []apperror.FieldError {
	fields := validator.ValidateStruct(product)
	if product.Price.Exponent() < -2 {
		fields = append(fields, apperror.FieldError{
			Field:   "price",
			Message: "price cannot have more than 2 decimal places",
		})
	}
	return fields
}

func (s *catalogService) Create(product *model.Product) (*model.Product, error) {
	if fields := validateProduct(product); len(fields) > 0 {
		return nil, apperror.Validation(fields...)
	}

	if existing, err := s.productRepo.FindBySlug(product.Slug); err == nil && existing != nil {
		return nil, apperror.Newf(apperror.CodeConflict, "product with slug '%s' already exists", product.Slug)
	}

	if err := s.productRepo.Create(product); err != nil {
		s.log.Error().Err(err).Str("slug", product.Slug).Msg("create product failed")
		return nil, apperror.Wrap(apperror.CodeInternal, err, "could not create product")
	}

	s.log.Info().Str("product_id", product.ID.String()).Str("slug", product.Slug).Msg("product created")
	s.publish("product_created", product)
	return product, nil
}

func (s *catalogService) Update(id uuid.UUID, upd *ProductUpdate) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.New(apperror.CodeNotFound, "product not found")
	}
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err, "could not load product")
	}

	// Shallow merge, then re-validate the full shape.
	if upd.Name != nil {
		product.Name = *upd.Name
	}
	if upd.Slug != nil {
		product.Slug = *upd.Slug
	}
	if upd.Description != nil {
		product.Description = *upd.Description
	}
	if upd.Price != nil {
		product.Price = *upd.Price
	}
	if upd.Stock != nil {
		product.Stock = *upd.Stock
	}
	if upd.Category != nil {
		product.Category = *upd.Category
	}
	if upd.BusinessID != nil {
		product.BusinessID = *upd.BusinessID
	}

	if fields := validateProduct(product); len(fields) > 0 {
		return nil, apperror.Validation(fields...)
	}

	if upd.Slug != nil {
		if existing, err := s.productRepo.FindBySlug(product.Slug); err == nil && existing.ID != product.ID {
			return nil, apperror.Newf(apperror.CodeConflict, "product with slug '%s' already exists", product.Slug)
		}
	}

	if err := s.productRepo.Update(product); err != nil {
		s.log.Error().Err(err).Str("product_id", id.String()).Msg("update product failed")
		return nil, apperror.Wrap(apperror.CodeInternal, err, "could not update product")
	}

	s.publish("product_updated", product)
	return product, nil
}

func (s *catalogService) Delete(id uuid.UUID) error {
	err := s.productRepo.Delete(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.New(apperror.CodeNotFound, "product not found")
	}
	if err != nil {
		return apperror.Wrap(apperror.CodeInternal, err, "could not delete product")
	}
	return nil
}

func (s *catalogService) Get(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.New(apperror.CodeNotFound, "product not found")
	}
	return product, err
}

func (s *catalogService) GetAll() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *catalogService) Search(query string) ([]model.Product, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperror.Validation(apperror.FieldError{Field: "query", Message: "query is required"})
	}
	return s.productRepo.Search(query)
}

func (s *catalogService) publish(action string, product *model.Product) {
	if s.hub == nil {
		return
	}
	go s.hub.PublishStockUpdates(action, ws.StockUpdate{
		ProductID: product.ID,
		Name:      product.Name,
		Stock:     product.Stock,
	})
}
