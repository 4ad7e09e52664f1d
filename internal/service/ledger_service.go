package service

import (
	"errors"
	"fmt"
	"time"

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

type stockDirection int

const (
	stockIncrease stockDirection = iota
	stockDecrease
)

// TransactionLineInput is one caller-supplied line item.
type TransactionLineInput struct {
	ProductID uuid.UUID       `json:"product_id" validate:"uuid_required"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"price" validate:"required,gt=0"`
}

// RecordTransactionRequest carries a sale or purchase to be recorded. A sale
// requires a customer reference and forbids a vendor reference; a purchase is
// the mirror image. Any caller-supplied total is ignored by design.
type RecordTransactionRequest struct {
	Type       model.TransactionType  `json:"type" validate:"required,oneof=sale purchase"`
	CustomerID *uuid.UUID             `json:"customer_id" validate:"required_if=Type sale,excluded_unless=Type sale"`
	VendorID   *uuid.UUID             `json:"vendor_id" validate:"required_if=Type purchase,excluded_unless=Type purchase"`
	Lines      []TransactionLineInput `json:"products" validate:"required,min=1,dive"`
	Date       *time.Time             `json:"date" validate:"omitempty,notfuture"`
	BusinessID string                 `json:"business_id" validate:"required"`
}

type LedgerService interface {
	Record(req *RecordTransactionRequest) (*model.Transaction, error)
	GetAll() ([]model.Transaction, error)
	GetByID(id uuid.UUID) (*model.Transaction, error)
}

type ledgerService struct {
	productRepo repository.ProductRepository
	txRepo      repository.TransactionRepository
	db          *gorm.DB
	hub         *ws.Hub
	log         zerolog.Logger
}

func NewLedgerService(productRepo repository.ProductRepository, txRepo repository.TransactionRepository, db *gorm.DB, hub *ws.Hub, log zerolog.Logger) LedgerService {
	return &ledgerService{
		productRepo: productRepo,
		txRepo:      txRepo,
		db:          db,
		hub:         hub,
		log:         log,
	}
}

// Record validates the request, adjusts stock for every line and persists the
// transaction. Stock adjustment and the ledger write run in one database
// transaction: a failing line (missing product, insufficient stock) rolls back
// the lines already adjusted and no record is written.
func (s *ledgerService) Record(req *RecordTransactionRequest) (*model.Transaction, error) {
	fields := validator.ValidateStruct(req)
	for i, line := range req.Lines {
		if line.UnitPrice.Exponent() < -2 {
			fields = append(fields, apperror.FieldError{
				Field:   fmt.Sprintf("products[%d].price", i),
				Message: "price cannot have more than 2 decimal places",
			})
		}
	}
	if len(fields) > 0 {
		return nil, apperror.Validation(fields...)
	}

	// The total is always derived from the lines, never trusted from the caller.
	total := decimal.Zero
	for _, line := range req.Lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	direction := stockDecrease
	if req.Type == model.TxPurchase {
		direction = stockIncrease
	}

	var recorded *model.Transaction
	var updated []model.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		snapshots, err := s.adjustStock(tx, req.Lines, direction)
		if err != nil {
			return err
		}
		updated = snapshots

		t := &model.Transaction{
			Type:        req.Type,
			TotalAmount: total,
			Date:        date,
			BusinessID:  req.BusinessID,
			CustomerID:  req.CustomerID,
			VendorID:    req.VendorID,
			Lines:       make([]model.TransactionLine, 0, len(req.Lines)),
		}
		for _, line := range req.Lines {
			t.Lines = append(t.Lines, model.TransactionLine{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
			})
		}

		if err := s.txRepo.Create(tx, t); err != nil {
			return err
		}
		recorded = t
		return nil
	})
	if err != nil {
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		s.log.Error().Err(err).Str("type", string(req.Type)).Msg("record transaction failed")
		return nil, apperror.Wrap(apperror.CodeInternal, err, "could not record transaction")
	}

	s.log.Info().
		Str("transaction_id", recorded.ID.String()).
		Str("type", string(recorded.Type)).
		Str("total", recorded.TotalAmount.String()).
		Int("lines", len(recorded.Lines)).
		Msg("transaction recorded")

	if s.hub != nil {
		events := make([]ws.StockUpdate, 0, len(updated))
		for _, p := range updated {
			events = append(events, ws.StockUpdate{ProductID: p.ID, Name: p.Name, Stock: p.Stock})
		}
		go s.hub.PublishStockUpdates("transaction_recorded", events...)
	}

	return recorded, nil
}

// adjustStock applies the lines in order, one product at a time. The stock >= 0
// invariant is enforced per line by the repository's conditional update.
func (s *ledgerService) adjustStock(tx *gorm.DB, lines []TransactionLineInput, direction stockDirection) ([]model.Product, error) {
	updated := make([]model.Product, 0, len(lines))
	for _, line := range lines {
		var product *model.Product
		var err error
		if direction == stockIncrease {
			product, err = s.productRepo.IncrementStock(tx, line.ProductID, line.Quantity)
		} else {
			product, err = s.productRepo.DecrementStock(tx, line.ProductID, line.Quantity)
		}

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, apperror.Newf(apperror.CodeStock, "product %s not found", line.ProductID)
		case errors.Is(err, repository.ErrInsufficientStock):
			return nil, apperror.Newf(apperror.CodeStock,
				"insufficient stock for product %s: requested %d, available %d",
				line.ProductID, line.Quantity, product.Stock)
		case err != nil:
			return nil, err
		}
		updated = append(updated, *product)
	}
	return updated, nil
}

func (s *ledgerService) GetAll() ([]model.Transaction, error) {
	return s.txRepo.FindAll()
}

func (s *ledgerService) GetByID(id uuid.UUID) (*model.Transaction, error) {
	t, err := s.txRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.New(apperror.CodeNotFound, "transaction not found")
	}
	return t, err
}
