package service

import (
	"time"

	"go-stockledger/internal/model"
	"go-stockledger/internal/repository"
	"go-stockledger/pkg/apperror"
)

type ReportService interface {
	InventorySnapshot() ([]repository.InventoryRow, error)
	TransactionHistory(filter repository.HistoryFilter) ([]model.Transaction, error)
	StockMovement(start, end time.Time) ([]repository.StockMovementRow, error)
}

type reportService struct {
	productRepo repository.ProductRepository
	txRepo      repository.TransactionRepository
}

func NewReportService(productRepo repository.ProductRepository, txRepo repository.TransactionRepository) ReportService {
	return &reportService{productRepo: productRepo, txRepo: txRepo}
}

func (s *reportService) InventorySnapshot() ([]repository.InventoryRow, error) {
	return s.productRepo.Snapshot()
}

func (s *reportService) TransactionHistory(filter repository.HistoryFilter) ([]model.Transaction, error) {
	if filter.Type != nil && *filter.Type != model.TxSale && *filter.Type != model.TxPurchase {
		return nil, apperror.Validation(apperror.FieldError{
			Field:   "type",
			Message: "type must be one of: sale, purchase",
		})
	}
	if filter.Start != nil && filter.End != nil && filter.End.Before(*filter.Start) {
		return nil, apperror.Validation(apperror.FieldError{
			Field:   "endDate",
			Message: "endDate cannot be before startDate",
		})
	}
	return s.txRepo.FindFiltered(filter)
}

func (s *reportService) StockMovement(start, end time.Time) ([]repository.StockMovementRow, error) {
	return s.txRepo.StockMovement(start, end)
}
