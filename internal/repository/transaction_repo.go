package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-stockledger/internal/model"
)

// HistoryFilter narrows the transaction report. Nil fields match everything;
// the date range is inclusive on both ends.
type HistoryFilter struct {
	Type  *model.TransactionType
	Start *time.Time
	End   *time.Time
}

// StockMovementRow aggregates line quantities per day.
type StockMovementRow struct {
	Date      string `json:"date"`
	Purchased int    `json:"purchased"`
	Sold      int    `json:"sold"`
}

type TransactionRepository interface {
	Create(tx *gorm.DB, t *model.Transaction) error
	FindAll() ([]model.Transaction, error)
	FindByID(id uuid.UUID) (*model.Transaction, error)
	FindFiltered(filter HistoryFilter) ([]model.Transaction, error)
	StockMovement(start, end time.Time) ([]StockMovementRow, error)
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

// Create persists the record inside the caller's transaction so that stock
// adjustment and ledger write commit or roll back together.
func (r *transactionRepo) Create(tx *gorm.DB, t *model.Transaction) error {
	return tx.Create(t).Error
}

func (r *transactionRepo) FindAll() ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.
		Preload("Lines").
		Order("date DESC").
		Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	var t model.Transaction
	err := r.db.
		Preload("Lines").
		Preload("Lines.Product").
		Preload("Customer").
		Preload("Vendor").
		First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FindFiltered resolves line products and the customer/vendor references for
// reporting. References to deleted records stay nil in the result.
func (r *transactionRepo) FindFiltered(filter HistoryFilter) ([]model.Transaction, error) {
	q := r.db.
		Preload("Lines").
		Preload("Lines.Product").
		Preload("Customer").
		Preload("Vendor")

	if filter.Type != nil {
		q = q.Where("type = ?", *filter.Type)
	}
	if filter.Start != nil && filter.End != nil {
		q = q.Where("date BETWEEN ? AND ?", *filter.Start, *filter.End)
	} else if filter.Start != nil {
		q = q.Where("date >= ?", *filter.Start)
	} else if filter.End != nil {
		q = q.Where("date <= ?", *filter.End)
	}

	var transactions []model.Transaction
	err := q.Order("date DESC").Find(&transactions).Error
	return transactions, err
}

// StockMovement aggregates purchased/sold quantities per day over the range.
func (r *transactionRepo) StockMovement(start, end time.Time) ([]StockMovementRow, error) {
	rows, err := r.db.Model(&model.Transaction{}).
		Select(`
			DATE(transactions.date) as date,
			COALESCE(SUM(CASE WHEN transactions.type = 'purchase' THEN transaction_lines.quantity ELSE 0 END), 0) as purchased,
			COALESCE(SUM(CASE WHEN transactions.type = 'sale' THEN transaction_lines.quantity ELSE 0 END), 0) as sold
		`).
		Joins("JOIN transaction_lines ON transaction_lines.transaction_id = transactions.id").
		Where("transactions.date BETWEEN ? AND ?", start, end).
		Group("DATE(transactions.date)").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []StockMovementRow
	for rows.Next() {
		var row StockMovementRow
		if err := rows.Scan(&row.Date, &row.Purchased, &row.Sold); err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
