package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-stockledger/internal/service"
)

type TransactionHandler struct {
	ledger service.LedgerService
}

func NewTransactionHandler(ledger service.LedgerService) *TransactionHandler {
	return &TransactionHandler{ledger: ledger}
}

// POST /transactions
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var req service.RecordTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON()
	}

	recorded, err := h.ledger.Record(&req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Transaction created successfully",
		"transaction": recorded,
	})
}

// GET /transactions
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	transactions, err := h.ledger.GetAll()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":      "Transactions found successfully",
		"transactions": transactions,
	})
}

// GET /transactions/:id
func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "transaction")
	if err != nil {
		return err
	}
	transaction, err := h.ledger.GetByID(id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":     "Transaction found successfully",
		"transaction": transaction,
	})
}
