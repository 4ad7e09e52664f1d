package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"go-stockledger/internal/model"
	"go-stockledger/internal/repository"
	"go-stockledger/internal/service"
	"go-stockledger/pkg/apperror"
)

type ReportHandler struct {
	reports service.ReportService
}

func NewReportHandler(reports service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// GET /reports/inventory
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	snapshot, err := h.reports.InventorySnapshot()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":   "Inventory report found successfully",
		"inventory": snapshot,
	})
}

// GET /reports/transactions?type=&startDate=&endDate=
func (h *ReportHandler) Transactions(c *fiber.Ctx) error {
	var filter repository.HistoryFilter

	if raw := c.Query("type"); raw != "" {
		t := model.TransactionType(raw)
		filter.Type = &t
	}

	start, err := parseDate(c.Query("startDate"), false)
	if err != nil {
		return apperror.New(apperror.CodeValidation, "startDate must be a valid date")
	}
	end, err := parseDate(c.Query("endDate"), true)
	if err != nil {
		return apperror.New(apperror.CodeValidation, "endDate must be a valid date")
	}
	filter.Start, filter.End = start, end

	transactions, err := h.reports.TransactionHistory(filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":      "Transaction report found successfully",
		"transactions": transactions,
	})
}

// GET /reports/stock-movement?startDate=&endDate=
func (h *ReportHandler) StockMovement(c *fiber.Ctx) error {
	end := time.Now()
	start := end.AddDate(0, 0, -7)

	if parsed, err := parseDate(c.Query("startDate"), false); err != nil {
		return apperror.New(apperror.CodeValidation, "startDate must be a valid date")
	} else if parsed != nil {
		start = *parsed
	}
	if parsed, err := parseDate(c.Query("endDate"), true); err != nil {
		return apperror.New(apperror.CodeValidation, "endDate must be a valid date")
	} else if parsed != nil {
		end = *parsed
	}

	movement, err := h.reports.StockMovement(start, end)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":  "Stock movement found successfully",
		"movement": movement,
	})
}

// parseDate accepts RFC3339 or a plain date. Plain end dates are pushed to the
// end of the day so the range stays inclusive.
func parseDate(value string, endOfDay bool) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
