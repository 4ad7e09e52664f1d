package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"go-stockledger/internal/model"
	"go-stockledger/internal/service"
	"go-stockledger/pkg/apperror"
)

type StakeholderHandler struct {
	stakeholders service.StakeholderService
}

func NewStakeholderHandler(stakeholders service.StakeholderService) *StakeholderHandler {
	return &StakeholderHandler{stakeholders: stakeholders}
}

// POST /stakeholders
func (h *StakeholderHandler) Create(c *fiber.Ctx) error {
	var stakeholder model.Stakeholder
	if err := c.BodyParser(&stakeholder); err != nil {
		return invalidJSON()
	}

	// The owning user comes from the session, not the body.
	if userID, ok := c.Locals("user_id").(string); ok {
		if id, err := uuid.Parse(userID); err == nil {
			stakeholder.UserID = id
		}
	}
	if stakeholder.UserID == uuid.Nil {
		return apperror.New(apperror.CodeAuth, "missing authorization token")
	}

	created, err := h.stakeholders.Create(&stakeholder)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Stakeholder created successfully",
		"stakeholder": created,
	})
}

// PATCH /stakeholders/:id
func (h *StakeholderHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "stakeholder")
	if err != nil {
		return err
	}

	var upd service.StakeholderUpdate
	if err := c.BodyParser(&upd); err != nil {
		return invalidJSON()
	}

	updated, err := h.stakeholders.Update(id, &upd)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":     "Stakeholder updated successfully",
		"stakeholder": updated,
	})
}

// DELETE /stakeholders/:id
func (h *StakeholderHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "stakeholder")
	if err != nil {
		return err
	}
	if err := h.stakeholders.Delete(id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Stakeholder deleted successfully"})
}

// GET /stakeholders/:id
func (h *StakeholderHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "stakeholder")
	if err != nil {
		return err
	}
	stakeholder, err := h.stakeholders.Get(id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":     "Stakeholder found successfully",
		"stakeholder": stakeholder,
	})
}

// GET /stakeholders
func (h *StakeholderHandler) List(c *fiber.Ctx) error {
	stakeholders, err := h.stakeholders.GetAll()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":      "Stakeholders found successfully",
		"stakeholders": stakeholders,
	})
}

// GET /stakeholders/search?query=
func (h *StakeholderHandler) Search(c *fiber.Ctx) error {
	stakeholders, err := h.stakeholders.Search(c.Query("query"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":      "Stakeholders found successfully",
		"stakeholders": stakeholders,
	})
}
