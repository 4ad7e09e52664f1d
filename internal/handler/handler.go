package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"go-stockledger/pkg/apperror"
)

func parseID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, apperror.Newf(apperror.CodeValidation, "invalid %s id", name)
	}
	return id, nil
}

func invalidJSON() error {
	return apperror.New(apperror.CodeValidation, "invalid JSON body")
}
