package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-stockledger/internal/model"
	"go-stockledger/internal/service"
)

type ProductHandler struct {
	catalog service.CatalogService
}

func NewProductHandler(catalog service.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// POST /products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return invalidJSON()
	}

	created, err := h.catalog.Create(&product)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product created successfully",
		"product": created,
	})
}

// PUT /products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "product")
	if err != nil {
		return err
	}

	var upd service.ProductUpdate
	if err := c.BodyParser(&upd); err != nil {
		return invalidJSON()
	}

	updated, err := h.catalog.Update(id, &upd)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Product updated successfully",
		"product": updated,
	})
}

// DELETE /products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "product")
	if err != nil {
		return err
	}
	if err := h.catalog.Delete(id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}

// GET /products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "product")
	if err != nil {
		return err
	}
	product, err := h.catalog.Get(id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Product found successfully",
		"product": product,
	})
}

// GET /products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.catalog.GetAll()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":  "Products found successfully",
		"products": products,
	})
}

// GET /products/search?query=
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	products, err := h.catalog.Search(c.Query("query"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":  "Products found successfully",
		"products": products,
	})
}
