package catalog

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Farmab/outgoing/internal/models"
	"github.com/Farmab/outgoing/internal/store"
)

type RegisterProductRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Unit     string `json:"unit"`
}

// POST /api/products
func RegisterProductHandler(catalog *store.Catalog) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		product, err := catalog.RegisterProduct(body.Name, body.Category, body.Unit)
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(product)
	}
}

// GET /api/products
func ListProductsHandler(catalog *store.Catalog) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(catalog.Products())
	}
}

// GET /api/units
// The unit choices offered by the entry form.
func ListUnitsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(models.StandardUnits)
	}
}

// GET /api/products/:name/unit
// Pre-fills the entry form with the first matching product's default unit.
func DefaultUnitHandler(catalog *store.Catalog) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name, err := urlParam(c, "name")
		if err != nil {
			return err
		}

		unit, ok := catalog.LookupDefaultUnit(name)
		if !ok {
			return &store.NotFoundError{What: "product " + name}
		}
		return c.JSON(fiber.Map{"unit": unit})
	}
}
