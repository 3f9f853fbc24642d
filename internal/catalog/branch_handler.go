package catalog

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/Farmab/outgoing/internal/store"
)

type RegisterBranchRequest struct {
	Name string `json:"name"`
}

// POST /api/branches
func RegisterBranchHandler(catalog *store.Catalog) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterBranchRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		if err := catalog.RegisterBranch(body.Name); err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"name": body.Name})
	}
}

// GET /api/branches
func ListBranchesHandler(catalog *store.Catalog) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(catalog.Branches())
	}
}

// urlParam decodes a path parameter; branch and product names are Kurdish and
// arrive percent-encoded.
func urlParam(c *fiber.Ctx, key string) (string, error) {
	v, err := url.PathUnescape(c.Params(key))
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "invalid "+key)
	}
	return v, nil
}
