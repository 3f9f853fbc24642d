// Package server assembles the fiber application: middleware, error
// translation and the route table.
package server

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog"

	"github.com/Farmab/outgoing/internal/auth"
	"github.com/Farmab/outgoing/internal/catalog"
	"github.com/Farmab/outgoing/internal/config"
	"github.com/Farmab/outgoing/internal/outgoing"
	"github.com/Farmab/outgoing/internal/storage"
	"github.com/Farmab/outgoing/internal/store"
)

func New(cfg *config.Config, operator auth.Operator, cat *store.Catalog, records *store.RecordStore, adapter *storage.CSVAdapter, log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler(log),
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	api.Post("/auth/login", auth.LoginHandler(cfg.JWTSecret, operator))

	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg.JWTSecret))

	protected.Get("/branches", catalog.ListBranchesHandler(cat))
	protected.Post("/branches", catalog.RegisterBranchHandler(cat))

	protected.Get("/units", catalog.ListUnitsHandler())
	protected.Get("/products", catalog.ListProductsHandler(cat))
	protected.Post("/products", catalog.RegisterProductHandler(cat))
	protected.Post("/products/import", catalog.ImportProductsHandler(cat))
	protected.Get("/products/:name/unit", catalog.DefaultUnitHandler(cat))

	protected.Get("/records", outgoing.ListRecordsHandler(records))
	protected.Post("/records", outgoing.CreateRecordHandler(records, adapter, log))
	protected.Get("/records/summary", outgoing.SummaryHandler(records))
	protected.Put("/records/:id", outgoing.UpdateRecordHandler(records, adapter, log))
	protected.Delete("/records/:id", outgoing.DeleteRecordHandler(records, adapter, log))

	protected.Get("/export/records.xlsx", outgoing.ExportRecordsHandler(records))
	protected.Get("/export/summary.pdf", outgoing.ExportSummaryHandler(records, cfg.PDFFontPath))

	return app
}

// errorHandler translates store errors and fiber errors into JSON responses.
func errorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var (
			validationErr *store.ValidationError
			duplicateErr  *store.DuplicateError
			notFoundErr   *store.NotFoundError
			schemaErr     *store.SchemaError
			fiberErr      *fiber.Error
		)

		switch {
		case errors.As(err, &validationErr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": validationErr.Error(),
				"field": validationErr.Field,
			})
		case errors.As(err, &duplicateErr):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": duplicateErr.Error()})
		case errors.As(err, &notFoundErr):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": notFoundErr.Error()})
		case errors.As(err, &schemaErr):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":   schemaErr.Error(),
				"missing": schemaErr.Missing,
			})
		case errors.As(err, &fiberErr):
			return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
		}

		log.Error().Err(err).Str("path", c.Path()).Msg("unexpected error")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "unexpected server error"})
	}
}
