package outgoing

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Farmab/outgoing/internal/export"
	"github.com/Farmab/outgoing/internal/store"
	"github.com/Farmab/outgoing/internal/summary"
)

// GET /api/export/records.xlsx
func ExportRecordsHandler(records *store.RecordStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		buf, err := export.RecordsToExcel(records.Snapshot())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not build spreadsheet: "+err.Error())
		}

		c.Set(fiber.HeaderContentType, export.ExcelMIME)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+export.ExcelFileName+`"`)
		return c.Send(buf.Bytes())
	}
}

// GET /api/export/summary.pdf
// Accepts the same filter query parameters as the summary endpoint.
func ExportSummaryHandler(records *store.RecordStore, fontPath string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter, err := parseFilter(c)
		if err != nil {
			return err
		}

		s := summary.Summarize(records.Snapshot(), filter)
		buf, err := export.SummaryToPDF(s, fontPath)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not build PDF: "+err.Error())
		}

		c.Set(fiber.HeaderContentType, export.PDFMIME)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+export.PDFFileName+`"`)
		return c.Send(buf.Bytes())
	}
}
