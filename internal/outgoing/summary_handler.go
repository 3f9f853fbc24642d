package outgoing

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Farmab/outgoing/internal/models"
	"github.com/Farmab/outgoing/internal/store"
	"github.com/Farmab/outgoing/internal/summary"
)

type SummaryRowResponse struct {
	summary.Row
	QuantityDisplay   string `json:"quantity_display"`
	TotalPriceDisplay string `json:"total_price_display"`
}

// GET /api/records/summary
// Query: branch (repeatable), product (repeatable), from, to.
func SummaryHandler(records *store.RecordStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter, err := parseFilter(c)
		if err != nil {
			return err
		}

		s := summary.Summarize(records.Snapshot(), filter)

		rows := make([]SummaryRowResponse, 0, len(s.Rows))
		for _, row := range s.Rows {
			rows = append(rows, SummaryRowResponse{
				Row:               row,
				QuantityDisplay:   summary.FormatAmount(row.Quantity),
				TotalPriceDisplay: summary.FormatAmount(row.TotalPrice),
			})
		}

		return c.JSON(fiber.Map{
			"rows":                   rows,
			"filtered_total":         s.FilteredTotal,
			"filtered_total_display": summary.FormatAmount(s.FilteredTotal),
			"grand_total":            s.GrandTotal,
			"grand_total_display":    summary.FormatAmount(s.GrandTotal),
		})
	}
}

func parseFilter(c *fiber.Ctx) (summary.Filter, error) {
	filter := summary.Filter{
		Branches: queryValues(c, "branch"),
		Products: queryValues(c, "product"),
	}

	if from := c.Query("from"); from != "" {
		t, err := time.Parse(models.DateLayout, from)
		if err != nil {
			return summary.Filter{}, fiber.NewError(fiber.StatusBadRequest, "'from' must use the 2006-01-02 format")
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(models.DateLayout, to)
		if err != nil {
			return summary.Filter{}, fiber.NewError(fiber.StatusBadRequest, "'to' must use the 2006-01-02 format")
		}
		filter.To = &t
	}

	return filter, nil
}

func queryValues(c *fiber.Ctx, key string) []string {
	raw := c.Context().QueryArgs().PeekMulti(key)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if len(v) > 0 {
			out = append(out, string(v))
		}
	}
	return out
}
