package outgoing

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Farmab/outgoing/internal/models"
	"github.com/Farmab/outgoing/internal/storage"
	"github.com/Farmab/outgoing/internal/store"
)

type RecordRequest struct {
	Date      string          `json:"date"` // "2006-01-02"
	Product   string          `json:"product"`
	Category  string          `json:"category"`
	Branch    string          `json:"branch"`
	Unit      string          `json:"unit"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Currency  string          `json:"currency"`
	Note      string          `json:"note"`
}

type RecordResponse struct {
	ID         uint64          `json:"id"`
	Position   int             `json:"position"`
	Date       string          `json:"date"`
	Product    string          `json:"product"`
	Category   string          `json:"category"`
	Branch     string          `json:"branch"`
	Unit       string          `json:"unit"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Currency   models.Currency `json:"currency"`
	Note       string          `json:"note"`
}

func toRecord(body RecordRequest) (models.OutgoingRecord, error) {
	var date time.Time
	if body.Date != "" {
		parsed, err := time.Parse(models.DateLayout, body.Date)
		if err != nil {
			return models.OutgoingRecord{}, &store.ValidationError{Field: "date", Reason: "must use the 2006-01-02 format"}
		}
		date = parsed
	}

	return models.OutgoingRecord{
		Date:      date,
		Product:   body.Product,
		Category:  body.Category,
		Branch:    body.Branch,
		Unit:      body.Unit,
		Quantity:  body.Quantity,
		UnitPrice: body.UnitPrice,
		Currency:  models.Currency(body.Currency),
		Note:      body.Note,
	}, nil
}

func toResponse(rec models.OutgoingRecord, position int) RecordResponse {
	return RecordResponse{
		ID:         rec.ID,
		Position:   position,
		Date:       rec.Date.Format(models.DateLayout),
		Product:    rec.Product,
		Category:   rec.Category,
		Branch:     rec.Branch,
		Unit:       rec.Unit,
		Quantity:   rec.Quantity,
		UnitPrice:  rec.UnitPrice,
		TotalPrice: rec.TotalPrice,
		Currency:   rec.Currency,
		Note:       rec.Note,
	}
}

// persist flushes the full sequence to the data file. A failed flush keeps
// the in-memory change and returns a warning for the operator instead of
// rolling back.
func persist(records *store.RecordStore, adapter *storage.CSVAdapter, log zerolog.Logger) string {
	if err := adapter.Flush(records.Snapshot()); err != nil {
		log.Error().Err(err).Msg("flush failed")
		return "saving to disk failed; the latest change may not survive a restart"
	}
	return ""
}

func mutationResponse(c *fiber.Ctx, status int, payload fiber.Map, warning string) error {
	if warning != "" {
		payload["warning"] = warning
	}
	return c.Status(status).JSON(payload)
}

// POST /api/records
func CreateRecordHandler(records *store.RecordStore, adapter *storage.CSVAdapter, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RecordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		rec, err := toRecord(body)
		if err != nil {
			return err
		}

		stored, position, err := records.Append(rec)
		if err != nil {
			return err
		}

		warning := persist(records, adapter, log)
		return mutationResponse(c, fiber.StatusCreated, fiber.Map{"record": toResponse(stored, position)}, warning)
	}
}

// GET /api/records
func ListRecordsHandler(records *store.RecordStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snapshot := records.Snapshot()
		res := make([]RecordResponse, 0, len(snapshot))
		for i, rec := range snapshot {
			res = append(res, toResponse(rec, i))
		}
		return c.JSON(res)
	}
}

// PUT /api/records/:id
// Full replace: every field of the record is taken from the request body and
// the total price is recomputed.
func UpdateRecordHandler(records *store.RecordStore, adapter *storage.CSVAdapter, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := recordID(c)
		if err != nil {
			return err
		}

		var body RecordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		rec, err := toRecord(body)
		if err != nil {
			return err
		}

		updated, position, err := records.Update(id, rec)
		if err != nil {
			return err
		}

		warning := persist(records, adapter, log)
		return mutationResponse(c, fiber.StatusOK, fiber.Map{"record": toResponse(updated, position)}, warning)
	}
}

// DELETE /api/records/:id
func DeleteRecordHandler(records *store.RecordStore, adapter *storage.CSVAdapter, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := recordID(c)
		if err != nil {
			return err
		}

		if err := records.Delete(id); err != nil {
			return err
		}

		warning := persist(records, adapter, log)
		return mutationResponse(c, fiber.StatusOK, fiber.Map{"deleted": id}, warning)
	}
}

func recordID(c *fiber.Ctx) (uint64, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid record id")
	}
	return id, nil
}
