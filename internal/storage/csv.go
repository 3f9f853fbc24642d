// Package storage persists the record sequence as a flat CSV file at a fixed
// path: read wholesale at startup, overwritten wholesale after every mutation.
package storage

import (
	"encoding/csv"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Farmab/outgoing/internal/models"
)

var csvHeader = []string{"Date", "Product", "Type", "Branch", "Unit", "Quantity", "Unit Price", "Total Price", "Currency", "Note"}

type CSVAdapter struct {
	path string
	log  zerolog.Logger
}

func NewCSVAdapter(path string, log zerolog.Logger) *CSVAdapter {
	return &CSVAdapter{
		path: path,
		log:  log.With().Str("component", "storage").Str("path", path).Logger(),
	}
}

// Load reads the data file and returns the record sequence in file order.
// A missing or unreadable file yields an empty sequence, never an error:
// for a single-operator tool "no data yet" is the right answer. Rows that
// fail to parse are skipped with a warning.
func (a *CSVAdapter) Load() []models.OutgoingRecord {
	f, err := os.Open(a.path)
	if err != nil {
		a.log.Info().Msg("no data file, starting empty")
		return nil
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		a.log.Warn().Err(err).Msg("data file unreadable, starting empty")
		return nil
	}
	if len(rows) < 2 {
		return nil
	}

	records := make([]models.OutgoingRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := parseRow(row)
		if err != nil {
			a.log.Warn().Err(err).Int("row", i+2).Msg("skipping malformed row")
			continue
		}
		records = append(records, rec)
	}
	return records
}

// Flush overwrites the data file with the full record sequence.
func (a *CSVAdapter) Flush(records []models.OutgoingRecord) error {
	f, err := os.Create(a.path)
	if err != nil {
		return err
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			rec.Date.Format(models.DateLayout),
			rec.Product,
			rec.Category,
			rec.Branch,
			rec.Unit,
			rec.Quantity.String(),
			rec.UnitPrice.String(),
			rec.TotalPrice.String(),
			string(rec.Currency),
			rec.Note,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return f.Close()
}

func parseRow(row []string) (models.OutgoingRecord, error) {
	get := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}

	date, err := time.Parse(models.DateLayout, get(0))
	if err != nil {
		return models.OutgoingRecord{}, err
	}
	quantity, err := decimal.NewFromString(get(5))
	if err != nil {
		return models.OutgoingRecord{}, err
	}
	unitPrice, err := decimal.NewFromString(get(6))
	if err != nil {
		return models.OutgoingRecord{}, err
	}
	totalPrice, err := decimal.NewFromString(get(7))
	if err != nil {
		return models.OutgoingRecord{}, err
	}

	return models.OutgoingRecord{
		Date:       date,
		Product:    get(1),
		Category:   get(2),
		Branch:     get(3),
		Unit:       get(4),
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		TotalPrice: totalPrice,
		Currency:   models.Currency(get(8)),
		Note:       get(9),
	}, nil
}
