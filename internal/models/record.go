package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Currency string

const (
	CurrencyIQD Currency = "IQD"
	CurrencyUSD Currency = "$"
)

// Valid reports whether c is one of the two currencies the tool accepts.
func (c Currency) Valid() bool {
	return c == CurrencyIQD || c == CurrencyUSD
}

// OutgoingRecord is one outgoing shipment line: a quantity of one product
// sent to one branch at a unit price. TotalPrice is always recomputed from
// Quantity and UnitPrice by the store, never written independently.
type OutgoingRecord struct {
	ID         uint64          `json:"id"`
	Date       time.Time       `json:"date"`
	Product    string          `json:"product"`
	Category   string          `json:"category"` // optional; the value entered on the record wins over the catalog
	Branch     string          `json:"branch"`
	Unit       string          `json:"unit"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Currency   Currency        `json:"currency"`
	Note       string          `json:"note"`
}

// DateLayout is the calendar-date format used on the wire and in the data file.
const DateLayout = "2006-01-02"
