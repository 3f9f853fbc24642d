// Package summary filters the record sequence and computes grouped totals
// for the summary screen, the printable document and the exports.
package summary

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Farmab/outgoing/internal/models"
)

// Filter narrows a record sequence. Every predicate is optional: an empty
// set imposes no restriction, a nil bound leaves that side of the date range
// open. Date bounds are inclusive; when any bound is set, records without a
// usable date are excluded rather than failing the filter.
type Filter struct {
	Branches []string
	Products []string
	From     *time.Time
	To       *time.Time
}

func (f Filter) Apply(records []models.OutgoingRecord) []models.OutgoingRecord {
	branches := toSet(f.Branches)
	products := toSet(f.Products)

	out := make([]models.OutgoingRecord, 0, len(records))
	for _, rec := range records {
		if len(branches) > 0 {
			if _, ok := branches[rec.Branch]; !ok {
				continue
			}
		}
		if len(products) > 0 {
			if _, ok := products[rec.Product]; !ok {
				continue
			}
		}
		if f.From != nil || f.To != nil {
			if rec.Date.IsZero() {
				continue
			}
			if f.From != nil && rec.Date.Before(*f.From) {
				continue
			}
			if f.To != nil && rec.Date.After(*f.To) {
				continue
			}
		}
		out = append(out, rec)
	}
	return out
}

// Row is one grouped summary line: the quantity and total price of every
// record sharing the same (branch, product, category, unit, currency) tuple.
type Row struct {
	Branch     string          `json:"branch"`
	Product    string          `json:"product"`
	Category   string          `json:"category"`
	Unit       string          `json:"unit"`
	Currency   models.Currency `json:"currency"`
	Quantity   decimal.Decimal `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type groupKey struct {
	branch, product, category, unit string
	currency                        models.Currency
}

// Summary carries the grouped rows plus two distinct totals: FilteredTotal
// sums total price over the filtered set only, GrandTotal sums it over the
// full store regardless of any filter.
type Summary struct {
	Rows          []Row           `json:"rows"`
	FilteredTotal decimal.Decimal `json:"filtered_total"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}

// Summarize applies the filter to the full snapshot and groups the result.
// Row order is the first-seen order of group keys, so a given input ordering
// always produces the same output.
func Summarize(records []models.OutgoingRecord, f Filter) Summary {
	filtered := f.Apply(records)

	index := make(map[groupKey]int)
	rows := make([]Row, 0)
	filteredTotal := decimal.Zero

	for _, rec := range filtered {
		key := groupKey{rec.Branch, rec.Product, rec.Category, rec.Unit, rec.Currency}
		i, ok := index[key]
		if !ok {
			i = len(rows)
			index[key] = i
			rows = append(rows, Row{
				Branch:   rec.Branch,
				Product:  rec.Product,
				Category: rec.Category,
				Unit:     rec.Unit,
				Currency: rec.Currency,
			})
		}
		rows[i].Quantity = rows[i].Quantity.Add(rec.Quantity)
		rows[i].TotalPrice = rows[i].TotalPrice.Add(rec.TotalPrice)
		filteredTotal = filteredTotal.Add(rec.TotalPrice)
	}

	grandTotal := decimal.Zero
	for _, rec := range records {
		grandTotal = grandTotal.Add(rec.TotalPrice)
	}

	return Summary{Rows: rows, FilteredTotal: filteredTotal, GrandTotal: grandTotal}
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}
