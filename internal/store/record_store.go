package store

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Farmab/outgoing/internal/models"
)

// RecordStore owns the ordered sequence of outgoing records for the session.
// Every record gets an immutable, monotonically increasing id at append time;
// the edit and delete paths address records by that id, so a view rendered
// before another mutation can never hit the wrong row. Positional access is
// kept for the snapshot/restore cycle and for callers that still index rows.
type RecordStore struct {
	mu      sync.RWMutex
	records []models.OutgoingRecord
	nextID  uint64
	log     zerolog.Logger
}

func NewRecordStore(log zerolog.Logger) *RecordStore {
	return &RecordStore{
		records: make([]models.OutgoingRecord, 0),
		nextID:  1,
		log:     log.With().Str("component", "record_store").Logger(),
	}
}

// Append validates rec, recomputes its total price, assigns it an id and
// places it at the end of the sequence. It returns the stored record and its
// position.
func (s *RecordStore) Append(rec models.OutgoingRecord) (models.OutgoingRecord, int, error) {
	if err := validateRecord(&rec); err != nil {
		return models.OutgoingRecord{}, 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = s.nextID
	s.nextID++
	s.records = append(s.records, rec)

	s.log.Debug().Uint64("id", rec.ID).Str("product", rec.Product).Str("branch", rec.Branch).Msg("record appended")
	return rec, len(s.records) - 1, nil
}

// Update replaces the record with the given id in full, keeping the id and
// recomputing the total price. Fails with NotFoundError when no record has
// that id. Returns the stored record and its position.
func (s *RecordStore) Update(id uint64, rec models.OutgoingRecord) (models.OutgoingRecord, int, error) {
	if err := validateRecord(&rec); err != nil {
		return models.OutgoingRecord{}, 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID == id {
			rec.ID = id
			s.records[i] = rec
			return rec, i, nil
		}
	}
	return models.OutgoingRecord{}, 0, &NotFoundError{What: fmt.Sprintf("record %d", id)}
}

// Delete removes the record with the given id and shifts the records after it
// down by one position.
func (s *RecordStore) Delete(id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			s.log.Debug().Uint64("id", id).Msg("record deleted")
			return nil
		}
	}
	return &NotFoundError{What: fmt.Sprintf("record %d", id)}
}

// UpdateAt replaces the record at a position in the current sequence. Callers
// must not hold the position across another mutation; prefer Update.
func (s *RecordStore) UpdateAt(pos int, rec models.OutgoingRecord) (models.OutgoingRecord, error) {
	if err := validateRecord(&rec); err != nil {
		return models.OutgoingRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if pos < 0 || pos >= len(s.records) {
		return models.OutgoingRecord{}, &NotFoundError{What: fmt.Sprintf("position %d", pos)}
	}
	rec.ID = s.records[pos].ID
	s.records[pos] = rec
	return rec, nil
}

// DeleteAt removes the record at a position in the current sequence.
func (s *RecordStore) DeleteAt(pos int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pos < 0 || pos >= len(s.records) {
		return &NotFoundError{What: fmt.Sprintf("position %d", pos)}
	}
	s.records = append(s.records[:pos], s.records[pos+1:]...)
	return nil
}

// Snapshot returns a copy of the full sequence for read-only use (filtering,
// aggregation, export, persistence). Mutating the store afterwards cannot
// corrupt a computation running over the copy.
func (s *RecordStore) Snapshot() []models.OutgoingRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.OutgoingRecord, len(s.records))
	copy(out, s.records)
	return out
}

func (s *RecordStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Restore replaces the whole sequence with records loaded from the data file.
// Loaded rows carry no ids, so fresh ones are assigned in order.
func (s *RecordStore) Restore(records []models.OutgoingRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make([]models.OutgoingRecord, 0, len(records))
	for _, rec := range records {
		rec.ID = s.nextID
		s.nextID++
		s.records = append(s.records, rec)
	}
	s.log.Info().Int("count", len(s.records)).Msg("records restored")
}

// validateRecord enforces the entry-form rules and recomputes the total so
// the quantity * unit price invariant holds after every write.
func validateRecord(rec *models.OutgoingRecord) error {
	if rec.Product == "" {
		return &ValidationError{Field: "product", Reason: "must not be empty"}
	}
	if rec.Branch == "" {
		return &ValidationError{Field: "branch", Reason: "must not be empty"}
	}
	if rec.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "must be a valid calendar date"}
	}
	if rec.Quantity.IsNegative() {
		return &ValidationError{Field: "quantity", Reason: "must not be negative"}
	}
	if rec.UnitPrice.IsNegative() {
		return &ValidationError{Field: "unit_price", Reason: "must not be negative"}
	}
	if !rec.Currency.Valid() {
		return &ValidationError{Field: "currency", Reason: fmt.Sprintf("must be %q or %q", models.CurrencyIQD, models.CurrencyUSD)}
	}
	rec.TotalPrice = rec.Quantity.Mul(rec.UnitPrice)
	return nil
}
