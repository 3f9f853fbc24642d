package store

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Farmab/outgoing/internal/models"
)

// Import columns required in a bulk-import header, compared case-insensitively.
const (
	ImportColProduct = "product"
	ImportColType    = "default type"
	ImportColUnit    = "unit"
)

// Catalog holds the registered products and branch names for the session.
// Products are append-only and duplicates are allowed on manual registration;
// bulk import removes exact duplicates afterwards. Branches are append-only
// and unique by exact name.
type Catalog struct {
	mu       sync.RWMutex
	products []models.Product
	branches []string
	log      zerolog.Logger
}

// NewCatalog returns a catalog seeded with the default delivery-route
// branches.
func NewCatalog(log zerolog.Logger) *Catalog {
	branches := make([]string, len(models.DefaultBranches))
	copy(branches, models.DefaultBranches)
	return &Catalog{
		products: make([]models.Product, 0),
		branches: branches,
		log:      log.With().Str("component", "catalog").Logger(),
	}
}

// RegisterProduct appends a product. Re-registering an existing name is
// allowed and creates a duplicate entry; lookups use the first match.
func (c *Catalog) RegisterProduct(name, category, unit string) (models.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Product{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	p := models.Product{Name: name, Category: strings.TrimSpace(category), Unit: strings.TrimSpace(unit)}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = append(c.products, p)
	return p, nil
}

// ImportProducts maps tabular rows into products using the given header row.
// The header must contain the product, default type and unit columns
// (case-insensitive); otherwise the whole import fails with a SchemaError
// naming the missing columns and the catalog is left untouched. On success
// all rows are appended and exact-duplicate products are removed, keeping
// first occurrences. Returns the number of products in the catalog after the
// import.
func (c *Catalog) ImportProducts(header []string, rows [][]string) (int, error) {
	productCol, typeCol, unitCol := -1, -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case ImportColProduct:
			productCol = i
		case ImportColType:
			typeCol = i
		case ImportColUnit:
			unitCol = i
		}
	}

	var missing []string
	if productCol < 0 {
		missing = append(missing, ImportColProduct)
	}
	if typeCol < 0 {
		missing = append(missing, ImportColType)
	}
	if unitCol < 0 {
		missing = append(missing, ImportColUnit)
	}
	if len(missing) > 0 {
		return 0, &SchemaError{Missing: missing}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, row := range rows {
		name := strings.TrimSpace(cell(row, productCol))
		if name == "" {
			continue
		}
		c.products = append(c.products, models.Product{
			Name:     name,
			Category: strings.TrimSpace(cell(row, typeCol)),
			Unit:     strings.TrimSpace(cell(row, unitCol)),
		})
	}

	c.products = dedupProducts(c.products)
	c.log.Info().Int("count", len(c.products)).Msg("products imported")
	return len(c.products), nil
}

// LookupDefaultUnit returns the unit of the first product matching name.
// Used to pre-fill the entry form, never authoritative.
func (c *Catalog) LookupDefaultUnit(name string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, p := range c.products {
		if p.Name == name {
			return p.Unit, true
		}
	}
	return "", false
}

// RegisterBranch appends a branch name. Names are unique by exact,
// case-sensitive match.
func (c *Catalog) RegisterBranch(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, b := range c.branches {
		if b == name {
			return &DuplicateError{Name: name}
		}
	}
	c.branches = append(c.branches, name)
	return nil
}

// Products returns a copy of the registered products in registration order.
func (c *Catalog) Products() []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Branches returns a copy of the branch names in registration order.
func (c *Catalog) Branches() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, len(c.branches))
	copy(out, c.branches)
	return out
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func dedupProducts(products []models.Product) []models.Product {
	seen := make(map[models.Product]struct{}, len(products))
	out := products[:0]
	for _, p := range products {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
