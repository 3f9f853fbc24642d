package models

type Product struct {
	Name     string `json:"name"`
	Category string `json:"category"` // optional product type
	Unit     string `json:"unit"`     // default unit: kg, piece, carton, box or a custom unit
}

// StandardUnits are the units the entry form offers; registration still
// accepts any custom unit.
var StandardUnits = []string{"kg", "piece", "carton", "box"}
