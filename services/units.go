package services

import (
	"github.com/pocketbase/pocketbase"
)

// standardConversions holds metric equivalences that apply to any material.
var standardConversions = map[[2]string]float64{
	{"kg", "ton"}:  0.001,
	{"ton", "kg"}:  1000,
	{"kg", "g"}:    1000,
	{"g", "kg"}:    0.001,
	{"m³", "lt"}:   1000,
	{"lt", "m³"}:   0.001,
	{"m³", "dm³"}:  1000,
	{"dm³", "m³"}:  0.001,
	{"m²", "cm²"}:  10000,
	{"cm²", "m²"}:  0.0001,
	{"m", "cm"}:    100,
	{"cm", "m"}:    0.01,
	{"m", "mm"}:    1000,
	{"mm", "m"}:    0.001,
}

type convKey struct {
	materialID string
	from       string
	to         string
}

// UnitConverter resolves unit conversions. Material-specific rules win over
// generic rules, which win over the standard metric table. Registered rules
// get their reverse derived automatically.
type UnitConverter struct {
	rules map[convKey]float64
}

// NewUnitConverter returns a converter backed only by the standard table.
func NewUnitConverter() *UnitConverter {
	return &UnitConverter{rules: make(map[convKey]float64)}
}

// AddRule registers a conversion. materialID may be empty for a generic
// rule. The reverse direction is derived unless one was already registered.
func (c *UnitConverter) AddRule(materialID, from, to string, factor float64) {
	if from == "" || to == "" || factor == 0 {
		return
	}
	c.rules[convKey{materialID, from, to}] = factor
	reverse := convKey{materialID, to, from}
	if _, ok := c.rules[reverse]; !ok {
		c.rules[reverse] = 1 / factor
	}
}

// Convert translates value between units for the given material.
// The second return is false when no rule covers the pair.
func (c *UnitConverter) Convert(value float64, from, to, materialID string) (float64, bool) {
	if from == to {
		return value, true
	}
	if materialID != "" {
		if f, ok := c.rules[convKey{materialID, from, to}]; ok {
			return value * f, true
		}
	}
	if f, ok := c.rules[convKey{"", from, to}]; ok {
		return value * f, true
	}
	if f, ok := standardConversions[[2]string{from, to}]; ok {
		return value * f, true
	}
	return 0, false
}

// ConvertRequirements maps aggregated rows into the target unit where a
// rule exists; rows without a usable conversion keep their original unit.
func (c *UnitConverter) ConvertRequirements(reqs []AggregatedRequirement, target string) []AggregatedRequirement {
	out := make([]AggregatedRequirement, len(reqs))
	for i, r := range reqs {
		out[i] = r
		qty, ok := c.Convert(r.Qty, r.Unit, target, r.MaterialID)
		if !ok {
			continue
		}
		base, _ := c.Convert(r.BaseQty, r.Unit, target, r.MaterialID)
		out[i].Qty = qty
		out[i].BaseQty = base
		out[i].Unit = target
	}
	return out
}

// LoadUnitConverter builds a converter from the unit_conversions collection.
// A missing or empty collection still yields a working converter with the
// standard table.
func LoadUnitConverter(app *pocketbase.PocketBase) *UnitConverter {
	c := NewUnitConverter()
	col, err := app.FindCollectionByNameOrId("unit_conversions")
	if err != nil {
		return c
	}
	records, err := app.FindAllRecords(col)
	if err != nil {
		return c
	}
	for _, rec := range records {
		c.AddRule(
			rec.GetString("material"),
			rec.GetString("from_unit"),
			rec.GetString("to_unit"),
			rec.GetFloat("factor"),
		)
	}
	return c
}
