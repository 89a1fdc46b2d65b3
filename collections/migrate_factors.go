package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
)

// defaultWasteFactors holds the per-category waste allowance applied to
// formula rows that predate the waste_factor field.
var defaultWasteFactors = map[string]float64{
	"concrete":      0.03,
	"lean_concrete": 0.05,
	"masonry":       0.05,
	"rebar":         0.07,
	"formwork":      0.10,
	"plaster":       0.07,
	"paint":         0.10,
	"flooring":      0.08,
	"roofing":       0.06,
	"electrical":    0.02,
	"plumbing":      0.02,
}

// MigrateFormulaFactors backfills waste_factor on formula rows created
// before the field existed. A category is only touched when every one of
// its rows has a zero factor; a category with any explicit factor is
// treated as already maintained, so intentional zero-waste rows (water in
// a concrete recipe) are never overwritten.
// Safe to call on every startup -- returns early if nothing to migrate.
func MigrateFormulaFactors(app *pocketbase.PocketBase) error {
	formulasCol, err := app.FindCollectionByNameOrId("material_formulas")
	if err != nil {
		return fmt.Errorf("migrate: could not find material_formulas collection: %w", err)
	}

	rows, err := app.FindAllRecords(formulasCol)
	if err != nil {
		return fmt.Errorf("migrate: could not query material_formulas: %w", err)
	}
	if len(rows) == 0 {
		return nil
	}

	hasNonZero := make(map[string]bool)
	for _, r := range rows {
		if r.GetFloat("waste_factor") != 0 {
			hasNonZero[r.GetString("category")] = true
		}
	}

	migrated := 0
	for _, r := range rows {
		category := r.GetString("category")
		if hasNonZero[category] {
			continue
		}
		factor, ok := defaultWasteFactors[category]
		if !ok {
			continue
		}
		r.Set("waste_factor", factor)
		if err := app.Save(r); err != nil {
			log.Printf("migrate: failed to backfill waste factor for %s row %s: %v\n", category, r.Id, err)
			continue
		}
		migrated++
	}

	if migrated > 0 {
		log.Printf("migrate: backfilled waste factors on %d formula row(s).\n", migrated)
	}
	return nil
}
