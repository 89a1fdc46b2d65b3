package services

import (
	"fmt"
	"sort"

	"github.com/pocketbase/pocketbase"
)

// Formula row kinds stored on material_formulas records. Direct rows name
// the consumed material itself; mortar and concrete_mix rows reference a
// blend that expands into its components before calculation.
const (
	FormulaKindDirect      = "direct"
	FormulaKindMortar      = "mortar"
	FormulaKindConcreteMix = "concrete_mix"
)

// FormulaRow is one material_formulas record before mix expansion.
type FormulaRow struct {
	Category    string
	Kind        string
	MaterialID  string
	Material    string
	Unit        string
	Coefficient float64
	WasteFactor float64
	SortOrder   float64
}

// MixComponent is one ingredient of a blend: Fraction units of the
// component produce one unit of the mix.
type MixComponent struct {
	MaterialID string
	Material   string
	Unit       string
	Fraction   float64
}

// MixTable maps a mix kind to its ordered components.
type MixTable map[string][]MixComponent

// BuildFormulaTable turns raw formula rows into the calculator's table.
// Rows are ordered by category sort order. Mix rows are replaced by their
// components, scaled by the row coefficient and keeping the row's waste
// factor; a mix kind with no registered components degrades to a direct
// entry so a half-seeded table still calculates.
func BuildFormulaTable(rows []FormulaRow, mixes MixTable) FormulaTable {
	sorted := make([]FormulaRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Category != sorted[j].Category {
			return sorted[i].Category < sorted[j].Category
		}
		return sorted[i].SortOrder < sorted[j].SortOrder
	})

	table := FormulaTable{}
	for _, row := range sorted {
		if row.Kind != "" && row.Kind != FormulaKindDirect {
			comps := mixes[row.Kind]
			if len(comps) > 0 {
				for _, comp := range comps {
					table[row.Category] = append(table[row.Category], FormulaEntry{
						MaterialID:  comp.MaterialID,
						Material:    comp.Material,
						Unit:        comp.Unit,
						Coefficient: row.Coefficient * comp.Fraction,
						WasteFactor: row.WasteFactor,
					})
				}
				continue
			}
		}
		table[row.Category] = append(table[row.Category], FormulaEntry{
			MaterialID:  row.MaterialID,
			Material:    row.Material,
			Unit:        row.Unit,
			Coefficient: row.Coefficient,
			WasteFactor: row.WasteFactor,
		})
	}
	return table
}

// MaterialIndex carries the lookup maps handlers need alongside the table.
type MaterialIndex struct {
	Names      map[string]string
	Units      map[string]string
	Prices     map[string]float64
	Categories map[string]string
}

// LoadMaterialIndex reads the materials collection into lookup maps.
func LoadMaterialIndex(app *pocketbase.PocketBase) (MaterialIndex, error) {
	col, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		return MaterialIndex{}, fmt.Errorf("materials collection not found: %w", err)
	}
	records, err := app.FindAllRecords(col)
	if err != nil {
		return MaterialIndex{}, fmt.Errorf("query materials: %w", err)
	}

	idx := MaterialIndex{
		Names:      make(map[string]string, len(records)),
		Units:      make(map[string]string, len(records)),
		Prices:     make(map[string]float64, len(records)),
		Categories: make(map[string]string, len(records)),
	}
	for _, rec := range records {
		idx.Names[rec.Id] = rec.GetString("name")
		idx.Units[rec.Id] = rec.GetString("unit")
		idx.Prices[rec.Id] = rec.GetFloat("unit_price")
		idx.Categories[rec.Id] = rec.GetString("category")
	}
	return idx, nil
}

// LoadFormulaTable reads the formula and mix collections and returns the
// expanded table the calculator consumes.
func LoadFormulaTable(app *pocketbase.PocketBase) (FormulaTable, error) {
	idx, err := LoadMaterialIndex(app)
	if err != nil {
		return nil, err
	}

	mixes, err := loadMixTable(app, idx)
	if err != nil {
		return nil, err
	}

	col, err := app.FindCollectionByNameOrId("material_formulas")
	if err != nil {
		return nil, fmt.Errorf("material_formulas collection not found: %w", err)
	}
	records, err := app.FindAllRecords(col)
	if err != nil {
		return nil, fmt.Errorf("query material formulas: %w", err)
	}

	rows := make([]FormulaRow, 0, len(records))
	for _, rec := range records {
		matID := rec.GetString("material")
		rows = append(rows, FormulaRow{
			Category:    rec.GetString("category"),
			Kind:        rec.GetString("kind"),
			MaterialID:  matID,
			Material:    idx.Names[matID],
			Unit:        rec.GetString("unit"),
			Coefficient: rec.GetFloat("coefficient"),
			WasteFactor: rec.GetFloat("waste_factor"),
			SortOrder:   rec.GetFloat("sort_order"),
		})
	}
	return BuildFormulaTable(rows, mixes), nil
}

func loadMixTable(app *pocketbase.PocketBase, idx MaterialIndex) (MixTable, error) {
	col, err := app.FindCollectionByNameOrId("mix_components")
	if err != nil {
		return nil, fmt.Errorf("mix_components collection not found: %w", err)
	}
	records, err := app.FindAllRecords(col)
	if err != nil {
		return nil, fmt.Errorf("query mix components: %w", err)
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].GetString("kind") != records[j].GetString("kind") {
			return records[i].GetString("kind") < records[j].GetString("kind")
		}
		return records[i].GetFloat("sort_order") < records[j].GetFloat("sort_order")
	})

	mixes := MixTable{}
	for _, rec := range records {
		matID := rec.GetString("material")
		kind := rec.GetString("kind")
		mixes[kind] = append(mixes[kind], MixComponent{
			MaterialID: matID,
			Material:   idx.Names[matID],
			Unit:       rec.GetString("unit"),
			Fraction:   rec.GetFloat("fraction"),
		})
	}
	return mixes, nil
}
