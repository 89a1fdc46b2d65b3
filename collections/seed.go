package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type materialDef struct {
	name     string
	unit     string
	category string
	price    float64
}

type catalogDef struct {
	code        string
	description string
	unit        string
	price       float64
	category    string
}

type formulaDef struct {
	category  string
	kind      string // "" means direct
	material  string // seed material name, empty for mix rows
	coeff     float64
	unit      string
	waste     float64
	sortOrder int
}

type mixDef struct {
	kind      string
	material  string
	fraction  float64
	unit      string
	sortOrder int
}

type conversionDef struct {
	material string // seed material name, empty = any material
	fromUnit string
	toUnit   string
	factor   float64
}

// Seed populates the reference collections with the standard poz catalog,
// the material price list and the consumption formulas behind it. It is
// safe to call on every startup because it returns early if any catalog
// records already exist. Projects are never seeded; they belong to the user.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if the catalog is already populated ────────
	catalogCol, err := app.FindCollectionByNameOrId("catalog_items")
	if err != nil {
		return fmt.Errorf("seed: could not find catalog_items collection: %w", err)
	}
	existing, err := app.FindAllRecords(catalogCol)
	if err != nil {
		return fmt.Errorf("seed: could not query catalog_items: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: catalog is empty – inserting reference data …")

	// ── lookup helper collections ────────────────────────────────────
	materialsCol, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		return fmt.Errorf("seed: could not find materials collection: %w", err)
	}
	formulasCol, err := app.FindCollectionByNameOrId("material_formulas")
	if err != nil {
		return fmt.Errorf("seed: could not find material_formulas collection: %w", err)
	}
	mixCol, err := app.FindCollectionByNameOrId("mix_components")
	if err != nil {
		return fmt.Errorf("seed: could not find mix_components collection: %w", err)
	}
	convCol, err := app.FindCollectionByNameOrId("unit_conversions")
	if err != nil {
		return fmt.Errorf("seed: could not find unit_conversions collection: %w", err)
	}

	// ── materials ────────────────────────────────────────────────────
	materials := []materialDef{
		{"Çimento", "kg", "binder", 4.25},
		{"Kum", "m³", "aggregate", 950},
		{"Çakıl", "m³", "aggregate", 875},
		{"Su", "lt", "", 0.02},
		{"Tuğla 19 cm", "adet", "masonry", 8.50},
		{"Nervürlü İnşaat Demiri", "kg", "steel", 19.75},
		{"Bağ Teli", "kg", "steel", 28.50},
		{"Kereste", "m³", "timber", 7250},
		{"Plywood 21 mm", "m²", "timber", 385},
		{"Çivi", "kg", "hardware", 42},
		{"Kalıp Yağı", "lt", "hardware", 65},
		{"Kireç", "kg", "binder", 3.80},
		{"Alçı", "kg", "binder", 2.10},
		{"İç Cephe Boyası", "lt", "paint", 118},
		{"Astar", "lt", "paint", 74},
		{"Seramik 33x33", "m²", "flooring", 245},
		{"Seramik Yapıştırıcısı", "kg", "flooring", 6.40},
		{"Derz Dolgusu", "kg", "flooring", 9.80},
		{"Kiremit", "adet", "roofing", 14.50},
		{"NYM Kablo 3x2.5", "m", "electrical", 24.60},
		{"Buat", "adet", "electrical", 11.20},
		{"PPRC Boru 20 mm", "m", "plumbing", 36.40},
		{"PPRC Dirsek 20 mm", "adet", "plumbing", 7.90},
	}

	materialIDs := make(map[string]string, len(materials))
	for _, d := range materials {
		r := core.NewRecord(materialsCol)
		r.Set("name", d.name)
		r.Set("unit", d.unit)
		r.Set("category", d.category)
		r.Set("unit_price", d.price)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save material %q: %w", d.name, err)
		}
		materialIDs[d.name] = r.Id
	}

	// ── poz catalog ──────────────────────────────────────────────────
	catalogItems := []catalogDef{
		{"15.001.1004", "Makine ile yumuşak ve sert toprak kazılması (serbest kazı)", "m³", 68.50, "excavation"},
		{"Y.16.002/02", "Grobeton (C 12/15) el ile beton dökülmesi", "m³", 2250.00, "lean_concrete"},
		{"Y.16.050/03", "C 25/30 basınç dayanım sınıfında hazır beton dökülmesi", "m³", 2850.00, "concrete"},
		{"Y.18.001/C14", "19 cm kalınlığında yatay delikli tuğla ile duvar yapılması", "m²", 585.00, "masonry"},
		{"Y.23.152", "Ø 8-12 mm nervürlü beton çelik çubuğu ile donatı yapılması", "ton", 32500.00, "rebar"},
		{"Y.21.001/03", "Plywood ile düz yüzeyli betonarme kalıbı yapılması", "m²", 465.00, "formwork"},
		{"Y.25.002/02", "250/350 kg çimento dozlu kaba ve ince harçla sıva yapılması", "m²", 295.00, "plaster"},
		{"Y.25.004/01", "İç cephe duvarlarına iki kat su bazlı boya yapılması", "m²", 92.00, "paint"},
		{"Y.26.005/204", "33x33 cm seramik karo ile döşeme kaplaması yapılması", "m²", 518.00, "flooring"},
		{"18.462.1011", "Kiremit ile çatı örtüsü yapılması", "m²", 345.00, "roofing"},
		{"35.140.1109", "NYM kablolar ile normal aydınlatma sortisi yapılması", "adet", 412.00, "electrical"},
		{"36.030.1102", "PPRC boru ile sıhhi tesisat kolonu yapılması, Ø 20 mm", "m", 96.00, "plumbing"},
	}

	for _, d := range catalogItems {
		r := core.NewRecord(catalogCol)
		r.Set("code", d.code)
		r.Set("description", d.description)
		r.Set("unit", d.unit)
		r.Set("unit_price", d.price)
		r.Set("category", d.category)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save catalog item %q: %w", d.code, err)
		}
	}

	// ── consumption formulas per work category ───────────────────────
	// Coefficients are per one unit of the work item. The excavation
	// category deliberately has no rows: machine excavation consumes
	// no materials.
	formulas := []formulaDef{
		// concrete, per m³
		{"concrete", "", "Çimento", 300, "kg", 0.03, 1},
		{"concrete", "", "Kum", 0.45, "m³", 0.03, 2},
		{"concrete", "", "Çakıl", 0.90, "m³", 0.03, 3},
		{"concrete", "", "Su", 150, "lt", 0, 4},
		// lean concrete, one row expanded from the concrete_mix recipe
		{"lean_concrete", "concrete_mix", "", 1.0, "m³", 0.05, 1},
		// masonry, per m²
		{"masonry", "", "Tuğla 19 cm", 17.5, "adet", 0.05, 1},
		{"masonry", "mortar", "", 0.025, "m³", 0.05, 2},
		// rebar, per ton
		{"rebar", "", "Nervürlü İnşaat Demiri", 1000, "kg", 0.07, 1},
		{"rebar", "", "Bağ Teli", 10, "kg", 0.07, 2},
		// formwork, per m²
		{"formwork", "", "Plywood 21 mm", 0.35, "m²", 0.10, 1},
		{"formwork", "", "Kereste", 0.015, "m³", 0.10, 2},
		{"formwork", "", "Çivi", 0.25, "kg", 0.10, 3},
		{"formwork", "", "Kalıp Yağı", 0.12, "lt", 0.10, 4},
		// plaster, per m²
		{"plaster", "mortar", "", 0.025, "m³", 0.07, 1},
		{"plaster", "", "Kireç", 1.2, "kg", 0.07, 2},
		// paint, per m²
		{"paint", "", "Astar", 0.15, "lt", 0.10, 1},
		{"paint", "", "İç Cephe Boyası", 0.35, "lt", 0.10, 2},
		// flooring, per m²
		{"flooring", "", "Seramik 33x33", 1.0, "m²", 0.08, 1},
		{"flooring", "", "Seramik Yapıştırıcısı", 4.5, "kg", 0.08, 2},
		{"flooring", "", "Derz Dolgusu", 0.6, "kg", 0.08, 3},
		// roofing, per m²
		{"roofing", "", "Kiremit", 14.2, "adet", 0.06, 1},
		{"roofing", "", "Kereste", 0.012, "m³", 0.06, 2},
		// electrical, per sorti
		{"electrical", "", "NYM Kablo 3x2.5", 12, "m", 0.02, 1},
		{"electrical", "", "Buat", 1.2, "adet", 0.02, 2},
		// plumbing, per m
		{"plumbing", "", "PPRC Boru 20 mm", 1.0, "m", 0.02, 1},
		{"plumbing", "", "PPRC Dirsek 20 mm", 0.8, "adet", 0.02, 2},
	}

	for _, d := range formulas {
		kind := d.kind
		if kind == "" {
			kind = "direct"
		}
		r := core.NewRecord(formulasCol)
		r.Set("category", d.category)
		r.Set("kind", kind)
		r.Set("coefficient", d.coeff)
		r.Set("unit", d.unit)
		r.Set("waste_factor", d.waste)
		r.Set("sort_order", d.sortOrder)
		if d.material != "" {
			id, ok := materialIDs[d.material]
			if !ok {
				return fmt.Errorf("seed: formula for %q references unknown material %q", d.category, d.material)
			}
			r.Set("material", id)
		}
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save formula %s/%s: %w", d.category, d.material, err)
		}
	}

	// ── mix recipes, per m³ of mix ───────────────────────────────────
	mixes := []mixDef{
		{"mortar", "Çimento", 250, "kg", 1},
		{"mortar", "Kum", 1.05, "m³", 2},
		{"mortar", "Su", 260, "lt", 3},
		{"concrete_mix", "Çimento", 250, "kg", 1},
		{"concrete_mix", "Kum", 0.50, "m³", 2},
		{"concrete_mix", "Çakıl", 0.95, "m³", 3},
		{"concrete_mix", "Su", 140, "lt", 4},
	}

	for _, d := range mixes {
		id, ok := materialIDs[d.material]
		if !ok {
			return fmt.Errorf("seed: mix %q references unknown material %q", d.kind, d.material)
		}
		r := core.NewRecord(mixCol)
		r.Set("kind", d.kind)
		r.Set("material", id)
		r.Set("fraction", d.fraction)
		r.Set("unit", d.unit)
		r.Set("sort_order", d.sortOrder)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save mix component %s/%s: %w", d.kind, d.material, err)
		}
	}

	// ── material-specific unit conversions ───────────────────────────
	// Generic conversions (kg↔ton, m³↔lt, …) are built in; only the
	// package sizes of specific materials live in the database.
	conversions := []conversionDef{
		{"Çimento", "torba", "kg", 50},
		{"Seramik 33x33", "paket", "m²", 1.44},
		{"Kiremit", "paket", "adet", 10},
	}

	for _, d := range conversions {
		r := core.NewRecord(convCol)
		if d.material != "" {
			id, ok := materialIDs[d.material]
			if !ok {
				return fmt.Errorf("seed: conversion references unknown material %q", d.material)
			}
			r.Set("material", id)
		}
		r.Set("from_unit", d.fromUnit)
		r.Set("to_unit", d.toUnit)
		r.Set("factor", d.factor)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save conversion %s→%s: %w", d.fromUnit, d.toUnit, err)
		}
	}

	log.Printf("seed: inserted %d materials, %d catalog items, %d formulas, %d mix components, %d conversions.\n",
		len(materials), len(catalogItems), len(formulas), len(mixes), len(conversions))
	return nil
}
