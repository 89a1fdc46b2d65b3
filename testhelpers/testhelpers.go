// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"metraj/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestProject creates a project record with the given name and returns it.
func CreateTestProject(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		t.Fatalf("failed to find projects collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("client", "Test Client")
	record.Set("status", "active")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test project: %v", err)
	}

	return record
}

// CreateTestCatalogItem creates a poz catalog record and returns it.
func CreateTestCatalogItem(t *testing.T, app *pocketbase.PocketBase, code, description, unit string, price float64, category string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("catalog_items")
	if err != nil {
		t.Fatalf("failed to find catalog_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("code", code)
	record.Set("description", description)
	record.Set("unit", unit)
	record.Set("unit_price", price)
	record.Set("category", category)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test catalog item: %v", err)
	}

	return record
}

// CreateTestTakeoffItem creates a takeoff item linked to a project. The line
// total is derived from qty and price the way the handlers do it.
func CreateTestTakeoffItem(t *testing.T, app *pocketbase.PocketBase, projectID, code, description, category string, qty float64, unit string, price float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("takeoff_items")
	if err != nil {
		t.Fatalf("failed to find takeoff_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("code", code)
	record.Set("description", description)
	record.Set("category", category)
	record.Set("qty", qty)
	record.Set("unit", unit)
	record.Set("unit_price", price)
	record.Set("total", qty*price)
	record.Set("sort_order", 10)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test takeoff item: %v", err)
	}

	return record
}

// CreateTestMaterial creates a material record and returns it.
func CreateTestMaterial(t *testing.T, app *pocketbase.PocketBase, name, unit string, price float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		t.Fatalf("failed to find materials collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("unit", unit)
	record.Set("unit_price", price)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test material: %v", err)
	}

	return record
}

// CreateTestFormula creates a direct material_formulas row for a category.
func CreateTestFormula(t *testing.T, app *pocketbase.PocketBase, category, materialID string, coeff float64, unit string, waste float64, sortOrder int) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("material_formulas")
	if err != nil {
		t.Fatalf("failed to find material_formulas collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("category", category)
	record.Set("kind", "direct")
	record.Set("material", materialID)
	record.Set("coefficient", coeff)
	record.Set("unit", unit)
	record.Set("waste_factor", waste)
	record.Set("sort_order", sortOrder)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test formula: %v", err)
	}

	return record
}

// CreateTestMixFormula creates a material_formulas row pointing at a mix recipe.
func CreateTestMixFormula(t *testing.T, app *pocketbase.PocketBase, category, kind string, coeff float64, waste float64, sortOrder int) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("material_formulas")
	if err != nil {
		t.Fatalf("failed to find material_formulas collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("category", category)
	record.Set("kind", kind)
	record.Set("coefficient", coeff)
	record.Set("unit", "m³")
	record.Set("waste_factor", waste)
	record.Set("sort_order", sortOrder)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test mix formula: %v", err)
	}

	return record
}

// CreateTestMixComponent creates one component of a mix recipe.
func CreateTestMixComponent(t *testing.T, app *pocketbase.PocketBase, kind, materialID string, fraction float64, unit string, sortOrder int) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("mix_components")
	if err != nil {
		t.Fatalf("failed to find mix_components collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("kind", kind)
	record.Set("material", materialID)
	record.Set("fraction", fraction)
	record.Set("unit", unit)
	record.Set("sort_order", sortOrder)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test mix component: %v", err)
	}

	return record
}

// CreateTestBid creates a bid record linked to a project.
func CreateTestBid(t *testing.T, app *pocketbase.PocketBase, projectID, firm string, total float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("bids")
	if err != nil {
		t.Fatalf("failed to find bids collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("firm", firm)
	record.Set("qty", 1.0)
	record.Set("unit_price", total)
	record.Set("total", total)
	record.Set("status", "pending")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test bid: %v", err)
	}

	return record
}

// CreateTestConversion creates a unit_conversions rule. Pass an empty
// materialID for a rule that applies to any material.
func CreateTestConversion(t *testing.T, app *pocketbase.PocketBase, materialID, fromUnit, toUnit string, factor float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("unit_conversions")
	if err != nil {
		t.Fatalf("failed to find unit_conversions collection: %v", err)
	}

	record := core.NewRecord(col)
	if materialID != "" {
		record.Set("material", materialID)
	}
	record.Set("from_unit", fromUnit)
	record.Set("to_unit", toUnit)
	record.Set("factor", factor)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test conversion: %v", err)
	}

	return record
}

// AssertBodyContains checks that the recorded response body contains all
// specified fragments.
func AssertBodyContains(t *testing.T, rec *httptest.ResponseRecorder, fragments ...string) {
	t.Helper()

	body := rec.Body.String()
	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected body to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
