package services

import (
	"testing"

	"metraj/testhelpers"
)

func TestLoadWorkItems_SheetOrder(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Konut Projesi")

	late := testhelpers.CreateTestTakeoffItem(t, app, project.Id, "B.2", "İkinci", "masonry", 5, "m²", 100)
	late.Set("sort_order", 30)
	if err := app.Save(late); err != nil {
		t.Fatalf("failed to update item: %v", err)
	}
	testhelpers.CreateTestTakeoffItem(t, app, project.Id, "A.1", "Birinci", "concrete", 10, "m³", 2850)

	items, err := LoadWorkItems(app, project.Id)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 work items, got %d", len(items))
	}
	if items[0].Code != "A.1" || items[1].Code != "B.2" {
		t.Errorf("expected sheet order A.1, B.2, got %s, %s", items[0].Code, items[1].Code)
	}
	if items[0].Qty != 10 || items[0].Category != "concrete" {
		t.Errorf("unexpected first item: %+v", items[0])
	}
}

func TestBuildMaterialExportData_CostsAndSources(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Konut Projesi")
	cement := testhelpers.CreateTestMaterial(t, app, "Çimento", "kg", 4.25)
	testhelpers.CreateTestFormula(t, app, "concrete", cement.Id, 300, "kg", 0.03, 10)
	testhelpers.CreateTestTakeoffItem(t, app, project.Id, "Y.16.050/03", "Temel betonu", "concrete", 10, "m³", 2850)

	data, err := BuildMaterialExportData(app, project.Id, AutoWaste())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if data.ProjectName != "Konut Projesi" {
		t.Errorf("unexpected project name: %q", data.ProjectName)
	}
	if data.WasteNote != "automatic waste (per material)" {
		t.Errorf("unexpected waste note: %q", data.WasteNote)
	}
	if data.MaterialCount != 1 || len(data.Rows) != 1 {
		t.Fatalf("expected 1 material row, got %d", len(data.Rows))
	}
	row := data.Rows[0]
	if row.Material != "Çimento" || row.Qty != 3090 {
		t.Errorf("unexpected row: %+v", row)
	}
	if row.Sources != "Y.16.050/03" {
		t.Errorf("expected source code on the row, got %q", row.Sources)
	}
	if row.Cost != 13132.5 {
		t.Errorf("expected cost 13132.5, got %v", row.Cost)
	}
	if data.TotalCost != 13132.5 {
		t.Errorf("expected total 13132.5, got %v", data.TotalCost)
	}
}

func TestBuildMaterialExportData_ProjectNotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if _, err := BuildMaterialExportData(app, "missing", AutoWaste()); err == nil {
		t.Error("expected an error for a missing project")
	}
}

func TestBuildBOQExportData_TotalsWithVAT(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Konut Projesi")
	testhelpers.CreateTestTakeoffItem(t, app, project.Id, "Y.16.050/03", "Temel betonu", "concrete", 10, "m³", 2850)
	testhelpers.CreateTestTakeoffItem(t, app, project.Id, "15.150.1003", "Tuğla duvar", "masonry", 100, "m²", 480)

	data, err := BuildBOQExportData(app, project.Id, 20)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if data.ClientName != "Test Client" {
		t.Errorf("unexpected client: %q", data.ClientName)
	}
	if len(data.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(data.Rows))
	}
	if data.Rows[0].Total != 28500 || data.Rows[1].Total != 48000 {
		t.Errorf("unexpected line totals: %v, %v", data.Rows[0].Total, data.Rows[1].Total)
	}
	// 76500 net, 20% VAT.
	if data.Totals.Net != 76500 || data.Totals.VAT != 15300 || data.Totals.Gross != 91800 {
		t.Errorf("unexpected totals: %+v", data.Totals)
	}
}

func TestBuildBOQExportData_FallsBackToDerivedTotal(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Konut Projesi")
	item := testhelpers.CreateTestTakeoffItem(t, app, project.Id, "", "Söküm işleri", "other", 4, "adet", 250)
	item.Set("total", 0.0)
	if err := app.Save(item); err != nil {
		t.Fatalf("failed to update item: %v", err)
	}

	data, err := BuildBOQExportData(app, project.Id, 20)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if data.Rows[0].Total != 1000 {
		t.Errorf("expected derived total 1000, got %v", data.Rows[0].Total)
	}
}
