package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"metraj/testhelpers"
)

func TestHandleRequirementsList_AggregatesAcrossItems(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Konut Projesi")
	cement := testhelpers.CreateTestMaterial(t, app, "Çimento", "kg", 4.25)
	testhelpers.CreateTestFormula(t, app, "concrete", cement.Id, 300, "kg", 0.03, 10)
	testhelpers.CreateTestTakeoffItem(t, app, project.Id, "Y.16.050/03", "Temel betonu", "concrete", 10, "m³", 2850)
	testhelpers.CreateTestTakeoffItem(t, app, project.Id, "Y.16.050/04", "Perde betonu", "concrete", 5, "m³", 2950)

	req := httptest.NewRequest(http.MethodGet, "/projects/"+project.Id+"/requirements", nil)
	req.SetPathValue("projectId", project.Id)
	rec := httptest.NewRecorder()

	handler := HandleRequirementsList(app)
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Project   string `json:"project"`
		Waste     string `json:"waste"`
		ItemCount int    `json:"item_count"`
		Materials []struct {
			Material  string  `json:"material"`
			Unit      string  `json:"unit"`
			BaseQty   float64 `json:"base_qty"`
			Qty       float64 `json:"qty"`
			Sources   int     `json:"sources"`
			UnitPrice float64 `json:"unit_price"`
			Cost      float64 `json:"cost"`
		} `json:"materials"`
		TotalCost float64 `json:"total_cost"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if body.ItemCount != 2 {
		t.Errorf("expected item_count 2, got %d", body.ItemCount)
	}
	if body.Waste != "automatic waste (per material)" {
		t.Errorf("unexpected waste label: %q", body.Waste)
	}
	if len(body.Materials) != 1 {
		t.Fatalf("expected 1 aggregated material, got %d", len(body.Materials))
	}
	m := body.Materials[0]
	if m.Material != "Çimento" {
		t.Errorf("expected material Çimento, got %q", m.Material)
	}
	// 10 m³ and 5 m³ at 300 kg/m³: base 4500 kg, 3% waste on each item.
	if m.BaseQty != 4500 {
		t.Errorf("expected base 4500, got %v", m.BaseQty)
	}
	if m.Qty != 4635 {
		t.Errorf("expected adjusted 4635, got %v", m.Qty)
	}
	if m.Sources != 2 {
		t.Errorf("expected 2 sources, got %d", m.Sources)
	}
	if m.UnitPrice != 4.25 {
		t.Errorf("expected unit price 4.25, got %v", m.UnitPrice)
	}
	if m.Cost != 19698.75 {
		t.Errorf("expected cost 19698.75, got %v", m.Cost)
	}
	if body.TotalCost != 19698.75 {
		t.Errorf("expected total 19698.75, got %v", body.TotalCost)
	}
}

func TestHandleRequirementsList_ManualOverride(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Konut Projesi")
	cement := testhelpers.CreateTestMaterial(t, app, "Çimento", "kg", 4.25)
	testhelpers.CreateTestFormula(t, app, "concrete", cement.Id, 300, "kg", 0.03, 10)
	testhelpers.CreateTestTakeoffItem(t, app, project.Id, "Y.16.050/03", "Temel betonu", "concrete", 10, "m³", 2850)
	testhelpers.CreateTestTakeoffItem(t, app, project.Id, "Y.16.050/04", "Perde betonu", "concrete", 5, "m³", 2950)

	req := httptest.NewRequest(http.MethodGet,
		"/projects/"+project.Id+"/requirements?mode=manual&factor=0.10", nil)
	req.SetPathValue("projectId", project.Id)
	rec := httptest.NewRecorder()

	handler := HandleRequirementsList(app)
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Waste     string `json:"waste"`
		Materials []struct {
			Qty float64 `json:"qty"`
		} `json:"materials"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Waste != "manual waste 10.0%" {
		t.Errorf("unexpected waste label: %q", body.Waste)
	}
	if len(body.Materials) != 1 || body.Materials[0].Qty != 4950 {
		t.Errorf("expected 4950 with uniform 10%% override, got %+v", body.Materials)
	}
}

func TestHandleRequirementsList_SkipsUncategorizedItems(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Konut Projesi")
	cement := testhelpers.CreateTestMaterial(t, app, "Çimento", "kg", 4.25)
	testhelpers.CreateTestFormula(t, app, "concrete", cement.Id, 300, "kg", 0.03, 10)
	testhelpers.CreateTestTakeoffItem(t, app, project.Id, "Y.16.050/03", "Temel betonu", "concrete", 10, "m³", 2850)
	testhelpers.CreateTestTakeoffItem(t, app, project.Id, "", "Nakliye", "", 1, "ton", 1200)

	req := httptest.NewRequest(http.MethodGet, "/projects/"+project.Id+"/requirements", nil)
	req.SetPathValue("projectId", project.Id)
	rec := httptest.NewRecorder()

	handler := HandleRequirementsList(app)
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	var body struct {
		ItemCount int `json:"item_count"`
		Materials []struct {
			Qty float64 `json:"qty"`
		} `json:"materials"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.ItemCount != 2 {
		t.Errorf("expected item_count 2, got %d", body.ItemCount)
	}
	if len(body.Materials) != 1 || body.Materials[0].Qty != 3090 {
		t.Errorf("expected only the categorized item to contribute, got %+v", body.Materials)
	}
}

func TestHandleRequirementsList_ManualWithoutFactor(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Konut Projesi")

	req := httptest.NewRequest(http.MethodGet, "/projects/"+project.Id+"/requirements?mode=manual", nil)
	req.SetPathValue("projectId", project.Id)
	rec := httptest.NewRecorder()

	handler := HandleRequirementsList(app)
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestHandleRequirementsList_ProjectNotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/projects/missing/requirements", nil)
	req.SetPathValue("projectId", "missing")
	rec := httptest.NewRecorder()

	handler := HandleRequirementsList(app)
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}
