package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"metraj/testhelpers"
)

func TestHandleItemUpdate_RederivesTotals(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Güncelleme Projesi")
	item := testhelpers.CreateTestTakeoffItem(t, app, project.Id, "Y.16.050/03", "C25 beton", "concrete", 10, "m³", 2850)

	form := url.Values{}
	form.Set("qty", "20")

	req := patchForm(t, "/projects/"+project.Id+"/items/"+item.Id, form)
	req.SetPathValue("projectId", project.Id)
	req.SetPathValue("itemId", item.Id)
	rec := httptest.NewRecorder()

	handler := HandleItemUpdate(app)
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	updated, err := app.FindRecordById("takeoff_items", item.Id)
	if err != nil {
		t.Fatalf("failed to reload item: %v", err)
	}
	if updated.GetFloat("qty") != 20 {
		t.Errorf("expected qty 20, got %v", updated.GetFloat("qty"))
	}
	if updated.GetFloat("total") != 20*2850 {
		t.Errorf("expected total %v, got %v", 20*2850, updated.GetFloat("total"))
	}

	reloaded, err := app.FindRecordById("projects", project.Id)
	if err != nil {
		t.Fatalf("failed to reload project: %v", err)
	}
	if reloaded.GetFloat("total_cost") != 20*2850 {
		t.Errorf("expected project total %v, got %v", 20*2850, reloaded.GetFloat("total_cost"))
	}
}

func TestHandleItemUpdate_PartialLeavesRest(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Kısmi Güncelleme")
	item := testhelpers.CreateTestTakeoffItem(t, app, project.Id, "Y.16.050/03", "C25 beton", "concrete", 10, "m³", 2850)

	form := url.Values{}
	form.Set("notes", "İkinci kat dökümü")

	req := patchForm(t, "/projects/"+project.Id+"/items/"+item.Id, form)
	req.SetPathValue("projectId", project.Id)
	req.SetPathValue("itemId", item.Id)
	rec := httptest.NewRecorder()

	handler := HandleItemUpdate(app)
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	updated, err := app.FindRecordById("takeoff_items", item.Id)
	if err != nil {
		t.Fatalf("failed to reload item: %v", err)
	}
	if updated.GetString("notes") != "İkinci kat dökümü" {
		t.Errorf("expected notes updated, got %q", updated.GetString("notes"))
	}
	if updated.GetFloat("qty") != 10 {
		t.Errorf("expected qty unchanged, got %v", updated.GetFloat("qty"))
	}
	if updated.GetString("description") != "C25 beton" {
		t.Errorf("expected description unchanged, got %q", updated.GetString("description"))
	}
}

func TestHandleItemUpdate_RejectsZeroQty(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Sıfır Reddi")
	item := testhelpers.CreateTestTakeoffItem(t, app, project.Id, "", "Kalem", "other", 5, "adet", 100)

	form := url.Values{}
	form.Set("qty", "0")

	req := patchForm(t, "/projects/"+project.Id+"/items/"+item.Id, form)
	req.SetPathValue("projectId", project.Id)
	req.SetPathValue("itemId", item.Id)
	rec := httptest.NewRecorder()

	handler := HandleItemUpdate(app)
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	updated, err := app.FindRecordById("takeoff_items", item.Id)
	if err != nil {
		t.Fatalf("failed to reload item: %v", err)
	}
	if updated.GetFloat("qty") != 5 {
		t.Errorf("expected qty unchanged after rejection, got %v", updated.GetFloat("qty"))
	}
}

func TestHandleItemUpdate_WrongProject(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Sahibi")
	other := testhelpers.CreateTestProject(t, app, "Başkası")
	item := testhelpers.CreateTestTakeoffItem(t, app, project.Id, "", "Kalem", "other", 5, "adet", 100)

	form := url.Values{}
	form.Set("qty", "9")

	req := patchForm(t, "/projects/"+other.Id+"/items/"+item.Id, form)
	req.SetPathValue("projectId", other.Id)
	req.SetPathValue("itemId", item.Id)
	rec := httptest.NewRecorder()

	handler := HandleItemUpdate(app)
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for another project's item, got %d", rec.Code)
	}

	updated, err := app.FindRecordById("takeoff_items", item.Id)
	if err != nil {
		t.Fatalf("failed to reload item: %v", err)
	}
	if updated.GetFloat("qty") != 5 {
		t.Errorf("expected qty unchanged, got %v", updated.GetFloat("qty"))
	}
}

func TestHandleItemUpdate_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Boş Proje")

	form := url.Values{}
	form.Set("qty", "1")

	req := patchForm(t, "/projects/"+project.Id+"/items/missing", form)
	req.SetPathValue("projectId", project.Id)
	req.SetPathValue("itemId", "missing")
	rec := httptest.NewRecorder()

	handler := HandleItemUpdate(app)
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}
