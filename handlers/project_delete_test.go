package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"metraj/testhelpers"
)

func TestHandleProjectDelete_RemovesProjectAndItems(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Silinecek Proje")
	testhelpers.CreateTestTakeoffItem(t, app, project.Id, "Y.16.050/03", "C25 beton", "concrete", 10, "m³", 2850)
	testhelpers.CreateTestBid(t, app, project.Id, "Demir Yapı", 15000)

	req := httptest.NewRequest(http.MethodDelete, "/projects/"+project.Id, nil)
	req.SetPathValue("id", project.Id)
	rec := httptest.NewRecorder()

	handler := HandleProjectDelete(app)
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if _, err := app.FindRecordById("projects", project.Id); err == nil {
		t.Error("expected project to be deleted")
	}

	items, err := app.FindAllRecords("takeoff_items")
	if err != nil {
		t.Fatalf("failed to load takeoff items: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected takeoff items to cascade, got %d remaining", len(items))
	}

	bids, err := app.FindAllRecords("bids")
	if err != nil {
		t.Fatalf("failed to load bids: %v", err)
	}
	if len(bids) != 0 {
		t.Errorf("expected bids to cascade, got %d remaining", len(bids))
	}
}

func TestHandleProjectDelete_ClearsActiveCookie(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Aktif Silinen")

	req := httptest.NewRequest(http.MethodDelete, "/projects/"+project.Id, nil)
	req.SetPathValue("id", project.Id)
	req.AddCookie(&http.Cookie{Name: "active_project", Value: project.Id})
	rec := httptest.NewRecorder()

	handler := HandleProjectDelete(app)
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "active_project" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("expected active_project cookie to be cleared")
	}
}

func TestHandleProjectDelete_OtherActiveCookieKept(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Silinen")
	other := testhelpers.CreateTestProject(t, app, "Diğer")

	req := httptest.NewRequest(http.MethodDelete, "/projects/"+project.Id, nil)
	req.SetPathValue("id", project.Id)
	req.AddCookie(&http.Cookie{Name: "active_project", Value: other.Id})
	rec := httptest.NewRecorder()

	handler := HandleProjectDelete(app)
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	for _, c := range rec.Result().Cookies() {
		if c.Name == "active_project" {
			t.Error("expected cookie for another project to be left alone")
		}
	}
}

func TestHandleProjectDelete_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodDelete, "/projects/missing", nil)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()

	handler := HandleProjectDelete(app)
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}
