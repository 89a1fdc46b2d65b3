package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"metraj/testhelpers"
)

func postForm(t *testing.T, target string, form url.Values) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestHandleProjectCreate_Valid(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	form := url.Values{}
	form.Set("name", "Yeni Site")
	form.Set("client", "Demir Yapı")
	form.Set("status", "active")

	req := postForm(t, "/projects", form)
	rec := httptest.NewRecorder()

	handler := HandleProjectCreate(app)
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	records, err := app.FindAllRecords("projects")
	if err != nil {
		t.Fatalf("failed to load projects: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 project record, got %d", len(records))
	}
	if records[0].GetString("name") != "Yeni Site" {
		t.Errorf("expected name Yeni Site, got %q", records[0].GetString("name"))
	}
	if records[0].GetString("status") != "active" {
		t.Errorf("expected status active, got %q", records[0].GetString("status"))
	}
}

func TestHandleProjectCreate_DefaultsToPlanning(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	form := url.Values{}
	form.Set("name", "Plansız Proje")

	req := postForm(t, "/projects", form)
	rec := httptest.NewRecorder()

	handler := HandleProjectCreate(app)
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}

	records, err := app.FindAllRecords("projects")
	if err != nil {
		t.Fatalf("failed to load projects: %v", err)
	}
	if records[0].GetString("status") != "planning" {
		t.Errorf("expected default status planning, got %q", records[0].GetString("status"))
	}
}

func TestHandleProjectCreate_MissingName(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	form := url.Values{}
	form.Set("client", "Demir Yapı")

	req := postForm(t, "/projects", form)
	rec := httptest.NewRecorder()

	handler := HandleProjectCreate(app)
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	testhelpers.AssertBodyContains(t, rec, "Project name is required")

	records, err := app.FindAllRecords("projects")
	if err != nil {
		t.Fatalf("failed to load projects: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no project records, got %d", len(records))
	}
}

func TestHandleProjectCreate_DuplicateName(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestProject(t, app, "Mevcut Proje")

	form := url.Values{}
	form.Set("name", "Mevcut Proje")

	req := postForm(t, "/projects", form)
	rec := httptest.NewRecorder()

	handler := HandleProjectCreate(app)
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	testhelpers.AssertBodyContains(t, rec, "already exists")
}

func TestHandleProjectCreate_InvalidStatus(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	form := url.Values{}
	form.Set("name", "Durum Testi")
	form.Set("status", "archived")

	req := postForm(t, "/projects", form)
	rec := httptest.NewRecorder()

	handler := HandleProjectCreate(app)
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	testhelpers.AssertBodyContains(t, rec, "Invalid project status")
}
