package handlers

import (
	"log"
	"net/http"
	"slices"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"metraj/services"
)

// HandleProjectEdit updates a project. Only fields present in the form are
// touched so partial updates leave the rest alone.
func HandleProjectEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")

		record, err := app.FindRecordById("projects", projectID)
		if err != nil {
			return e.String(http.StatusNotFound, "Project not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		errors := make(map[string]string)

		if _, ok := e.Request.Form["name"]; ok {
			name := strings.TrimSpace(e.Request.FormValue("name"))
			if name == "" {
				errors["name"] = "Project name is required"
			} else {
				existing, err := app.FindRecordsByFilter(
					"projects",
					"name = {:name} && id != {:id}",
					"",
					1,
					0,
					map[string]any{"name": name, "id": projectID},
				)
				if err != nil {
					log.Printf("project_edit: duplicate check failed: %v", err)
					return e.String(http.StatusInternalServerError, "Error checking project name")
				}
				if len(existing) > 0 {
					errors["name"] = "A project with this name already exists"
				} else {
					record.Set("name", name)
				}
			}
		}

		if _, ok := e.Request.Form["client"]; ok {
			record.Set("client", strings.TrimSpace(e.Request.FormValue("client")))
		}
		if _, ok := e.Request.Form["description"]; ok {
			record.Set("description", strings.TrimSpace(e.Request.FormValue("description")))
		}
		if _, ok := e.Request.Form["status"]; ok {
			status := strings.TrimSpace(e.Request.FormValue("status"))
			if !slices.Contains(services.ProjectStatuses, status) {
				errors["status"] = "Invalid project status"
			} else {
				record.Set("status", status)
			}
		}

		if len(errors) > 0 {
			return e.JSON(http.StatusBadRequest, map[string]any{"errors": errors})
		}

		if err := app.Save(record); err != nil {
			log.Printf("project_edit: save failed: %v", err)
			return e.String(http.StatusInternalServerError, "Error saving project")
		}

		count, err := countTakeoffItems(app, record.Id)
		if err != nil {
			return e.String(http.StatusInternalServerError, "Error counting items")
		}

		return e.JSON(http.StatusOK, projectJSON(record, count))
	}
}
