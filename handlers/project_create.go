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

// HandleProjectCreate creates a project from form data.
func HandleProjectCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		name := strings.TrimSpace(e.Request.FormValue("name"))
		client := strings.TrimSpace(e.Request.FormValue("client"))
		description := strings.TrimSpace(e.Request.FormValue("description"))
		status := strings.TrimSpace(e.Request.FormValue("status"))
		if status == "" {
			status = "planning"
		}

		errors := make(map[string]string)
		if name == "" {
			errors["name"] = "Project name is required"
		}
		if !slices.Contains(services.ProjectStatuses, status) {
			errors["status"] = "Invalid project status"
		}

		if name != "" {
			existing, err := app.FindRecordsByFilter(
				"projects",
				"name = {:name}",
				"",
				1,
				0,
				map[string]any{"name": name},
			)
			if err != nil {
				log.Printf("project_create: duplicate check failed: %v", err)
				return e.String(http.StatusInternalServerError, "Error checking project name")
			}
			if len(existing) > 0 {
				errors["name"] = "A project with this name already exists"
			}
		}

		if len(errors) > 0 {
			return e.JSON(http.StatusBadRequest, map[string]any{"errors": errors})
		}

		collection, err := app.FindCollectionByNameOrId("projects")
		if err != nil {
			return e.String(http.StatusInternalServerError, "Projects collection not found")
		}

		record := core.NewRecord(collection)
		record.Set("name", name)
		record.Set("client", client)
		record.Set("description", description)
		record.Set("status", status)
		record.Set("total_cost", 0.0)

		if err := app.Save(record); err != nil {
			log.Printf("project_create: save failed: %v", err)
			return e.String(http.StatusInternalServerError, "Error saving project")
		}

		return e.JSON(http.StatusCreated, projectJSON(record, 0))
	}
}
