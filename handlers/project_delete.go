package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleProjectDelete removes a project. Takeoff items and bids cascade via
// their relation fields. The active project cookie is cleared when it pointed
// at the deleted project.
func HandleProjectDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")

		record, err := app.FindRecordById("projects", projectID)
		if err != nil {
			return e.String(http.StatusNotFound, "Project not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("project_delete: delete failed: %v", err)
			return e.String(http.StatusInternalServerError, "Error deleting project")
		}

		if cookie, err := e.Request.Cookie("active_project"); err == nil && cookie.Value == projectID {
			http.SetCookie(e.Response, &http.Cookie{
				Name:   "active_project",
				Value:  "",
				Path:   "/",
				MaxAge: -1,
			})
		}

		return e.JSON(http.StatusOK, map[string]any{"deleted": projectID})
	}
}
