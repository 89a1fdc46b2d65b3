package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"metraj/services"
)

// HandleItemDelete removes a takeoff item and refreshes the project total.
func HandleItemDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		itemID := e.Request.PathValue("itemId")

		record, err := app.FindRecordById("takeoff_items", itemID)
		if err != nil || record.GetString("project") != projectID {
			return e.String(http.StatusNotFound, "Takeoff item not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("item_delete: delete failed for %s: %v", itemID, err)
			return e.String(http.StatusInternalServerError, "Error deleting takeoff item")
		}

		if _, err := services.RecalcProjectTotal(app, projectID); err != nil {
			log.Printf("item_delete: recalc project total: %v", err)
		}

		return e.JSON(http.StatusOK, map[string]any{"deleted": itemID})
	}
}
