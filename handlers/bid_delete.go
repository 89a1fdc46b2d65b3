package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleBidDelete removes a bid from a project.
func HandleBidDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		bidID := e.Request.PathValue("bidId")

		record, err := app.FindRecordById("bids", bidID)
		if err != nil || record.GetString("project") != projectID {
			return e.String(http.StatusNotFound, "Bid not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("bid_delete: delete failed for %s: %v", bidID, err)
			return e.String(http.StatusInternalServerError, "Error deleting bid")
		}

		return e.JSON(http.StatusOK, map[string]any{"deleted": bidID})
	}
}
