package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleProjectView returns a single project with its item and bid counts.
func HandleProjectView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")

		record, err := app.FindRecordById("projects", projectID)
		if err != nil {
			return e.String(http.StatusNotFound, "Project not found")
		}

		itemCount, err := countTakeoffItems(app, record.Id)
		if err != nil {
			return e.String(http.StatusInternalServerError, "Error counting items")
		}

		bids, err := app.FindRecordsByFilter(
			"bids",
			"project = {:project}",
			"",
			0,
			0,
			map[string]any{"project": record.Id},
		)
		if err != nil {
			return e.String(http.StatusInternalServerError, "Error counting bids")
		}

		payload := projectJSON(record, itemCount)
		payload["bid_count"] = len(bids)

		return e.JSON(http.StatusOK, payload)
	}
}
