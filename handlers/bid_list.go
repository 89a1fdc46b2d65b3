package handlers

import (
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleBidList lists the subcontractor bids of a project, optionally
// narrowed to one poz code or one status.
// Route: GET /projects/{projectId}/bids?code=&status=
func HandleBidList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")

		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return e.String(http.StatusNotFound, "Project not found")
		}

		filter := "project = {:project}"
		params := map[string]any{"project": projectID}

		if code := strings.TrimSpace(e.Request.URL.Query().Get("code")); code != "" {
			filter += " && code = {:code}"
			params["code"] = code
		}
		if status := strings.TrimSpace(e.Request.URL.Query().Get("status")); status != "" {
			filter += " && status = {:status}"
			params["status"] = status
		}

		bids, err := app.FindRecordsByFilter("bids", filter, "code,firm,created", 0, 0, params)
		if err != nil {
			return e.String(http.StatusInternalServerError, "Error loading bids")
		}

		out := make([]map[string]any, 0, len(bids))
		for _, bid := range bids {
			out = append(out, bidJSON(bid))
		}

		return e.JSON(http.StatusOK, map[string]any{
			"total": len(out),
			"bids":  out,
		})
	}
}

func bidJSON(bid *core.Record) map[string]any {
	return map[string]any{
		"id":           bid.Id,
		"project":      bid.GetString("project"),
		"firm":         bid.GetString("firm"),
		"takeoff_item": bid.GetString("takeoff_item"),
		"code":         bid.GetString("code"),
		"description":  bid.GetString("description"),
		"qty":          bid.GetFloat("qty"),
		"unit":         bid.GetString("unit"),
		"unit_price":   bid.GetFloat("unit_price"),
		"total":        bid.GetFloat("total"),
		"status":       bid.GetString("status"),
		"notes":        bid.GetString("notes"),
	}
}
