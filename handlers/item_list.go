package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleItemList returns a project's takeoff items in sheet order.
func HandleItemList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")

		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return e.String(http.StatusNotFound, "Project not found")
		}

		records, err := app.FindRecordsByFilter(
			"takeoff_items",
			"project = {:project}",
			"sort_order,created",
			0,
			0,
			map[string]any{"project": projectID},
		)
		if err != nil {
			return e.String(http.StatusInternalServerError, "Error loading takeoff items")
		}

		items := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			items = append(items, takeoffItemJSON(rec))
		}

		return e.JSON(http.StatusOK, map[string]any{
			"total": len(items),
			"items": items,
		})
	}
}

func takeoffItemJSON(rec *core.Record) map[string]any {
	return map[string]any{
		"id":          rec.Id,
		"project":     rec.GetString("project"),
		"code":        rec.GetString("code"),
		"description": rec.GetString("description"),
		"category":    rec.GetString("category"),
		"qty":         rec.GetFloat("qty"),
		"unit":        rec.GetString("unit"),
		"unit_price":  rec.GetFloat("unit_price"),
		"total":       rec.GetFloat("total"),
		"notes":       rec.GetString("notes"),
		"sort_order":  rec.GetFloat("sort_order"),
	}
}
