package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleCatalogList returns the poz catalog sorted by code, optionally
// filtered by a search term over code and description.
func HandleCatalogList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		search := e.Request.URL.Query().Get("q")

		filter := "id != ''"
		params := map[string]any{}
		if search != "" {
			filter = "code ~ {:search} || description ~ {:search}"
			params["search"] = search
		}

		records, err := app.FindRecordsByFilter("catalog_items", filter, "code", 0, 0, params)
		if err != nil {
			return e.String(http.StatusInternalServerError, "Error loading catalog")
		}

		items := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			items = append(items, catalogItemJSON(rec))
		}

		return e.JSON(http.StatusOK, map[string]any{
			"total": len(items),
			"items": items,
		})
	}
}

func catalogItemJSON(rec *core.Record) map[string]any {
	return map[string]any{
		"id":          rec.Id,
		"code":        rec.GetString("code"),
		"description": rec.GetString("description"),
		"unit":        rec.GetString("unit"),
		"unit_price":  rec.GetFloat("unit_price"),
		"category":    rec.GetString("category"),
		"notes":       rec.GetString("notes"),
	}
}

// findCatalogItemByCode resolves a poz code to its catalog record. Codes
// carry slashes (Y.16.050/03) so they arrive URL-encoded in path segments.
func findCatalogItemByCode(app *pocketbase.PocketBase, code string) (*core.Record, error) {
	records, err := app.FindRecordsByFilter(
		"catalog_items",
		"code = {:code}",
		"",
		1,
		0,
		map[string]any{"code": code},
	)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}
