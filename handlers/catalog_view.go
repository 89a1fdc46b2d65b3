package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"metraj/services"
)

// HandleCatalogView returns one catalog item together with the formula
// entries its work category expands to.
// Route: GET /catalog/{code}
func HandleCatalogView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		code := e.Request.PathValue("code")

		item, err := findCatalogItemByCode(app, code)
		if err != nil {
			return e.String(http.StatusInternalServerError, "Error loading catalog")
		}
		if item == nil {
			return e.String(http.StatusNotFound, "Catalog item not found")
		}

		table, err := services.LoadFormulaTable(app)
		if err != nil {
			return e.String(http.StatusInternalServerError, "Error loading formulas")
		}

		entries := table[item.GetString("category")]
		formulas := make([]map[string]any, 0, len(entries))
		for _, entry := range entries {
			formulas = append(formulas, map[string]any{
				"material":     entry.Material,
				"unit":         entry.Unit,
				"coefficient":  entry.Coefficient,
				"waste_factor": entry.WasteFactor,
			})
		}

		payload := catalogItemJSON(item)
		payload["formulas"] = formulas

		return e.JSON(http.StatusOK, payload)
	}
}
