package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"metraj/services"
)

// HandleCatalogRequirements computes the material requirements for a given
// quantity of one catalog item, what-if style, without touching any project.
// Route: GET /catalog/{code}/requirements?qty=&mode=&factor=
func HandleCatalogRequirements(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		code := e.Request.PathValue("code")

		item, err := findCatalogItemByCode(app, code)
		if err != nil {
			return e.String(http.StatusInternalServerError, "Error loading catalog")
		}
		if item == nil {
			return e.String(http.StatusNotFound, "Catalog item not found")
		}

		rawQty := strings.TrimSpace(e.Request.URL.Query().Get("qty"))
		if rawQty == "" {
			return e.String(http.StatusBadRequest, "qty parameter is required")
		}
		qty, err := strconv.ParseFloat(rawQty, 64)
		if err != nil || qty <= 0 {
			return e.String(http.StatusBadRequest, "qty must be a number greater than zero")
		}

		policy, err := parseWastePolicy(e)
		if err != nil {
			return e.String(http.StatusBadRequest, err.Error())
		}

		table, err := services.LoadFormulaTable(app)
		if err != nil {
			return e.String(http.StatusInternalServerError, "Error loading formulas")
		}

		workItem := services.WorkItem{
			Code:        item.GetString("code"),
			Description: item.GetString("description"),
			Category:    item.GetString("category"),
			Unit:        item.GetString("unit"),
			Qty:         qty,
		}

		reqs, err := services.ComputeRequirements(workItem, table, policy)
		if err != nil {
			return e.String(http.StatusBadRequest, err.Error())
		}

		return e.JSON(http.StatusOK, map[string]any{
			"code":         workItem.Code,
			"description":  workItem.Description,
			"category":     workItem.Category,
			"qty":          workItem.Qty,
			"unit":         workItem.Unit,
			"waste":        policy.Label(),
			"requirements": reqs,
		})
	}
}
