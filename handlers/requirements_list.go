package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"metraj/services"
)

// HandleRequirementsList computes the aggregated, costed material list for a
// project under the requested waste policy.
// Route: GET /projects/{projectId}/requirements?mode=&factor=
func HandleRequirementsList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")

		project, err := app.FindRecordById("projects", projectID)
		if err != nil {
			return e.String(http.StatusNotFound, "Project not found")
		}

		policy, err := parseWastePolicy(e)
		if err != nil {
			return e.String(http.StatusBadRequest, err.Error())
		}

		items, err := services.LoadWorkItems(app, projectID)
		if err != nil {
			return e.String(http.StatusInternalServerError, "Error loading takeoff items")
		}
		table, err := services.LoadFormulaTable(app)
		if err != nil {
			return e.String(http.StatusInternalServerError, "Error loading formulas")
		}
		idx, err := services.LoadMaterialIndex(app)
		if err != nil {
			return e.String(http.StatusInternalServerError, "Error loading materials")
		}

		reqs, err := services.ComputeProjectRequirements(items, table, policy)
		if err != nil {
			return e.String(http.StatusBadRequest, err.Error())
		}
		costed, total := services.CostRequirements(services.AggregateRequirements(reqs), idx.Prices)

		return e.JSON(http.StatusOK, map[string]any{
			"project":    project.GetString("name"),
			"waste":      policy.Label(),
			"item_count": len(items),
			"materials":  costed,
			"total_cost": total,
		})
	}
}
