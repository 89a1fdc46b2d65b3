package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"metraj/services"
)

// HandleRequirementsSummary groups a project's aggregated requirements by
// material category, the way a purchasing office splits orders.
// Route: GET /projects/{projectId}/requirements/summary?mode=&factor=
func HandleRequirementsSummary(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
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
		summary := services.SummarizeByCategory(services.AggregateRequirements(reqs), idx.Categories)

		return e.JSON(http.StatusOK, map[string]any{
			"project":    project.GetString("name"),
			"waste":      policy.Label(),
			"categories": summary,
		})
	}
}
