package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleProjectList returns all projects, newest first, with optional
// status and search filters.
func HandleProjectList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		status := e.Request.URL.Query().Get("status")
		search := e.Request.URL.Query().Get("q")

		filter := "id != ''"
		params := map[string]any{}
		if status != "" {
			filter += " && status = {:status}"
			params["status"] = status
		}
		if search != "" {
			filter += " && (name ~ {:search} || client ~ {:search})"
			params["search"] = search
		}

		projects, err := app.FindRecordsByFilter("projects", filter, "-created", 0, 0, params)
		if err != nil {
			return e.String(http.StatusInternalServerError, "Error loading projects")
		}

		items := make([]map[string]any, 0, len(projects))
		for _, project := range projects {
			count, err := countTakeoffItems(app, project.Id)
			if err != nil {
				return e.String(http.StatusInternalServerError, "Error counting items")
			}
			items = append(items, projectJSON(project, count))
		}

		return e.JSON(http.StatusOK, map[string]any{
			"total":    len(items),
			"projects": items,
		})
	}
}

func countTakeoffItems(app *pocketbase.PocketBase, projectID string) (int, error) {
	records, err := app.FindRecordsByFilter(
		"takeoff_items",
		"project = {:project}",
		"",
		0,
		0,
		map[string]any{"project": projectID},
	)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func projectJSON(project *core.Record, itemCount int) map[string]any {
	createdDate := ""
	if dt := project.GetDateTime("created"); !dt.IsZero() {
		createdDate = dt.Time().Format("02 Jan 2006")
	}

	return map[string]any{
		"id":          project.Id,
		"name":        project.GetString("name"),
		"client":      project.GetString("client"),
		"description": project.GetString("description"),
		"status":      project.GetString("status"),
		"total_cost":  project.GetFloat("total_cost"),
		"item_count":  itemCount,
		"created":     createdDate,
	}
}
