package services

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
)

// RecalcProjectTotal sums the line totals of every takeoff item in the
// project and stores the result on the project record. Returns the new
// total. Call after any change to the project's items.
func RecalcProjectTotal(app *pocketbase.PocketBase, projectID string) (float64, error) {
	project, err := app.FindRecordById("projects", projectID)
	if err != nil {
		return 0, fmt.Errorf("project not found: %w", err)
	}

	items, err := app.FindRecordsByFilter("takeoff_items",
		"project = {:projectId}", "", 0, 0,
		map[string]any{"projectId": projectID},
	)
	if err != nil {
		return 0, fmt.Errorf("load takeoff items: %w", err)
	}

	totals := make([]float64, 0, len(items))
	for _, item := range items {
		totals = append(totals, item.GetFloat("total"))
	}
	total := CalcProjectTotal(totals)

	project.Set("total_cost", total)
	if err := app.Save(project); err != nil {
		return 0, fmt.Errorf("save project total: %w", err)
	}
	return total, nil
}
