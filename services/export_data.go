package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
)

// MaterialExportRow is one aggregated material line on a printed list.
type MaterialExportRow struct {
	Index     int
	Material  string
	Qty       float64
	Unit      string
	UnitPrice float64
	Cost      float64
	Sources   string
}

// MaterialExportData holds everything the material list generators print.
// The company block is filled from the application config by the caller.
type MaterialExportData struct {
	ProjectName    string
	GeneratedAt    string
	WasteNote      string
	CompanyName    string
	CompanyAddress string
	CompanyPhone   string
	CompanyEmail   string
	Rows           []MaterialExportRow
	TotalCost      float64
	MaterialCount  int
}

// LoadWorkItems reads a project's takeoff items as calculator work items,
// in takeoff sheet order.
func LoadWorkItems(app *pocketbase.PocketBase, projectID string) ([]WorkItem, error) {
	records, err := app.FindRecordsByFilter(
		"takeoff_items",
		"project = {:projectId}",
		"sort_order,created", 0, 0,
		map[string]any{"projectId": projectID},
	)
	if err != nil {
		return nil, fmt.Errorf("query takeoff items: %w", err)
	}

	items := make([]WorkItem, 0, len(records))
	for _, rec := range records {
		items = append(items, WorkItem{
			Code:        rec.GetString("code"),
			Description: rec.GetString("description"),
			Category:    rec.GetString("category"),
			Unit:        rec.GetString("unit"),
			Qty:         rec.GetFloat("qty"),
		})
	}
	return items, nil
}

// BuildMaterialExportData assembles the aggregated material list for a
// project under the given waste policy.
func BuildMaterialExportData(app *pocketbase.PocketBase, projectID string, policy WastePolicy) (*MaterialExportData, error) {
	project, err := app.FindRecordById("projects", projectID)
	if err != nil {
		return nil, fmt.Errorf("project %s not found: %w", projectID, err)
	}

	items, err := LoadWorkItems(app, projectID)
	if err != nil {
		return nil, err
	}
	table, err := LoadFormulaTable(app)
	if err != nil {
		return nil, err
	}
	idx, err := LoadMaterialIndex(app)
	if err != nil {
		return nil, err
	}

	reqs, err := ComputeProjectRequirements(items, table, policy)
	if err != nil {
		return nil, err
	}
	costed, total := CostRequirements(AggregateRequirements(reqs), idx.Prices)

	data := &MaterialExportData{
		ProjectName:   project.GetString("name"),
		GeneratedAt:   time.Now().Format("02.01.2006 15:04"),
		WasteNote:     policy.Label(),
		TotalCost:     total,
		MaterialCount: len(costed),
	}
	for i, r := range costed {
		data.Rows = append(data.Rows, MaterialExportRow{
			Index:     i + 1,
			Material:  r.Material,
			Qty:       r.Qty,
			Unit:      r.Unit,
			UnitPrice: r.UnitPrice,
			Cost:      r.Cost,
			Sources:   strings.Join(r.Codes, ", "),
		})
	}
	return data, nil
}

// BOQExportRow is one takeoff line on the bill of quantities.
type BOQExportRow struct {
	Index       int
	Code        string
	Description string
	Category    string
	Qty         float64
	Unit        string
	UnitPrice   float64
	Total       float64
}

// BOQExportData holds the bill of quantities document with its VAT totals.
type BOQExportData struct {
	ProjectName    string
	ClientName     string
	GeneratedAt    string
	CompanyName    string
	CompanyAddress string
	CompanyPhone   string
	CompanyEmail   string
	Rows           []BOQExportRow
	Totals         VATBreakdown
}

// BuildBOQExportData assembles a project's takeoff lines and VAT totals.
// Lines without a stored total fall back to qty times unit price.
func BuildBOQExportData(app *pocketbase.PocketBase, projectID string, vatRate float64) (*BOQExportData, error) {
	project, err := app.FindRecordById("projects", projectID)
	if err != nil {
		return nil, fmt.Errorf("project %s not found: %w", projectID, err)
	}

	records, err := app.FindRecordsByFilter(
		"takeoff_items",
		"project = {:projectId}",
		"sort_order,created", 0, 0,
		map[string]any{"projectId": projectID},
	)
	if err != nil {
		return nil, fmt.Errorf("query takeoff items: %w", err)
	}

	data := &BOQExportData{
		ProjectName: project.GetString("name"),
		ClientName:  project.GetString("client"),
		GeneratedAt: time.Now().Format("02.01.2006"),
	}

	lineTotals := make([]float64, 0, len(records))
	for i, rec := range records {
		total := rec.GetFloat("total")
		if total == 0 {
			total = CalcLineTotal(rec.GetFloat("qty"), rec.GetFloat("unit_price"))
		}
		lineTotals = append(lineTotals, total)
		data.Rows = append(data.Rows, BOQExportRow{
			Index:       i + 1,
			Code:        rec.GetString("code"),
			Description: rec.GetString("description"),
			Category:    rec.GetString("category"),
			Qty:         rec.GetFloat("qty"),
			Unit:        rec.GetString("unit"),
			UnitPrice:   rec.GetFloat("unit_price"),
			Total:       total,
		})
	}

	data.Totals = CalcWithVAT(CalcProjectTotal(lineTotals), vatRate)
	return data, nil
}
