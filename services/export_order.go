package services

import (
	"fmt"
	"strings"
)

const orderRule = "================================================"

// GenerateOrderText renders the aggregated material list as a plain-text
// order sheet for suppliers, the kind that gets pasted into an email or
// printed for the yard.
func GenerateOrderText(data MaterialExportData) []byte {
	var b strings.Builder

	b.WriteString("MATERIAL ORDER LIST\n")
	b.WriteString(orderRule + "\n")
	b.WriteString(fmt.Sprintf("Project : %s\n", data.ProjectName))
	b.WriteString(fmt.Sprintf("Date    : %s\n", data.GeneratedAt))
	b.WriteString(fmt.Sprintf("Waste   : %s\n", data.WasteNote))
	b.WriteString(orderRule + "\n\n")

	for _, r := range data.Rows {
		b.WriteString(fmt.Sprintf("%3d. %s\n", r.Index, r.Material))
		b.WriteString(fmt.Sprintf("     Quantity : %s %s\n", formatQty(r.Qty), r.Unit))
		if r.Cost > 0 {
			b.WriteString(fmt.Sprintf("     Est. cost: %s\n", FormatTRY(r.Cost)))
		}
		if r.Sources != "" {
			b.WriteString(fmt.Sprintf("     For items: %s\n", r.Sources))
		}
		b.WriteString("\n")
	}

	b.WriteString(orderRule + "\n")
	b.WriteString(fmt.Sprintf("Total: %d materials", data.MaterialCount))
	if data.TotalCost > 0 {
		b.WriteString(fmt.Sprintf(", estimated %s", FormatTRY(data.TotalCost)))
	}
	b.WriteString("\n")

	return []byte(b.String())
}
