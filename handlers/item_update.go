package handlers

import (
	"log"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"metraj/services"
)

// HandleItemUpdate updates individual fields on a takeoff item and re-derives
// the line and project totals.
func HandleItemUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		itemID := e.Request.PathValue("itemId")

		record, err := app.FindRecordById("takeoff_items", itemID)
		if err != nil || record.GetString("project") != projectID {
			return e.String(http.StatusNotFound, "Takeoff item not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		errors := make(map[string]string)
		updated := false
		for key, values := range e.Request.Form {
			if len(values) == 0 {
				continue
			}
			val := strings.TrimSpace(values[0])
			switch key {
			case "code":
				record.Set("code", val)
				updated = true
			case "description":
				if val == "" {
					errors["description"] = "Description is required"
				} else {
					record.Set("description", val)
					updated = true
				}
			case "category":
				if val != "" && !slices.Contains(services.CategoryOptions, val) {
					errors["category"] = "Unknown work category"
				} else {
					record.Set("category", val)
					updated = true
				}
			case "qty":
				f, err := strconv.ParseFloat(val, 64)
				if err != nil || f <= 0 {
					errors["qty"] = "Quantity must be greater than zero"
				} else {
					record.Set("qty", f)
					updated = true
				}
			case "unit":
				if val == "" {
					errors["unit"] = "Unit is required"
				} else {
					record.Set("unit", val)
					updated = true
				}
			case "unit_price":
				f, err := strconv.ParseFloat(val, 64)
				if err != nil || f < 0 {
					errors["unit_price"] = "Unit price cannot be negative"
				} else {
					record.Set("unit_price", f)
					updated = true
				}
			case "notes":
				record.Set("notes", val)
				updated = true
			case "sort_order":
				if f, err := strconv.ParseFloat(val, 64); err == nil {
					record.Set("sort_order", f)
					updated = true
				}
			}
		}

		if len(errors) > 0 {
			return e.JSON(http.StatusBadRequest, map[string]any{"errors": errors})
		}

		if updated {
			record.Set("total", services.CalcLineTotal(record.GetFloat("qty"), record.GetFloat("unit_price")))
			if err := app.Save(record); err != nil {
				log.Printf("item_update: save failed for %s: %v", itemID, err)
				return e.String(http.StatusInternalServerError, "Error saving takeoff item")
			}

			if _, err := services.RecalcProjectTotal(app, record.GetString("project")); err != nil {
				log.Printf("item_update: recalc project total: %v", err)
			}
		}

		return e.JSON(http.StatusOK, takeoffItemJSON(record))
	}
}
