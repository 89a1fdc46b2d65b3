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

// HandleItemCreate adds a takeoff item to a project. A known poz code fills
// description, unit, category and unit price from the catalog; blanks in the
// form win only when the catalog has nothing for them.
func HandleItemCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")

		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return e.String(http.StatusNotFound, "Project not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		code := strings.TrimSpace(e.Request.FormValue("code"))
		description := strings.TrimSpace(e.Request.FormValue("description"))
		category := strings.TrimSpace(e.Request.FormValue("category"))
		unit := strings.TrimSpace(e.Request.FormValue("unit"))
		notes := strings.TrimSpace(e.Request.FormValue("notes"))

		var catItem *core.Record
		if code != "" {
			matches, err := app.FindRecordsByFilter(
				"catalog_items",
				"code = {:code}",
				"",
				1,
				0,
				map[string]any{"code": code},
			)
			if err == nil && len(matches) > 0 {
				catItem = matches[0]
			}
		}
		if catItem != nil {
			if description == "" {
				description = catItem.GetString("description")
			}
			if unit == "" {
				unit = catItem.GetString("unit")
			}
			if category == "" {
				category = catItem.GetString("category")
			}
		}

		errors := make(map[string]string)
		if description == "" {
			errors["description"] = "Description is required"
		}
		if unit == "" {
			errors["unit"] = "Unit is required"
		}
		if category != "" && !slices.Contains(services.CategoryOptions, category) {
			errors["category"] = "Unknown work category"
		}

		qty := 0.0
		if raw := strings.TrimSpace(e.Request.FormValue("qty")); raw == "" {
			errors["qty"] = "Quantity is required"
		} else {
			parsed, err := strconv.ParseFloat(raw, 64)
			switch {
			case err != nil:
				errors["qty"] = "Quantity must be a number"
			case parsed <= 0:
				errors["qty"] = "Quantity must be greater than zero"
			default:
				qty = parsed
			}
		}

		unitPrice := 0.0
		if raw := strings.TrimSpace(e.Request.FormValue("unit_price")); raw != "" {
			parsed, err := strconv.ParseFloat(raw, 64)
			switch {
			case err != nil:
				errors["unit_price"] = "Unit price must be a number"
			case parsed < 0:
				errors["unit_price"] = "Unit price cannot be negative"
			default:
				unitPrice = parsed
			}
		} else if catItem != nil {
			unitPrice = catItem.GetFloat("unit_price")
		}

		if len(errors) > 0 {
			return e.JSON(http.StatusBadRequest, map[string]any{"errors": errors})
		}

		collection, err := app.FindCollectionByNameOrId("takeoff_items")
		if err != nil {
			return e.String(http.StatusInternalServerError, "Takeoff items collection not found")
		}

		sortOrder, err := services.NextTakeoffSortOrder(app, projectID)
		if err != nil {
			return e.String(http.StatusInternalServerError, "Error determining sort order")
		}

		record := core.NewRecord(collection)
		record.Set("project", projectID)
		record.Set("code", code)
		record.Set("description", description)
		record.Set("category", category)
		record.Set("qty", qty)
		record.Set("unit", unit)
		record.Set("unit_price", unitPrice)
		record.Set("total", services.CalcLineTotal(qty, unitPrice))
		record.Set("notes", notes)
		record.Set("sort_order", sortOrder)

		if err := app.Save(record); err != nil {
			log.Printf("item_create: save failed: %v", err)
			return e.String(http.StatusInternalServerError, "Error saving takeoff item")
		}

		if _, err := services.RecalcProjectTotal(app, projectID); err != nil {
			log.Printf("item_create: recalc project total: %v", err)
		}

		return e.JSON(http.StatusCreated, takeoffItemJSON(record))
	}
}
