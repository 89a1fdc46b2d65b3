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

// HandleBidCreate records a subcontractor's offer on a project. When the
// bid references a takeoff item, blank code, description, qty and unit are
// filled from that item so the offer lines up with the takeoff sheet.
// Route: POST /projects/{projectId}/bids
func HandleBidCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")

		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return e.String(http.StatusNotFound, "Project not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		firm := strings.TrimSpace(e.Request.FormValue("firm"))
		itemID := strings.TrimSpace(e.Request.FormValue("takeoff_item"))
		code := strings.TrimSpace(e.Request.FormValue("code"))
		description := strings.TrimSpace(e.Request.FormValue("description"))
		unit := strings.TrimSpace(e.Request.FormValue("unit"))
		status := strings.TrimSpace(e.Request.FormValue("status"))
		notes := strings.TrimSpace(e.Request.FormValue("notes"))

		errors := make(map[string]string)
		if firm == "" {
			errors["firm"] = "Firm name is required"
		}

		var item *core.Record
		if itemID != "" {
			rec, err := app.FindRecordById("takeoff_items", itemID)
			if err != nil || rec.GetString("project") != projectID {
				errors["takeoff_item"] = "Takeoff item not found in this project"
			} else {
				item = rec
			}
		}

		qty := 1.0
		if raw := strings.TrimSpace(e.Request.FormValue("qty")); raw != "" {
			parsed, err := strconv.ParseFloat(raw, 64)
			switch {
			case err != nil:
				errors["qty"] = "Quantity must be a number"
			case parsed <= 0:
				errors["qty"] = "Quantity must be greater than zero"
			default:
				qty = parsed
			}
		} else if item != nil {
			qty = item.GetFloat("qty")
		}

		unitPrice := 0.0
		if raw := strings.TrimSpace(e.Request.FormValue("unit_price")); raw == "" {
			errors["unit_price"] = "Unit price is required"
		} else {
			parsed, err := strconv.ParseFloat(raw, 64)
			switch {
			case err != nil:
				errors["unit_price"] = "Unit price must be a number"
			case parsed < 0:
				errors["unit_price"] = "Unit price cannot be negative"
			default:
				unitPrice = parsed
			}
		}

		if status == "" {
			status = "pending"
		}
		if !slices.Contains(services.BidStatuses, status) {
			errors["status"] = "Invalid bid status"
		}

		if item != nil {
			if code == "" {
				code = item.GetString("code")
			}
			if description == "" {
				description = item.GetString("description")
			}
			if unit == "" {
				unit = item.GetString("unit")
			}
		}

		if len(errors) > 0 {
			return e.JSON(http.StatusBadRequest, map[string]any{"errors": errors})
		}

		collection, err := app.FindCollectionByNameOrId("bids")
		if err != nil {
			return e.String(http.StatusInternalServerError, "Bids collection not found")
		}

		record := core.NewRecord(collection)
		record.Set("project", projectID)
		record.Set("firm", firm)
		if item != nil {
			record.Set("takeoff_item", item.Id)
		}
		record.Set("code", code)
		record.Set("description", description)
		record.Set("qty", qty)
		record.Set("unit", unit)
		record.Set("unit_price", unitPrice)
		record.Set("total", services.CalcLineTotal(qty, unitPrice))
		record.Set("status", status)
		record.Set("notes", notes)

		if err := app.Save(record); err != nil {
			log.Printf("bid_create: save failed: %v", err)
			return e.String(http.StatusInternalServerError, "Error saving bid")
		}

		return e.JSON(http.StatusCreated, bidJSON(record))
	}
}
