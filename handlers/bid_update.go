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

// HandleBidUpdate updates individual fields on a bid and re-derives its
// total. Moving a bid to another project is not supported.
func HandleBidUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		bidID := e.Request.PathValue("bidId")

		record, err := app.FindRecordById("bids", bidID)
		if err != nil || record.GetString("project") != projectID {
			return e.String(http.StatusNotFound, "Bid not found")
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
			case "firm":
				if val == "" {
					errors["firm"] = "Firm name is required"
				} else {
					record.Set("firm", val)
					updated = true
				}
			case "takeoff_item":
				if val == "" {
					record.Set("takeoff_item", "")
					updated = true
				} else {
					item, err := app.FindRecordById("takeoff_items", val)
					if err != nil || item.GetString("project") != projectID {
						errors["takeoff_item"] = "Takeoff item not found in this project"
					} else {
						record.Set("takeoff_item", item.Id)
						updated = true
					}
				}
			case "code":
				record.Set("code", val)
				updated = true
			case "description":
				record.Set("description", val)
				updated = true
			case "qty":
				f, err := strconv.ParseFloat(val, 64)
				if err != nil || f <= 0 {
					errors["qty"] = "Quantity must be greater than zero"
				} else {
					record.Set("qty", f)
					updated = true
				}
			case "unit":
				record.Set("unit", val)
				updated = true
			case "unit_price":
				f, err := strconv.ParseFloat(val, 64)
				if err != nil || f < 0 {
					errors["unit_price"] = "Unit price cannot be negative"
				} else {
					record.Set("unit_price", f)
					updated = true
				}
			case "status":
				if !slices.Contains(services.BidStatuses, val) {
					errors["status"] = "Invalid bid status"
				} else {
					record.Set("status", val)
					updated = true
				}
			case "notes":
				record.Set("notes", val)
				updated = true
			}
		}

		if len(errors) > 0 {
			return e.JSON(http.StatusBadRequest, map[string]any{"errors": errors})
		}

		if updated {
			record.Set("total", services.CalcLineTotal(record.GetFloat("qty"), record.GetFloat("unit_price")))
			if err := app.Save(record); err != nil {
				log.Printf("bid_update: save failed for %s: %v", bidID, err)
				return e.String(http.StatusInternalServerError, "Error saving bid")
			}
		}

		return e.JSON(http.StatusOK, bidJSON(record))
	}
}
