package handlers

import (
	"net/http"
	"sort"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"metraj/services"
)

// HandleBidComparison lines up the bids of a project: one overall comparison
// over per-firm grand totals, plus one comparison per poz code so unit scopes
// can be awarded separately. Bids without a code only count toward the
// overall totals.
// Route: GET /projects/{projectId}/bids/comparison
func HandleBidComparison(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")

		project, err := app.FindRecordById("projects", projectID)
		if err != nil {
			return e.String(http.StatusNotFound, "Project not found")
		}

		bids, err := app.FindRecordsByFilter(
			"bids",
			"project = {:project}",
			"created", 0, 0,
			map[string]any{"project": projectID},
		)
		if err != nil {
			return e.String(http.StatusInternalServerError, "Error loading bids")
		}

		firmTotals := make(map[string]float64)
		firmOrder := []string{}
		byCode := make(map[string][]services.BidOffer)
		for _, bid := range bids {
			firm := bid.GetString("firm")
			total := bid.GetFloat("total")

			if _, seen := firmTotals[firm]; !seen {
				firmOrder = append(firmOrder, firm)
			}
			firmTotals[firm] += total

			if code := bid.GetString("code"); code != "" {
				byCode[code] = append(byCode[code], services.BidOffer{Firm: firm, Total: total})
			}
		}

		overallOffers := make([]services.BidOffer, 0, len(firmOrder))
		for _, firm := range firmOrder {
			overallOffers = append(overallOffers, services.BidOffer{Firm: firm, Total: firmTotals[firm]})
		}

		codes := make([]string, 0, len(byCode))
		for code := range byCode {
			codes = append(codes, code)
		}
		sort.Strings(codes)

		codeComparisons := make([]map[string]any, 0, len(codes))
		for _, code := range codes {
			codeComparisons = append(codeComparisons, map[string]any{
				"code":       code,
				"comparison": services.CompareBids(byCode[code]),
			})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"project":   project.GetString("name"),
			"bid_count": len(bids),
			"overall":   services.CompareBids(overallOffers),
			"by_code":   codeComparisons,
		})
	}
}
