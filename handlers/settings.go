package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"metraj/config"
)

// HandleSettings exposes the active configuration so clients can show the
// letterhead and the estimation defaults without hardcoding them.
// Route: GET /settings
func HandleSettings(cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, map[string]any{
			"company": map[string]any{
				"name":    cfg.Company.Name,
				"address": cfg.Company.Address,
				"phone":   cfg.Company.Phone,
				"email":   cfg.Company.Email,
			},
			"estimation": map[string]any{
				"default_waste_factor": cfg.Estimation.DefaultWasteFactor,
				"vat_rate":             cfg.Estimation.VATRate,
				"currency":             cfg.Estimation.Currency,
			},
		})
	}
}
