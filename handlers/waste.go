package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase/core"

	"metraj/services"
)

// parseWastePolicy reads the waste mode and override factor from query
// parameters. An absent or "auto" mode uses each material's own default
// factor; "manual" applies one factor to everything and requires it to be
// present and non-negative.
func parseWastePolicy(e *core.RequestEvent) (services.WastePolicy, error) {
	query := e.Request.URL.Query()
	mode := strings.ToLower(strings.TrimSpace(query.Get("mode")))

	switch mode {
	case "", "auto", "automatic":
		return services.AutoWaste(), nil
	case "manual":
		raw := strings.TrimSpace(query.Get("factor"))
		if raw == "" {
			return services.WastePolicy{}, fmt.Errorf("manual waste mode requires a factor parameter")
		}
		factor, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return services.WastePolicy{}, fmt.Errorf("waste factor must be a number, got %q", raw)
		}
		if factor < 0 {
			return services.WastePolicy{}, fmt.Errorf("waste factor must not be negative, got %v", factor)
		}
		return services.ManualWaste(factor), nil
	default:
		return services.WastePolicy{}, fmt.Errorf("unknown waste mode %q", mode)
	}
}
