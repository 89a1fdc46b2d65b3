package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"metraj/services"
)

// HandleConvert converts a quantity between measurement units. The optional
// material parameter takes a material ID so density-style rules (kg per m³
// of that material) win over the generic table.
// Route: GET /convert?value=&from=&to=&material=
func HandleConvert(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		q := e.Request.URL.Query()

		raw := strings.TrimSpace(q.Get("value"))
		if raw == "" {
			return e.String(http.StatusBadRequest, "value parameter is required")
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return e.String(http.StatusBadRequest, "value must be a number")
		}

		from := strings.TrimSpace(q.Get("from"))
		to := strings.TrimSpace(q.Get("to"))
		if from == "" || to == "" {
			return e.String(http.StatusBadRequest, "from and to parameters are required")
		}
		materialID := strings.TrimSpace(q.Get("material"))

		converter := services.LoadUnitConverter(app)
		converted, ok := converter.Convert(value, from, to, materialID)
		if !ok {
			return e.JSON(http.StatusUnprocessableEntity, map[string]any{
				"error": "no conversion rule from " + from + " to " + to,
			})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"value":     value,
			"from":      from,
			"to":        to,
			"material":  materialID,
			"converted": converted,
		})
	}
}
