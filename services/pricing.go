package services

import "math"

// DefaultVATRate is the KDV percentage applied when none is configured.
const DefaultVATRate = 20.0

// Round2 rounds a money amount to two decimals, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CalcLineTotal computes a takeoff line's cost from quantity and unit price.
func CalcLineTotal(qty, unitPrice float64) float64 {
	return Round2(qty * unitPrice)
}

// CalcProjectTotal sums already-rounded line totals into the project cost.
func CalcProjectTotal(lineTotals []float64) float64 {
	var sum float64
	for _, t := range lineTotals {
		sum += t
	}
	return Round2(sum)
}

// VATBreakdown splits an amount into net, tax and gross at a given rate.
type VATBreakdown struct {
	Net   float64 `json:"net"`
	Rate  float64 `json:"rate"`
	VAT   float64 `json:"vat"`
	Gross float64 `json:"gross"`
}

// CalcVAT returns the tax on amount at rate percent.
func CalcVAT(amount, rate float64) float64 {
	return Round2(amount * rate / 100)
}

// CalcWithVAT builds the net, tax and gross summary printed on offer documents.
func CalcWithVAT(amount, rate float64) VATBreakdown {
	vat := CalcVAT(amount, rate)
	return VATBreakdown{
		Net:   Round2(amount),
		Rate:  rate,
		VAT:   vat,
		Gross: Round2(amount + vat),
	}
}

// CostedRequirement extends an aggregated requirement with money columns.
type CostedRequirement struct {
	AggregatedRequirement
	UnitPrice float64 `json:"unit_price"`
	Cost      float64 `json:"cost"`
}

// CostRequirements prices aggregated requirements from a material ID to
// unit price map. Materials without a known price keep a zero cost. This
// is the first point where quantities meet money, so rounding to cents
// happens here and not in the calculator.
func CostRequirements(reqs []AggregatedRequirement, prices map[string]float64) ([]CostedRequirement, float64) {
	out := make([]CostedRequirement, 0, len(reqs))
	var total float64
	for _, r := range reqs {
		price := prices[r.MaterialID]
		cost := Round2(r.Qty * price)
		out = append(out, CostedRequirement{
			AggregatedRequirement: r,
			UnitPrice:             price,
			Cost:                  cost,
		})
		total += cost
	}
	return out, Round2(total)
}
