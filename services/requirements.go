// Package services implements the estimation logic for construction
// takeoffs: material requirement calculation, aggregation, pricing,
// bid comparison and document export.
package services

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput reports compute inputs that fail validation.
// Wrap sites add detail; match with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// WasteMode selects where the waste factor for a formula entry comes from.
type WasteMode int

const (
	// WasteAutomatic applies each formula entry's own default waste factor.
	WasteAutomatic WasteMode = iota
	// WasteManual applies a single override factor to every entry.
	WasteManual
)

// WastePolicy pairs a waste mode with the override factor used in manual mode.
// The override is ignored in automatic mode.
type WastePolicy struct {
	Mode     WasteMode
	Override float64
}

// AutoWaste returns the policy that uses each entry's default waste factor.
func AutoWaste() WastePolicy { return WastePolicy{Mode: WasteAutomatic} }

// ManualWaste returns a policy that applies factor to every entry.
func ManualWaste(factor float64) WastePolicy {
	return WastePolicy{Mode: WasteManual, Override: factor}
}

// Label returns a human-readable description of the policy for reports.
func (p WastePolicy) Label() string {
	if p.Mode == WasteManual {
		return fmt.Sprintf("manual waste %.1f%%", p.Override*100)
	}
	return "automatic waste (per material)"
}

func (p WastePolicy) validate() error {
	if p.Mode == WasteManual && p.Override < 0 {
		return fmt.Errorf("%w: override waste factor must not be negative (got %v)", ErrInvalidInput, p.Override)
	}
	return nil
}

// WorkItem is a measured quantity of work to estimate materials for.
type WorkItem struct {
	Code        string
	Description string
	Category    string
	Unit        string
	Qty         float64
}

// FormulaEntry is one material line of a category's consumption formula:
// Coefficient units of Material are consumed per unit of work. WasteFactor
// is the default fractional allowance applied in automatic mode (0.05 = 5%).
type FormulaEntry struct {
	MaterialID  string
	Material    string
	Unit        string
	Coefficient float64
	WasteFactor float64
}

// FormulaTable maps a work category to its ordered formula entries.
// Categories with no entries are legal and produce no requirements.
type FormulaTable map[string][]FormulaEntry

// Requirement is the computed material demand for a single formula entry.
type Requirement struct {
	MaterialID  string  `json:"material_id,omitempty"`
	Material    string  `json:"material"`
	Unit        string  `json:"unit"`
	BaseQty     float64 `json:"base_qty"`
	WasteFactor float64 `json:"waste_factor"`
	AdjustedQty float64 `json:"adjusted_qty"`
}

// ComputeRequirements expands one work item into per-material requirements
// using the formula entries registered for the item's category.
//
// For each entry, in table order: base = item.Qty * entry.Coefficient and
// adjusted = base * (1 + factor), where the factor is the entry's own
// default in automatic mode or the policy override in manual mode. Exactly
// one Requirement is emitted per entry. Quantities are never rounded here;
// display rounding belongs to the export layer.
//
// A category that has no formula entries (labor- or machine-only work)
// yields an empty result and no error.
func ComputeRequirements(item WorkItem, table FormulaTable, policy WastePolicy) ([]Requirement, error) {
	if item.Qty <= 0 {
		return nil, fmt.Errorf("%w: quantity must be greater than zero (got %v)", ErrInvalidInput, item.Qty)
	}
	if strings.TrimSpace(item.Category) == "" {
		return nil, fmt.Errorf("%w: work item %q has no category", ErrInvalidInput, item.Code)
	}
	if err := policy.validate(); err != nil {
		return nil, err
	}

	entries := table[item.Category]
	reqs := make([]Requirement, 0, len(entries))
	for _, entry := range entries {
		factor := entry.WasteFactor
		if policy.Mode == WasteManual {
			factor = policy.Override
		}
		base := item.Qty * entry.Coefficient
		reqs = append(reqs, Requirement{
			MaterialID:  entry.MaterialID,
			Material:    entry.Material,
			Unit:        entry.Unit,
			BaseQty:     base,
			WasteFactor: factor,
			AdjustedQty: base * (1 + factor),
		})
	}
	return reqs, nil
}

// ItemRequirement is a Requirement tagged with the work item it came from.
type ItemRequirement struct {
	Requirement
	Code            string  `json:"code,omitempty"`
	ItemDescription string  `json:"item_description,omitempty"`
	ItemQty         float64 `json:"item_qty,omitempty"`
	ItemUnit        string  `json:"item_unit,omitempty"`
}

// ComputeProjectRequirements runs ComputeRequirements over every work item
// and flattens the results. Items with a non-positive quantity or a blank
// category are skipped rather than failing the whole run; an invalid waste
// policy still fails up front.
func ComputeProjectRequirements(items []WorkItem, table FormulaTable, policy WastePolicy) ([]ItemRequirement, error) {
	if err := policy.validate(); err != nil {
		return nil, err
	}

	out := []ItemRequirement{}
	for _, item := range items {
		if item.Qty <= 0 || strings.TrimSpace(item.Category) == "" {
			continue
		}
		reqs, err := ComputeRequirements(item, table, policy)
		if err != nil {
			return nil, err
		}
		for _, r := range reqs {
			out = append(out, ItemRequirement{
				Requirement:     r,
				Code:            item.Code,
				ItemDescription: item.Description,
				ItemQty:         item.Qty,
				ItemUnit:        item.Unit,
			})
		}
	}
	return out, nil
}
