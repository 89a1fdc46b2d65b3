package services

import "sort"

// AggregatedRequirement is the project-wide demand for one material in one
// unit, summed over every work item that consumes it. Codes lists the
// distinct work item codes that contributed, in encounter order.
type AggregatedRequirement struct {
	MaterialID string   `json:"material_id,omitempty"`
	Material   string   `json:"material"`
	Unit       string   `json:"unit"`
	BaseQty    float64  `json:"base_qty"`
	Qty        float64  `json:"qty"`
	Sources    int      `json:"sources"`
	Codes      []string `json:"codes,omitempty"`
}

// AggregateRequirements merges per-item requirements into one row per
// material and unit. Rows are keyed by material ID when the table supplied
// one, otherwise by material name, so ad-hoc entries still merge. The sums
// are plain additions and the output is sorted by material name then unit,
// so the result does not depend on work item order.
func AggregateRequirements(reqs []ItemRequirement) []AggregatedRequirement {
	type key struct{ mat, unit string }
	keyOf := func(r ItemRequirement) key {
		if r.MaterialID != "" {
			return key{r.MaterialID, r.Unit}
		}
		return key{r.Material, r.Unit}
	}

	merged := make(map[key]*AggregatedRequirement)
	seenCodes := make(map[key]map[string]bool)
	order := []key{}
	for _, r := range reqs {
		k := keyOf(r)
		agg, ok := merged[k]
		if !ok {
			agg = &AggregatedRequirement{
				MaterialID: r.MaterialID,
				Material:   r.Material,
				Unit:       r.Unit,
			}
			merged[k] = agg
			seenCodes[k] = make(map[string]bool)
			order = append(order, k)
		}
		agg.BaseQty += r.BaseQty
		agg.Qty += r.AdjustedQty
		agg.Sources++
		if r.Code != "" && !seenCodes[k][r.Code] {
			seenCodes[k][r.Code] = true
			agg.Codes = append(agg.Codes, r.Code)
		}
	}

	out := make([]AggregatedRequirement, 0, len(order))
	for _, k := range order {
		out = append(out, *merged[k])
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Material != out[j].Material {
			return out[i].Material < out[j].Material
		}
		return out[i].Unit < out[j].Unit
	})
	return out
}

// CategorySummary groups aggregated requirements under one material category.
type CategorySummary struct {
	Category  string                  `json:"category"`
	Count     int                     `json:"count"`
	Materials []AggregatedRequirement `json:"materials"`
}

// SummarizeByCategory buckets aggregated rows by material category.
// categories maps material ID to its category; rows without a known
// category land in "other". Buckets are sorted by category name.
func SummarizeByCategory(reqs []AggregatedRequirement, categories map[string]string) []CategorySummary {
	buckets := make(map[string][]AggregatedRequirement)
	for _, r := range reqs {
		cat := categories[r.MaterialID]
		if cat == "" {
			cat = "other"
		}
		buckets[cat] = append(buckets[cat], r)
	}

	names := make([]string, 0, len(buckets))
	for name := range buckets {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]CategorySummary, 0, len(names))
	for _, name := range names {
		out = append(out, CategorySummary{
			Category:  name,
			Count:     len(buckets[name]),
			Materials: buckets[name],
		})
	}
	return out
}
