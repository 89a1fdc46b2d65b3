package services

import (
	"errors"
	"math"
	"testing"
)

// concreteTable is the reference formula set used across calculator tests:
// one cubic meter of concrete work consumes 300 kg of cement (3% waste),
// 0.45 m³ of sand (3% waste) and 150 lt of water (no waste).
func concreteTable() FormulaTable {
	return FormulaTable{
		"concrete": {
			{MaterialID: "m1", Material: "cement", Unit: "kg", Coefficient: 300, WasteFactor: 0.03},
			{MaterialID: "m2", Material: "sand", Unit: "m³", Coefficient: 0.45, WasteFactor: 0.03},
			{MaterialID: "m3", Material: "water", Unit: "lt", Coefficient: 150, WasteFactor: 0},
		},
		"excavation": {},
	}
}

func TestComputeRequirements_AutomaticWaste(t *testing.T) {
	item := WorkItem{Code: "Y.16.050/03", Category: "concrete", Unit: "m³", Qty: 10}

	got, err := ComputeRequirements(item, concreteTable(), AutoWaste())
	if err != nil {
		t.Fatalf("ComputeRequirements() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 requirements, got %d", len(got))
	}

	// 10 m³ × 300 kg/m³ = 3000 kg base, ×1.03 = 3090 kg adjusted
	cement := got[0]
	if cement.Material != "cement" {
		t.Errorf("first requirement = %q, want cement (table order must be preserved)", cement.Material)
	}
	if math.Abs(cement.BaseQty-3000) > 1e-9 {
		t.Errorf("cement base = %v, want 3000", cement.BaseQty)
	}
	if math.Abs(cement.AdjustedQty-3090) > 1e-9 {
		t.Errorf("cement adjusted = %v, want 3090", cement.AdjustedQty)
	}
	if cement.WasteFactor != 0.03 {
		t.Errorf("cement waste factor = %v, want 0.03", cement.WasteFactor)
	}

	water := got[2]
	if water.BaseQty != water.AdjustedQty {
		t.Errorf("zero waste factor must leave quantity unchanged: base %v, adjusted %v",
			water.BaseQty, water.AdjustedQty)
	}
}

func TestComputeRequirements_ManualWaste(t *testing.T) {
	item := WorkItem{Category: "concrete", Qty: 10}

	got, err := ComputeRequirements(item, concreteTable(), ManualWaste(0.10))
	if err != nil {
		t.Fatalf("ComputeRequirements() error = %v", err)
	}

	// Override replaces every entry's own factor, water's 0 included.
	for _, r := range got {
		if r.WasteFactor != 0.10 {
			t.Errorf("%s waste factor = %v, want 0.10", r.Material, r.WasteFactor)
		}
	}
	if math.Abs(got[0].AdjustedQty-3300) > 1e-9 {
		t.Errorf("cement adjusted = %v, want 3300", got[0].AdjustedQty)
	}

	// Base quantities do not depend on the mode.
	auto, _ := ComputeRequirements(item, concreteTable(), AutoWaste())
	for i := range got {
		if got[i].BaseQty != auto[i].BaseQty {
			t.Errorf("%s base differs between modes: manual %v, auto %v",
				got[i].Material, got[i].BaseQty, auto[i].BaseQty)
		}
	}
}

func TestComputeRequirements_ManualZeroFactor(t *testing.T) {
	item := WorkItem{Category: "concrete", Qty: 2.5}

	got, err := ComputeRequirements(item, concreteTable(), ManualWaste(0))
	if err != nil {
		t.Fatalf("ComputeRequirements() error = %v", err)
	}
	for _, r := range got {
		if r.BaseQty != r.AdjustedQty {
			t.Errorf("%s: manual factor 0 must equal base, got base %v adjusted %v",
				r.Material, r.BaseQty, r.AdjustedQty)
		}
	}
}

func TestComputeRequirements_EmptyCategory(t *testing.T) {
	tests := []struct {
		name     string
		category string
	}{
		{"category with no entries", "excavation"},
		{"category missing from table", "demolition"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := WorkItem{Category: tt.category, Qty: 5}
			got, err := ComputeRequirements(item, concreteTable(), AutoWaste())
			if err != nil {
				t.Fatalf("ComputeRequirements() error = %v, want nil", err)
			}
			if got == nil {
				t.Fatal("expected empty slice, got nil")
			}
			if len(got) != 0 {
				t.Errorf("expected 0 requirements, got %d", len(got))
			}
		})
	}
}

func TestComputeRequirements_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		item   WorkItem
		policy WastePolicy
	}{
		{"zero quantity", WorkItem{Category: "concrete", Qty: 0}, AutoWaste()},
		{"negative quantity", WorkItem{Category: "concrete", Qty: -3}, AutoWaste()},
		{"blank category", WorkItem{Category: "   ", Qty: 1}, AutoWaste()},
		{"missing category", WorkItem{Qty: 1}, AutoWaste()},
		{"negative manual factor", WorkItem{Category: "concrete", Qty: 1}, ManualWaste(-0.05)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeRequirements(tt.item, concreteTable(), tt.policy)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("ComputeRequirements() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestComputeRequirements_AutomaticIgnoresOverride(t *testing.T) {
	item := WorkItem{Category: "concrete", Qty: 4}

	// A stale override on an automatic policy must have no effect.
	polluted := WastePolicy{Mode: WasteAutomatic, Override: 0.99}
	got, err := ComputeRequirements(item, concreteTable(), polluted)
	if err != nil {
		t.Fatalf("ComputeRequirements() error = %v", err)
	}
	want, _ := ComputeRequirements(item, concreteTable(), AutoWaste())
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("requirement %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestComputeRequirements_ScalesLinearly(t *testing.T) {
	table := concreteTable()
	one, err := ComputeRequirements(WorkItem{Category: "concrete", Qty: 1}, table, AutoWaste())
	if err != nil {
		t.Fatalf("ComputeRequirements() error = %v", err)
	}
	seven, err := ComputeRequirements(WorkItem{Category: "concrete", Qty: 7}, table, AutoWaste())
	if err != nil {
		t.Fatalf("ComputeRequirements() error = %v", err)
	}

	for i := range one {
		if math.Abs(seven[i].BaseQty-7*one[i].BaseQty) > 1e-9 {
			t.Errorf("%s base does not scale: 7×%v != %v", one[i].Material, one[i].BaseQty, seven[i].BaseQty)
		}
		if math.Abs(seven[i].AdjustedQty-7*one[i].AdjustedQty) > 1e-6 {
			t.Errorf("%s adjusted does not scale: 7×%v != %v", one[i].Material, one[i].AdjustedQty, seven[i].AdjustedQty)
		}
	}
}

func TestComputeRequirements_NoRounding(t *testing.T) {
	table := FormulaTable{
		"plastering": {
			{Material: "plaster", Unit: "kg", Coefficient: 0.33, WasteFactor: 0.07},
		},
	}
	item := WorkItem{Category: "plastering", Qty: 1.7}

	got, err := ComputeRequirements(item, table, AutoWaste())
	if err != nil {
		t.Fatalf("ComputeRequirements() error = %v", err)
	}

	// Full float precision must survive to the caller.
	base := 1.7 * 0.33
	if got[0].BaseQty != base {
		t.Errorf("base = %v, want untruncated %v", got[0].BaseQty, base)
	}
	if got[0].AdjustedQty != base*1.07 {
		t.Errorf("adjusted = %v, want untruncated %v", got[0].AdjustedQty, base*1.07)
	}
}

func TestComputeRequirements_Deterministic(t *testing.T) {
	item := WorkItem{Category: "concrete", Qty: 12.34}
	table := concreteTable()

	first, err := ComputeRequirements(item, table, AutoWaste())
	if err != nil {
		t.Fatalf("ComputeRequirements() error = %v", err)
	}
	for run := 0; run < 5; run++ {
		again, err := ComputeRequirements(item, table, AutoWaste())
		if err != nil {
			t.Fatalf("ComputeRequirements() error = %v", err)
		}
		for i := range first {
			if first[i] != again[i] {
				t.Fatalf("run %d requirement %d = %+v, want %+v", run, i, again[i], first[i])
			}
		}
	}
}

func TestComputeProjectRequirements(t *testing.T) {
	items := []WorkItem{
		{Code: "Y.16.050/03", Description: "C25 concrete", Category: "concrete", Unit: "m³", Qty: 2},
		{Code: "SKIP-1", Category: "concrete", Qty: 0},      // non-positive qty skipped
		{Code: "SKIP-2", Category: "", Qty: 5},              // blank category skipped
		{Code: "15.001.1004", Category: "excavation", Qty: 30}, // no formula entries
		{Code: "Y.16.050/03", Description: "C25 concrete", Category: "concrete", Unit: "m³", Qty: 3},
	}

	got, err := ComputeProjectRequirements(items, concreteTable(), AutoWaste())
	if err != nil {
		t.Fatalf("ComputeProjectRequirements() error = %v", err)
	}

	// 2 concrete items × 3 entries each; skipped and empty items contribute nothing.
	if len(got) != 6 {
		t.Fatalf("expected 6 requirements, got %d", len(got))
	}
	for _, r := range got {
		if r.Code != "Y.16.050/03" {
			t.Errorf("requirement source code = %q, want Y.16.050/03", r.Code)
		}
	}
	if got[0].ItemQty != 2 || got[3].ItemQty != 3 {
		t.Errorf("source quantities = %v, %v; want 2, 3", got[0].ItemQty, got[3].ItemQty)
	}
}

func TestComputeProjectRequirements_NegativeOverride(t *testing.T) {
	items := []WorkItem{{Category: "concrete", Qty: 1}}
	_, err := ComputeProjectRequirements(items, concreteTable(), ManualWaste(-1))
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("ComputeProjectRequirements() error = %v, want ErrInvalidInput", err)
	}
}

func TestComputeProjectRequirements_NoItems(t *testing.T) {
	got, err := ComputeProjectRequirements(nil, concreteTable(), AutoWaste())
	if err != nil {
		t.Fatalf("ComputeProjectRequirements() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected 0 requirements, got %d", len(got))
	}
}

func TestWastePolicyLabel(t *testing.T) {
	if got := AutoWaste().Label(); got != "automatic waste (per material)" {
		t.Errorf("AutoWaste().Label() = %q", got)
	}
	if got := ManualWaste(0.075).Label(); got != "manual waste 7.5%" {
		t.Errorf("ManualWaste(0.075).Label() = %q", got)
	}
}
