package services

// UnitOptions returns the list of measurement unit options for takeoff
// items and materials.
var UnitOptions = []string{
	"m",
	"m²",
	"m³",
	"mtül",
	"adet",
	"kg",
	"ton",
	"lt",
	"torba",
	"takım",
	"paket",
	"rulo",
	"saat",
	"gün",
}

// CategoryOptions returns the work categories the formula table knows
// about. "other" collects items that never map to a formula category.
var CategoryOptions = []string{
	"excavation",
	"concrete",
	"lean_concrete",
	"masonry",
	"rebar",
	"formwork",
	"plaster",
	"paint",
	"flooring",
	"roofing",
	"electrical",
	"plumbing",
	"other",
}

// ProjectStatuses returns the allowed project status values.
var ProjectStatuses = []string{"planning", "active", "completed"}

// BidStatuses returns the allowed bid status values.
var BidStatuses = []string{"pending", "accepted", "rejected"}
