package services

// TemplateField describes one column in a takeoff import Excel template.
type TemplateField struct {
	Key            string // internal name, matches PocketBase field name
	Label          string // human-readable header shown in Excel
	Description    string // shown on the Instructions sheet
	FormatRule     string // e.g. "Positive number", ""
	ExampleValue   string // shown on the Instructions sheet
	AlwaysRequired bool   // true = required even when Poz No fills the field
}

// TakeoffTemplateFields returns the ordered list of columns for takeoff
// item import templates. Column order here is the column order in the
// generated template.
func TakeoffTemplateFields() []TemplateField {
	return []TemplateField{
		{Key: "code", Label: "Poz No", Description: "Catalog code of the work item. Leave blank for custom items.", ExampleValue: "Y.16.050/03"},
		{Key: "description", Label: "Description", Description: "Work item description. Filled from the catalog when Poz No matches.", FormatRule: "Required when Poz No is blank", ExampleValue: "C 25/30 ready-mixed concrete, delivered and placed"},
		{Key: "category", Label: "Category", Description: "Work category used for material estimation", FormatRule: "Select from dropdown", ExampleValue: "concrete"},
		{Key: "qty", Label: "Quantity", Description: "Measured quantity of the work item", FormatRule: "Positive number", ExampleValue: "125,50", AlwaysRequired: true},
		{Key: "unit", Label: "Unit", Description: "Unit of measure. Filled from the catalog when Poz No matches.", FormatRule: "Required when Poz No is blank", ExampleValue: "m³"},
		{Key: "unit_price", Label: "Unit Price", Description: "Price per unit in TRY. Filled from the catalog when Poz No matches.", FormatRule: "Non-negative number", ExampleValue: "2.850,00"},
		{Key: "notes", Label: "Notes", Description: "Free-form note for this line", ExampleValue: "Basement slab pour"},
	}
}
