package services

import "testing"

func TestTakeoffTemplateFields(t *testing.T) {
	fields := TakeoffTemplateFields()

	if len(fields) != 7 {
		t.Fatalf("expected 7 template fields, got %d", len(fields))
	}

	keys := make(map[string]TemplateField, len(fields))
	for _, f := range fields {
		keys[f.Key] = f
	}

	for _, want := range []string{"code", "description", "category", "qty", "unit", "unit_price", "notes"} {
		if _, ok := keys[want]; !ok {
			t.Errorf("missing template field %q", want)
		}
	}

	if !keys["qty"].AlwaysRequired {
		t.Error("qty should always be required")
	}
	if keys["code"].AlwaysRequired {
		t.Error("code should be optional")
	}
	if keys["description"].AlwaysRequired {
		t.Error("description is conditionally required, not always")
	}

	if fields[0].Key != "code" {
		t.Errorf("first column should be code, got %q", fields[0].Key)
	}
	if fields[3].Key != "qty" {
		t.Errorf("fourth column should be qty, got %q", fields[3].Key)
	}
}
