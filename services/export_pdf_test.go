package services

import (
	"testing"
)

func TestGenerateMaterialsPDF(t *testing.T) {
	data := sampleMaterialExport()
	data.CompanyName = "Aydin Engineering"
	data.CompanyAddress = "Kadikoy, Istanbul"
	data.CompanyEmail = "info@aydineng.example"

	result, err := GenerateMaterialsPDF(data)
	if err != nil {
		t.Fatalf("GenerateMaterialsPDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateMaterialsPDF() returned empty bytes")
	}
	// PDF files start with %PDF
	if len(result) > 4 && string(result[:5]) != "%PDF-" {
		t.Errorf("result does not start with PDF header, got %q", string(result[:5]))
	}
}

func TestGenerateMaterialsPDF_NoCompany(t *testing.T) {
	result, err := GenerateMaterialsPDF(sampleMaterialExport())
	if err != nil {
		t.Fatalf("GenerateMaterialsPDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateMaterialsPDF() returned empty bytes")
	}
}

func TestGenerateMaterialsPDF_EmptyRows(t *testing.T) {
	data := MaterialExportData{
		ProjectName: "Empty Project",
		GeneratedAt: "15.01.2026",
		WasteNote:   "automatic waste (per material)",
	}

	result, err := GenerateMaterialsPDF(data)
	if err != nil {
		t.Fatalf("GenerateMaterialsPDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateMaterialsPDF() returned empty bytes")
	}
}

func TestGenerateBOQPDF(t *testing.T) {
	data := BOQExportData{
		ProjectName: "Riverside Housing",
		ClientName:  "Aydin Construction",
		GeneratedAt: "15.01.2026",
		CompanyName: "Aydin Engineering",
		Rows: []BOQExportRow{
			{Index: 1, Code: "Y.16.050/03", Description: "C25/30 ready-mixed concrete", Category: "concrete", Qty: 120, Unit: "m³", UnitPrice: 3100, Total: 372000},
		},
		Totals: CalcWithVAT(372000, 20),
	}

	result, err := GenerateBOQPDF(data)
	if err != nil {
		t.Fatalf("GenerateBOQPDF() error = %v", err)
	}
	if len(result) > 4 && string(result[:5]) != "%PDF-" {
		t.Errorf("result does not start with PDF header, got %q", string(result[:5]))
	}
}

func TestGenerateBOQPDF_Empty(t *testing.T) {
	data := BOQExportData{
		ProjectName: "Bare Project",
		GeneratedAt: "15.01.2026",
		Totals:      CalcWithVAT(0, 20),
	}

	result, err := GenerateBOQPDF(data)
	if err != nil {
		t.Fatalf("GenerateBOQPDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateBOQPDF() returned empty bytes")
	}
}
