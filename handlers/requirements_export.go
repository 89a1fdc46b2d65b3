package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"metraj/config"
	"metraj/services"
)

// buildMaterialsExport assembles the aggregated material list and stamps the
// company letterhead from the application config.
func buildMaterialsExport(app *pocketbase.PocketBase, cfg config.Config, projectID string, policy services.WastePolicy) (*services.MaterialExportData, error) {
	data, err := services.BuildMaterialExportData(app, projectID, policy)
	if err != nil {
		return nil, err
	}

	data.CompanyName = cfg.Company.Name
	data.CompanyAddress = cfg.Company.Address
	data.CompanyPhone = cfg.Company.Phone
	data.CompanyEmail = cfg.Company.Email
	return data, nil
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// HandleRequirementsExportExcel downloads the material list as an Excel file.
func HandleRequirementsExportExcel(app *pocketbase.PocketBase, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return e.String(http.StatusNotFound, "Project not found")
		}

		policy, err := parseWastePolicy(e)
		if err != nil {
			return e.String(http.StatusBadRequest, err.Error())
		}

		data, err := buildMaterialsExport(app, cfg, projectID, policy)
		if err != nil {
			log.Printf("requirements_export_excel: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to build material list")
		}

		xlsxBytes, err := services.GenerateMaterialsExcel(*data)
		if err != nil {
			log.Printf("requirements_export_excel: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("Materials_%s_%d.xlsx", sanitizeFilename(data.ProjectName), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleRequirementsExportPDF downloads the material list as a PDF.
func HandleRequirementsExportPDF(app *pocketbase.PocketBase, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return e.String(http.StatusNotFound, "Project not found")
		}

		policy, err := parseWastePolicy(e)
		if err != nil {
			return e.String(http.StatusBadRequest, err.Error())
		}

		data, err := buildMaterialsExport(app, cfg, projectID, policy)
		if err != nil {
			log.Printf("requirements_export_pdf: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to build material list")
		}

		pdfBytes, err := services.GenerateMaterialsPDF(*data)
		if err != nil {
			log.Printf("requirements_export_pdf: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("Materials_%s_%d.pdf", sanitizeFilename(data.ProjectName), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}

// HandleRequirementsExportOrder downloads the material list as a plain text
// purchase order that can be pasted into a message to a supplier.
func HandleRequirementsExportOrder(app *pocketbase.PocketBase, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return e.String(http.StatusNotFound, "Project not found")
		}

		policy, err := parseWastePolicy(e)
		if err != nil {
			return e.String(http.StatusBadRequest, err.Error())
		}

		data, err := buildMaterialsExport(app, cfg, projectID, policy)
		if err != nil {
			log.Printf("requirements_export_order: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to build material list")
		}

		textBytes := services.GenerateOrderText(*data)

		filename := fmt.Sprintf("Order_%s_%d.txt", sanitizeFilename(data.ProjectName), time.Now().Year())

		e.Response.Header().Set("Content-Type", "text/plain; charset=utf-8")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(textBytes)
		return nil
	}
}
