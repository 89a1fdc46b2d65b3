package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"metraj/config"
	"metraj/services"
)

// buildBOQExport assembles the priced bill of quantities and stamps the
// company letterhead from the application config.
func buildBOQExport(app *pocketbase.PocketBase, cfg config.Config, projectID string) (*services.BOQExportData, error) {
	data, err := services.BuildBOQExportData(app, projectID, cfg.Estimation.VATRate)
	if err != nil {
		return nil, err
	}

	data.CompanyName = cfg.Company.Name
	data.CompanyAddress = cfg.Company.Address
	data.CompanyPhone = cfg.Company.Phone
	data.CompanyEmail = cfg.Company.Email
	return data, nil
}

// HandleBOQExportExcel downloads the priced bill of quantities as an Excel file.
func HandleBOQExportExcel(app *pocketbase.PocketBase, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return e.String(http.StatusNotFound, "Project not found")
		}

		data, err := buildBOQExport(app, cfg, projectID)
		if err != nil {
			log.Printf("boq_export_excel: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to build bill of quantities")
		}

		xlsxBytes, err := services.GenerateBOQExcel(*data)
		if err != nil {
			log.Printf("boq_export_excel: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("BOQ_%s_%d.xlsx", sanitizeFilename(data.ProjectName), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleBOQExportPDF downloads the priced bill of quantities as a PDF.
func HandleBOQExportPDF(app *pocketbase.PocketBase, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return e.String(http.StatusNotFound, "Project not found")
		}

		data, err := buildBOQExport(app, cfg, projectID)
		if err != nil {
			log.Printf("boq_export_pdf: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to build bill of quantities")
		}

		pdfBytes, err := services.GenerateBOQPDF(*data)
		if err != nil {
			log.Printf("boq_export_pdf: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("BOQ_%s_%d.pdf", sanitizeFilename(data.ProjectName), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}
