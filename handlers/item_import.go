package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"metraj/services"
)

// HandleItemTemplateDownload serves the Excel template for takeoff import.
// Route: GET /projects/{projectId}/items/template
func HandleItemTemplateDownload(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")

		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return e.String(http.StatusNotFound, "Project not found")
		}

		xlsxBytes, err := services.GenerateTakeoffTemplate()
		if err != nil {
			log.Printf("item_template: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate template")
		}

		filename := fmt.Sprintf("Takeoff_Template_%d.xlsx", time.Now().Year())

		e.Response.Header().Set("Content-Type",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleItemImportValidate receives a file upload, validates it and returns
// the validation summary. When every row is clean the parsed rows ride along
// so the client can post them back on confirm.
// Route: POST /projects/{projectId}/items/import
func HandleItemImportValidate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")

		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return e.String(http.StatusNotFound, "Project not found")
		}

		// Parse multipart form (max 10MB)
		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return e.String(http.StatusBadRequest, "File too large or invalid form data")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return e.String(http.StatusBadRequest, "Please select a file to upload")
		}
		defer file.Close()

		result, err := services.ValidateTakeoffFile(file, header.Filename)
		if err != nil {
			log.Printf("item_import_validate: %v", err)
			return e.String(http.StatusBadRequest, err.Error())
		}

		payload := map[string]any{
			"file_name": header.Filename,
			"result":    result,
		}
		if result.ErrorRows == 0 {
			payload["parsed_rows"] = result.ParsedRows
		}

		return e.JSON(http.StatusOK, payload)
	}
}

// HandleItemImportCommit re-validates and batch-inserts the uploaded rows.
// Route: POST /projects/{projectId}/items/import/commit
func HandleItemImportCommit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")

		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return e.String(http.StatusNotFound, "Project not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		parsedJSON := e.Request.FormValue("parsed_rows_json")
		if parsedJSON == "" {
			return e.String(http.StatusBadRequest,
				"File data missing. Please re-upload and try again.")
		}

		var parsedRows []map[string]string
		if err := json.Unmarshal([]byte(parsedJSON), &parsedRows); err != nil {
			return e.String(http.StatusBadRequest, "Invalid parsed data")
		}

		importResult, err := services.CommitTakeoffImport(app, projectID, parsedRows)
		if err != nil {
			log.Printf("item_import_commit: %v", err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		status := http.StatusOK
		if importResult.Failed > 0 {
			status = http.StatusUnprocessableEntity
		}
		return e.JSON(status, importResult)
	}
}

// HandleItemImportErrors downloads the validation errors as an Excel report.
// Route: POST /projects/{projectId}/items/import/errors
func HandleItemImportErrors(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var errors []services.ValidationError
		decoder := json.NewDecoder(e.Request.Body)
		if err := decoder.Decode(&errors); err != nil {
			return e.String(http.StatusBadRequest, "Invalid error data")
		}

		xlsxBytes, err := services.GenerateErrorReport(errors)
		if err != nil {
			log.Printf("item_import_errors: %v", err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		filename := fmt.Sprintf("Takeoff_Errors_%s.xlsx", time.Now().Format("2006-01-02"))

		e.Response.Header().Set("Content-Type",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}
