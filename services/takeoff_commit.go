package services

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

const importBatchSize = 100

// ImportResult holds the outcome of a batch import operation.
type ImportResult struct {
	TotalRows  int              `json:"total_rows"`
	Imported   int              `json:"imported"`
	Failed     int              `json:"failed"`
	Errors     []ImportRowError `json:"errors,omitempty"`
	RolledBack bool             `json:"rolled_back"`
}

// ImportRowError represents a failure to insert a specific row.
type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// CommitTakeoffImport re-validates and batch-inserts parsed takeoff rows
// into PocketBase. It processes rows in chunks of importBatchSize.
//
// Strategy: Process in chunks. Within each chunk, if any insert fails,
// roll back the entire chunk and record errors. Continue with next chunk.
func CommitTakeoffImport(
	app *pocketbase.PocketBase,
	projectID string,
	parsedRows []map[string]string,
) (*ImportResult, error) {
	// 1. Re-validate all rows before committing. Catches stale previews
	// where the file changed between upload and confirm.
	var revalidationErrors []ValidationError
	for rowIdx, rowData := range parsedRows {
		revalidationErrors = append(revalidationErrors, validateTakeoffRow(rowIdx+2, rowData)...)
	}
	if len(revalidationErrors) > 0 {
		errorRowSet := make(map[int]bool)
		for _, e := range revalidationErrors {
			errorRowSet[e.Row] = true
		}
		return &ImportResult{
			TotalRows:  len(parsedRows),
			Imported:   0,
			Failed:     len(errorRowSet),
			Errors:     toImportRowErrors(revalidationErrors),
			RolledBack: true,
		}, nil
	}

	// 2. Build a code -> catalog record lookup for auto-fill
	catalog, err := buildCatalogLookup(app)
	if err != nil {
		return nil, fmt.Errorf("build catalog lookup: %w", err)
	}

	col, err := app.FindCollectionByNameOrId("takeoff_items")
	if err != nil {
		return nil, fmt.Errorf("takeoff_items collection not found: %w", err)
	}

	sortBase, err := NextTakeoffSortOrder(app, projectID)
	if err != nil {
		return nil, fmt.Errorf("determine sort order: %w", err)
	}

	// 3. Process in chunks
	result := &ImportResult{
		TotalRows: len(parsedRows),
	}

	for chunkStart := 0; chunkStart < len(parsedRows); chunkStart += importBatchSize {
		chunkEnd := chunkStart + importBatchSize
		if chunkEnd > len(parsedRows) {
			chunkEnd = len(parsedRows)
		}
		chunk := parsedRows[chunkStart:chunkEnd]

		chunkErrors := insertTakeoffChunk(app, col, projectID, chunk, chunkStart, sortBase, catalog)
		if len(chunkErrors) > 0 {
			result.Errors = append(result.Errors, chunkErrors...)
			result.Failed += len(chunk) // entire chunk failed
			result.RolledBack = true
		} else {
			result.Imported += len(chunk)
		}
	}

	if result.Imported > 0 {
		if _, err := RecalcProjectTotal(app, projectID); err != nil {
			log.Printf("takeoff_import: recalc project total: %v", err)
		}
	}

	return result, nil
}

// insertTakeoffChunk inserts a batch of rows within a RunInTransaction block.
// If any row fails, the entire chunk is rolled back and errors are returned.
func insertTakeoffChunk(
	app *pocketbase.PocketBase,
	col *core.Collection,
	projectID string,
	rows []map[string]string,
	startOffset int,
	sortBase float64,
	catalog map[string]*core.Record,
) []ImportRowError {
	var chunkErrors []ImportRowError

	err := app.RunInTransaction(func(txApp core.App) error {
		for i, rowData := range rows {
			rowNum := startOffset + i + 2 // 1-indexed + header row

			code := rowData["code"]
			description := rowData["description"]
			category := rowData["category"]
			unit := rowData["unit"]

			catItem := catalog[code]
			if code != "" && catItem == nil && (description == "" || unit == "") {
				chunkErrors = append(chunkErrors, ImportRowError{
					Row:     rowNum,
					Field:   "Poz No",
					Message: fmt.Sprintf("No catalog item with code %q", code),
				})
				return fmt.Errorf("catalog lookup failed at row %d", rowNum)
			}
			if catItem != nil {
				if description == "" {
					description = catItem.GetString("description")
				}
				if unit == "" {
					unit = catItem.GetString("unit")
				}
				if category == "" {
					category = catItem.GetString("category")
				}
			}

			qty, err := parseImportNumber(rowData["qty"])
			if err != nil {
				return fmt.Errorf("parse qty at row %d: %w", rowNum, err)
			}
			unitPrice := 0.0
			if v := rowData["unit_price"]; v != "" {
				unitPrice, err = parseImportNumber(v)
				if err != nil {
					return fmt.Errorf("parse unit price at row %d: %w", rowNum, err)
				}
			} else if catItem != nil {
				unitPrice = catItem.GetFloat("unit_price")
			}

			record := core.NewRecord(col)
			record.Set("project", projectID)
			record.Set("code", code)
			record.Set("description", description)
			record.Set("category", category)
			record.Set("qty", qty)
			record.Set("unit", unit)
			record.Set("unit_price", unitPrice)
			record.Set("total", CalcLineTotal(qty, unitPrice))
			record.Set("notes", rowData["notes"])
			record.Set("sort_order", sortBase+float64(startOffset+i)*10)

			if err := txApp.Save(record); err != nil {
				chunkErrors = append(chunkErrors, ImportRowError{
					Row:     rowNum,
					Field:   "",
					Message: fmt.Sprintf("Failed to save: %s", err.Error()),
				})
				return fmt.Errorf("save failed at row %d: %w", rowNum, err)
			}
		}
		return nil
	})

	if err != nil {
		log.Printf("takeoff_import: chunk insert rolled back: %v", err)
		if len(chunkErrors) == 0 {
			chunkErrors = append(chunkErrors, ImportRowError{
				Row:     startOffset + 2,
				Field:   "",
				Message: fmt.Sprintf("Transaction failed: %s", err.Error()),
			})
		}
	}

	return chunkErrors
}

// buildCatalogLookup returns a map of catalog code -> record for auto-filling
// imported rows. An empty code never matches.
func buildCatalogLookup(app *pocketbase.PocketBase) (map[string]*core.Record, error) {
	col, err := app.FindCollectionByNameOrId("catalog_items")
	if err != nil {
		return map[string]*core.Record{}, nil
	}

	records, err := app.FindAllRecords(col)
	if err != nil {
		return nil, err
	}

	lookup := make(map[string]*core.Record, len(records))
	for _, r := range records {
		code := r.GetString("code")
		if code != "" {
			lookup[code] = r
		}
	}
	return lookup, nil
}

// NextTakeoffSortOrder returns a sort_order value after every existing item
// in the project. Items are spaced by 10 so rows can be reordered later
// without rewriting the whole list.
func NextTakeoffSortOrder(app *pocketbase.PocketBase, projectID string) (float64, error) {
	records, err := app.FindRecordsByFilter("takeoff_items",
		"project = {:projectId}", "-sort_order", 1, 0,
		map[string]any{"projectId": projectID},
	)
	if err != nil {
		return 10, nil
	}
	if len(records) == 0 {
		return 10, nil
	}
	return records[0].GetFloat("sort_order") + 10, nil
}

// toImportRowErrors converts ValidationErrors to ImportRowErrors.
func toImportRowErrors(ve []ValidationError) []ImportRowError {
	result := make([]ImportRowError, len(ve))
	for i, e := range ve {
		result[i] = ImportRowError{
			Row:     e.Row,
			Field:   e.Field,
			Message: e.Message,
		}
	}
	return result
}
