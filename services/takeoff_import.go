package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ValidationError represents a single field-level error on one row.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult is returned after parsing and validating an uploaded file.
type ValidationResult struct {
	TotalRows  int                 `json:"total_rows"`
	ValidRows  int                 `json:"valid_rows"`
	ErrorRows  int                 `json:"error_rows"`
	Errors     []ValidationError   `json:"errors"`
	ParsedRows []map[string]string `json:"-"`
	FileName   string              `json:"-"`
}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	headers := allRows[0]
	dataRows := allRows[1:]
	return headers, dataRows, nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the first sheet.
func parseExcel(file multipart.File) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	headers := rows[0]
	dataRows := rows[1:]
	return headers, dataRows, nil
}

// headerAliases maps alternate column spellings to field keys, so files
// exported from older spreadsheets or written with Turkish headers still
// import cleanly.
var headerAliases = map[string]string{
	"poz":          "code",
	"poz no.":      "code",
	"code":         "code",
	"item code":    "code",
	"açıklama":     "description",
	"aciklama":     "description",
	"tanım":        "description",
	"kategori":     "category",
	"qty":          "qty",
	"miktar":       "qty",
	"metraj":       "qty",
	"birim":        "unit",
	"birim fiyat":  "unit_price",
	"birim fiyatı": "unit_price",
	"price":        "unit_price",
	"not":          "notes",
	"notlar":       "notes",
}

// mapHeadersToFields maps uploaded column headers to TemplateField keys.
// Returns ordered list of field keys (one per column) and any unrecognized columns.
func mapHeadersToFields(headers []string, fields []TemplateField) ([]string, []string) {
	labelToKey := make(map[string]string, len(fields))
	for _, f := range fields {
		normalized := strings.ToLower(strings.TrimSpace(f.Label))
		labelToKey[normalized] = f.Key
	}

	mapped := make([]string, len(headers))
	var unrecognized []string

	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		// Strip trailing " *" that our template adds for required fields
		norm = strings.TrimSuffix(norm, " *")
		norm = strings.TrimSpace(norm)

		if key, ok := labelToKey[norm]; ok {
			mapped[i] = key
		} else if key, ok := headerAliases[norm]; ok {
			mapped[i] = key
		} else {
			mapped[i] = ""
			unrecognized = append(unrecognized, h)
		}
	}
	return mapped, unrecognized
}

// parseImportNumber parses a quantity or price cell. Accepts both "2850.75"
// and the Turkish spreadsheet forms "2850,75" and "2.850,75".
func parseImportNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	if strings.Contains(s, ",") {
		// comma is the decimal separator, dots are thousands groups
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	return strconv.ParseFloat(s, 64)
}

// ValidateTakeoffFile parses and validates an uploaded takeoff item file.
// Rows with a Poz No may leave description and unit blank; the commit step
// fills them from the catalog.
func ValidateTakeoffFile(file multipart.File, fileName string) (*ValidationResult, error) {
	fields := TakeoffTemplateFields()

	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	if strings.HasSuffix(lowerName, ".csv") {
		headers, dataRows, err = parseCSV(file)
	} else if strings.HasSuffix(lowerName, ".xlsx") {
		headers, dataRows, err = parseExcel(file)
	} else {
		return nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, err
	}

	columnKeys, _ := mapHeadersToFields(headers, fields)

	result := &ValidationResult{
		TotalRows:  len(dataRows),
		FileName:   fileName,
		ParsedRows: make([]map[string]string, 0, len(dataRows)),
	}

	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2 // 1-indexed, +1 for header row
		rowData := make(map[string]string)

		for colIdx, key := range columnKeys {
			if key == "" {
				continue
			}
			value := ""
			if colIdx < len(row) {
				value = strings.TrimSpace(row[colIdx])
			}
			rowData[key] = value
		}

		result.Errors = append(result.Errors, validateTakeoffRow(rowNum, rowData)...)
		result.ParsedRows = append(result.ParsedRows, rowData)
	}

	errorRowSet := make(map[int]bool)
	for _, e := range result.Errors {
		errorRowSet[e.Row] = true
	}
	result.ErrorRows = len(errorRowSet)
	result.ValidRows = result.TotalRows - result.ErrorRows

	return result, nil
}

// validateTakeoffRow checks one parsed row. Used both on upload and again
// before commit.
func validateTakeoffRow(rowNum int, data map[string]string) []ValidationError {
	var errs []ValidationError

	if data["code"] == "" {
		if data["description"] == "" {
			errs = append(errs, ValidationError{Row: rowNum, Field: "Description", Message: "Description is required when Poz No is blank"})
		}
		if data["unit"] == "" {
			errs = append(errs, ValidationError{Row: rowNum, Field: "Unit", Message: "Unit is required when Poz No is blank"})
		}
	}

	if data["qty"] == "" {
		errs = append(errs, ValidationError{Row: rowNum, Field: "Quantity", Message: "Quantity is required"})
	} else if qty, err := parseImportNumber(data["qty"]); err != nil {
		errs = append(errs, ValidationError{Row: rowNum, Field: "Quantity", Message: "Quantity must be a number"})
	} else if qty <= 0 {
		errs = append(errs, ValidationError{Row: rowNum, Field: "Quantity", Message: "Quantity must be greater than zero"})
	}

	if v := data["unit_price"]; v != "" {
		if price, err := parseImportNumber(v); err != nil {
			errs = append(errs, ValidationError{Row: rowNum, Field: "Unit Price", Message: "Unit Price must be a number"})
		} else if price < 0 {
			errs = append(errs, ValidationError{Row: rowNum, Field: "Unit Price", Message: "Unit Price cannot be negative"})
		}
	}

	return errs
}

// GenerateErrorReport creates a downloadable .xlsx file from validation errors.
func GenerateErrorReport(errors []ValidationError) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Errors"
	defaultSheet := f.GetSheetName(0)
	f.SetSheetName(defaultSheet, sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DC2626"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})

	f.SetCellValue(sheet, "A1", "Row #")
	f.SetCellValue(sheet, "B1", "Field")
	f.SetCellValue(sheet, "C1", "Error")
	f.SetCellStyle(sheet, "A1", "C1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 22)
	f.SetColWidth(sheet, "C", "C", 55)

	for i, e := range errors {
		row := fmt.Sprintf("%d", i+2)
		f.SetCellValue(sheet, "A"+row, e.Row)
		f.SetCellValue(sheet, "B"+row, e.Field)
		f.SetCellValue(sheet, "C"+row, e.Message)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write error report: %w", err)
	}
	return buf.Bytes(), nil
}
