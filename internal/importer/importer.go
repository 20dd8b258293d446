// Package importer reads module lists from CSV, Excel and DXF files so they
// can be priced against a finish pair. It supports automatic delimiter
// detection, flexible column mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piwi3910/CabinetPlan/internal/model"
	"github.com/xuri/excelize/v2"
)

// Line is one imported module with its quantity.
type Line struct {
	ModuleID model.ModuleID `json:"moduleId"`
	Quantity int            `json:"quantity"`
	Room     string         `json:"room,omitempty"`
}

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Lines    []Line
	Errors   []string
	Warnings []string
}

// ModuleIDs expands the imported lines into one id per unit, in file order.
func (r ImportResult) ModuleIDs() []model.ModuleID {
	var ids []model.ModuleID
	for _, l := range r.Lines {
		for i := 0; i < l.Quantity; i++ {
			ids = append(ids, l.ModuleID)
		}
	}
	return ids
}

// Quantity returns the total number of modules imported.
func (r ImportResult) Quantity() int {
	n := 0
	for _, l := range r.Lines {
		n += l.Quantity
	}
	return n
}

// Err folds the collected errors into one error, or nil when there are none.
func (r ImportResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return model.NewError(model.ErrCodeInvalidInput, "%s", strings.Join(r.Errors, "; "))
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Module   int
	Quantity int
	Room     int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"module":   {"module", "moduleid", "module id", "module_id", "sku", "code", "cabinet", "item"},
	"quantity": {"quantity", "qty", "count", "num", "amount", "pcs", "pieces"},
	"room":     {"room", "roomid", "room id", "zone", "area"},
}

// ImportFile dispatches on the file extension.
func ImportFile(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return ImportExcel(path)
	case ".dxf":
		return ImportDXF(path)
	default:
		return ImportCSV(path)
	}
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		// Only delimiters that split the first row count
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or a positional
// mapping (module, quantity) and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Module: -1, Quantity: -1, Room: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "module":
					if mapping.Module == -1 {
						mapping.Module = i
					}
				case "quantity":
					if mapping.Quantity == -1 {
						mapping.Quantity = i
					}
				case "room":
					if mapping.Room == -1 {
						mapping.Room = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Module: 0, Quantity: 1, Room: -1}, false
	}
	return mapping, true
}

// ParseModuleID normalizes a cell to a catalog module id.
func ParseModuleID(s string) (model.ModuleID, bool) {
	id := model.ModuleID(strings.ToUpper(strings.TrimSpace(s)))
	if _, err := model.LookupModule(id); err != nil {
		return "", false
	}
	return id, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a Line from a row using the given column mapping. A
// missing quantity means one.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (Line, string) {
	raw := getCell(row, mapping.Module)
	if raw == "" {
		return Line{}, fmt.Sprintf("%s: Missing module", rowLabel)
	}
	id, ok := ParseModuleID(raw)
	if !ok {
		return Line{}, fmt.Sprintf("%s: Unknown module '%s'", rowLabel, raw)
	}

	qty := 1
	if qtyStr := getCell(row, mapping.Quantity); qtyStr != "" {
		n, err := strconv.Atoi(qtyStr)
		if err != nil {
			return Line{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr)
		}
		if n <= 0 {
			return Line{}, fmt.Sprintf("%s: Quantity must be positive", rowLabel)
		}
		qty = n
	}

	return Line{ModuleID: id, Quantity: qty, Room: getCell(row, mapping.Room)}, ""
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func isTotalRow(row []string) bool {
	for _, cell := range row {
		if strings.EqualFold(strings.TrimSpace(cell), "total") {
			return true
		}
	}
	return false
}

// ImportCSV imports a module list from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports a module list from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports a module list from the first sheet of an Excel file.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into lines.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
		if mapping.Module == -1 {
			result.Errors = append(result.Errors, "Required columns not found in header: Module")
			return result
		}
	} else if _, ok := ParseModuleID(getCell(rows[0], 0)); !ok && !isEmptyRow(rows[0]) {
		// Unrecognized header: skip it but keep positional mapping
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		// BOM exports end with a total row that has no module
		if getCell(row, mapping.Module) == "" && isTotalRow(row) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s %d: Skipped total row", rowPrefix, i+1))
			continue
		}

		line, errMsg := parseRow(row, mapping, fmt.Sprintf("%s %d", rowPrefix, i+1))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Lines = append(result.Lines, line)
	}

	return result
}
