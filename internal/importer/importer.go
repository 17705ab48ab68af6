// Package importer reads placement scenarios from CSV and Excel sheets.
// It supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/tipview/internal/engine"
	"github.com/piwi3910/tipview/internal/model"
)

// Scenario is one placement to compute: a reference element inside a
// container of the given size, plus the content the tip shows.
type Scenario struct {
	Label     string
	Container model.Size
	Reference model.Rect
	Direction model.Direction
	Content   model.Size
}

// Request builds the engine input for the scenario. Content size is
// normalised the same way a measured tip's would be.
func (s Scenario) Request(prefs model.Preferences) model.PlacementRequest {
	container := model.NewRect(0, 0, s.Container.Width, s.Container.Height)
	content := engine.NormalizeContentSize(s.Content, prefs.Arrow())
	req := engine.NewRequest(s.Reference, container, content, prefs)
	req.PreferredDirection = s.Direction
	return req
}

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Scenarios []Scenario
	Errors    []string
	Warnings  []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Label           int
	ContainerWidth  int
	ContainerHeight int
	RefX            int
	RefY            int
	RefWidth        int
	RefHeight       int
	Direction       int
	ContentWidth    int
	ContentHeight   int
}

// positionalMapping is used when the first row is not a header.
var positionalMapping = ColumnMapping{
	Label:           0,
	ContainerWidth:  1,
	ContainerHeight: 2,
	RefX:            3,
	RefY:            4,
	RefWidth:        5,
	RefHeight:       6,
	Direction:       7,
	ContentWidth:    8,
	ContentHeight:   9,
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label":            {"label", "name", "scenario", "case", "description", "desc"},
	"container_width":  {"container width", "container_width", "container w", "cw"},
	"container_height": {"container height", "container_height", "container h", "ch"},
	"ref_x":            {"ref x", "ref_x", "reference x", "x"},
	"ref_y":            {"ref y", "ref_y", "reference y", "y"},
	"ref_width":        {"ref width", "ref_width", "reference width", "ref w", "rw"},
	"ref_height":       {"ref height", "ref_height", "reference height", "ref h", "rh"},
	"direction":        {"direction", "dir", "arrow", "arrow position", "preferred"},
	"content_width":    {"content width", "content_width", "content w", "tw"},
	"content_height":   {"content height", "content_height", "content h", "th"},
}

func (m *ColumnMapping) field(role string) *int {
	switch role {
	case "label":
		return &m.Label
	case "container_width":
		return &m.ContainerWidth
	case "container_height":
		return &m.ContainerHeight
	case "ref_x":
		return &m.RefX
	case "ref_y":
		return &m.RefY
	case "ref_width":
		return &m.RefWidth
	case "ref_height":
		return &m.RefHeight
	case "direction":
		return &m.Direction
	case "content_width":
		return &m.ContentWidth
	case "content_height":
		return &m.ContentHeight
	}
	return nil
}

// requiredColumns are the numeric roles every scenario needs, in report order.
var requiredColumns = []struct {
	role string
	name string
}{
	{"container_width", "Container Width"},
	{"container_height", "Container Height"},
	{"ref_x", "Ref X"},
	{"ref_y", "Ref Y"},
	{"ref_width", "Ref Width"},
	{"ref_height", "Ref Height"},
	{"content_width", "Content Width"},
	{"content_height", "Content Height"},
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
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or the positional
// mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{-1, -1, -1, -1, -1, -1, -1, -1, -1, -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				if f := mapping.field(role); *f == -1 {
					*f = i
				}
			}
		}
	}

	if !isHeader {
		return positionalMapping, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a Scenario from a row using the given column mapping.
// Returns the scenario, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, count int) (Scenario, string, string) {
	s := Scenario{Label: getCell(row, mapping.Label)}
	if s.Label == "" {
		s.Label = fmt.Sprintf("Scenario %d", count+1)
	}

	values := make(map[string]float64, len(requiredColumns))
	for _, col := range requiredColumns {
		raw := getCell(row, *mapping.field(col.role))
		if raw == "" {
			return Scenario{}, fmt.Sprintf("%s: Missing %s value", rowLabel, col.name), ""
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Scenario{}, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, col.name, raw), ""
		}
		values[col.role] = v
	}

	s.Container = model.Size{Width: values["container_width"], Height: values["container_height"]}
	s.Reference = model.NewRect(values["ref_x"], values["ref_y"], values["ref_width"], values["ref_height"])
	s.Content = model.Size{Width: values["content_width"], Height: values["content_height"]}

	if s.Container.Width <= 0 || s.Container.Height <= 0 {
		return Scenario{}, fmt.Sprintf("%s: Container width and height must be positive", rowLabel), ""
	}
	if s.Reference.Width < 0 || s.Reference.Height < 0 || s.Content.Width < 0 || s.Content.Height < 0 {
		return Scenario{}, fmt.Sprintf("%s: Sizes must not be negative", rowLabel), ""
	}

	var warning string
	if dirStr := getCell(row, mapping.Direction); dirStr != "" {
		d, err := model.ParseDirection(dirStr)
		if err == nil {
			s.Direction = d
		} else {
			warning = fmt.Sprintf("%s: Unknown direction '%s', defaulting to auto", rowLabel, dirStr)
		}
	}

	return s, "", warning
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

// ImportCSV imports scenarios from a CSV file.
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

	records, err := readCSV(bytes.NewReader(data), delimiter)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports scenarios from a CSV reader with a specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	records, err := readCSV(reader, delimiter)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	return importFromRows(records, "Line", nil)
}

func readCSV(r io.Reader, delimiter rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

// ImportExcel imports scenarios from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
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

	return importFromRows(rows, "Row", nil)
}

// Import dispatches on the file extension.
func Import(path string) ImportResult {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xlsm") {
		return ImportExcel(path)
	}
	return ImportCSV(path)
}

// importFromRows is the shared import logic for both CSV and Excel data.
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

		var missing []string
		for _, col := range requiredColumns {
			if *mapping.field(col.role) == -1 {
				missing = append(missing, col.name)
			}
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		// First value after the label is not numeric: an unrecognised header.
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		s, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Scenarios))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		result.Scenarios = append(result.Scenarios, s)
	}

	if len(result.Scenarios) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No valid scenarios found")
	}
	return result
}
