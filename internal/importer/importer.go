// Package importer builds collage layouts from CSV, Excel, DXF and TOML
// files. It supports automatic delimiter detection, flexible column mapping,
// and case-insensitive header recognition. Coordinates may be in any unit:
// the layout is scaled from its bounding box onto the unit canvas.
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

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/CollageCut/internal/engine"
	"github.com/piwi3910/CollageCut/internal/model"
)

// ImportResult holds the results of an import operation. Cells is set even
// when the layout fails validation so callers can show what was read.
type ImportResult struct {
	Cells    []model.Cell
	Errors   []string
	Warnings []string
}

// OK reports whether the import produced a usable layout.
func (r ImportResult) OK() bool {
	return len(r.Errors) == 0 && len(r.Cells) > 0
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Label  int
	X      int
	Y      int
	Width  int
	Height int
	Color  int
	Image  int
}

// Columns lists the header ExportExcel writes and positional imports expect.
var Columns = []string{"label", "x", "y", "width", "height", "color", "image"}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label":  {"label", "name", "cell", "title", "caption"},
	"x":      {"x", "left", "x0", "col"},
	"y":      {"y", "top", "y0", "row"},
	"width":  {"width", "w", "cols"},
	"height": {"height", "h", "rows"},
	"color":  {"color", "colour", "fill", "background"},
	"image":  {"image", "img", "photo", "picture", "path", "url"},
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

		// Prefer delimiters with higher consistency and more columns
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
// mapping of Columns and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Label: -1, X: -1, Y: -1, Width: -1, Height: -1, Color: -1, Image: -1}
	slots := map[string]*int{
		"label":  &mapping.Label,
		"x":      &mapping.X,
		"y":      &mapping.Y,
		"width":  &mapping.Width,
		"height": &mapping.Height,
		"color":  &mapping.Color,
		"image":  &mapping.Image,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					if *slots[role] == -1 {
						*slots[role] = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Label: 0, X: 1, Y: 2, Width: 3, Height: 4, Color: 5, Image: 6}, false
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

func parseNumber(row []string, idx int, name, rowLabel string) (float64, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, name)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, name, s)
	}
	return v, ""
}

// parseRow extracts a cell from a row using the given column mapping.
// Returns the cell, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, cellCount int) (model.Cell, string, string) {
	x, errMsg := parseNumber(row, mapping.X, "x", rowLabel)
	if errMsg != "" {
		return model.Cell{}, errMsg, ""
	}
	y, errMsg := parseNumber(row, mapping.Y, "y", rowLabel)
	if errMsg != "" {
		return model.Cell{}, errMsg, ""
	}
	width, errMsg := parseNumber(row, mapping.Width, "width", rowLabel)
	if errMsg != "" {
		return model.Cell{}, errMsg, ""
	}
	height, errMsg := parseNumber(row, mapping.Height, "height", rowLabel)
	if errMsg != "" {
		return model.Cell{}, errMsg, ""
	}

	if width <= 0 || height <= 0 {
		return model.Cell{}, fmt.Sprintf("%s: Width and height must be positive", rowLabel), ""
	}
	if x < 0 || y < 0 {
		return model.Cell{}, fmt.Sprintf("%s: x and y must not be negative", rowLabel), ""
	}

	payload := model.Payload{
		Color: model.Palette[cellCount%len(model.Palette)],
		Image: getCell(row, mapping.Image),
	}

	var warning string
	if colorStr := getCell(row, mapping.Color); colorStr != "" {
		if c, err := model.ParseColor(colorStr); err == nil {
			payload.Color = c
		} else {
			warning = fmt.Sprintf("%s: Unknown color '%s', using palette colour", rowLabel, colorStr)
		}
	}

	cell := model.NewCell(payload, model.Rect{X: x, Y: y, Width: width, Height: height})
	cell.Label = getCell(row, mapping.Label)
	return cell, "", warning
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

// ImportCSV imports a layout from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
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

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports a layout from a CSV reader with a specific
// delimiter. This is useful for testing or when the delimiter is already known.
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

// ImportExcel imports a layout from an Excel (.xlsx) file.
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

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, parses each row into a cell and
// finally fits the layout onto the canvas.
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

		missing := []string{}
		if mapping.X == -1 {
			missing = append(missing, "X")
		}
		if mapping.Y == -1 {
			missing = append(missing, "Y")
		}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Height == -1 {
			missing = append(missing, "Height")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 5 {
		// The x column is not numeric: an unrecognized header, skip it
		// but keep positional mapping.
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		cell, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Cells))

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Cells = append(result.Cells, cell)
	}

	return finish(result, model.Rect{})
}

// finish fits the imported cells onto the canvas and validates the layout.
// A zero bounds means the cells' own bounding box.
func finish(result ImportResult, bounds model.Rect) ImportResult {
	if len(result.Cells) == 0 {
		if len(result.Errors) == 0 {
			result.Errors = append(result.Errors, "No cells found")
		}
		return result
	}

	if bounds.Width <= 0 || bounds.Height <= 0 {
		bounds = boundingBox(result.Cells)
	}
	if !bounds.Equal(model.Canvas) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Scaled layout from %gx%g to the unit canvas", bounds.Width, bounds.Height))
	}
	normalize(result.Cells, bounds)

	if err := engine.Validate(result.Cells); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Layout is not a valid collage: %v", err))
	}
	return result
}

func boundingBox(cells []model.Cell) model.Rect {
	bounds := cells[0].Frame
	for _, c := range cells[1:] {
		bounds = bounds.Union(c.Frame)
	}
	return bounds
}

// normalize maps every frame from bounds onto the unit canvas in place.
func normalize(cells []model.Cell, bounds model.Rect) {
	for i := range cells {
		f := cells[i].Frame
		cells[i].Frame = model.Rect{
			X:      (f.X - bounds.X) / bounds.Width,
			Y:      (f.Y - bounds.Y) / bounds.Height,
			Width:  f.Width / bounds.Width,
			Height: f.Height / bounds.Height,
		}
	}
}

// ImportFile picks the importer from the file extension.
func ImportFile(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt":
		return ImportCSV(path)
	case ".xlsx", ".xlsm":
		return ImportExcel(path)
	case ".dxf":
		return ImportDXF(path)
	case ".toml":
		return ImportTOML(path)
	default:
		return ImportResult{Errors: []string{fmt.Sprintf("Unsupported file type '%s'", filepath.Ext(path))}}
	}
}
