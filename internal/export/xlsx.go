package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/CollageCut/internal/importer"
	"github.com/piwi3910/CollageCut/internal/model"
)

// SheetName is the worksheet ExportExcel writes.
const SheetName = "Cells"

// ExportExcel writes one row per cell under the importer's column header,
// so the file can be imported again unchanged. Each colour cell is filled
// with its colour.
func ExportExcel(path string, cells []model.Cell) error {
	if len(cells) == 0 {
		return fmt.Errorf("no cells to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for col, name := range importer.Columns {
		ref, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(SheetName, ref, name); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(importer.Columns), 1)
	if err := f.SetCellStyle(SheetName, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	// Fill styles are shared between cells of the same colour
	fills := make(map[model.Color]int)
	for i, c := range cells {
		row := i + 2
		values := []any{
			c.Label,
			c.Frame.X,
			c.Frame.Y,
			c.Frame.Width,
			c.Frame.Height,
			c.Payload.Color.String(),
			c.Payload.Image,
		}
		for col, v := range values {
			ref, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(SheetName, ref, v); err != nil {
				return fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}

		style, ok := fills[c.Payload.Color]
		if !ok {
			style, err = f.NewStyle(&excelize.Style{
				Fill: excelize.Fill{Type: "pattern", Color: []string{c.Payload.Color.String()[:7]}, Pattern: 1},
			})
			if err != nil {
				return fmt.Errorf("failed to create fill style: %w", err)
			}
			fills[c.Payload.Color] = style
		}
		ref, _ := excelize.CoordinatesToCellName(6, row)
		if err := f.SetCellStyle(SheetName, ref, ref, style); err != nil {
			return fmt.Errorf("failed to style row %d: %w", row, err)
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 24); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}
	if err := f.SetColWidth(SheetName, "B", "F", 12); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}
	if err := f.SetColWidth(SheetName, "G", "G", 32); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}
