package spreadsheet

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of an XLSX workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const defaultColWidth = 18

// Sheet is one worksheet: a bold header row followed by data rows.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]any
	// Widths overrides the column width per header; missing entries use the default
	Widths []float64
}

// Build renders the sheets, in order, into an XLSX workbook.
func Build(sheets []Sheet) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook needs at least one sheet")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				return nil, fmt.Errorf("failed to rename sheet %s: %w", sheet.Name, err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", sheet.Name, err)
		}

		if err := writeSheet(f, sheet, headerStyle); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return bytes.Clone(buf.Bytes()), nil
}

func writeSheet(f *excelize.File, sheet Sheet, headerStyle int) error {
	for col, header := range sheet.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet.Name, cell, header); err != nil {
			return fmt.Errorf("failed to write header %s!%s: %w", sheet.Name, cell, err)
		}

		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		width := float64(defaultColWidth)
		if col < len(sheet.Widths) && sheet.Widths[col] > 0 {
			width = sheet.Widths[col]
		}
		if err := f.SetColWidth(sheet.Name, name, name, width); err != nil {
			return fmt.Errorf("failed to set width of %s!%s: %w", sheet.Name, name, err)
		}
	}

	if len(sheet.Headers) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(sheet.Headers), 1)
		if err := f.SetCellStyle(sheet.Name, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("failed to style header of %s: %w", sheet.Name, err)
		}
	}

	for r, row := range sheet.Rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet.Name, cell, value); err != nil {
				return fmt.Errorf("failed to write %s!%s: %w", sheet.Name, cell, err)
			}
		}
	}
	return nil
}
