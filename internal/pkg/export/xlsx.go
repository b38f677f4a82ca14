// Package export renders tabular reports as xlsx workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Table is one worksheet: an optional title row, a header row, data rows and
// an optional footer row.
type Table struct {
	Sheet   string
	Title   string
	Headers []string
	Rows    [][]any
	Footer  []any
}

// WriteTables writes one sheet per table to w.
func WriteTables(w io.Writer, tables ...Table) error {
	if len(tables) == 0 {
		return fmt.Errorf("export: no tables")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("export: header style: %w", err)
	}
	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 13}})
	if err != nil {
		return fmt.Errorf("export: title style: %w", err)
	}

	for i, t := range tables {
		sheet := t.Sheet
		if sheet == "" {
			sheet = fmt.Sprintf("Sheet%d", i+1)
		}
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("export: rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("export: new sheet %s: %w", sheet, err)
		}

		row := 1
		if t.Title != "" {
			if err := setRow(f, sheet, row, []any{t.Title}); err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, "A1", "A1", titleStyle); err != nil {
				return fmt.Errorf("export: title style: %w", err)
			}
			row += 2
		}

		if len(t.Headers) > 0 {
			headers := make([]any, len(t.Headers))
			for j, h := range t.Headers {
				headers[j] = h
			}
			if err := setRow(f, sheet, row, headers); err != nil {
				return err
			}
			first, _ := excelize.CoordinatesToCellName(1, row)
			last, _ := excelize.CoordinatesToCellName(len(t.Headers), row)
			if err := f.SetCellStyle(sheet, first, last, headerStyle); err != nil {
				return fmt.Errorf("export: header style: %w", err)
			}
			if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: row, TopLeftCell: fmt.Sprintf("A%d", row+1), ActivePane: "bottomLeft"}); err != nil {
				return fmt.Errorf("export: freeze header: %w", err)
			}
			row++
		}

		for _, r := range t.Rows {
			if err := setRow(f, sheet, row, r); err != nil {
				return err
			}
			row++
		}

		if len(t.Footer) > 0 {
			if err := setRow(f, sheet, row+1, t.Footer); err != nil {
				return err
			}
		}

		if n := len(t.Headers); n > 0 {
			lastCol, _ := excelize.ColumnNumberToName(n)
			if err := f.SetColWidth(sheet, "A", lastCol, 16); err != nil {
				return fmt.Errorf("export: column width: %w", err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("export: cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("export: row %d: %w", row, err)
	}
	return nil
}
