package sheet

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads an xlsx workbook from r.
// Every sheet whose name matches one of the four tables is loaded; other
// sheets are ignored. ReadXLSX does not close r.
func ReadXLSX(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	wb := &Workbook{}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("sheet %s: %w", name, err)
		}
		wb.set(name, rows)
	}
	return wb, nil
}

// WriteXLSX writes wb as an xlsx workbook to w, one sheet per non-nil table.
// Cells in numeric columns that parse as finite numbers are stored as
// numbers; everything else is stored as text.
func WriteXLSX(w io.Writer, wb *Workbook) error {
	f := excelize.NewFile()
	defer f.Close()

	tables := wb.Tables()
	if len(tables) == 0 {
		return fmt.Errorf("workbook has no tables")
	}

	for i, t := range tables {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), t.Name); err != nil {
				return fmt.Errorf("sheet %s: %w", t.Name, err)
			}
		} else if _, err := f.NewSheet(t.Name); err != nil {
			return fmt.Errorf("sheet %s: %w", t.Name, err)
		}
		if err := writeSheet(f, t); err != nil {
			return fmt.Errorf("sheet %s: %w", t.Name, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, t *Table) error {
	numeric := make([]bool, len(t.Header))
	header := make([]any, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
		numeric[i] = numericColumns[Normalize(h)]
	}
	if err := setRow(f, t.Name, 1, header); err != nil {
		return err
	}

	for i, rec := range t.Records {
		cells := make([]any, len(rec))
		for j, v := range rec {
			cells[j] = v
			if j < len(numeric) && numeric[j] {
				if n, err := strconv.ParseFloat(v, 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
					cells[j] = n
				}
			}
		}
		if err := setRow(f, t.Name, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &cells)
}
