// Package workbook reads and writes xlsx workbooks at the pipeline boundary.
package workbook

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/yanqian/faq-pipeline/internal/domain/table"
	apperrors "github.com/yanqian/faq-pipeline/pkg/errors"
)

// Read loads the first sheet of an xlsx workbook into a table. The first row
// supplies the headers; blank headers get the "Unnamed: N" placeholder so the
// corrector's reshape stage can pair them. Blank cells become absent values
// and numeric-looking cells become numbers.
func Read(r io.Reader) (*table.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.Wrap("invalid_input", "could not open workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.Wrap("invalid_input", "workbook has no sheets", nil)
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, apperrors.Wrap("invalid_input", "could not read sheet", err)
	}
	if len(rows) == 0 {
		return nil, apperrors.Wrap("invalid_input", "sheet is empty", nil)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		if strings.TrimSpace(h) == "" {
			headers[i] = fmt.Sprintf("Unnamed: %d", i)
			continue
		}
		headers[i] = h
	}

	t := table.New(headers...)
	t.Rows = make([]table.Row, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		row := make(table.Row, len(headers))
		for i, col := range headers {
			if i >= len(cells) {
				continue
			}
			if v := parseCell(cells[i]); !v.IsAbsent() {
				row[col] = v
			}
		}
		t.Append(row)
	}
	return t, nil
}

func parseCell(raw string) table.Value {
	if raw == "" {
		return table.None()
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return table.Num(f)
	}
	return table.Str(raw)
}

// Write exports the named tables as a workbook with one sheet per table.
func Write(w io.Writer, tables []table.Named) error {
	if len(tables) == 0 {
		return apperrors.Wrap("internal_error", "no tables to export", nil)
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, nt := range tables {
		sheet := nt.Name
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %q: %w", sheet, err)
		}
		if err := writeSheet(f, sheet, nt.Table); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, t *table.Table) error {
	for i, col := range t.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return fmt.Errorf("set header %q: %w", col, err)
		}
	}
	for ri, row := range t.Rows {
		for ci, col := range t.Columns {
			v := row.Get(col)
			if v.IsAbsent() {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(ci+1, ri+2)
			if err != nil {
				return fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v.Export()); err != nil {
				return fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}
	return nil
}
