// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger reads and appends rows of the transaction workbook.
// The workbook is the system of record: one header row, one row per
// transaction, matched to columns by header name rather than position.
package ledger

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/meshintel/cre-ledger/pkg/types"
)

var logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

// Table holds the workbook contents: the header row and the data rows
// below it. Short rows are padded so every row has one cell per column.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Append writes rec as a new row at the bottom of the workbook at path,
// creating the workbook (with a header row) if it does not exist. Cells
// are matched to columns by header name; canonical columns missing from
// an existing header are added to its right. An existing file that
// cannot be parsed is replaced with a fresh workbook holding only the
// new row. Returns the number of transaction rows after the append.
func Append(path string, rec types.Record) (int, error) {
	f, err := excelize.OpenFile(path)
	fresh := false
	if err != nil {
		if _, statErr := os.Stat(path); statErr == nil {
			logger.Warn().Err(err).Str("path", path).
				Msg("workbook unreadable, starting a fresh one")
		}
		f = excelize.NewFile()
		fresh = true
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return 0, fmt.Errorf("reading workbook rows: %w", err)
	}

	var header []string
	if len(rows) > 0 {
		header = rows[0]
	}
	for _, col := range types.Columns() {
		if !containsColumn(header, col) {
			header = append(header, col)
		}
	}

	headerCells := make([]any, len(header))
	for i, col := range header {
		headerCells[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &headerCells); err != nil {
		return 0, fmt.Errorf("writing header row: %w", err)
	}

	byColumn := rec.ByColumn()
	cells := make([]any, len(header))
	for i, col := range header {
		if v, ok := byColumn[col]; ok {
			cells[i] = v
		}
	}

	dataRow := len(rows) + 1
	if dataRow == 1 {
		dataRow = 2 // row 1 is the header
	}
	axis, err := excelize.CoordinatesToCellName(1, dataRow)
	if err != nil {
		return 0, fmt.Errorf("locating row %d: %w", dataRow, err)
	}
	if err := f.SetSheetRow(sheet, axis, &cells); err != nil {
		return 0, fmt.Errorf("writing transaction row: %w", err)
	}

	if fresh {
		err = f.SaveAs(path)
	} else {
		err = f.Save()
	}
	if err != nil {
		return 0, fmt.Errorf("saving workbook: %w", err)
	}
	return dataRow - 1, nil
}

// Read loads the workbook at path. A workbook with no rows at all comes
// back with the canonical columns and no data.
func Read(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading workbook rows: %w", err)
	}
	if len(rows) == 0 {
		return &Table{Columns: types.Columns()}, nil
	}

	header := rows[0]
	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		for len(row) < len(header) {
			row = append(row, "")
		}
		data = append(data, row)
	}
	return &Table{Columns: header, Rows: data}, nil
}

// Cell returns the value of the named column in data row i, or "" when
// the column is absent.
func (t *Table) Cell(i int, column string) string {
	for j, col := range t.Columns {
		if col == column {
			if j < len(t.Rows[i]) {
				return t.Rows[i][j]
			}
			return ""
		}
	}
	return ""
}

func containsColumn(header []string, col string) bool {
	for _, h := range header {
		if h == col {
			return true
		}
	}
	return false
}
