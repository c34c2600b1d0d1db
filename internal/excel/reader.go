// Package excel decodes uploaded .xlsx workbooks into the tabular form the
// reconciliation core consumes. Cell formatting is flattened to strings;
// the core's parsers deal with serials, currency symbols and date layouts.
package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/grupolom/cartera/internal/core"
)

// The aging export always lands on this sheet, with eleven banner rows
// above the header.
const (
	DefaultLedgerSheet     = "Cartera por edades"
	DefaultLedgerHeaderRow = 12
)

// Options selects where in the workbook the table lives. The zero value
// auto-detects: a workbook containing the aging sheet is read as a ledger
// at its fixed header row, anything else as a plain table on the first
// sheet with the header on row one.
type Options struct {
	Sheet     string // explicit sheet name; empty auto-detects
	HeaderRow int    // 1-based header row; 0 auto-detects

	// LedgerSheet and LedgerHeaderRow override the aging-export location
	// used during auto-detection. Zero values fall back to the defaults.
	LedgerSheet     string
	LedgerHeaderRow int
}

// Read decodes one workbook into a Table. Trailing cells a row does not
// reach come back invalid, which is distinct from a present empty string;
// fully empty rows are skipped.
func Read(r io.Reader, opts Options) (core.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return core.Table{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet, headerRow, err := resolveLocation(f, opts)
	if err != nil {
		return core.Table{}, err
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return core.Table{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < headerRow {
		return core.Table{}, fmt.Errorf("sheet %q has no header row %d", sheet, headerRow)
	}

	table := core.Table{Headers: rows[headerRow-1]}
	for _, raw := range rows[headerRow:] {
		row := make([]core.Cell, len(raw))
		empty := true
		for i, v := range raw {
			row[i] = core.Cell{Value: v, Valid: true}
			if v != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func resolveLocation(f *excelize.File, opts Options) (string, int, error) {
	ledgerSheet := opts.LedgerSheet
	if ledgerSheet == "" {
		ledgerSheet = DefaultLedgerSheet
	}
	ledgerHeaderRow := opts.LedgerHeaderRow
	if ledgerHeaderRow <= 0 {
		ledgerHeaderRow = DefaultLedgerHeaderRow
	}

	sheet := opts.Sheet
	headerRow := opts.HeaderRow

	if sheet == "" {
		if idx, _ := f.GetSheetIndex(ledgerSheet); idx >= 0 {
			sheet = ledgerSheet
			if headerRow == 0 {
				headerRow = ledgerHeaderRow
			}
		} else {
			sheet = f.GetSheetName(0)
		}
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return "", 0, fmt.Errorf("sheet not found: %q", sheet)
	}

	if headerRow == 0 {
		headerRow = 1
	}
	return sheet, headerRow, nil
}
