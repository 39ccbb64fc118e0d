package excel

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"kastelo.dev/annex"
)

var ErrNoHeader = errors.New("no header row found")

// ReadDifferences reads a workbook produced by DifferencesXLSX, or edited
// from one. Columns are located by header name. When sheet is empty the
// Differences sheet is used if present, otherwise the active sheet. All
// rows with an unrecognised category are reported together in an
// *annex.InvalidRowsError.
func ReadDifferences(r io.Reader, sheet string) (*annex.Document, error) {
	xlsx, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer xlsx.Close()

	if sheet == "" {
		sheet = xlsx.GetSheetName(xlsx.GetActiveSheetIndex())
		if idx, err := xlsx.GetSheetIndex(defaultOptions.SheetName); err == nil && idx >= 0 {
			sheet = defaultOptions.SheetName
		}
	}
	rows, err := xlsx.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}

	hdr := -1
	for i, row := range rows {
		if !blank(row) {
			hdr = i
			break
		}
	}
	if hdr < 0 {
		return nil, ErrNoHeader
	}

	columns, err := annex.LocateFields(rows[hdr])
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}

	// Trailing rows without any text are dropped by GetRows; the extent of
	// the table, when there is one, tells how many data rows there are.
	n := len(rows) - hdr - 1
	if end := tableEnd(xlsx, sheet); end > 0 && end-hdr-1 > n {
		n = end - hdr - 1
	}

	var b annex.RowBuilder
	for i := 0; i < n; i++ {
		var row []string
		if idx := hdr + 1 + i; idx < len(rows) {
			row = rows[idx]
		}
		cells := make(map[annex.Field]string)
		for f, col := range columns {
			if col < len(row) {
				cells[f] = row[col]
			}
		}
		b.Add(hdr+2+i, cells)
	}
	return b.Document(sheet)
}

func blank(row []string) bool {
	for _, v := range row {
		if annex.CleanText(v) != "" {
			return false
		}
	}
	return true
}

// tableEnd returns the last row of the first table on the sheet, or zero.
func tableEnd(xlsx *excelize.File, sheet string) int {
	tables, err := xlsx.GetTables(sheet)
	if err != nil || len(tables) == 0 {
		return 0
	}
	_, end, err := rangeRows(tables[0].Range)
	if err != nil {
		return 0
	}
	return end
}

func rangeRows(ref string) (int, int, error) {
	from, to, ok := strings.Cut(ref, ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid range %q", ref)
	}
	_, r1, err := excelize.CellNameToCoordinates(from)
	if err != nil {
		return 0, 0, err
	}
	_, r2, err := excelize.CellNameToCoordinates(to)
	if err != nil {
		return 0, 0, err
	}
	return r1, r2, nil
}
