package docx

import (
	"errors"
	"fmt"
	"log/slog"

	"kastelo.dev/annex"
)

var (
	ErrNoTable    = errors.New("no tables found in the document")
	ErrNoCheckBox = errors.New("no checkbox in category cell")
)

type Options struct {
	// HeaderRows is the number of leading table rows that are not data.
	HeaderRows int
	// MaxRows limits the number of data rows processed; zero means all.
	MaxRows int
	Logger  *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// ColumnsError is returned when the form table does not have the
// expected layout.
type ColumnsError struct {
	Columns int
}

func (e *ColumnsError) Error() string {
	return fmt.Sprintf("expected %d columns in form table, found %d", annex.Columns, e.Columns)
}

// RowCountError is returned when the number of source rows does not match
// the number of table rows.
type RowCountError struct {
	Table, Source int
}

func (e *RowCountError) Error() string {
	return fmt.Sprintf("row count mismatch: form table has %d rows, source has %d", e.Table, e.Source)
}

func formRows(f *File, opts Options) ([]*Row, error) {
	tables := f.Tables()
	if len(tables) == 0 {
		return nil, ErrNoTable
	}
	tbl := tables[0]
	if cols := tbl.Columns(); cols != annex.Columns {
		return nil, &ColumnsError{Columns: cols}
	}

	rows := tbl.Rows()
	if opts.HeaderRows > 0 {
		if opts.HeaderRows > len(rows) {
			return nil, fmt.Errorf("table has %d rows, fewer than %d header rows", len(rows), opts.HeaderRows)
		}
		rows = rows[opts.HeaderRows:]
	}
	if opts.MaxRows > 0 && len(rows) > opts.MaxRows {
		rows = rows[:opts.MaxRows]
	}
	return rows, nil
}

func rowCells(row *Row, idx int) ([]*Cell, error) {
	cells := make([]*Cell, annex.Columns+1)
	for col := 1; col <= annex.Columns; col++ {
		if cells[col] = row.Cell(col); cells[col] == nil {
			return nil, fmt.Errorf("row %d: no cell in column %d", idx, col)
		}
	}
	return cells, nil
}

// Extract reads the form table into a document. The category of each row
// is derived from the checkboxes in columns 4 through 9.
func Extract(f *File, opts Options) (*annex.Document, error) {
	log := opts.logger()
	rows, err := formRows(f, opts)
	if err != nil {
		return nil, err
	}

	doc := &annex.Document{Rows: make([]annex.Row, 0, len(rows))}
	for i, row := range rows {
		idx := i + 1
		cells, err := rowCells(row, idx)
		if err != nil {
			return nil, err
		}

		raw := cells[annex.ColAnnexRef].Text()
		r := annex.Row{
			AnnexRef: annex.CleanRef(raw),
			Standard: annex.CleanText(cells[annex.ColStandard].Text()),
			StateRef: annex.CleanText(cells[annex.ColStateRef].Text()),
			Details:  annex.CleanText(cells[annex.ColDetails].Text()),
			Remark:   annex.CleanText(cells[annex.ColRemark].Text()),
		}
		log.Debug("Reference cell", "row", idx, "raw", raw, "ref", r.AnnexRef)

		var selected [annex.NumCategories]bool
		for k, cat := range annex.Categories {
			for _, cb := range cells[cat.Column()].CheckBoxes() {
				if cb.Checked() {
					selected[k] = true
				}
			}
		}
		r.Difference = annex.CategoryFromSelection(selected)
		if r.Difference == annex.MultipleCategories {
			log.Warn("More than one category selected", "row", idx, "ref", r.AnnexRef)
		}

		doc.Rows = append(doc.Rows, r)
	}
	return doc, nil
}

// FormField describes one checkbox found in the form table.
type FormField struct {
	Row, Col int
	Name     string
	Kind     string
	Checked  bool
}

// Scan lists every checkbox in the first table, regardless of layout.
func Scan(f *File) ([]FormField, error) {
	tables := f.Tables()
	if len(tables) == 0 {
		return nil, ErrNoTable
	}
	tbl := tables[0]
	cols := tbl.Columns()

	var res []FormField
	for i, row := range tbl.Rows() {
		for col := 1; col <= cols; col++ {
			cell := row.Cell(col)
			if cell == nil {
				continue
			}
			if prev := row.Cell(col - 1); prev != nil && prev.n == cell.n {
				// spanned, already listed
				continue
			}
			for _, cb := range cell.CheckBoxes() {
				res = append(res, FormField{
					Row:     i + 1,
					Col:     col,
					Name:    cb.Name(),
					Kind:    cb.Kind(),
					Checked: cb.Checked(),
				})
			}
		}
	}
	return res, nil
}

// Result summarises a write-back.
type Result struct {
	Rows     int
	Changed  int
	Warnings []string
}

// Apply writes categories and free text from doc back into the form
// table. All preconditions are checked before anything is modified: no
// row may carry the multiple-category marker, the row counts must match
// and the cell of each selected category must hold a checkbox. Rows
// without checkboxes, such as heading rows, pass as long as they select
// nothing. The reference and
// standard columns are never written; reference mismatches are returned
// as warnings.
func Apply(f *File, doc *annex.Document, opts Options) (*Result, error) {
	log := opts.logger()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	rows, err := formRows(f, opts)
	if err != nil {
		return nil, err
	}
	if len(rows) != len(doc.Rows) {
		return nil, &RowCountError{Table: len(rows), Source: len(doc.Rows)}
	}

	targets := make([][]*Cell, len(rows))
	for i, row := range rows {
		cells, err := rowCells(row, i+1)
		if err != nil {
			return nil, err
		}
		if cat := doc.Rows[i].Difference; cat.Selectable() && len(cells[cat.Column()].CheckBoxes()) == 0 {
			return nil, fmt.Errorf("row %d column %d: %w", i+1, cat.Column(), ErrNoCheckBox)
		}
		targets[i] = cells
	}

	res := &Result{Rows: len(rows)}
	for i, cells := range targets {
		src := doc.Rows[i]
		changed := false

		if ref := annex.CleanRef(cells[annex.ColAnnexRef].Text()); ref != src.AnnexRef {
			w := fmt.Sprintf("row %d: reference %q in form, %q in source", i+1, ref, src.AnnexRef)
			log.Warn("Reference mismatch", "row", i+1, "form", ref, "source", src.AnnexRef)
			res.Warnings = append(res.Warnings, w)
		}

		sel := src.Difference.Selection()
		for k, cat := range annex.Categories {
			for j, cb := range cells[cat.Column()].CheckBoxes() {
				want := sel[k] && j == 0
				if cb.Checked() != want {
					cb.SetChecked(want)
					changed = true
				}
			}
		}

		texts := []struct {
			col int
			val string
		}{
			{annex.ColStateRef, src.StateRef},
			{annex.ColDetails, src.Details},
			{annex.ColRemark, src.Remark},
		}
		for _, t := range texts {
			if annex.CleanText(cells[t.col].Text()) != t.val {
				cells[t.col].SetText(t.val)
				changed = true
			}
		}

		if changed {
			res.Changed++
			log.Debug("Row updated", "row", i+1, "ref", src.AnnexRef, "difference", src.Difference)
		}
	}
	return res, nil
}
