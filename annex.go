package annex // import "kastelo.dev/annex"

import (
	"fmt"
	"strings"
)

// Columns is the number of columns in the form table.
const Columns = 11

// Positional layout of the form table, 1-based.
const (
	ColAnnexRef = 1
	ColStandard = 2
	ColStateRef = 3
	ColDetails  = 10
	ColRemark   = 11
)

type Document struct {
	Source string
	Rows   []Row
}

type Row struct {
	AnnexRef   string
	Standard   string
	StateRef   string
	Difference Category
	Details    string
	Remark     string
}

// Validate returns an *InvalidRowsError listing rows with more than one
// category selected.
func (d *Document) Validate() error {
	var invalid []InvalidRow
	for i, row := range d.Rows {
		if row.Difference == MultipleCategories {
			invalid = append(invalid, InvalidRow{Row: i + 1, AnnexRef: row.AnnexRef, Value: row.Difference.String()})
		}
	}
	if len(invalid) > 0 {
		return &InvalidRowsError{Rows: invalid}
	}
	return nil
}

type InvalidRow struct {
	Row      int
	AnnexRef string
	Value    string
}

type InvalidRowsError struct {
	Rows []InvalidRow
}

func (e *InvalidRowsError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d invalid difference value(s):", len(e.Rows))
	for _, r := range e.Rows {
		if r.AnnexRef != "" {
			fmt.Fprintf(&b, " row %d (%s) %q;", r.Row, r.AnnexRef, r.Value)
		} else {
			fmt.Fprintf(&b, " row %d %q;", r.Row, r.Value)
		}
	}
	return strings.TrimSuffix(b.String(), ";")
}
