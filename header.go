package annex

import (
	"fmt"
	"strings"
)

// Field identifies one column of the tabular representation.
type Field int

const (
	FieldAnnexRef Field = iota
	FieldStandard
	FieldDifference
	FieldStateRef
	FieldDetails
	FieldRemark
)

// Fields lists the tabular columns in output order.
var Fields = []Field{FieldAnnexRef, FieldStandard, FieldDifference, FieldStateRef, FieldDetails, FieldRemark}

var headers = map[Field]string{
	FieldAnnexRef:   "Annex Ref.",
	FieldStandard:   "Standard",
	FieldDifference: "Difference",
	FieldStateRef:   "State Ref.",
	FieldDetails:    "Details",
	FieldRemark:     "Remark",
}

var headerAliases = map[string]Field{
	"annex ref":             FieldAnnexRef,
	"annex reference":       FieldAnnexRef,
	"reference":             FieldAnnexRef,
	"ref":                   FieldAnnexRef,
	"standard":              FieldStandard,
	"standard text":         FieldStandard,
	"difference":            FieldDifference,
	"category":              FieldDifference,
	"difference category":   FieldDifference,
	"state ref":             FieldStateRef,
	"state reference":       FieldStateRef,
	"national reference":    FieldStateRef,
	"details":               FieldDetails,
	"details of difference": FieldDetails,
	"remark":                FieldRemark,
	"remarks":               FieldRemark,
	"comments":              FieldRemark,
}

func (f Field) Header() string {
	return headers[f]
}

// ColumnForHeader resolves a spreadsheet or report header to a field.
// Matching ignores case, surrounding punctuation and repeated spaces.
func ColumnForHeader(h string) (Field, bool) {
	key := strings.Trim(labelKey(CleanText(h)), ".:*")
	key = strings.Join(strings.Fields(strings.ReplaceAll(key, ".", " ")), " ")
	f, ok := headerAliases[key]
	return f, ok
}

// MissingColumnsError is returned when a header row lacks one or more
// of the tabular columns.
type MissingColumnsError struct {
	Fields []Field
}

func (e *MissingColumnsError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Header()
	}
	return fmt.Sprintf("missing column(s): %s", strings.Join(names, ", "))
}

// LocateFields maps each field to its 0-based index in the header row.
// Unrecognised headers are ignored; the first match for a field wins.
func LocateFields(header []string) (map[Field]int, error) {
	cols := make(map[Field]int)
	for i, h := range header {
		if f, ok := ColumnForHeader(h); ok {
			if _, seen := cols[f]; !seen {
				cols[f] = i
			}
		}
	}
	var missing []Field
	for _, f := range Fields {
		if _, ok := cols[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Fields: missing}
	}
	return cols, nil
}

// Value returns the row's value for f as it appears in tabular output.
func (r Row) Value(f Field) string {
	switch f {
	case FieldAnnexRef:
		return r.AnnexRef
	case FieldStandard:
		return r.Standard
	case FieldDifference:
		return r.Difference.String()
	case FieldStateRef:
		return r.StateRef
	case FieldDetails:
		return r.Details
	case FieldRemark:
		return r.Remark
	}
	return ""
}

// Values returns the row in Fields order.
func (r Row) Values() []string {
	vals := make([]string, len(Fields))
	for i, f := range Fields {
		vals[i] = r.Value(f)
	}
	return vals
}

// RowBuilder collects tabular cells into rows, cleaning text and parsing
// categories. Rows with invalid categories are collected rather than
// failing on the first, so that all of them can be reported at once.
type RowBuilder struct {
	rows    []Row
	invalid []InvalidRow
}

// Add appends a row built from the given cell values. line is the
// source row number used in error reports.
func (b *RowBuilder) Add(line int, cells map[Field]string) {
	row := Row{
		AnnexRef: CleanRef(cells[FieldAnnexRef]),
		Standard: CleanText(cells[FieldStandard]),
		StateRef: CleanText(cells[FieldStateRef]),
		Details:  CleanText(cells[FieldDetails]),
		Remark:   CleanText(cells[FieldRemark]),
	}
	cat, err := ParseCategory(CleanText(cells[FieldDifference]))
	if err != nil {
		b.invalid = append(b.invalid, InvalidRow{Row: line, AnnexRef: row.AnnexRef, Value: CleanText(cells[FieldDifference])})
	}
	row.Difference = cat
	b.rows = append(b.rows, row)
}

// Document returns the collected rows, or an *InvalidRowsError when any
// row had an unrecognised category.
func (b *RowBuilder) Document(source string) (*Document, error) {
	if len(b.invalid) > 0 {
		return nil, &InvalidRowsError{Rows: b.invalid}
	}
	return &Document{Source: source, Rows: b.rows}, nil
}
