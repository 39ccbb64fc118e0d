// Package report reads the XML export of the reporting tool. An export
// holds one or more tables, each with a field list and a row list:
//
//	<Report Name="..." Generated="...">
//	  <Table ID="T1">
//	    <Name>Differences</Name>
//	    <FieldList><Field ID="F1"><Name>Annex Ref.</Name></Field>...</FieldList>
//	    <RowList><Row ID="1"><Cell Field="F1">2.14</Cell>...</Row></RowList>
//	  </Table>
//	</Report>
package report

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding/ianaindex"
	"kastelo.dev/annex"
)

var ErrNoTable = errors.New("no table in report")

type Report struct {
	XMLName   xml.Name `xml:"Report"`
	Name      string   `xml:"Name,attr"`
	Generated string   `xml:"Generated,attr"`
	Tables    []Table  `xml:"Table"`
}

type Table struct {
	ID     string  `xml:"ID,attr"`
	Name   string  `xml:"Name"`
	Fields []Field `xml:"FieldList>Field"`
	Rows   []Row   `xml:"RowList>Row"`
}

type Field struct {
	ID   string `xml:"ID,attr"`
	Name string `xml:"Name"`
}

type Row struct {
	ID    string `xml:"ID,attr"`
	Cells []Cell `xml:"Cell"`
}

type Cell struct {
	Field string `xml:"Field,attr"`
	Value string `xml:",chardata"`
}

// Parse decodes an export. Documents declaring a legacy encoding such as
// windows-1252 are transcoded to UTF-8.
func Parse(r io.Reader) (*Report, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader
	var rep Report
	if err := dec.Decode(&rep); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &rep, nil
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}

// Table returns the table with the given ID, or the first table when id
// is empty.
func (r *Report) Table(id string) (*Table, error) {
	if len(r.Tables) == 0 {
		return nil, ErrNoTable
	}
	if id == "" {
		return &r.Tables[0], nil
	}
	for i := range r.Tables {
		if r.Tables[i].ID == id {
			return &r.Tables[i], nil
		}
	}
	return nil, fmt.Errorf("no table with ID %q", id)
}

// Document converts the table rows. Cells reference fields by ID; a cell
// whose Field attribute matches no declared field is resolved by treating
// the attribute as a field name.
func (t *Table) Document(source string) (*annex.Document, error) {
	names := make(map[string]string, len(t.Fields))
	header := make([]string, 0, len(t.Fields))
	for _, f := range t.Fields {
		names[f.ID] = f.Name
		header = append(header, f.Name)
	}
	if _, err := annex.LocateFields(header); err != nil {
		return nil, fmt.Errorf("table %q: %w", t.ID, err)
	}

	var b annex.RowBuilder
	for i, row := range t.Rows {
		cells := make(map[annex.Field]string)
		for _, c := range row.Cells {
			name, ok := names[c.Field]
			if !ok {
				name = c.Field
			}
			if f, ok := annex.ColumnForHeader(name); ok {
				if _, seen := cells[f]; !seen {
					cells[f] = c.Value
				}
			}
		}
		b.Add(i+1, cells)
	}
	return b.Document(source)
}
