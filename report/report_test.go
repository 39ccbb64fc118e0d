package report

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
	"kastelo.dev/annex"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<Report Name="Annex 1" Generated="2026-03-01T10:00:00">
  <Table ID="T0">
    <Name>Cover</Name>
    <FieldList><Field ID="C1"><Name>Title</Name></Field></FieldList>
    <RowList><Row ID="1"><Cell Field="C1">Personnel Licensing</Cell></Row></RowList>
  </Table>
  <Table ID="T1">
    <Name>Differences</Name>
    <FieldList>
      <Field ID="F1"><Name>Annex Ref.</Name></Field>
      <Field ID="F2"><Name>Standard</Name></Field>
      <Field ID="F3"><Name>Difference</Name></Field>
      <Field ID="F4"><Name>State Ref.</Name></Field>
      <Field ID="F5"><Name>Details</Name></Field>
      <Field ID="F6"><Name>Remark</Name></Field>
    </FieldList>
    <RowList>
      <Row ID="1">
        <Cell Field="F1">1.1 (note)</Cell>
        <Cell Field="F2">Definitions</Cell>
        <Cell Field="F3">no difference</Cell>
      </Row>
      <Row ID="2">
        <Cell Field="F1">2.14</Cell>
        <Cell Field="F3">Less protective or partially implemented or not implemented</Cell>
        <Cell Field="F4">CAR 3.2</Cell>
        <Cell Field="Remark">  Planned&#13;&#10;2027 </Cell>
      </Row>
    </RowList>
  </Table>
</Report>`

func TestParse(t *testing.T) {
	rep, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	if rep.Name != "Annex 1" || len(rep.Tables) != 2 {
		t.Fatalf("unexpected report %+v", rep)
	}

	first, err := rep.Table("")
	if err != nil || first.ID != "T0" {
		t.Errorf("unexpected first table %v, %v", first, err)
	}
	if _, err := rep.Table("T9"); err == nil {
		t.Error("expected error for unknown table")
	}

	tbl, err := rep.Table("T1")
	if err != nil {
		t.Fatal(err)
	}
	doc, err := tbl.Document("export.xml")
	if err != nil {
		t.Fatal(err)
	}
	expected := []annex.Row{
		{AnnexRef: "1.1", Standard: "Definitions", Difference: annex.NoDifference},
		{AnnexRef: "2.14", StateRef: "CAR 3.2", Difference: annex.LessProtective, Remark: "Planned\n2027"},
	}
	if !reflect.DeepEqual(doc.Rows, expected) {
		t.Errorf("mismatch\n%#v\n%#v", doc.Rows, expected)
	}
}

func TestParseWindows1252(t *testing.T) {
	src := strings.Replace(sample, "UTF-8", "windows-1252", 1)
	src = strings.Replace(src, "Definitions", "Définitions – général", 1)
	enc, err := charmap.Windows1252.NewEncoder().String(src)
	if err != nil {
		t.Fatal(err)
	}

	rep, err := Parse(bytes.NewReader([]byte(enc)))
	if err != nil {
		t.Fatal(err)
	}
	doc, err := rep.Tables[1].Document("")
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Rows[0].Standard; got != "Définitions – général" {
		t.Errorf("got %q", got)
	}
}

func TestDocumentErrors(t *testing.T) {
	rep, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}

	var merr *annex.MissingColumnsError
	if _, err := rep.Tables[0].Document(""); !errors.As(err, &merr) || len(merr.Fields) != 6 {
		t.Errorf("expected missing columns error, got %v", err)
	}

	tbl := rep.Tables[1]
	tbl.Rows = append(tbl.Rows,
		Row{ID: "3", Cells: []Cell{{Field: "F1", Value: "3"}, {Field: "F3", Value: "Sort of"}}},
		Row{ID: "4", Cells: []Cell{{Field: "F1", Value: "4"}, {Field: "F3", Value: "Nope"}}},
	)
	_, err = tbl.Document("")
	var ierr *annex.InvalidRowsError
	if !errors.As(err, &ierr) {
		t.Fatalf("expected invalid rows error, got %v", err)
	}
	expected := []annex.InvalidRow{
		{Row: 3, AnnexRef: "3", Value: "Sort of"},
		{Row: 4, AnnexRef: "4", Value: "Nope"},
	}
	if !reflect.DeepEqual(ierr.Rows, expected) {
		t.Errorf("got %#v", ierr.Rows)
	}

	if _, err := (&Report{}).Table(""); !errors.Is(err, ErrNoTable) {
		t.Errorf("expected ErrNoTable, got %v", err)
	}
}
