package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"kastelo.dev/annex"
)

func TestCSVRoundTrip(t *testing.T) {
	doc := &annex.Document{
		Source: "form.csv",
		Rows: []annex.Row{
			{AnnexRef: "1.1", Standard: "Definitions, general", Difference: annex.NoDifference},
			{AnnexRef: "2.14", Standard: "Two\nlines", StateRef: "CAR 3.2", Difference: annex.SignificantDifference, Details: `"quoted"`},
			{AnnexRef: "3"},
		},
	}
	bs, err := differencesCSV(doc)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(bs, []byte("Annex Ref.,Standard,Difference,State Ref.,Details,Remark\n")) {
		t.Errorf("unexpected header in %q", bs)
	}

	back, err := readCSV(bytes.NewReader(bs), "form.csv")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back, doc) {
		t.Errorf("mismatch\n%#v\n%#v", back, doc)
	}
}

func TestReadCSVInvalid(t *testing.T) {
	src := "Annex Ref.,Standard,Difference,State Ref.,Details,Remark\n" +
		"1,a,no difference,,,\n" +
		"2,b,perhaps,,,\n"
	_, err := readCSV(strings.NewReader(src), "x.csv")
	var ierr *annex.InvalidRowsError
	if !errors.As(err, &ierr) || len(ierr.Rows) != 1 || ierr.Rows[0].Row != 3 {
		t.Errorf("expected invalid row 3, got %v", err)
	}
}

func TestLoadSourceByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	src := "Remark,Details,State Ref.,Difference,Standard,Annex Ref.\nr,d,s,not applicable,std,4.2\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := loadSource(path, sourceOptions{})
	if err != nil {
		t.Fatal(err)
	}
	expected := []annex.Row{{AnnexRef: "4.2", Standard: "std", StateRef: "s", Difference: annex.NotApplicable, Details: "d", Remark: "r"}}
	if doc.Source != "data.csv" || !reflect.DeepEqual(doc.Rows, expected) {
		t.Errorf("unexpected %#v", doc)
	}

	if _, err := loadSource(filepath.Join(dir, "data.pdf"), sourceOptions{}); err == nil {
		t.Error("expected error for unsupported type")
	}
}
