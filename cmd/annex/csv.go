package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"

	"kastelo.dev/annex"
)

func differencesCSV(doc *annex.Document) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	hdr := make([]string, len(annex.Fields))
	for i, f := range annex.Fields {
		hdr[i] = f.Header()
	}
	if err := cw.Write(hdr); err != nil {
		return nil, err
	}
	for _, row := range doc.Rows {
		if err := cw.Write(row.Values()); err != nil {
			return nil, err
		}
	}
	cw.Flush()
	return buf.Bytes(), cw.Error()
}

func readCSV(r io.Reader, source string) (*annex.Document, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("empty file")
	}
	columns, err := annex.LocateFields(records[0])
	if err != nil {
		return nil, err
	}

	var b annex.RowBuilder
	for i, rec := range records[1:] {
		cells := make(map[annex.Field]string)
		for f, col := range columns {
			if col < len(rec) {
				cells[f] = rec[col]
			}
		}
		b.Add(i+2, cells)
	}
	return b.Document(source)
}
