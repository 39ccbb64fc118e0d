package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"kastelo.dev/annex"
	"kastelo.dev/annex/docx"
	"kastelo.dev/annex/excel"
	"kastelo.dev/annex/report"
)

type sourceOptions struct {
	sheet string
	table string
	docx  docx.Options
}

// loadSource reads a document from any of the supported formats, chosen
// by file extension.
func loadSource(path string, opts sourceOptions) (*annex.Document, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".docx":
		f, err := docx.Open(path)
		if err != nil {
			return nil, err
		}
		doc, err := docx.Extract(f, opts.docx)
		if err != nil {
			return nil, err
		}
		doc.Source = filepath.Base(path)
		return doc, nil

	case ".xlsx":
		fd, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer fd.Close()
		doc, err := excel.ReadDifferences(fd, opts.sheet)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		doc.Source = filepath.Base(path)
		return doc, nil

	case ".csv":
		fd, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer fd.Close()
		doc, err := readCSV(fd, filepath.Base(path))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return doc, nil

	case ".xml":
		fd, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer fd.Close()
		rep, err := report.Parse(fd)
		if err != nil {
			return nil, err
		}
		tbl, err := rep.Table(opts.table)
		if err != nil {
			return nil, err
		}
		return tbl.Document(filepath.Base(path))

	default:
		return nil, fmt.Errorf("unsupported source type %q", ext)
	}
}
