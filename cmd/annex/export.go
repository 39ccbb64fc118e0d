package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"kastelo.dev/annex"
	"kastelo.dev/annex/docx"
	"kastelo.dev/annex/excel"
)

func export(form, output, format string, headerRows, maxRows int) error {
	f, err := docx.Open(form)
	if err != nil {
		return err
	}
	doc, err := docx.Extract(f, docx.Options{HeaderRows: headerRows, MaxRows: maxRows})
	if err != nil {
		return err
	}
	slog.Info("Read form", "form", form, "rows", len(doc.Rows), "protection", f.Protection())

	if output == "" {
		output = annex.UniqueName(annex.ReplaceExt(form, "_data", "."+format))
	}

	var bs []byte
	switch format {
	case "csv":
		bs, err = differencesCSV(doc)
	default:
		bs, err = excel.DifferencesXLSX(doc, excel.Options{Title: filepath.Base(form)})
	}
	if err != nil {
		return fmt.Errorf("creating %s: %w", format, err)
	}
	if err := os.WriteFile(output, bs, 0o644); err != nil {
		return err
	}
	slog.Info("Wrote data", "output", output)
	return nil
}
