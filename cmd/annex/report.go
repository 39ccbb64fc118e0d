package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"kastelo.dev/annex"
	"kastelo.dev/annex/excel"
)

func reportToXLSX(input, table, output string) error {
	doc, err := loadSource(input, sourceOptions{table: table})
	if err != nil {
		return err
	}
	if output == "" {
		output = annex.UniqueName(annex.ReplaceExt(input, "", ".xlsx"))
	}
	bs, err := excel.DifferencesXLSX(doc, excel.Options{Title: filepath.Base(input)})
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, bs, 0o644); err != nil {
		return err
	}
	slog.Info("Wrote data", "output", output, "rows", len(doc.Rows))
	return nil
}
