package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"kastelo.dev/annex"
	"kastelo.dev/annex/docx"
)

type importOptions struct {
	form, from   string
	sheet, table string
	output       string
	inPlace      bool
	unprotect    bool
	dryRun       bool
	headerRows   int
}

func importData(opts importOptions) error {
	dopts := docx.Options{HeaderRows: opts.headerRows}
	src, err := loadSource(opts.from, sourceOptions{sheet: opts.sheet, table: opts.table, docx: dopts})
	if err != nil {
		return err
	}
	slog.Info("Read source", "source", opts.from, "rows", len(src.Rows))

	f, err := docx.Open(opts.form)
	if err != nil {
		return err
	}
	before, err := docx.Extract(f, dopts)
	if err != nil {
		return err
	}
	slog.Debug("Form protection", "protection", f.Protection())

	res, err := docx.Apply(f, src, dopts)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		fmt.Println("warning:", w)
	}

	if opts.dryRun {
		after, err := docx.Extract(f, dopts)
		if err != nil {
			return err
		}
		fmt.Print(annex.Diff(filepath.Base(opts.form), before, after))
		slog.Info("Dry run", "rows", res.Rows, "changed", res.Changed)
		return nil
	}

	if opts.unprotect && f.Unprotect() {
		slog.Info("Lifted form protection")
	}

	output := opts.output
	switch {
	case opts.inPlace:
		output = opts.form
	case output == "":
		output = annex.UniqueName(annex.ReplaceExt(opts.form, "_updated", ".docx"))
	}
	if err := f.Save(output); err != nil {
		return err
	}
	slog.Info("Wrote form", "output", output, "rows", res.Rows, "changed", res.Changed)
	return nil
}
