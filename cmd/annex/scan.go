package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"kastelo.dev/annex"
	"kastelo.dev/annex/docx"
)

func scan(form string) error {
	f, err := docx.Open(form)
	if err != nil {
		return err
	}
	fields, err := docx.Scan(f)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %s\n\n", form, f.Protection())
	tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ROW\tCOL\tCATEGORY\tNAME\tKIND\tCHECKED")
	for _, fl := range fields {
		cat, _ := annex.CategoryForColumn(fl.Col)
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%v\n", fl.Row, fl.Col, cat, fl.Name, fl.Kind, fl.Checked)
	}
	return tw.Flush()
}
