package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/alecthomas/kingpin"

	_ "kastelo.dev/annex/store/postgres"
	_ "kastelo.dev/annex/store/sqlite"
)

var (
	verbose = kingpin.Flag("verbose", "Enable debug logging").Short('v').Bool()

	cmdExport        = kingpin.Command("export", "Export the form table to a spreadsheet")
	exportForm       = cmdExport.Flag("form", "Form document (.docx)").Required().ExistingFile()
	exportOutput     = cmdExport.Flag("output", "Output file (default derived from the form name)").String()
	exportFormat     = cmdExport.Flag("format", "Output format").Default("xlsx").Enum("xlsx", "csv")
	exportHeaderRows = cmdExport.Flag("header-rows", "Leading table rows to skip").Default("0").Int()
	exportMaxRows    = cmdExport.Flag("max-rows", "Maximum number of rows to read (0 for all)").Default("0").Int()

	cmdImport       = kingpin.Command("import", "Write spreadsheet or report data back into the form")
	importForm      = cmdImport.Flag("form", "Form document (.docx)").Required().ExistingFile()
	importFrom      = cmdImport.Flag("from", "Source data (.xlsx, .csv or report .xml)").Required().ExistingFile()
	importSheet     = cmdImport.Flag("sheet", "Worksheet name").String()
	importTable     = cmdImport.Flag("table", "Report table ID").String()
	importOutput    = cmdImport.Flag("output", "Output file (default derived from the form name)").String()
	importInPlace   = cmdImport.Flag("in-place", "Overwrite the form document").Bool()
	importUnprotect = cmdImport.Flag("unprotect", "Lift form protection in the written document").Bool()
	importDryRun    = cmdImport.Flag("dry-run", "Show the changes without writing anything").Bool()
	importHeader    = cmdImport.Flag("header-rows", "Leading table rows to skip").Default("0").Int()

	cmdReport    = kingpin.Command("report", "Convert a report XML export to a spreadsheet")
	reportInput  = cmdReport.Flag("input", "Report export (.xml)").Required().ExistingFile()
	reportTable  = cmdReport.Flag("table", "Table ID (default first table)").String()
	reportOutput = cmdReport.Flag("output", "Output file").String()

	cmdScan  = kingpin.Command("scan", "List the checkbox form fields of the form table")
	scanForm = cmdScan.Flag("form", "Form document (.docx)").Required().ExistingFile()

	cmdArchive  = kingpin.Command("archive", "Keep converted documents in a database")
	archiveKind = cmdArchive.Flag("db-kind", "Database kind").Envar("ANNEX_DB_KIND").Default("sqlite").Enum("sqlite", "postgres")
	archiveDSN  = cmdArchive.Flag("dsn", "Database DSN").Envar("ANNEX_DSN").Default("annex.db").String()

	cmdArchiveSave = cmdArchive.Command("save", "Archive a form, spreadsheet or report")
	archiveFrom    = cmdArchiveSave.Arg("source", "Source file (.docx, .xlsx, .csv or .xml)").Required().ExistingFile()

	cmdArchiveList = cmdArchive.Command("list", "List archived snapshots")
	archiveSource  = cmdArchiveList.Flag("source", "Only snapshots of this source").String()

	cmdArchiveShow = cmdArchive.Command("show", "Show an archived snapshot")
	archiveID      = cmdArchiveShow.Arg("id", "Snapshot ID").Required().Int64()
	archiveAgainst = cmdArchiveShow.Flag("diff", "Show the changes from this snapshot ID instead").Int64()
)

func main() {
	cmd := kingpin.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx := context.Background()
	var err error
	switch cmd {
	case cmdExport.FullCommand():
		err = export(*exportForm, *exportOutput, *exportFormat, *exportHeaderRows, *exportMaxRows)
	case cmdImport.FullCommand():
		err = importData(importOptions{
			form:       *importForm,
			from:       *importFrom,
			sheet:      *importSheet,
			table:      *importTable,
			output:     *importOutput,
			inPlace:    *importInPlace,
			unprotect:  *importUnprotect,
			dryRun:     *importDryRun,
			headerRows: *importHeader,
		})
	case cmdReport.FullCommand():
		err = reportToXLSX(*reportInput, *reportTable, *reportOutput)
	case cmdScan.FullCommand():
		err = scan(*scanForm)
	case cmdArchiveSave.FullCommand():
		err = archiveSave(ctx, *archiveFrom)
	case cmdArchiveList.FullCommand():
		err = archiveList(ctx, *archiveSource)
	case cmdArchiveShow.FullCommand():
		err = archiveShow(ctx, *archiveID, *archiveAgainst)
	}
	if err != nil {
		slog.Error("Failed", "command", cmd, "error", err)
		os.Exit(1)
	}
}
