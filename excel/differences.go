// Package excel writes and reads the spreadsheet form of a differences
// document.
package excel

import (
	"fmt"

	"dario.cat/mergo"
	"github.com/xuri/excelize/v2"
	"kastelo.dev/annex"
)

type Options struct {
	SheetName  string
	TableName  string
	TableStyle string
	// Title is stored in the workbook properties, typically the source
	// form's file name.
	Title string
}

var defaultOptions = Options{
	SheetName:  "Differences",
	TableName:  "FormDataTable",
	TableStyle: "TableStyleMedium2",
}

// differenceCol is the sheet column of the category; annex.Fields is in
// Field order.
const differenceCol = 'A' + rune(annex.FieldDifference)

var columnWidths = []float64{10, 60, 28, 18, 50, 40}

// DifferencesXLSX renders the document as a workbook with one sheet
// holding a styled table, a frozen header row and a drop-down of the
// category labels in the Difference column.
func DifferencesXLSX(doc *annex.Document, opts Options) ([]byte, error) {
	if err := mergo.Merge(&opts, defaultOptions); err != nil {
		return nil, err
	}

	xlsx := excelize.NewFile()
	defer xlsx.Close()

	_ = xlsx.SetAppProps(&excelize.AppProperties{
		Application: "kastelo.dev/annex",
	})
	_ = xlsx.SetDocProps(&excelize.DocProperties{
		Title:       opts.Title,
		Description: doc.Source,
	})

	sheet := xlsx.GetSheetName(xlsx.GetActiveSheetIndex())
	if err := xlsx.SetSheetName(sheet, opts.SheetName); err != nil {
		return nil, err
	}
	sheet = opts.SheetName

	for i, w := range columnWidths {
		col := 'A' + rune(i)
		_ = xlsx.SetColWidth(sheet, string(col), string(col), w)
	}

	lastCol := 'A' + rune(len(annex.Fields)-1)
	for i, f := range annex.Fields {
		_ = xlsx.SetCellStr(sheet, cell('A'+rune(i), 1), f.Header())
	}
	style, _ := xlsx.NewStyle(mergeStyles(defaultStyle(), fontBold(), thinBorder("bottom")))
	_ = xlsx.SetCellStyle(sheet, cell('A', 1), cell(lastCol, 1), style)

	body, err := xlsx.NewStyle(mergeStyles(defaultStyle(), wrapText(), textFormat()))
	if err != nil {
		return nil, err
	}
	marked, err := xlsx.NewStyle(mergeStyles(defaultStyle(), wrapText(), textFormat(), highlight()))
	if err != nil {
		return nil, err
	}

	last := len(doc.Rows) + 1
	if len(doc.Rows) > 0 {
		_ = xlsx.SetCellStyle(sheet, cell('A', 2), cell(lastCol, last), body)
	}
	for i, row := range doc.Rows {
		r := i + 2
		for j, v := range row.Values() {
			if err := xlsx.SetCellStr(sheet, cell('A'+rune(j), r), v); err != nil {
				return nil, err
			}
		}
		if row.Difference == annex.MultipleCategories {
			c := cell(differenceCol, r)
			_ = xlsx.SetCellStyle(sheet, c, c, marked)
		}
	}

	if len(doc.Rows) > 0 {
		showStripes := true
		err := xlsx.AddTable(sheet, &excelize.Table{
			Range:          fmt.Sprintf("A1:%c%d", lastCol, last),
			Name:           opts.TableName,
			StyleName:      opts.TableStyle,
			ShowRowStripes: &showStripes,
		})
		if err != nil {
			return nil, fmt.Errorf("add table: %w", err)
		}

		dv := excelize.NewDataValidation(true)
		dv.Sqref = fmt.Sprintf("%c2:%c%d", differenceCol, differenceCol, last)
		if err := dv.SetDropList(categoryLabels()); err != nil {
			return nil, err
		}
		if err := xlsx.AddDataValidation(sheet, dv); err != nil {
			return nil, err
		}
	}

	_ = xlsx.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	buf, err := xlsx.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func categoryLabels() []string {
	labels := make([]string, len(annex.Categories))
	for i, c := range annex.Categories {
		labels[i] = c.String()
	}
	return labels
}
