package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"testing"
)

const (
	nsW   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsW14 = "http://schemas.microsoft.com/office/word/2010/wordml"
)

// testRow describes one row of a generated form. checked holds the
// 1-based columns whose checkbox is ticked.
type testRow struct {
	ref, standard, stateRef string
	checked                 []int
	details, remark         string
	contentControls         bool
	textFields              bool
}

func esc(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func paragraphs(s string) string {
	var b strings.Builder
	for _, line := range strings.Split(s, "\n") {
		b.WriteString(`<w:p><w:pPr><w:jc w:val="left"/></w:pPr>`)
		if line != "" {
			fmt.Fprintf(&b, `<w:r><w:rPr><w:sz w:val="18"/></w:rPr><w:t xml:space="preserve">%s</w:t></w:r>`, esc(line))
		}
		b.WriteString(`</w:p>`)
	}
	return b.String()
}

func textCell(s string) string {
	return `<w:tc><w:tcPr><w:tcW w:w="1000" w:type="dxa"/></w:tcPr>` + paragraphs(s) + `</w:tc>`
}

func formTextCell(s string) string {
	return `<w:tc><w:tcPr><w:tcW w:w="1000" w:type="dxa"/></w:tcPr><w:p>` +
		`<w:r><w:fldChar w:fldCharType="begin"><w:ffData><w:name w:val="Text1"/><w:enabled/><w:textInput/></w:ffData></w:fldChar></w:r>` +
		`<w:r><w:instrText xml:space="preserve"> FORMTEXT </w:instrText></w:r>` +
		`<w:r><w:fldChar w:fldCharType="separate"/></w:r>` +
		`<w:r><w:rPr><w:noProof/></w:rPr><w:t xml:space="preserve">` + esc(s) + `</w:t></w:r>` +
		`<w:r><w:fldChar w:fldCharType="end"/></w:r></w:p></w:tc>`
}

func legacyBoxCell(name string, checked bool) string {
	state := ""
	if checked {
		state = `<w:checked/>`
	}
	return `<w:tc><w:p>` +
		`<w:r><w:fldChar w:fldCharType="begin"><w:ffData><w:name w:val="` + name + `"/><w:enabled/><w:calcOnExit w:val="0"/>` +
		`<w:checkBox><w:sizeAuto/><w:default w:val="0"/>` + state + `</w:checkBox></w:ffData></w:fldChar></w:r>` +
		`<w:r><w:instrText xml:space="preserve"> FORMCHECKBOX </w:instrText></w:r>` +
		`<w:r><w:fldChar w:fldCharType="end"/></w:r></w:p></w:tc>`
}

func contentBoxCell(name string, checked bool) string {
	val, glyph := "0", "☐"
	if checked {
		val, glyph = "1", "☒"
	}
	return `<w:tc><w:p><w:sdt><w:sdtPr><w:tag w:val="` + name + `"/>` +
		`<w14:checkbox><w14:checked w14:val="` + val + `"/>` +
		`<w14:checkedState w14:val="2612" w14:font="MS Gothic"/><w14:uncheckedState w14:val="2610" w14:font="MS Gothic"/></w14:checkbox>` +
		`</w:sdtPr><w:sdtContent><w:r><w:rPr><w:rFonts w:ascii="MS Gothic"/></w:rPr><w:t>` + glyph + `</w:t></w:r></w:sdtContent></w:sdt></w:p></w:tc>`
}

func formRowXML(i int, r testRow) string {
	var b strings.Builder
	b.WriteString(`<w:tr>`)
	b.WriteString(textCell(r.ref))
	b.WriteString(textCell(r.standard))
	text := textCell
	if r.textFields {
		text = formTextCell
	}
	b.WriteString(text(r.stateRef))
	for col := 4; col <= 9; col++ {
		checked := false
		for _, c := range r.checked {
			if c == col {
				checked = true
			}
		}
		name := fmt.Sprintf("Check%d_%d", i, col)
		if r.contentControls {
			b.WriteString(contentBoxCell(name, checked))
		} else {
			b.WriteString(legacyBoxCell(name, checked))
		}
	}
	b.WriteString(text(r.details))
	b.WriteString(text(r.remark))
	b.WriteString(`</w:tr>`)
	return b.String()
}

// headingRowXML is a title row with text in every column, including the
// category columns.
func headingRowXML() string {
	labels := []string{"Annex Ref.", "Standard", "State Ref.",
		"No Difference", "More Exacting", "Different in character",
		"Less protective or partially", "Significant Difference", "Not Applicable",
		"Details", "Remark"}
	var b strings.Builder
	b.WriteString(`<w:tr><w:trPr><w:tblHeader/></w:trPr>`)
	for _, l := range labels {
		b.WriteString(textCell(l))
	}
	b.WriteString(`</w:tr>`)
	return b.String()
}

func documentXML(cols int, rows ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\r\n")
	b.WriteString(`<w:document xmlns:w="` + nsW + `" xmlns:w14="` + nsW14 + `"><w:body>`)
	b.WriteString(`<w:p><w:r><w:t>Differences</w:t></w:r></w:p>`)
	b.WriteString(`<w:tbl><w:tblPr><w:tblW w:w="0" w:type="auto"/></w:tblPr><w:tblGrid>`)
	for i := 0; i < cols; i++ {
		b.WriteString(`<w:gridCol w:w="1000"/>`)
	}
	b.WriteString(`</w:tblGrid>`)
	for _, r := range rows {
		b.WriteString(r)
	}
	b.WriteString(`</w:tbl><w:sectPr/></w:body></w:document>`)
	return b.String()
}

func settingsXML(protected bool) string {
	prot := ""
	if protected {
		prot = `<w:documentProtection w:edit="forms" w:enforcement="1"/>`
	}
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:settings xmlns:w="` + nsW + `"><w:zoom w:percent="100"/>` + prot + `</w:settings>`
}

func zipParts(t *testing.T, parts map[string]string, order ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range order {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(parts[name])); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func formBytes(t *testing.T, protected bool, document string) []byte {
	t.Helper()
	parts := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
		documentPart:          document,
		settingsPart:          settingsXML(protected),
	}
	return zipParts(t, parts, "[Content_Types].xml", documentPart, settingsPart)
}

func buildForm(t *testing.T, rows ...testRow) *File {
	t.Helper()
	var xrows []string
	for i, r := range rows {
		xrows = append(xrows, formRowXML(i+1, r))
	}
	return readForm(t, formBytes(t, true, documentXML(11, xrows...)))
}

func readForm(t *testing.T, bs []byte) *File {
	t.Helper()
	f, err := Read(bytes.NewReader(bs), int64(len(bs)))
	if err != nil {
		t.Fatal(err)
	}
	return f
}

// reopen writes f out and reads it back.
func reopen(t *testing.T, f *File) *File {
	t.Helper()
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}
	return readForm(t, buf.Bytes())
}
