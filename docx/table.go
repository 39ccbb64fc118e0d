package docx

import (
	"strconv"
	"strings"
)

type Table struct {
	n *node
}

type Row struct {
	n *node
}

type Cell struct {
	n *node
}

// Tables returns the top level tables of the document body in order.
func (f *File) Tables() []*Table {
	body := f.body()
	if body == nil {
		return nil
	}
	var res []*Table
	body.walk(func(n *node) bool {
		if n.is("tbl") {
			res = append(res, &Table{n: n})
			return false
		}
		return true
	})
	return res
}

// Columns returns the number of grid columns of the table.
func (t *Table) Columns() int {
	if grid := t.n.child("tblGrid"); grid != nil {
		if cols := len(grid.elements("gridCol")); cols > 0 {
			return cols
		}
	}
	max := 0
	for _, r := range t.Rows() {
		w := r.gridBefore()
		for _, c := range r.Cells() {
			w += c.span()
		}
		if w > max {
			max = w
		}
	}
	return max
}

// Rows returns the table rows, including rows wrapped in content controls.
func (t *Table) Rows() []*Row {
	var res []*Row
	t.n.walk(func(n *node) bool {
		switch {
		case n.is("tr"):
			res = append(res, &Row{n: n})
			return false
		case n.is("tblPr"), n.is("tblGrid"):
			return false
		}
		return true
	})
	return res
}

func (r *Row) Cells() []*Cell {
	var res []*Cell
	r.n.walk(func(n *node) bool {
		switch {
		case n.is("tc"):
			res = append(res, &Cell{n: n})
			return false
		case n.is("trPr"), n.is("tblPrEx"):
			return false
		}
		return true
	})
	return res
}

// Cell returns the cell covering grid column col (1-based), or nil.
func (r *Row) Cell(col int) *Cell {
	pos := r.gridBefore() + 1
	for _, c := range r.Cells() {
		next := pos + c.span()
		if col >= pos && col < next {
			return c
		}
		pos = next
	}
	return nil
}

func (r *Row) gridBefore() int {
	if pr := r.n.child("trPr"); pr != nil {
		if gb := pr.child("gridBefore"); gb != nil {
			if v, err := strconv.Atoi(gb.attrVal("val")); err == nil {
				return v
			}
		}
	}
	return 0
}

func (c *Cell) span() int {
	if pr := c.n.child("tcPr"); pr != nil {
		if gs := pr.child("gridSpan"); gs != nil {
			if v, err := strconv.Atoi(gs.attrVal("val")); err == nil && v > 0 {
				return v
			}
		}
	}
	return 1
}

// Text returns the visible text of the cell. Paragraphs are separated by
// newlines, tabs and line breaks are kept, field codes, deleted text and
// checkbox glyphs are left out. Nested tables are skipped.
func (c *Cell) Text() string {
	var b strings.Builder
	paras := 0
	var visit func(n *node)
	visit = func(n *node) {
		for _, ch := range n.children {
			if ch.kind != elementNode {
				continue
			}
			switch ch.name.Local {
			case "tbl", "tcPr", "pPr", "rPr", "sdtPr", "instrText", "delText", "del", "ffData":
				continue
			case "sdt":
				if isCheckBoxSDT(ch) {
					continue
				}
			case "p":
				if paras > 0 {
					b.WriteByte('\n')
				}
				paras++
			case "t":
				b.WriteString(ch.textContent())
				continue
			case "tab":
				if n.is("r") {
					b.WriteByte('\t')
				}
				continue
			case "br", "cr":
				if n.is("r") {
					b.WriteByte('\n')
				}
				continue
			case "noBreakHyphen":
				b.WriteByte('-')
				continue
			}
			visit(ch)
		}
	}
	visit(c.n)
	return b.String()
}

// emptyFieldResult is what the word processor shows in an empty text form
// field.
const emptyFieldResult = "\u2002\u2002\u2002\u2002\u2002"

// SetText replaces the text of the cell. When the cell holds a text form
// field the field result is replaced and the field kept, otherwise the
// cell paragraphs are rewritten keeping the formatting of the first
// paragraph and run. Newlines in s start new paragraphs (or line breaks
// inside a field), tabs become tab characters.
func (c *Cell) SetText(s string) {
	if fld := c.textField(); fld != nil {
		fld.setResult(s)
		return
	}

	ns := c.n.prefix()
	paras := c.n.elements("p")
	var pPr, rPr *node
	if len(paras) > 0 {
		pPr = paras[0].child("pPr")
		if r := paras[0].child("r"); r != nil {
			rPr = r.child("rPr")
		}
	}
	for _, p := range paras {
		c.n.remove(p)
	}
	for _, line := range strings.Split(s, "\n") {
		p := newElement(ns, "p")
		if pPr != nil {
			p.append(pPr.clone())
		}
		if line != "" {
			p.append(textRun(ns, rPr, line))
		}
		c.n.append(p)
	}
}

// textRun builds a run holding s, with tabs as tab elements and newlines
// as line breaks.
func textRun(ns string, rPr *node, s string) *node {
	r := newElement(ns, "r")
	if rPr != nil {
		r.append(rPr.clone())
	}
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			r.append(newElement(ns, "br"))
		}
		for j, seg := range strings.Split(line, "\t") {
			if j > 0 {
				r.append(newElement(ns, "tab"))
			}
			if seg == "" {
				continue
			}
			t := newElement(ns, "t", attr("xml", "space", "preserve"))
			t.setText(seg)
			r.append(t)
		}
	}
	return r
}

// field is a complex field contained in a single paragraph.
type field struct {
	p               *node
	begin, sep, end *node
	instr           string
}

func (f *field) setResult(s string) {
	ns := f.p.prefix()
	var rPr *node
	if f.sep != nil {
		i, j := f.p.index(f.sep), f.p.index(f.end)
		for _, n := range append([]*node(nil), f.p.children[i+1:j]...) {
			if rPr == nil && n.is("r") {
				rPr = n.child("rPr")
			}
			f.p.remove(n)
		}
	} else {
		f.sep = newElement(ns, "r")
		if pr := f.begin.child("rPr"); pr != nil {
			f.sep.append(pr.clone())
		}
		fc := newElement(ns, "fldChar", attr(ns, "fldCharType", "separate"))
		f.sep.append(fc)
		f.p.insertBefore(f.sep, f.end)
	}
	if rPr == nil {
		rPr = f.begin.child("rPr")
	}
	if s == "" {
		s = emptyFieldResult
	}
	f.p.insertBefore(textRun(ns, rPr, s), f.end)
}

// textField finds the first text form field of the cell.
func (c *Cell) textField() *field {
	var res *field
	c.n.walk(func(n *node) bool {
		if res != nil || n.is("tbl") {
			return false
		}
		if n.is("p") {
			for _, fld := range paragraphFields(n) {
				if strings.Contains(fld.instr, "FORMTEXT") {
					res = fld
					break
				}
			}
			return false
		}
		return true
	})
	return res
}

// paragraphFields lists the outermost complex fields that begin and end
// within paragraph p.
func paragraphFields(p *node) []*field {
	var res []*field
	var cur *field
	depth := 0
	for _, r := range p.elements("r") {
		if it := r.child("instrText"); it != nil && cur != nil && depth == 1 {
			cur.instr += it.textContent()
		}
		fc := r.child("fldChar")
		if fc == nil {
			continue
		}
		switch fc.attrVal("fldCharType") {
		case "begin":
			depth++
			if depth == 1 {
				cur = &field{p: p, begin: r}
			}
		case "separate":
			if depth == 1 && cur != nil {
				cur.sep = r
			}
		case "end":
			if depth == 1 && cur != nil {
				cur.end = r
				res = append(res, cur)
				cur = nil
			}
			if depth > 0 {
				depth--
			}
		}
	}
	return res
}
