package docx

import (
	"strconv"
)

type checkBoxKind int

const (
	// legacyCheckBox is a FORMCHECKBOX form field.
	legacyCheckBox checkBoxKind = iota
	// contentCheckBox is a checkbox content control.
	contentCheckBox
)

func (k checkBoxKind) String() string {
	if k == contentCheckBox {
		return "content control"
	}
	return "form field"
}

type CheckBox struct {
	kind checkBoxKind
	n    *node // w:checkBox or w14:checkbox
	sdt  *node // enclosing w:sdt for content controls
}

// CheckBoxes returns the checkboxes of the cell in document order.
func (c *Cell) CheckBoxes() []*CheckBox {
	var res []*CheckBox
	c.n.walk(func(n *node) bool {
		switch {
		case n.is("tbl"):
			return false
		case n.is("checkBox") && n.parent.is("ffData"):
			res = append(res, &CheckBox{kind: legacyCheckBox, n: n})
			return false
		case n.is("sdt") && isCheckBoxSDT(n):
			res = append(res, &CheckBox{kind: contentCheckBox, n: sdtCheckBox(n), sdt: n})
			return false
		}
		return true
	})
	return res
}

func isCheckBoxSDT(sdt *node) bool {
	return sdtCheckBox(sdt) != nil
}

func sdtCheckBox(sdt *node) *node {
	if pr := sdt.child("sdtPr"); pr != nil {
		return pr.child("checkbox")
	}
	return nil
}

// Name returns the bookmark name of a form field or the tag of a content
// control.
func (cb *CheckBox) Name() string {
	switch cb.kind {
	case legacyCheckBox:
		if name := cb.n.parent.child("name"); name != nil {
			return name.attrVal("val")
		}
	case contentCheckBox:
		pr := cb.sdt.child("sdtPr")
		if tag := pr.child("tag"); tag != nil {
			return tag.attrVal("val")
		}
		if alias := pr.child("alias"); alias != nil {
			return alias.attrVal("val")
		}
	}
	return ""
}

func (cb *CheckBox) Kind() string {
	return cb.kind.String()
}

func (cb *CheckBox) Checked() bool {
	if cb.kind == contentCheckBox {
		if ch := cb.n.child("checked"); ch != nil {
			return onOff(ch.attrVal("val"), false)
		}
		return false
	}
	if ch := cb.n.child("checked"); ch != nil {
		return onOff(ch.attrVal("val"), true)
	}
	return cb.defaultValue()
}

func (cb *CheckBox) defaultValue() bool {
	if d := cb.n.child("default"); d != nil {
		return onOff(d.attrVal("val"), true)
	}
	return false
}

func (cb *CheckBox) SetChecked(v bool) {
	if cb.kind == contentCheckBox {
		cb.setContentChecked(v)
		return
	}

	for _, ch := range cb.n.elements("checked") {
		cb.n.remove(ch)
	}
	switch {
	case v:
		cb.n.append(newElement(cb.n.prefix(), "checked"))
	case cb.defaultValue():
		cb.n.append(newElement(cb.n.prefix(), "checked", attr(cb.n.prefix(), "val", "0")))
	}
}

func (cb *CheckBox) setContentChecked(v bool) {
	ns := cb.n.prefix()
	val := "0"
	if v {
		val = "1"
	}
	if ch := cb.n.child("checked"); ch != nil {
		ch.setAttr(ns, "val", val)
	} else {
		ch := newElement(ns, "checked", attr(ns, "val", val))
		if len(cb.n.children) > 0 {
			cb.n.insertBefore(ch, cb.n.children[0])
		} else {
			cb.n.append(ch)
		}
	}

	glyph := cb.stateGlyph(v)
	if content := cb.sdt.child("sdtContent"); content != nil {
		content.walk(func(n *node) bool {
			if n.is("t") {
				n.setText(glyph)
				glyph = ""
				return false
			}
			return true
		})
	}
}

// stateGlyph returns the symbol the content control displays for state v.
func (cb *CheckBox) stateGlyph(v bool) string {
	state, def := "uncheckedState", '☐'
	if v {
		state, def = "checkedState", '☒'
	}
	if st := cb.n.child(state); st != nil {
		if cp, err := strconv.ParseInt(st.attrVal("val"), 16, 32); err == nil && cp > 0 {
			return string(rune(cp))
		}
	}
	return string(def)
}
