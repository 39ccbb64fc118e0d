package docx

// Protection describes the document's editing restriction.
type Protection struct {
	// Edit is the permitted kind of editing, "forms" for a protected form.
	Edit     string
	Enforced bool
}

func (p Protection) String() string {
	if !p.Enforced {
		return "none"
	}
	if p.Edit == "" {
		return "enforced"
	}
	return p.Edit
}

func (f *File) protectionNode() *node {
	if f.settings == nil {
		return nil
	}
	var res *node
	f.settings.walk(func(n *node) bool {
		if n.is("documentProtection") {
			res = n
		}
		return res == nil
	})
	return res
}

func (f *File) Protection() Protection {
	n := f.protectionNode()
	if n == nil {
		return Protection{}
	}
	return Protection{
		Edit:     n.attrVal("edit"),
		Enforced: onOff(n.attrVal("enforcement"), false),
	}
}

// Unprotect lifts enforcement of the editing restriction. The restriction
// itself, including any password hash, is kept so that it can be enforced
// again from the word processor. It reports whether anything changed.
func (f *File) Unprotect() bool {
	n := f.protectionNode()
	if n == nil || !onOff(n.attrVal("enforcement"), false) {
		return false
	}
	n.setAttr(n.prefix(), "enforcement", "0")
	return true
}

// onOff interprets an OOXML boolean attribute. An absent value means def.
func onOff(v string, def bool) bool {
	switch v {
	case "":
		return def
	case "1", "true", "on":
		return true
	}
	return false
}
