package docx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

type nodeKind int

const (
	documentNode nodeKind = iota
	elementNode
	textNode
	commentNode
	procInstNode
	directiveNode
)

// node is a minimal XML tree. Names keep their raw prefixes (Space holds
// the prefix, not the namespace URL) so that writing the tree back
// reproduces the part the way the word processor expects it.
type node struct {
	kind     nodeKind
	name     xml.Name
	attr     []xml.Attr
	text     string
	children []*node
	parent   *node
}

func parseXML(data []byte) (*node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	root := &node{kind: documentNode}
	cur := root
	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &node{kind: elementNode, name: t.Name, attr: append([]xml.Attr(nil), t.Attr...)}
			cur.append(n)
			cur = n
		case xml.EndElement:
			if cur.kind != elementNode || cur.name != t.Name {
				return nil, fmt.Errorf("unexpected end element %s", qname(t.Name))
			}
			cur = cur.parent
		case xml.CharData:
			cur.append(&node{kind: textNode, text: string(t)})
		case xml.Comment:
			cur.append(&node{kind: commentNode, text: string(t)})
		case xml.ProcInst:
			cur.append(&node{kind: procInstNode, name: xml.Name{Local: t.Target}, text: string(t.Inst)})
		case xml.Directive:
			cur.append(&node{kind: directiveNode, text: string(t)})
		}
	}
	if cur != root {
		return nil, errors.New("unexpected end of document")
	}
	return root, nil
}

func qname(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func (n *node) bytes() []byte {
	var b bytes.Buffer
	n.write(&b)
	return b.Bytes()
}

func (n *node) write(b *bytes.Buffer) {
	switch n.kind {
	case documentNode:
		for _, c := range n.children {
			if c.kind == textNode {
				// whitespace between prolog and root element
				b.WriteString(c.text)
				continue
			}
			c.write(b)
		}
	case textNode:
		escape(b, n.text, false)
	case commentNode:
		b.WriteString("<!--")
		b.WriteString(n.text)
		b.WriteString("-->")
	case procInstNode:
		b.WriteString("<?")
		b.WriteString(n.name.Local)
		if n.text != "" {
			b.WriteByte(' ')
			b.WriteString(n.text)
		}
		b.WriteString("?>")
	case directiveNode:
		b.WriteString("<!")
		b.WriteString(n.text)
		b.WriteByte('>')
	case elementNode:
		b.WriteByte('<')
		b.WriteString(qname(n.name))
		for _, a := range n.attr {
			b.WriteByte(' ')
			b.WriteString(qname(a.Name))
			b.WriteString(`="`)
			escape(b, a.Value, true)
			b.WriteByte('"')
		}
		if len(n.children) == 0 {
			b.WriteString("/>")
			return
		}
		b.WriteByte('>')
		for _, c := range n.children {
			c.write(b)
		}
		b.WriteString("</")
		b.WriteString(qname(n.name))
		b.WriteByte('>')
	}
}

// escape writes s as character data or, when inAttr is set, as a quoted
// attribute value.
func escape(b *bytes.Buffer, s string, inAttr bool) {
	for _, r := range s {
		switch {
		case r == '&':
			b.WriteString("&amp;")
		case r == '<':
			b.WriteString("&lt;")
		case r == '>':
			b.WriteString("&gt;")
		case r == '\r':
			b.WriteString("&#xD;")
		case inAttr && r == '"':
			b.WriteString("&quot;")
		case inAttr && r == '\n':
			b.WriteString("&#xA;")
		case inAttr && r == '\t':
			b.WriteString("&#x9;")
		default:
			b.WriteRune(r)
		}
	}
}

func newElement(prefix, local string, attrs ...xml.Attr) *node {
	return &node{kind: elementNode, name: xml.Name{Space: prefix, Local: local}, attr: attrs}
}

func attr(prefix, local, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Space: prefix, Local: local}, Value: value}
}

func (n *node) is(local string) bool {
	return n != nil && n.kind == elementNode && n.name.Local == local
}

func (n *node) prefix() string {
	return n.name.Space
}

func (n *node) child(local string) *node {
	for _, c := range n.children {
		if c.is(local) {
			return c
		}
	}
	return nil
}

func (n *node) elements(local string) []*node {
	var res []*node
	for _, c := range n.children {
		if c.is(local) {
			res = append(res, c)
		}
	}
	return res
}

// walk visits element descendants depth first. Returning false from fn
// skips the element's children.
func (n *node) walk(fn func(*node) bool) {
	for _, c := range n.children {
		if c.kind != elementNode {
			continue
		}
		if fn(c) {
			c.walk(fn)
		}
	}
}

func (n *node) attrVal(local string) string {
	for _, a := range n.attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func (n *node) setAttr(prefix, local, value string) {
	for i, a := range n.attr {
		if a.Name.Local == local {
			n.attr[i].Value = value
			return
		}
	}
	n.attr = append(n.attr, attr(prefix, local, value))
}

// textContent concatenates the character data directly below n.
func (n *node) textContent() string {
	var b strings.Builder
	for _, c := range n.children {
		if c.kind == textNode {
			b.WriteString(c.text)
		}
	}
	return b.String()
}

func (n *node) setText(s string) {
	n.children = nil
	if s != "" {
		n.append(&node{kind: textNode, text: s})
	}
}

func (n *node) append(c *node) {
	c.parent = n
	n.children = append(n.children, c)
}

func (n *node) index(c *node) int {
	for i, cc := range n.children {
		if cc == c {
			return i
		}
	}
	return -1
}

func (n *node) insertBefore(c, ref *node) {
	i := n.index(ref)
	if i < 0 {
		n.append(c)
		return
	}
	c.parent = n
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = c
}

func (n *node) remove(c *node) {
	if i := n.index(c); i >= 0 {
		n.children = append(n.children[:i], n.children[i+1:]...)
		c.parent = nil
	}
}

func (n *node) clone() *node {
	cp := &node{kind: n.kind, name: n.name, text: n.text, attr: append([]xml.Attr(nil), n.attr...)}
	for _, c := range n.children {
		cp.append(c.clone())
	}
	return cp
}
