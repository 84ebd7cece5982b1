// Package kdlformat renders a kdlast.Document back to canonical KDL
// text. Grounded on d2format.Format/printer: one printer struct carrying
// an accumulating indent string, a node-type switch dispatching each
// grammar production to its own method, and explicit indent/deindent/
// newline helpers instead of a templating library.
package kdlformat

import (
	"strconv"
	"strings"

	"github.com/kdl-org/kdl-go/kdlast"
)

// Format renders doc as canonical multi-line KDL, four-space indented per
// nesting level.
func Format(doc *kdlast.Document) string {
	var p printer
	p.document(doc)
	if p.sb.Len() > 0 {
		p.sb.WriteByte('\n')
	}
	return p.sb.String()
}

type printer struct {
	sb        strings.Builder
	indentStr string
}

func (p *printer) indent() {
	p.indentStr += "    "
}

func (p *printer) deindent() {
	if len(p.indentStr) >= 4 {
		p.indentStr = p.indentStr[:len(p.indentStr)-4]
	}
}

func (p *printer) newline() {
	p.sb.WriteByte('\n')
	p.sb.WriteString(p.indentStr)
}

func (p *printer) document(doc *kdlast.Document) {
	for i, n := range doc.Nodes {
		if i > 0 {
			p.newline()
		}
		p.node(n)
	}
}

func (p *printer) node(n *kdlast.Node) {
	if n.TypeTag != "" {
		p.typeTag(n.TypeTag)
	}
	p.identifier(n.Name)

	for _, e := range n.Entries {
		p.sb.WriteByte(' ')
		p.entry(e)
	}

	if n.Children != nil {
		p.sb.WriteString(" {")
		p.indent()
		for _, c := range n.Children.Nodes {
			p.newline()
			p.node(c)
		}
		p.deindent()
		p.newline()
		p.sb.WriteByte('}')
	}
}

func (p *printer) entry(e *kdlast.Entry) {
	if e.IsProperty() {
		p.identifier(*e.Name)
		p.sb.WriteByte('=')
	}
	if e.Value.TypeTag != "" {
		p.typeTag(e.Value.TypeTag)
	}
	p.value(e.Value)
}

func (p *printer) typeTag(tag string) {
	p.sb.WriteByte('(')
	p.identifier(kdlast.Identifier{Value: tag})
	p.sb.WriteByte(')')
}

func (p *printer) identifier(id kdlast.Identifier) {
	if identifierNeedsQuoting(id.Value) {
		p.sb.WriteByte('"')
		p.sb.WriteString(escapeQuoted(id.Value))
		p.sb.WriteByte('"')
		return
	}
	p.sb.WriteString(id.Value)
}

func (p *printer) value(v *kdlast.Value) {
	switch v.Kind {
	case kdlast.KindNull:
		p.sb.WriteString("#null")
	case kdlast.KindBool:
		b, _ := v.AsBool()
		if b {
			p.sb.WriteString("#true")
		} else {
			p.sb.WriteString("#false")
		}
	case kdlast.KindString:
		// Value-position strings are always rendered quoted in canonical
		// output, even when the text would also be a legal bare word —
		// the bare-word shorthand (spec.md §4.6) is an input convenience,
		// not something the printer re-introduces. Node/property names
		// use the bare form when they qualify; see identifier above.
		s, _ := v.AsString()
		p.sb.WriteByte('"')
		p.sb.WriteString(escapeQuoted(s))
		p.sb.WriteByte('"')
	case kdlast.KindInt64:
		n, _ := v.AsInt64()
		p.sb.WriteString(strconv.FormatInt(n, 10))
	case kdlast.KindBigInt:
		bi, _ := v.AsBigInt()
		p.sb.WriteString(bi.String())
	case kdlast.KindFloat64:
		f, _ := v.AsFloat64()
		p.sb.WriteString(kdlast.FormatFloat(f))
	}
}
