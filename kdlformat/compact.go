package kdlformat

import (
	"strings"

	"github.com/kdl-org/kdl-go/kdlast"
)

// Compact renders doc as a single logical line, with ";" separating
// sibling nodes instead of newlines and no indentation — the "diff- and
// grep-friendly one-line rendering" supplemental feature named in
// SPEC_FULL.md §7. It reuses printer's node/entry/value logic, differing
// only in how siblings are joined, the way d2format keeps one escaping
// helper set shared across its quoted-string variants.
func Compact(doc *kdlast.Document) string {
	var p compactPrinter
	p.document(doc)
	return p.sb.String()
}

type compactPrinter struct {
	sb strings.Builder
}

func (p *compactPrinter) document(doc *kdlast.Document) {
	for i, n := range doc.Nodes {
		if i > 0 {
			p.sb.WriteString("; ")
		}
		p.node(n)
	}
}

func (p *compactPrinter) node(n *kdlast.Node) {
	var full printer
	if n.TypeTag != "" {
		full.typeTag(n.TypeTag)
	}
	full.identifier(n.Name)
	for _, e := range n.Entries {
		full.sb.WriteByte(' ')
		full.entry(e)
	}
	p.sb.WriteString(full.sb.String())

	if n.Children != nil {
		p.sb.WriteString(" { ")
		for i, c := range n.Children.Nodes {
			if i > 0 {
				p.sb.WriteString("; ")
			}
			p.node(c)
		}
		p.sb.WriteString(" }")
	}
}
