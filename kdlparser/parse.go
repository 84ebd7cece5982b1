package kdlparser

import (
	"github.com/kdl-org/kdl-go/kdlast"
)

// This file implements the grammar engine of spec.md §4.5: the
// recursive-descent productions for documents, nodes, entries, values,
// type annotations, and children blocks, plus the slashdash structural
// comment that can swallow any one of those. Grounded on
// d2parser.parser's Parse/parseMapKey/parseValue family: one function per
// grammar production, each returning (result, ok) and leaving the cursor
// untouched on failure so callers can try alternatives or recover.

// ParseError aggregates every diagnostic recorded during a parse. Its
// Error method renders all of them against the original source, mirroring
// how d2parser.Parse returns a single error value even when multiple
// d2ast.Errors were recorded along the way.
type ParseError struct {
	Src         string
	Diagnostics []kdlast.Diagnostic
}

func (e *ParseError) Error() string {
	return kdlast.FormatAll(e.Src, e.Diagnostics)
}

// Parse parses src as a complete KDL document. The returned Document is
// non-nil even when err is non-nil: a parse that recovered from errors
// still produces the best tree it could build, the way d2parser.Parse
// returns a partial d2ast.Map alongside any errors.
func Parse(src string) (*kdlast.Document, error) {
	c := NewCursor(src)
	doc := parseDocument(c, true)
	if len(c.diags) == 0 {
		return doc, nil
	}
	return doc, &ParseError{Src: src, Diagnostics: c.diags}
}

// parseDocument parses a sequence of nodes, stopping at EOF (top == true)
// or at a "}" it leaves unconsumed for the caller to match (top == false).
func parseDocument(c *Cursor, top bool) *kdlast.Document {
	start := c.Pos()
	var nodes []*kdlast.Node

	for {
		SkipLineSpace(c)
		if c.HasPrefix(";") {
			c.Advance(';', 1)
			continue
		}
		if c.AtEnd() {
			break
		}
		if c.HasPrefix("}") {
			if !top {
				break
			}
			c.Errorf(c.SpanFrom(c.Pos()), "unexpected '}' outside a children block")
			c.Advance('}', 1)
			continue
		}

		if PeekSlashdash(c) {
			c.Advance('/', 1)
			c.Advance('-', 1)
			SkipNodeSpace(c)
			parseNode(c) // parsed for validation/cursor advancement, then discarded
			continue
		}

		node := parseNode(c)
		if node == nil {
			recover_(c)
			continue
		}
		nodes = append(nodes, node)
	}

	return &kdlast.Document{Range: c.SpanFrom(start), Nodes: nodes}
}

// recover_ advances past one scalar (or the rest of the current line) so
// a node the grammar engine couldn't parse doesn't spin the loop forever.
func recover_(c *Cursor) {
	for {
		if c.AtEnd() || PeekNewline(c) || c.HasPrefix(";") || c.HasPrefix("}") {
			return
		}
		r, size, ok := c.PeekRune()
		if !ok {
			return
		}
		c.Advance(r, size)
	}
}

// parseNode parses one node: an optional type annotation, a name, its
// entries and slashdashed entries in source order, and an optional
// children block, followed by its terminator (";", a newline, EOF, or a
// "}" belonging to an enclosing children block).
func parseNode(c *Cursor) *kdlast.Node {
	start := c.Pos()

	typeTag, _ := maybeParseTypeAnnotation(c)

	name, ok := parseIdentifierOrString(c)
	if !ok {
		c.Errorf(c.SpanFrom(start), "expected node name")
		return nil
	}
	checkReservedWord(c, name)

	node := &kdlast.Node{Name: *name, TypeTag: typeTag}

	for {
		SkipNodeSpace(c)
		if atNodeTerminator(c) {
			break
		}

		if PeekSlashdash(c) {
			c.Advance('/', 1)
			c.Advance('-', 1)
			SkipNodeSpace(c)
			if c.HasPrefix("{") {
				parseChildrenBlock(c) // discarded
				continue
			}
			if _, ok := parseEntry(c); !ok {
				recover_(c)
			}
			continue
		}

		if c.HasPrefix("{") {
			block := parseChildrenBlock(c)
			if node.Children == nil {
				node.Children = block
			} else {
				node.Children.Nodes = append(node.Children.Nodes, block.Nodes...)
			}
			continue
		}

		entry, ok := parseEntry(c)
		if !ok {
			break
		}
		node.Entries = append(node.Entries, entry)
	}

	node.Range = c.SpanFrom(start)
	consumeNodeTerminator(c)
	return node
}

func atNodeTerminator(c *Cursor) bool {
	return c.AtEnd() || c.HasPrefix(";") || c.HasPrefix("}") || PeekNewline(c)
}

func consumeNodeTerminator(c *Cursor) {
	switch {
	case c.HasPrefix(";"):
		c.Advance(';', 1)
	case ConsumeNewline(c):
	case c.AtEnd() || c.HasPrefix("}"):
	default:
		c.Errorf(c.SpanFrom(c.Pos()), "expected newline or ';' after node")
	}
}

// parseChildrenBlock parses a "{" ... "}" block as a nested Document.
func parseChildrenBlock(c *Cursor) *kdlast.Document {
	c.Advance('{', 1)
	doc := parseDocument(c, false)
	if c.HasPrefix("}") {
		c.Advance('}', 1)
	} else {
		c.Errorf(c.SpanFrom(c.Pos()), "expected '}' to close children block")
	}
	return doc
}

// parseEntry parses one argument or property: an optional type
// annotation, then either "name=value" (property) or a bare value
// (positional argument).
func parseEntry(c *Cursor) (*kdlast.Entry, bool) {
	start := c.Pos()

	snap := c.Save()
	if name, ok := parseIdentifierOrString(c); ok && c.HasPrefix("=") {
		checkReservedWord(c, name)
		c.Advance('=', 1)
		val, ok := parseValue(c)
		if !ok {
			c.Errorf(c.SpanFrom(start), "expected value after '='")
			return nil, false
		}
		return &kdlast.Entry{Range: c.SpanFrom(start), Name: name, Value: val}, true
	}
	c.Restore(snap)

	val, ok := parseValue(c)
	if !ok {
		return nil, false
	}
	return &kdlast.Entry{Range: c.SpanFrom(start), Value: val}, true
}

// parseValue parses one bare scalar value: an optional leading type
// annotation, then a keyword literal, a number, a quoted/raw string, or
// a bare identifier (which decodes to a plain string value, per spec.md
// §4.6). The type annotation precedes the value itself, so for a
// property "key=(date)val" it is parsed here, not in parseEntry.
func parseValue(c *Cursor) (*kdlast.Value, bool) {
	typeTag, _ := maybeParseTypeAnnotation(c)

	v, ok := scanBareValue(c)
	if !ok {
		return nil, false
	}
	if typeTag != "" {
		v = v.WithType(typeTag)
	}
	return v, true
}

// scanBareValue dispatches to the keyword, number, string, and bare
// identifier decoders in turn, the precedence order spec.md §4.6
// requires (a bare word is only reached once the others have failed).
func scanBareValue(c *Cursor) (*kdlast.Value, bool) {
	if v, ok := ScanKeyword(c); ok {
		return v, true
	}
	if v, ok := ScanNumber(c); ok {
		return v, true
	}
	if v, ok := ScanString(c); ok {
		return v, true
	}
	if id, ok := ScanIdentifier(c); ok {
		checkReservedWord(c, id)
		return kdlast.NewString(id.Range, id.Value, id.Raw), true
	}
	return nil, false
}

// parseIdentifierOrString parses a node or property name: either a bare
// identifier or a quoted/raw string used in name position.
func parseIdentifierOrString(c *Cursor) (*kdlast.Identifier, bool) {
	if id, ok := ScanIdentifier(c); ok {
		return id, true
	}
	if v, ok := ScanString(c); ok {
		s, _ := v.AsString()
		return &kdlast.Identifier{Range: v.Range, Value: s, Raw: v.Raw, Quoted: true}, true
	}
	return nil, false
}

// maybeParseTypeAnnotation parses a leading "(typename)" if present.
func maybeParseTypeAnnotation(c *Cursor) (string, bool) {
	if !c.HasPrefix("(") {
		return "", false
	}
	start := c.Pos()
	c.Advance('(', 1)
	id, ok := parseIdentifierOrString(c)
	if !ok {
		c.Errorf(c.SpanFrom(start), "expected type name inside '(...)'")
		return "", false
	}
	if !c.HasPrefix(")") {
		c.Errorf(c.SpanFrom(start), "expected ')' to close type annotation")
		return id.Value, false
	}
	c.Advance(')', 1)
	return id.Value, true
}

// checkReservedWord reports a diagnostic if id is a bare spelling of one
// of the "#"-prefixed keyword literals, per spec.md §4.6.
func checkReservedWord(c *Cursor, id *kdlast.Identifier) {
	if id.Quoted {
		return
	}
	if repl, reserved := ReservedReplacement(id.Value); reserved {
		c.ErrorLabeled(id.Range, "use the keyword literal instead",
			"%q is a reserved bare word; use %q", id.Value, repl)
	}
}
