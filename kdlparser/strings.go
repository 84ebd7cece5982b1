package kdlparser

import (
	"strconv"
	"strings"

	"github.com/kdl-org/kdl-go/kdlast"
)

// This file implements the string and identifier decoders of spec.md §4.6:
// bare identifiers, single-line quoted strings with backslash escapes,
// triple-quoted multiline strings with dedentation, and hash-delimited raw
// strings (single-line and multiline). Grounded on d2parser.parser's
// parseQuotedString/parseBlockString machinery for the escape-decoding and
// line-splitting approach, generalized to KDL's hash-counted raw-string
// delimiters, which have no d2 analog.

// ScanIdentifier recognizes a bare (unquoted) identifier: a run of
// identifier-continue scalars whose first scalar is not a digit. Numeric
// and keyword literals must be tried by the caller first, since a bare
// word like "inf" is only reached here once ScanKeyword has already
// failed to match "#inf" (the un-prefixed spelling is rejected later by
// the grammar engine via ReservedReplacement).
func ScanIdentifier(c *Cursor) (*kdlast.Identifier, bool) {
	start := c.Pos()
	r, size, ok := c.PeekRune()
	if !ok || !IsIdentifierContinue(r) || IsDigit(r) {
		return nil, false
	}
	c.Advance(r, size)
	for {
		r, size, ok := c.PeekRune()
		if !ok || !IsIdentifierContinue(r) {
			break
		}
		c.Advance(r, size)
	}
	word := c.src[start.Byte:c.pos]
	return &kdlast.Identifier{Range: c.SpanFrom(start), Value: word, Raw: word, Quoted: false}, true
}

// ScanString recognizes a quoted or raw string literal (single-line or
// triple-quoted multiline) at the current position, returning the decoded
// Value. Returns ok=false, cursor untouched, if no string literal starts
// here at all.
func ScanString(c *Cursor) (*kdlast.Value, bool) {
	start := c.Pos()

	hashCount := 0
	probe := 0
	for {
		r, size, ok := c.PeekRuneAt(probe)
		if !ok || r != '#' {
			break
		}
		hashCount++
		probe += size
	}
	isRaw := hashCount > 0

	r, size, ok := c.PeekRuneAt(probe)
	if !ok || r != '"' {
		return nil, false
	}

	for i := 0; i < hashCount; i++ {
		c.Advance('#', 1)
	}

	multiline := c.HasPrefix(`"""`)
	if multiline {
		c.Advance('"', 1)
		c.Advance('"', 1)
		c.Advance('"', 1)
	} else {
		c.Advance('"', size)
	}

	var decoded string
	if multiline {
		decoded = scanMultilineBody(c, start, isRaw, hashCount)
	} else {
		decoded = scanSingleLineBody(c, start, isRaw, hashCount)
	}

	raw := c.src[start.Byte:c.pos]
	return kdlast.NewString(c.SpanFrom(start), decoded, raw), true
}

// closingDelimiter reports whether the current position begins the
// string's closing delimiter (quoteCount quote characters followed by
// exactly hashCount '#' characters, with no trailing '#'), and if so
// returns its byte length.
func closingDelimiter(c *Cursor, quoteCount, hashCount int) (size int, ok bool) {
	n := 0
	for i := 0; i < quoteCount; i++ {
		r, sz, rok := c.PeekRuneAt(n)
		if !rok || r != '"' {
			return 0, false
		}
		n += sz
	}
	for i := 0; i < hashCount; i++ {
		r, sz, rok := c.PeekRuneAt(n)
		if !rok || r != '#' {
			return 0, false
		}
		n += sz
	}
	if r, _, rok := c.PeekRuneAt(n); rok && r == '#' {
		return 0, false // more hashes than the opening delimiter: not a match
	}
	return n, true
}

func scanSingleLineBody(c *Cursor, start kdlast.Position, isRaw bool, hashCount int) string {
	var sb strings.Builder
	for {
		if c.AtEnd() {
			c.Errorf(c.SpanFrom(start), "unterminated string literal")
			return sb.String()
		}
		if n, ok := closingDelimiter(c, 1, hashCount); ok {
			for i := 0; i < n; {
				r, sz, _ := c.PeekRune()
				c.Advance(r, sz)
				i += sz
			}
			return sb.String()
		}
		if PeekNewline(c) {
			c.Errorf(c.SpanFrom(start), "unterminated string literal (single-line string cannot contain a raw newline)")
			return sb.String()
		}
		if !isRaw && c.HasPrefix(`\`) {
			sb.WriteString(decodeEscape(c))
			continue
		}
		r, size, _ := c.PeekRune()
		if IsDisallowed(r) {
			c.Errorf(c.SpanFrom(start), "disallowed codepoint %U in string literal", r)
		}
		sb.WriteRune(r)
		c.Advance(r, size)
	}
}

func scanMultilineBody(c *Cursor, start kdlast.Position, isRaw bool, hashCount int) string {
	var sb strings.Builder
	for {
		if c.AtEnd() {
			c.Errorf(c.SpanFrom(start), "unterminated multiline string literal")
			break
		}
		if n, ok := closingDelimiter(c, 3, hashCount); ok {
			for i := 0; i < n; {
				r, sz, _ := c.PeekRune()
				c.Advance(r, sz)
				i += sz
			}
			break
		}
		if c.HasPrefix("\r\n") {
			sb.WriteByte('\n')
			c.AdvanceCRLF()
			continue
		}
		if r, size, ok := c.PeekRune(); ok && IsNewlineScalar(r) {
			sb.WriteByte('\n')
			c.Advance(r, size)
			continue
		}
		if !isRaw && c.HasPrefix(`\`) {
			sb.WriteString(decodeEscape(c))
			continue
		}
		r, size, _ := c.PeekRune()
		if IsDisallowed(r) {
			c.Errorf(c.SpanFrom(start), "disallowed codepoint %U in string literal", r)
		}
		sb.WriteRune(r)
		c.Advance(r, size)
	}
	return dedentMultiline(c, start, sb.String())
}

// dedentMultiline applies spec.md §4.6's multiline-string dedent rule:
// the final line (which, by construction, holds only the whitespace
// preceding the closing delimiter) gives the indentation to strip from
// every other line; the line immediately after the opening delimiter, if
// empty, is dropped entirely.
func dedentMultiline(c *Cursor, start kdlast.Position, body string) string {
	lines := strings.Split(body, "\n")
	if len(lines) == 0 {
		return ""
	}
	indent := lines[len(lines)-1]
	content := lines[:len(lines)-1]
	if len(content) > 0 && content[0] == "" {
		content = content[1:]
	}
	for i, ln := range content {
		if ln == "" {
			continue
		}
		if strings.HasPrefix(ln, indent) {
			content[i] = ln[len(indent):]
		} else {
			c.Errorf(c.SpanFrom(start), "multiline string line has inconsistent leading whitespace")
			content[i] = strings.TrimLeft(ln, " \t")
		}
	}
	return strings.Join(content, "\n")
}

// decodeEscape decodes one backslash escape sequence starting at the
// current position (which must be '\\') and returns its expansion,
// consuming the whole sequence including a run of trailing
// whitespace/newlines for the "backslash swallows following whitespace"
// continuation form.
func decodeEscape(c *Cursor) string {
	start := c.Pos()
	c.Advance('\\', 1)
	r, size, ok := c.PeekRune()
	if !ok {
		c.Errorf(c.SpanFrom(start), "dangling escape at end of string")
		return ""
	}

	switch r {
	case 'n':
		c.Advance(r, size)
		return "\n"
	case 'r':
		c.Advance(r, size)
		return "\r"
	case 't':
		c.Advance(r, size)
		return "\t"
	case '\\':
		c.Advance(r, size)
		return "\\"
	case '"':
		c.Advance(r, size)
		return "\""
	case 'b':
		c.Advance(r, size)
		return "\b"
	case 'f':
		c.Advance(r, size)
		return "\f"
	case 's':
		c.Advance(r, size)
		return " "
	case 'u':
		return decodeUnicodeEscape(c, start)
	}

	if IsSpace(r) || IsNewlineScalar(r) || c.HasPrefix("\r\n") {
		for {
			if c.HasPrefix("\r\n") {
				c.AdvanceCRLF()
				continue
			}
			r, size, ok := c.PeekRune()
			if !ok || !(IsSpace(r) || IsNewlineScalar(r)) {
				break
			}
			c.Advance(r, size)
		}
		return ""
	}

	c.Advance(r, size)
	c.Errorf(c.SpanFrom(start), "invalid escape sequence %q", "\\"+string(r))
	return string(r)
}

// decodeUnicodeEscape decodes "\u{XXXXXX}" starting with the cursor
// positioned at the 'u'.
func decodeUnicodeEscape(c *Cursor, escStart kdlast.Position) string {
	c.Advance('u', 1)
	if !c.HasPrefix("{") {
		c.Errorf(c.SpanFrom(escStart), `expected "{" after \u`)
		return ""
	}
	c.Advance('{', 1)

	var hex strings.Builder
	for {
		r, size, ok := c.PeekRune()
		if !ok {
			c.Errorf(c.SpanFrom(escStart), "unterminated unicode escape")
			return ""
		}
		if r == '}' {
			c.Advance(r, size)
			break
		}
		if !IsHexDigit(r) {
			c.Errorf(c.SpanFrom(escStart), "invalid hex digit %q in unicode escape", r)
			c.Advance(r, size)
			continue
		}
		hex.WriteRune(r)
		c.Advance(r, size)
	}

	n, err := strconv.ParseUint(hex.String(), 16, 32)
	if err != nil || n > 0x10FFFF {
		c.Errorf(c.SpanFrom(escStart), "invalid unicode escape value %q", hex.String())
		return ""
	}
	if n >= 0xD800 && n <= 0xDFFF {
		c.Errorf(c.SpanFrom(escStart), "surrogate codepoint %U forbidden in unicode escape", rune(n))
		return ""
	}
	if IsDisallowed(rune(n)) {
		c.Errorf(c.SpanFrom(escStart), "disallowed codepoint %U forbidden in unicode escape", rune(n))
		return ""
	}
	return string(rune(n))
}
