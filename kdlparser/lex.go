package kdlparser

// Lexical recognizers for the constructs spec.md §4.3 groups under
// "whitespace, comments, and line continuation": plain whitespace,
// single-line comments, nestable block comments, escline (backslash line
// continuation), and the slashdash marker. These operate directly on a
// Cursor, unlike classify.go's pure rune predicates, grounded on
// d2parser.parser's own whitespace/comment skipping helpers (its
// trimSpace/peekNewline/commentLine machinery with the "/-" slashdash
// idea adapted from the KDL grammar itself, which has no d2 analog).

// skipPlainWhitespace consumes zero or more non-newline whitespace scalars,
// reporting whether anything was consumed.
func skipPlainWhitespace(c *Cursor) bool {
	consumed := false
	for {
		r, size, ok := c.PeekRune()
		if !ok || !IsSpace(r) {
			return consumed
		}
		c.Advance(r, size)
		consumed = true
	}
}

// ConsumeNewline matches and consumes one newline sequence (the two-scalar
// CRLF, or any single-scalar newline from classify.go's set) at the
// current position, reporting whether one was found.
func ConsumeNewline(c *Cursor) bool {
	if c.HasPrefix("\r\n") {
		c.AdvanceCRLF()
		return true
	}
	r, size, ok := c.PeekRune()
	if !ok || !IsNewlineScalar(r) {
		return false
	}
	c.Advance(r, size)
	return true
}

// PeekNewline reports whether a newline sequence starts at the current
// position, without consuming it.
func PeekNewline(c *Cursor) bool {
	if c.HasPrefix("\r\n") {
		return true
	}
	r, _, ok := c.PeekRune()
	return ok && IsNewlineScalar(r)
}

// trySingleLineComment consumes a "//" comment up to (not including) the
// next newline or EOF, reporting whether one was present.
func trySingleLineComment(c *Cursor) bool {
	if !c.HasPrefix("//") {
		return false
	}
	c.Advance('/', 1)
	c.Advance('/', 1)
	for {
		if c.AtEnd() || PeekNewline(c) {
			return true
		}
		r, size, _ := c.PeekRune()
		c.Advance(r, size)
	}
}

// tryBlockComment consumes a "/* ... */" comment, honoring nesting (a
// "/*" inside a block comment opens another level, per spec.md §4.3),
// reporting whether a block comment was present. An unterminated comment
// is reported as a diagnostic and consumes to EOF.
func tryBlockComment(c *Cursor) bool {
	if !c.HasPrefix("/*") {
		return false
	}
	start := c.Pos()
	c.Advance('/', 1)
	c.Advance('*', 1)
	depth := 1
	for depth > 0 {
		if c.AtEnd() {
			c.Errorf(c.SpanFrom(start), "unterminated block comment")
			return true
		}
		switch {
		case c.HasPrefix("/*"):
			c.Advance('/', 1)
			c.Advance('*', 1)
			depth++
		case c.HasPrefix("*/"):
			c.Advance('*', 1)
			c.Advance('/', 1)
			depth--
		default:
			r, size, _ := c.PeekRune()
			c.Advance(r, size)
		}
	}
	return true
}

// tryEscline matches a "\" followed by optional whitespace/comments and
// then a newline (or EOF), the line-continuation construct of spec.md
// §4.3 that lets a node's entries span multiple physical lines without
// opening a children block. It consumes the whole construct (including
// the terminating newline) and reports whether it matched; on a
// non-match it restores the cursor to its entry state.
func tryEscline(c *Cursor) bool {
	if !c.HasPrefix("\\") {
		return false
	}
	snap := c.Save()
	c.Advance('\\', 1)
	skipPlainWhitespace(c)
	trySingleLineComment(c)
	if c.AtEnd() {
		return true
	}
	if ConsumeNewline(c) {
		return true
	}
	c.Restore(snap)
	return false
}

// SkipNodeSpace consumes the node-space construct of spec.md §4.3: any
// run of plain whitespace, single-line comments, block comments, and
// escline continuations, stopping at the first real newline, semicolon,
// or other token. Reports whether anything was consumed.
func SkipNodeSpace(c *Cursor) bool {
	consumed := false
	for {
		switch {
		case skipPlainWhitespace(c):
		case trySingleLineComment(c):
		case tryBlockComment(c):
		case tryEscline(c):
		default:
			return consumed
		}
		consumed = true
	}
}

// PeekSlashdash reports whether the slashdash marker "/-" starts at the
// current position, without consuming it. Parser productions that accept
// a slashdash prefix call this to decide whether to commit to the
// comment-out branch before consuming the two bytes themselves.
func PeekSlashdash(c *Cursor) bool {
	return c.HasPrefix("/-")
}

// atValueTerminator reports whether the current position is a legal point
// for a scanned value (e.g. a numeric literal) to end: EOF, whitespace, a
// newline, or one of the structural bytes that can follow a value
// ("=", ")", "{", "}", ";") or a comment start. A value abutting anything
// else — most commonly an identifier-continue scalar, as in "123abc" —
// is a lex error per spec.md §4.4.
func atValueTerminator(c *Cursor) bool {
	if c.AtEnd() || IsSpace(mustPeek(c)) || PeekNewline(c) {
		return true
	}
	switch {
	case c.HasPrefix("="), c.HasPrefix(")"), c.HasPrefix("{"), c.HasPrefix("}"),
		c.HasPrefix(";"), c.HasPrefix("//"), c.HasPrefix("/*"), c.HasPrefix("\\"):
		return true
	}
	return false
}

// mustPeek returns the rune at the current position, or the NUL rune if
// the cursor is at EOF — a convenience for predicates already guarded by
// an AtEnd check alongside it.
func mustPeek(c *Cursor) rune {
	r, _, ok := c.PeekRune()
	if !ok {
		return 0
	}
	return r
}

// SkipLineSpace consumes node-space, newlines, and single-line comments
// that terminate in a newline, repeatedly — the "blank or comment-only
// lines between nodes" whitespace spec.md §4.5 allows at the top level
// and inside children blocks. It does not consume semicolons; those are
// node terminators handled by the grammar engine directly.
func SkipLineSpace(c *Cursor) {
	for {
		if SkipNodeSpace(c) {
			continue
		}
		if trySingleLineComment(c) {
			continue
		}
		if ConsumeNewline(c) {
			continue
		}
		return
	}
}
