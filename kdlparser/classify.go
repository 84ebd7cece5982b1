package kdlparser

// This file implements the character classifier of spec.md §4.1: pure,
// table-driven rune predicates with no cursor access, grounded on
// d2ast/keywords.go's style of small table-backed classification helpers
// (IsUnreservedKeyword and friends there; the tables here are disjoint
// Unicode scalar sets rather than keyword strings).

// IsDisallowed reports whether r may never appear in a KDL document,
// identifier, or string body (outside of an already-decoded escape),
// per spec.md §4.1: ASCII control codes other than TAB/LF/VT/FF/CR, DEL,
// the C1 control range, the BOM (U+FEFF), and the bidirectional
// isolate/override formatting characters. A *leading* BOM never reaches
// this check: NewCursor strips it before scanning, so only a BOM later in
// the document is rejected. VT (U+000B) and FF (U+000C) are excepted here
// because spec.md §4.1 lists them as newline-set members, not disallowed
// controls.
func IsDisallowed(r rune) bool {
	switch {
	case r <= 0x08:
		return true
	case r >= 0x0E && r <= 0x1F:
		return true
	case r == 0x7F:
		return true
	case r >= 0x80 && r <= 0x9F:
		return true
	case r == 0xFEFF:
		return true
	case r == 0x200E || r == 0x200F:
		return true
	case r >= 0x202A && r <= 0x202E:
		return true
	case r >= 0x2066 && r <= 0x2069:
		return true
	}
	return false
}

// whitespaceScalars is the exhaustive set of Unicode scalars spec.md §4.1
// classifies as KDL whitespace (distinct from the newline set below).
var whitespaceScalars = map[rune]bool{
	0x0009: true, // TAB
	0x0020: true, // SPACE
	0x00A0: true, // NO-BREAK SPACE
	0x1680: true, // OGHAM SPACE MARK
	0x2000: true, 0x2001: true, 0x2002: true, 0x2003: true, 0x2004: true,
	0x2005: true, 0x2006: true, 0x2007: true, 0x2008: true, 0x2009: true,
	0x200A: true, // EN QUAD .. HAIR SPACE
	0x202F: true, // NARROW NO-BREAK SPACE
	0x205F: true, // MEDIUM MATHEMATICAL SPACE
	0x3000: true, // IDEOGRAPHIC SPACE
}

// IsSpace reports whether r is KDL whitespace (not a newline).
func IsSpace(r rune) bool {
	return whitespaceScalars[r]
}

// newlineScalars is the set of single-scalar line terminators spec.md §4.1
// lists; CR and LF additionally combine into the two-scalar CRLF sequence,
// handled by lexer callers (PeekNewline/ConsumeNewline/Cursor.AdvanceCRLF),
// not here.
var newlineScalars = map[rune]bool{
	0x000A: true, // LF
	0x000B: true, // VT
	0x000C: true, // FF
	0x000D: true, // CR
	0x0085: true, // NEL
	0x2028: true, // LS
	0x2029: true, // PS
}

// IsNewlineScalar reports whether r is one scalar of a newline sequence.
func IsNewlineScalar(r rune) bool {
	return newlineScalars[r]
}

// structuralScalars are the ASCII punctuation runes with dedicated grammar
// meaning, and therefore may never occur bare inside an unquoted identifier.
var structuralScalars = map[rune]bool{
	'(': true, ')': true, '{': true, '}': true,
	'[': true, ']': true, ';': true, '=': true,
	'"': true, '\\': true, '#': true, '/': true,
}

// IsStructural reports whether r is reserved grammar punctuation.
func IsStructural(r rune) bool {
	return structuralScalars[r]
}

// IsIdentifierContinue reports whether r may appear anywhere in a bare
// identifier body, per spec.md §4.1: everything except disallowed scalars,
// whitespace, newlines, and structural punctuation.
func IsIdentifierContinue(r rune) bool {
	if IsDisallowed(r) || IsSpace(r) || IsNewlineScalar(r) || IsStructural(r) {
		return false
	}
	return r != 0xFEFF
}

// IsDigit reports whether r is an ASCII decimal digit.
func IsDigit(r rune) bool { return r >= '0' && r <= '9' }

// IsHexDigit reports whether r is an ASCII hex digit.
func IsHexDigit(r rune) bool {
	return IsDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// IsOctalDigit reports whether r is an ASCII octal digit.
func IsOctalDigit(r rune) bool { return r >= '0' && r <= '7' }

// IsBinaryDigit reports whether r is an ASCII binary digit.
func IsBinaryDigit(r rune) bool { return r == '0' || r == '1' }

// IsSign reports whether r is a leading numeric sign.
func IsSign(r rune) bool { return r == '+' || r == '-' }
