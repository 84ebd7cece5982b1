package kdlparser

import (
	"math"

	"github.com/kdl-org/kdl-go/kdlast"
)

// keywordLiterals lists every "#"-prefixed keyword literal spec.md §4.4
// recognizes. No entry is a prefix of another, so the order in which they
// are tried does not affect which one matches. Grounded on d2ast/keywords.go's table-of-known-
// words style, applied here to KDL's closed keyword set rather than d2's
// open reserved-word list.
var keywordLiterals = []string{"#true", "#false", "#null", "#-inf", "#inf", "#nan"}

// ScanKeyword recognizes one of the "#"-prefixed keyword literals at the
// current position, provided it is not immediately followed by an
// identifier-continue scalar (e.g. "#nanometer" does not match the #nan
// keyword). On success it consumes the literal and returns its Value; on
// failure the cursor is untouched.
func ScanKeyword(c *Cursor) (*kdlast.Value, bool) {
	start := c.Pos()
	for _, kw := range keywordLiterals {
		if !c.HasPrefix(kw) {
			continue
		}
		if r, _, ok := c.PeekRuneAt(len(kw)); ok && IsIdentifierContinue(r) {
			continue // followed by more word characters, e.g. "#nullable"
		}
		for _, r := range kw {
			c.Advance(r, len(string(r)))
		}
		return keywordValue(kw, c.SpanFrom(start)), true
	}
	return nil, false
}

func keywordValue(kw string, r kdlast.Range) *kdlast.Value {
	switch kw {
	case "#true":
		return kdlast.NewBool(r, true)
	case "#false":
		return kdlast.NewBool(r, false)
	case "#null":
		return kdlast.NewNull(r)
	case "#inf":
		return kdlast.NewFloat64(r, math.Inf(1), kw)
	case "#-inf":
		return kdlast.NewFloat64(r, math.Inf(-1), kw)
	case "#nan":
		return kdlast.NewFloat64(r, math.NaN(), kw)
	default:
		panic("unreachable keyword " + kw)
	}
}

// reservedBareWords are the un-prefixed spellings spec.md §4.6 forbids as
// bare identifiers, because KDL v1 used them as keywords directly. A bare
// identifier exactly matching one of these must be rejected with a
// diagnostic pointing the author at the "#"-prefixed spelling.
var reservedBareWords = map[string]string{
	"true":  "#true",
	"false": "#false",
	"null":  "#null",
	"inf":   "#inf",
	"-inf":  "#-inf",
	"nan":   "#nan",
}

// ReservedReplacement returns the "#"-prefixed spelling a bare identifier
// should have used, and whether word is in fact reserved.
func ReservedReplacement(word string) (string, bool) {
	repl, ok := reservedBareWords[word]
	return repl, ok
}
