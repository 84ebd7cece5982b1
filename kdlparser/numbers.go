package kdlparser

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/kdl-org/kdl-go/kdlast"
)

// ScanNumber recognizes one of the four numeric literal forms spec.md
// §4.4 describes (decimal, hex "0x", octal "0o", binary "0b"), each with
// an optional leading sign and optional underscore digit grouping, and
// decimal additionally with a fractional part and/or exponent.
//
// On success it consumes the literal and returns the decoded Value; on
// failure the cursor is left untouched. Grounded on d2parser.parser's
// numeric dispatch in parseValue (scanning a run of number-ish runes,
// then handing the raw text to strconv), generalized to KDL's four
// radixes and arbitrary-precision fallback.
func ScanNumber(c *Cursor) (*kdlast.Value, bool) {
	snap := c.Save()
	start := c.Pos()

	sign := ""
	if r, size, ok := c.PeekRune(); ok && IsSign(r) {
		sign = string(r)
		c.Advance(r, size)
	}

	if v := scanRadixLiteral(c, start, sign, "0x", IsHexDigit, 16); v != nil {
		return checkNumberTerminator(c, snap, v)
	}
	if v := scanRadixLiteral(c, start, sign, "0o", IsOctalDigit, 8); v != nil {
		return checkNumberTerminator(c, snap, v)
	}
	if v := scanRadixLiteral(c, start, sign, "0b", IsBinaryDigit, 2); v != nil {
		return checkNumberTerminator(c, snap, v)
	}

	if v, ok := scanDecimal(c, start, sign); ok {
		return checkNumberTerminator(c, snap, v)
	}

	c.Restore(snap)
	return nil, false
}

// checkNumberTerminator enforces spec.md §4.4's rule that a numeric
// literal may not abut an identifier-continue scalar (e.g. "123abc"): if
// the cursor isn't sitting at a legal value terminator after v was
// scanned, the whole literal is rejected as a lex error and the cursor is
// rolled back to where scanning began.
func checkNumberTerminator(c *Cursor, snap Snapshot, v *kdlast.Value) (*kdlast.Value, bool) {
	if atValueTerminator(c) {
		return v, true
	}
	rng := v.Range
	c.Restore(snap) // cursor only; no diagnostics recorded yet to lose
	c.Errorf(rng, "number literal abuts an identifier character")
	return nil, false
}

// scanRadixLiteral attempts one of the three non-decimal radixes at c's
// current position (after any leading sign has already been consumed).
// It returns nil without consuming anything if the prefix doesn't match.
func scanRadixLiteral(c *Cursor, start kdlast.Position, sign, prefix string, isDigit func(rune) bool, base int) *kdlast.Value {
	if !c.HasPrefix(prefix) {
		return nil
	}
	snap := c.Save()
	for _, r := range prefix {
		c.Advance(r, len(string(r)))
	}
	digits, ok := scanDigitRun(c, isDigit)
	if !ok {
		c.Restore(snap)
		return nil
	}
	raw := c.src[start.Byte:c.pos]
	bi, ok := new(big.Int).SetString(sign+digits, base)
	if !ok {
		c.Restore(snap)
		return nil
	}
	return kdlast.NewBigInt(c.SpanFrom(start), bi, raw)
}

// scanDecimal attempts a decimal integer or float literal (after any
// leading sign has already been consumed).
func scanDecimal(c *Cursor, start kdlast.Position, sign string) (*kdlast.Value, bool) {
	intPart, ok := scanDigitRun(c, IsDigit)
	if !ok {
		return nil, false
	}

	isFloat := false
	fracPart := ""
	if r, _, ok := c.PeekRune(); ok && r == '.' {
		snap := c.Save()
		c.Advance('.', 1)
		frac, ok := scanDigitRun(c, IsDigit)
		if !ok {
			c.Restore(snap)
		} else {
			isFloat = true
			fracPart = frac
		}
	}

	expSign := ""
	expDigits := ""
	if r, size, ok := c.PeekRune(); ok && (r == 'e' || r == 'E') {
		snap := c.Save()
		c.Advance(r, size)
		if s, size, ok := c.PeekRune(); ok && IsSign(s) {
			expSign = string(s)
			c.Advance(s, size)
		}
		digits, ok := scanDigitRun(c, IsDigit)
		if !ok {
			c.Restore(snap)
		} else {
			isFloat = true
			expDigits = digits
		}
	}

	raw := c.src[start.Byte:c.pos]

	if !isFloat {
		clean := sign + intPart
		if n, err := strconv.ParseInt(clean, 10, 64); err == nil {
			return kdlast.NewInt64(c.SpanFrom(start), n, raw), true
		}
		bi, ok := new(big.Int).SetString(clean, 10)
		if !ok {
			return nil, false
		}
		return kdlast.NewBigInt(c.SpanFrom(start), bi, raw), true
	}

	clean := sign + intPart
	if fracPart != "" {
		clean += "." + fracPart
	}
	if expDigits != "" {
		clean += "e" + expSign + expDigits
	}
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return nil, false
	}
	return kdlast.NewFloat64(c.SpanFrom(start), f, raw), true
}

// scanDigitRun consumes a run of isDigit runes, allowing single
// underscores as grouping separators anywhere after the first character,
// and returns the digits with underscores stripped out. The first
// character must satisfy isDigit directly (a leading underscore is not a
// valid literal start).
func scanDigitRun(c *Cursor, isDigit func(rune) bool) (digits string, ok bool) {
	r, size, peeked := c.PeekRune()
	if !peeked || !isDigit(r) {
		return "", false
	}
	var sb strings.Builder
	sb.WriteRune(r)
	c.Advance(r, size)

	for {
		r, size, peeked := c.PeekRune()
		if !peeked {
			break
		}
		if isDigit(r) {
			sb.WriteRune(r)
			c.Advance(r, size)
			continue
		}
		if r == '_' {
			nr, nsize, nok := c.PeekRuneAt(size)
			if !nok || !isDigit(nr) {
				break
			}
			c.Advance(r, size)
			sb.WriteRune(nr)
			c.Advance(nr, nsize)
			continue
		}
		break
	}
	return sb.String(), true
}
