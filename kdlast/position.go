// Package kdlast implements the KDL document tree: nodes, entries, values,
// spans, and the diagnostic types the parser reports against them.
package kdlast

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"oss.terrastruct.com/xdefer"
)

// Position is a line:column:byte location in a source buffer.
//
// Line and Column are zero indexed for ease of arithmetic; String renders
// them one indexed, matching editor conventions. Byte is the UTF-8 byte
// offset into the buffer, always present (the core has no LSP-style
// "position without a byte offset" use case the teacher's Position type
// supports, so unlike d2ast.Position there is no -1 sentinel here).
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Byte   int `json:"byte"`
}

// String renders a one-indexed line:column suitable for error messages.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

// MarshalText implements encoding.TextMarshaler.
func (p Position) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("%d:%d:%d", p.Line, p.Column, p.Byte)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Position) UnmarshalText(b []byte) (err error) {
	defer xdefer.Errorf(&err, "failed to unmarshal Position from %q", b)

	fields := bytes.Split(b, []byte{':'})
	if len(fields) != 3 {
		return errors.New("expected three fields")
	}
	p.Line, err = strconv.Atoi(string(fields[0]))
	if err != nil {
		return err
	}
	p.Column, err = strconv.Atoi(string(fields[1]))
	if err != nil {
		return err
	}
	p.Byte, err = strconv.Atoi(string(fields[2]))
	return err
}

// Advance returns the Position reached by consuming r (a decoded scalar,
// not necessarily one UTF-16 code unit) starting from p.
func (p Position) Advance(r rune, width int) Position {
	if r == '\n' {
		p.Line++
		p.Column = 0
	} else {
		p.Column += width
	}
	p.Byte += width
	return p
}

// Before reports whether p occurs strictly before p2.
func (p Position) Before(p2 Position) bool {
	if p.Byte != p2.Byte {
		return p.Byte < p2.Byte
	}
	if p.Line != p2.Line {
		return p.Line < p2.Line
	}
	return p.Column < p2.Column
}

// Span is a (start, length) byte range into the source buffer. It is the
// primitive spec.md calls a "span"; Range below additionally carries the
// decoded line:column for both endpoints, the way the teacher's Range does.
type Span struct {
	Start int `json:"start"`
	Len   int `json:"len"`
}

// Range represents the half-open interval [Start, End) that a node or
// diagnostic occupies in the source. Mirrors d2ast.Range closely, minus the
// Path field: this core parses one in-memory buffer at a time and does not
// track a source file name (callers that need one can wrap Diagnostic
// themselves, see kdlparser.ParseError).
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// String renders the range's start position.
func (r Range) String() string {
	return r.Start.String()
}

// MarshalText implements encoding.TextMarshaler, producing "start-end".
func (r Range) MarshalText() ([]byte, error) {
	start, _ := r.Start.MarshalText()
	end, _ := r.End.MarshalText()
	return []byte(fmt.Sprintf("%s-%s", start, end)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Range) UnmarshalText(b []byte) (err error) {
	defer xdefer.Errorf(&err, "failed to unmarshal Range from %q", b)

	i := bytes.LastIndexByte(b, '-')
	if i == -1 {
		return errors.New("missing end field")
	}
	if err := r.Start.UnmarshalText(b[:i]); err != nil {
		return err
	}
	return r.End.UnmarshalText(b[i+1:])
}

// OneLine reports whether the range starts and ends on the same line.
func (r Range) OneLine() bool {
	return r.Start.Line == r.End.Line
}

// Len returns the byte length of the range.
func (r Range) Len() int {
	return r.End.Byte - r.Start.Byte
}

// Span returns r as a (start, length) byte span.
func (r Range) Span() Span {
	return Span{Start: r.Start.Byte, Len: r.Len()}
}

// line extracts the full source line containing byte offset 'at', along
// with the offset's column within that line, by rescanning src for LF
// bytes. This is exactly the rescan-for-newlines approach spec.md §4.7
// calls for, and mirrors how d2ast.Range.String renders path:line:col
// without needing the parser to have indexed lines up front.
func line(src string, at int) (text string, col int) {
	start := strings.LastIndexByte(src[:clamp(at, len(src))], '\n') + 1
	end := strings.IndexByte(src[clamp(at, len(src)):], '\n')
	if end == -1 {
		end = len(src)
	} else {
		end += clamp(at, len(src))
	}
	return src[start:end], at - start
}

func clamp(at, n int) int {
	if at > n {
		return n
	}
	if at < 0 {
		return 0
	}
	return at
}
