package kdlast

import (
	"strings"
)

// Diagnostic is a single structured parse error: a primary span/message,
// and optionally a one-line label (pointing at the span, e.g. "expected
// identifier") and a longer help string. Mirrors d2ast.Error, extended per
// spec.md §4.7 with Label/Help and source-aware Format.
type Diagnostic struct {
	Range   Range  `json:"range"`
	Message string `json:"message"`
	Label   string `json:"label,omitempty"`
	Help    string `json:"help,omitempty"`
}

// Error implements the error interface with the bare message, matching
// d2ast.Error.Error — use Format for the full human-readable rendering.
func (d Diagnostic) Error() string {
	return d.Message
}

// Format renders d against src as spec.md §4.7 describes: one-based
// line:column, the offending source line, a caret indicator under the span
// (width min(span length, remaining line width)), then the label and help
// if present.
func (d Diagnostic) Format(src string) string {
	lineText, col := line(src, d.Range.Start.Byte)

	var sb strings.Builder
	sb.WriteString(d.Range.Start.String())
	sb.WriteString(": ")
	sb.WriteString(d.Message)
	sb.WriteByte('\n')
	sb.WriteString(lineText)
	sb.WriteByte('\n')

	width := d.Range.Len()
	if width < 1 {
		width = 1
	}
	if remaining := len(lineText) - col; width > remaining {
		width = remaining
	}
	if width < 1 {
		width = 1
	}
	sb.WriteString(strings.Repeat(" ", col))
	sb.WriteString(strings.Repeat("^", width))

	if d.Label != "" {
		sb.WriteString(" ")
		sb.WriteString(d.Label)
	}
	if d.Help != "" {
		sb.WriteByte('\n')
		sb.WriteString("help: ")
		sb.WriteString(d.Help)
	}
	return sb.String()
}

// FormatAll renders a list of diagnostics against src, separated by a
// horizontal rule, per spec.md §4.7 ("Multiple diagnostics per parse are
// supported; they are printed separated by a horizontal rule").
func FormatAll(src string, diags []Diagnostic) string {
	var sb strings.Builder
	for i, d := range diags {
		if i > 0 {
			sb.WriteByte('\n')
			sb.WriteString(strings.Repeat("-", 40))
			sb.WriteByte('\n')
		}
		sb.WriteString(d.Format(src))
	}
	return sb.String()
}
