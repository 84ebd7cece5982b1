package kdlast_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kdl-org/kdl-go/kdlast"
)

func TestDiagnosticFormat(t *testing.T) {
	t.Parallel()

	src := "node 1 2\nbad)name 3\n"
	d := kdlast.Diagnostic{
		Range: kdlast.Range{
			Start: kdlast.Position{Line: 1, Column: 3, Byte: 12},
			End:   kdlast.Position{Line: 1, Column: 4, Byte: 13},
		},
		Message: "unexpected ')'",
		Label:   "here",
	}

	out := d.Format(src)
	assert.True(t, strings.Contains(out, "2:4"))
	assert.True(t, strings.Contains(out, "unexpected ')'"))
	assert.True(t, strings.Contains(out, "bad)name 3"))
	assert.True(t, strings.Contains(out, "here"))
}

func TestFormatAllSeparatesWithRule(t *testing.T) {
	t.Parallel()

	src := "a\nb\n"
	diags := []kdlast.Diagnostic{
		{Range: kdlast.Range{Start: kdlast.Position{Line: 0, Column: 0, Byte: 0}}, Message: "one"},
		{Range: kdlast.Range{Start: kdlast.Position{Line: 1, Column: 0, Byte: 2}}, Message: "two"},
	}

	out := kdlast.FormatAll(src, diags)
	assert.True(t, strings.Contains(out, "one"))
	assert.True(t, strings.Contains(out, "two"))
	assert.True(t, strings.Contains(out, strings.Repeat("-", 40)))
}
