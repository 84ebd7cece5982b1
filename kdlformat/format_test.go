package kdlformat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"oss.terrastruct.com/diff"

	"github.com/kdl-org/kdl-go/kdlformat"
	"github.com/kdl-org/kdl-go/kdlparser"
)

func roundTripFormat(t *testing.T, src string) string {
	t.Helper()
	doc, err := kdlparser.Parse(src)
	require.NoError(t, err)
	return kdlformat.Format(doc)
}

// assertFormatted compares exp and got with diff.Strings so a mismatch
// prints a readable diff instead of two long quoted strings side by
// side, the same pattern the teacher's own format-regression tests use
// (see d2compiler/compile_test.go's "DSL didn't change" assertions).
func assertFormatted(t *testing.T, exp, got string) {
	t.Helper()
	ds, err := diff.Strings(exp, got)
	require.NoError(t, err)
	if ds != "" {
		t.Fatalf("exp != got:\n%s", ds)
	}
}

func TestFormatBasicNode(t *testing.T) {
	t.Parallel()

	out := roundTripFormat(t, `node 1 "two" #true {child}`)
	assertFormatted(t, "node 1 \"two\" #true {\n    child\n}\n", out)
}

func TestFormatStringValueIsAlwaysQuoted(t *testing.T) {
	t.Parallel()

	out := roundTripFormat(t, `node bareword`)
	assertFormatted(t, "node \"bareword\"\n", out)
}

func TestFormatTypeTags(t *testing.T) {
	t.Parallel()

	out := roundTripFormat(t, `(package)node (u8)1 key=(date)"x"`)
	assertFormatted(t, "(package)node (u8)1 key=(date)\"x\"\n", out)
}

func TestFormatIdentifierIsQuotedWhenItNeedsIt(t *testing.T) {
	t.Parallel()

	out := roundTripFormat(t, `node "has space"=1`)
	assert.Contains(t, out, `"has space"=1`)
}
