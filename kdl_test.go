package kdl_test

import (
	"context"
	"testing"

	"cdr.dev/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdl-org/kdl-go"
	"github.com/kdl-org/kdl-go/internal/kdllog"
)

func TestParseAndFormatRoundTrip(t *testing.T) {
	t.Parallel()

	doc, err := kdl.Parse(`node 1 2 { child "x" }`)
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 1)

	out := kdl.Format(doc)
	assert.Equal(t, "node 1 2 {\n    child \"x\"\n}\n", out)
}

func TestParseWithOptionsLenientDedent(t *testing.T) {
	t.Parallel()

	src := "node \"\"\"\n  a\n b\n  \"\"\"\n"

	_, err := kdl.Parse(src)
	require.Error(t, err, "inconsistent multiline indentation should be a diagnostic by default")

	doc, err := kdl.ParseWithOptions(src, &kdl.ParseOptions{LenientDedent: true})
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 1)
}

func TestParseContextLogsDiagnostics(t *testing.T) {
	t.Parallel()

	ctx := kdllog.Leveled(context.Background(), slog.LevelWarn)

	doc, err := kdl.ParseContext(ctx, "node 123abc\n", nil)
	require.Error(t, err)
	require.NotNil(t, doc)
}

func TestFormatCompact(t *testing.T) {
	t.Parallel()

	doc, err := kdl.Parse("a 1\nb 2\n")
	require.NoError(t, err)
	assert.Equal(t, "a 1; b 2", kdl.FormatCompact(doc))
}
