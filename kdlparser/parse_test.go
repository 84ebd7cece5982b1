package kdlparser_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdl-org/kdl-go/kdlast"
	"github.com/kdl-org/kdl-go/kdlparser"
)

func TestParseBasicNode(t *testing.T) {
	t.Parallel()

	doc, err := kdlparser.Parse(`node 1 3.14 {
  child "abc" #true
}
`)
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 1)

	n := doc.Nodes[0]
	assert.Equal(t, "node", n.Name.Value)
	require.Len(t, n.Entries, 2)

	i64, ok := n.Entries[0].Value.AsInt64()
	require.True(t, ok)
	assert.Equal(t, int64(1), i64)

	f, ok := n.Entries[1].Value.AsFloat64()
	require.True(t, ok)
	assert.Equal(t, 3.14, f)

	require.NotNil(t, n.Children)
	require.Len(t, n.Children.Nodes, 1)
	child := n.Children.Nodes[0]
	assert.Equal(t, "child", child.Name.Value)
	require.Len(t, child.Entries, 2)

	s, ok := child.Entries[0].Value.AsString()
	require.True(t, ok)
	assert.Equal(t, "abc", s)

	b, ok := child.Entries[1].Value.AsBool()
	require.True(t, ok)
	assert.True(t, b)
}

func TestParseReservedBareWordIsDiagnostic(t *testing.T) {
	t.Parallel()

	_, err := kdlparser.Parse("node true\n")
	require.Error(t, err)
	perr, ok := err.(*kdlparser.ParseError)
	require.True(t, ok)
	require.Len(t, perr.Diagnostics, 1)
	assert.Contains(t, perr.Diagnostics[0].Message, `"true" is a reserved bare word`)
}

func TestParseTypedValues(t *testing.T) {
	t.Parallel()

	doc, err := kdlparser.Parse(`(package)node (u8)1 key=(date)"2021-01-01"`)
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 1)

	n := doc.Nodes[0]
	assert.Equal(t, "package", n.TypeTag)
	require.Len(t, n.Entries, 2)
	assert.Equal(t, "u8", n.Entries[0].Value.TypeTag)

	prop, ok := n.Property("key")
	require.True(t, ok)
	assert.Equal(t, "date", prop.TypeTag)
	s, _ := prop.AsString()
	assert.Equal(t, "2021-01-01", s)
}

func TestParseMultilineStringDedent(t *testing.T) {
	t.Parallel()

	src := "node \"\"\"\n    line one\n    line two\n    \"\"\"\n"
	doc, err := kdlparser.Parse(src)
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 1)
	require.Len(t, doc.Nodes[0].Entries, 1)

	s, ok := doc.Nodes[0].Entries[0].Value.AsString()
	require.True(t, ok)
	assert.Equal(t, "line one\nline two", s)
}

func TestParseSlashdashNode(t *testing.T) {
	t.Parallel()

	doc, err := kdlparser.Parse("kept 1\n/-dropped 2\n")
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 1)
	assert.Equal(t, "kept", doc.Nodes[0].Name.Value)
}

func TestParseSlashdashEntry(t *testing.T) {
	t.Parallel()

	doc, err := kdlparser.Parse("node 1 /-2 3\n")
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 1)
	require.Len(t, doc.Nodes[0].Entries, 2)
	a, _ := doc.Nodes[0].Entries[0].Value.AsInt64()
	b, _ := doc.Nodes[0].Entries[1].Value.AsInt64()
	assert.Equal(t, int64(1), a)
	assert.Equal(t, int64(3), b)
}

func TestParseSlashdashChildren(t *testing.T) {
	t.Parallel()

	doc, err := kdlparser.Parse("node /-{\n  child\n}\n")
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 1)
	assert.Nil(t, doc.Nodes[0].Children)
}

func TestParseMultipleChildrenBlocksConcatenate(t *testing.T) {
	t.Parallel()

	doc, err := kdlparser.Parse("node { a; b } /-{ c } { d }\n")
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 1)
	require.NotNil(t, doc.Nodes[0].Children)
	require.Len(t, doc.Nodes[0].Children.Nodes, 3)
	assert.Equal(t, "a", doc.Nodes[0].Children.Nodes[0].Name.Value)
	assert.Equal(t, "b", doc.Nodes[0].Children.Nodes[1].Name.Value)
	assert.Equal(t, "d", doc.Nodes[0].Children.Nodes[2].Name.Value)
}

func TestParseEmptyVsAbsentChildren(t *testing.T) {
	t.Parallel()

	doc, err := kdlparser.Parse("absent\nempty {\n}\n")
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 2)
	assert.Nil(t, doc.Nodes[0].Children)
	require.NotNil(t, doc.Nodes[1].Children)
	assert.Len(t, doc.Nodes[1].Children.Nodes, 0)
}

func TestParseProperties(t *testing.T) {
	t.Parallel()

	doc, err := kdlparser.Parse(`node a=1 b=2 a=3`)
	require.NoError(t, err)
	props := doc.Nodes[0].Properties()
	v, ok := props["a"]
	require.True(t, ok)
	n, _ := v.AsInt64()
	assert.Equal(t, int64(3), n, "last write wins")
}

func TestParseNumericRadixes(t *testing.T) {
	t.Parallel()

	doc, err := kdlparser.Parse(`node 0x1A 0o17 0b101 1_000_000`)
	require.NoError(t, err)
	entries := doc.Nodes[0].Entries
	require.Len(t, entries, 4)

	hex, _ := entries[0].Value.AsBigInt()
	assert.Equal(t, big.NewInt(0x1A), hex)

	oct, _ := entries[1].Value.AsBigInt()
	assert.Equal(t, big.NewInt(0o17), oct)

	bin, _ := entries[2].Value.AsBigInt()
	assert.Equal(t, big.NewInt(5), bin)

	grouped, ok := entries[3].Value.AsInt64()
	require.True(t, ok)
	assert.Equal(t, int64(1000000), grouped)
}

func TestParseNumberAbuttingIdentifierIsError(t *testing.T) {
	t.Parallel()

	_, err := kdlparser.Parse("node 123abc\n")
	require.Error(t, err, "a number abutting an identifier-continue scalar must be a lex error")
}

func TestParseRawString(t *testing.T) {
	t.Parallel()

	doc, err := kdlparser.Parse(`node #"no \escape here"#`)
	require.NoError(t, err)
	s, ok := doc.Nodes[0].Entries[0].Value.AsString()
	require.True(t, ok)
	assert.Equal(t, `no \escape here`, s)
}

func TestParseUnicodeEscapeRejectsSurrogateAndDisallowed(t *testing.T) {
	t.Parallel()

	_, err := kdlparser.Parse(`node "\u{D800}"`)
	require.Error(t, err, "a surrogate codepoint must be forbidden in a unicode escape")

	_, err = kdlparser.Parse(`node "\u{01}"`)
	require.Error(t, err, "a disallowed control codepoint must be forbidden in a unicode escape")
}

func TestParseKeywordLiterals(t *testing.T) {
	t.Parallel()

	doc, err := kdlparser.Parse(`node #true #false #null #inf #-inf #nan`)
	require.NoError(t, err)
	entries := doc.Nodes[0].Entries
	require.Len(t, entries, 6)
	assert.Equal(t, kdlast.KindBool, entries[0].Value.Kind)
	assert.Equal(t, kdlast.KindBool, entries[1].Value.Kind)
	assert.Equal(t, kdlast.KindNull, entries[2].Value.Kind)
	assert.Equal(t, kdlast.KindFloat64, entries[3].Value.Kind)
	assert.Equal(t, kdlast.KindFloat64, entries[4].Value.Kind)
	assert.Equal(t, kdlast.KindFloat64, entries[5].Value.Kind)
}

func TestParseBareIdentifierAsValue(t *testing.T) {
	t.Parallel()

	doc, err := kdlparser.Parse(`node bareword`)
	require.NoError(t, err)
	s, ok := doc.Nodes[0].Entries[0].Value.AsString()
	require.True(t, ok)
	assert.Equal(t, "bareword", s)
}

func TestParseMultipleTopLevelNodes(t *testing.T) {
	t.Parallel()

	doc, err := kdlparser.Parse("a 1\nb 2; c 3\n")
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 3)
	assert.Equal(t, "a", doc.Nodes[0].Name.Value)
	assert.Equal(t, "b", doc.Nodes[1].Name.Value)
	assert.Equal(t, "c", doc.Nodes[2].Name.Value)
}
