package kdlparser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kdl-org/kdl-go/kdlparser"
)

func TestClassifyVerticalTabIsNewlineNotDisallowed(t *testing.T) {
	t.Parallel()

	assert.False(t, kdlparser.IsDisallowed(0x000B), "VT must not be a disallowed control codepoint")
	assert.True(t, kdlparser.IsNewlineScalar(0x000B), "VT must be classified as a newline-set scalar")
}
