package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for line slicing and dedent:
// - splitLines drops only the phantom element after a final newline
// - sliceSpan clamps out-of-range bounds and is 1-based inclusive
// - dedent removes the shared indent, leaves blank lines alone, keeps
//   relative indentation, and is a no-op at zero indent

func TestSplitLines(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b"}, splitLines("a\nb\n"))
	assert.Equal(t, []string{"a", "b"}, splitLines("a\nb"))
	assert.Equal(t, []string{"a", "", "b"}, splitLines("a\n\nb\n"))
	assert.Equal(t, []string{""}, splitLines(""))
}

func TestSliceSpan(t *testing.T) {
	t.Parallel()

	lines := []string{"one", "two", "three", "four"}

	assert.Equal(t, []string{"two", "three"}, sliceSpan(lines, 2, 3))
	assert.Equal(t, lines, sliceSpan(lines, 1, 4))
	assert.Equal(t, []string{"one"}, sliceSpan(lines, -3, 1))
	assert.Equal(t, []string{"four"}, sliceSpan(lines, 4, 99))
	assert.Nil(t, sliceSpan(lines, 3, 2))
}

func TestDedent(t *testing.T) {
	t.Parallel()

	in := []string{
		"    def f():",
		"        x = 1",
		"",
		"        return x",
	}
	assert.Equal(t, []string{
		"def f():",
		"    x = 1",
		"",
		"    return x",
	}, dedent(in))

	// zero shared indent is a no-op
	flat := []string{"a", "  b"}
	assert.Equal(t, flat, dedent(flat))

	// all-blank input stays as-is
	blanks := []string{"", "   "}
	assert.Equal(t, blanks, dedent(blanks))
}

func TestLeadingWhitespace(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, leadingWhitespace("x"))
	assert.Equal(t, 4, leadingWhitespace("    x"))
	assert.Equal(t, 2, leadingWhitespace("\t\tx"))
	assert.Equal(t, 3, leadingWhitespace(" \t "))
}
