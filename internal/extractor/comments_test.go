package extractor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for comment classification:
// - Comment-only, trailing-comment, and pure code lines are told apart
// - Multi-line block comments classify all their lines as comment-only
// - The masked analysis view blanks comment characters in place
// - maskCodeKeepComment keeps indentation and the comment text only
// - Comment tokens inside string literals are not comment starts for the
//   AST-based classifier

const goCommented = `package main

func Tally(items []int) int {
	// running total
	total := 0
	total += 1 // bump
	/* multi
	   line */
	return total
}
`

func TestClassifyComments(t *testing.T) {
	t.Parallel()

	tree, node, profile := parseFunc(t, goCommented, "go", 5)
	defer tree.Close()

	lines := splitLines(goCommented)
	span := functionSpan(node, profile, lines)
	view := classifyComments(node, profile, sliceSpan(lines, span.StartLine, span.EndLine), span.StartLine)

	assert.Equal(t, CodeLine, view.classOf(3), "signature line")
	assert.Equal(t, CommentOnlyLine, view.classOf(4))
	assert.Equal(t, CodeLine, view.classOf(5))
	assert.Equal(t, CodeLineWithTrailingComment, view.classOf(6))
	assert.Equal(t, CommentOnlyLine, view.classOf(7), "block comment opening line")
	assert.Equal(t, CommentOnlyLine, view.classOf(8), "block comment closing line")
	assert.Equal(t, CodeLine, view.classOf(9))
}

func TestClassifyComments_MaskedView(t *testing.T) {
	t.Parallel()

	tree, node, profile := parseFunc(t, goCommented, "go", 5)
	defer tree.Close()

	lines := splitLines(goCommented)
	span := functionSpan(node, profile, lines)
	view := classifyComments(node, profile, sliceSpan(lines, span.StartLine, span.EndLine), span.StartLine)

	assert.Equal(t, "\ttotal += 1", strings.TrimRight(view.maskedLine(6), " "))
	assert.Equal(t, "", strings.TrimSpace(view.maskedLine(4)))
	assert.Equal(t, "\ttotal := 0", view.maskedLine(5), "code lines pass through unchanged")
}

func TestClassifyComments_TokenInsideString(t *testing.T) {
	t.Parallel()

	source := `package main

func URL() string {
	u := "https://example.com"
	return u
}
`
	tree, node, profile := parseFunc(t, source, "go", 4)
	defer tree.Close()

	lines := splitLines(source)
	span := functionSpan(node, profile, lines)
	view := classifyComments(node, profile, sliceSpan(lines, span.StartLine, span.EndLine), span.StartLine)

	assert.Equal(t, CodeLine, view.classOf(4), "// inside a string literal is not a comment")
	assert.Contains(t, view.maskedLine(4), "https://example.com")
}

func TestMaskCodeKeepComment(t *testing.T) {
	t.Parallel()

	profile, _ := NewRegistry().Resolve("go")

	assert.Equal(t, "\t… // bump", maskCodeKeepComment("\ttotal += 1 // bump", profile))
	assert.Equal(t, "    … /* note */", maskCodeKeepComment("    x = 1 /* note */", profile))
	assert.Equal(t, "", maskCodeKeepComment("\ttotal += 1", profile), "no comment, nothing to keep")
	assert.Equal(t, "", maskCodeKeepComment("    // just a comment", profile), "comment-only lines are not inline")

	py, _ := NewRegistry().Resolve("python")
	assert.Equal(t, "    … # step", maskCodeKeepComment("    x += 1 # step", py))
}
