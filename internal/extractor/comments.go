package extractor

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// LineClass labels a line's relationship to comments.
type LineClass int

const (
	// CodeLine has no comment content.
	CodeLine LineClass = iota
	// CommentOnlyLine consists entirely of comment text (or whitespace).
	CommentOnlyLine
	// CodeLineWithTrailingComment carries code followed by an inline comment.
	CodeLineWithTrailingComment
)

// commentView is a per-line classification of one function span plus a
// masked "analysis view" of its lines in which comment characters are
// blanked out. The masked view is consumed only by the identifier analyzer
// and the compressor; full extraction never uses it. Multi-line block
// comments are treated as one logical region spanning all their lines.
type commentView struct {
	spanStart int // 1-based first line covered
	classes   []LineClass
	masked    []string
}

// classOf returns the classification for a 1-based source line.
func (v *commentView) classOf(line int) LineClass {
	i := line - v.spanStart
	if i < 0 || i >= len(v.classes) {
		return CodeLine
	}
	return v.classes[i]
}

// maskedLine returns the analysis view of a 1-based source line.
func (v *commentView) maskedLine(line int) string {
	i := line - v.spanStart
	if i < 0 || i >= len(v.masked) {
		return ""
	}
	return v.masked[i]
}

// classifyComments builds the comment view for the subtree rooted at
// funcNode over the span lines [spanStart, spanStart+len(lines)-1].
func classifyComments(funcNode *sitter.Node, profile *LanguageProfile, lines []string, spanStart int) *commentView {
	v := &commentView{
		spanStart: spanStart,
		classes:   make([]LineClass, len(lines)),
		masked:    make([]string, len(lines)),
	}
	hasComment := make([]bool, len(lines))
	masked := make([][]byte, len(lines))
	for i, l := range lines {
		masked[i] = []byte(l)
	}

	walkTree(funcNode, func(n *sitter.Node) bool {
		if !profile.Comment.has(n.Kind()) {
			return true
		}
		first := startLine(n)
		last := endLine(n)
		for ln := first; ln <= last; ln++ {
			i := ln - spanStart
			if i < 0 || i >= len(lines) {
				continue
			}
			hasComment[i] = true
			from := 0
			to := len(masked[i])
			if ln == first {
				from = int(n.StartPosition().Column)
			}
			if ln == last {
				to = int(n.EndPosition().Column)
			}
			blankOut(masked[i], from, to)
		}
		return false // comments have no children worth visiting
	})

	for i := range lines {
		v.masked[i] = string(masked[i])
		switch {
		case hasComment[i] && strings.TrimSpace(v.masked[i]) == "":
			v.classes[i] = CommentOnlyLine
		case hasComment[i]:
			v.classes[i] = CodeLineWithTrailingComment
		default:
			v.classes[i] = CodeLine
		}
	}
	return v
}

// blankOut replaces buf[from:to] with spaces, clamping out-of-range bounds.
func blankOut(buf []byte, from, to int) {
	if from < 0 {
		from = 0
	}
	if to > len(buf) {
		to = len(buf)
	}
	for j := from; j < to; j++ {
		buf[j] = ' '
	}
}

// maskCodeKeepComment turns a code line with an inline comment into an
// indentation-preserving placeholder that keeps only the comment, e.g.
// "    x++ // step" becomes "    … // step". It returns "" when the line has
// no inline comment.
func maskCodeKeepComment(line string, profile *LanguageProfile) string {
	idx := firstInlineCommentIndex(line, profile)
	if idx < 0 {
		return ""
	}
	indent := line[:leadingWhitespace(line)]
	return indent + "… " + strings.TrimRight(line[idx:], " \t")
}

// firstInlineCommentIndex finds the earliest comment token preceded by
// non-whitespace code, or -1 if none.
func firstInlineCommentIndex(line string, profile *LanguageProfile) int {
	tokens := []string{profile.LineComment}
	for _, bc := range profile.BlockComments {
		tokens = append(tokens, bc.Open)
	}
	best := -1
	for _, tok := range tokens {
		k := strings.Index(line, tok)
		if k <= 0 {
			continue
		}
		if strings.TrimSpace(line[:k]) == "" {
			continue
		}
		if best < 0 || k < best {
			best = k
		}
	}
	return best
}
