package extractor

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// FunctionSpan is the resolved location of the function enclosing a query
// line. All line numbers are 1-based and inclusive. Derived per call, never
// persisted.
type FunctionSpan struct {
	StartLine int `json:"start_line"`
	EndLine   int `json:"end_line"`

	// HeaderEndLine is the last line of the declaration/signature, i.e. the
	// line on which the body opens (the brace line for brace languages, the
	// signature line for indentation languages).
	HeaderEndLine int `json:"header_end_line"`

	BodyStartLine int `json:"body_start_line"`
	BodyEndLine   int `json:"body_end_line"`

	StartByte uint `json:"-"`
	EndByte   uint `json:"-"`

	// Kind is the grammar's node kind for the matched definition.
	Kind string `json:"kind"`
}

// resolveFunction finds the innermost function definition whose span contains
// the 1-based query line: descend to the smallest node covering the line,
// then climb to the nearest enclosing function kind. A line on an absorbed
// decorator/attribute resolves to the definition it annotates, so every line
// of a returned span resolves back to the same function.
func resolveFunction(root *sitter.Node, profile *LanguageProfile, line int) (*sitter.Node, error) {
	node := descendToLine(root, line)
	if node == nil {
		return nil, ErrNoEnclosingFunction
	}
	for n := node; n != nil; n = n.Parent() {
		if profile.Function.has(n.Kind()) {
			return n, nil
		}
		if profile.AttachablePrefix.has(n.Kind()) {
			if fn := annotatedDefinition(n, profile); fn != nil {
				return fn, nil
			}
		}
		if profile.AttachableParent.has(n.Kind()) {
			if fn := wrappedDefinition(n, profile); fn != nil {
				return fn, nil
			}
		}
	}
	return nil, ErrNoEnclosingFunction
}

// wrappedDefinition returns the function definition inside a wrapper node
// like python's decorated_definition.
func wrappedDefinition(n *sitter.Node, profile *LanguageProfile) *sitter.Node {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		ch := n.NamedChild(i)
		if profile.Function.has(ch.Kind()) {
			return ch
		}
	}
	return nil
}

// annotatedDefinition resolves a standalone prefix node (a rust attribute, a
// java annotation) to the definition it annotates: the next sibling that is a
// function kind, skipping further prefixes, with no blank line in between.
// Mirrors the absorption rule in expandHeader.
func annotatedDefinition(n *sitter.Node, profile *LanguageProfile) *sitter.Node {
	prev := n
	for sib := n.NextNamedSibling(); sib != nil; sib = sib.NextNamedSibling() {
		if startLine(sib) > endLine(prev)+1 {
			return nil
		}
		if profile.Function.has(sib.Kind()) {
			return sib
		}
		if profile.AttachableParent.has(sib.Kind()) {
			return wrappedDefinition(sib, profile)
		}
		if !profile.AttachablePrefix.has(sib.Kind()) {
			return nil
		}
		prev = sib
	}
	return nil
}

// descendToLine walks top-down selecting at each level the child whose span
// contains the line; among sibling candidates the most specific (smallest
// span) wins, preferring candidates that start at or before the line.
func descendToLine(root *sitter.Node, line int) *sitter.Node {
	if !containsLine(root, line) {
		return nil
	}
	node := root
	for {
		var best *sitter.Node
		for i := uint(0); i < node.ChildCount(); i++ {
			ch := node.Child(i)
			if !containsLine(ch, line) {
				continue
			}
			if best == nil || preferCandidate(ch, best, line) {
				best = ch
			}
		}
		if best == nil {
			return node
		}
		node = best
	}
}

// preferCandidate reports whether candidate should replace current when both
// contain the query line.
func preferCandidate(candidate, current *sitter.Node, line int) bool {
	candBefore := startLine(candidate) <= line
	currBefore := startLine(current) <= line
	if candBefore != currBefore {
		return candBefore
	}
	candSize := endLine(candidate) - startLine(candidate)
	currSize := endLine(current) - startLine(current)
	return candSize < currSize
}

// expandHeader absorbs decorator/annotation/attribute lines attached directly
// above the definition, and returns the span start after absorption.
func expandHeader(funcNode *sitter.Node, profile *LanguageProfile) (spanStart int, spanStartByte uint) {
	node := funcNode
	if p := node.Parent(); p != nil && profile.AttachableParent.has(p.Kind()) {
		// e.g. python decorated_definition already spans the decorators
		node = p
	}
	spanStart = startLine(node)
	spanStartByte = node.StartByte()

	// Contiguous prefix siblings with no blank line in between belong to the
	// definition.
	for sib := node.PrevNamedSibling(); sib != nil; sib = sib.PrevNamedSibling() {
		if !profile.AttachablePrefix.has(sib.Kind()) {
			break
		}
		if endLine(sib) < spanStart-1 {
			break
		}
		spanStart = startLine(sib)
		spanStartByte = sib.StartByte()
	}
	return spanStart, spanStartByte
}

// functionSpan builds the resolved span for a function node, including full
// header and body bounds.
func functionSpan(funcNode *sitter.Node, profile *LanguageProfile, lines []string) FunctionSpan {
	span := FunctionSpan{
		StartLine: startLine(funcNode),
		EndLine:   endLine(funcNode),
		StartByte: funcNode.StartByte(),
		EndByte:   funcNode.EndByte(),
		Kind:      funcNode.Kind(),
	}
	span.StartLine, span.StartByte = expandHeader(funcNode, profile)

	body := bodyOf(funcNode, profile)
	if body != nil {
		span.BodyStartLine = startLine(body)
		span.BodyEndLine = endLine(body)
		span.HeaderEndLine = nodeHeaderEnd(funcNode, profile)
	} else {
		span.BodyStartLine = span.StartLine
		span.BodyEndLine = span.EndLine
		span.HeaderEndLine = headerEndByText(lines, startLine(funcNode), span.EndLine, profile)
	}
	if span.HeaderEndLine < span.StartLine {
		span.HeaderEndLine = span.StartLine
	}
	return span
}

// nodeHeaderEnd returns the last header line of a block-opening node: the
// opening-brace line for brace languages, the line before the body for
// indentation languages (clamped for one-liners).
func nodeHeaderEnd(n *sitter.Node, profile *LanguageProfile) int {
	body := bodyOf(n, profile)
	if body == nil {
		return startLine(n)
	}
	if profile.ClosingIsBrace {
		return startLine(body)
	}
	if he := startLine(body) - 1; he >= startLine(n) {
		return he
	}
	return startLine(n)
}

// headerEndByText falls back to a textual scan when the grammar exposes no
// body field: for brace languages the header runs up to the first line
// containing an opening brace, otherwise it is the first line.
func headerEndByText(lines []string, funcStart, funcEnd int, profile *LanguageProfile) int {
	if !profile.ClosingIsBrace {
		return funcStart
	}
	for ln := funcStart; ln <= funcEnd && ln <= len(lines); ln++ {
		if strings.Contains(lines[ln-1], "{") {
			return ln
		}
	}
	return funcStart
}
