package extractor

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// TreeProvider turns source text into a concrete syntax tree for a language
// profile. It is a capability seam: any conforming parser back-end can be
// substituted without touching the resolver, analyzer, or compressor.
type TreeProvider interface {
	Parse(source []byte, profile *LanguageProfile) (*Tree, error)
}

// Tree wraps one parsed syntax tree. It is owned by the extraction call that
// produced it and must be closed when the call completes; nodes must not be
// retained past that point.
type Tree struct {
	inner *sitter.Tree
}

// Root returns the tree's root node.
func (t *Tree) Root() *sitter.Node {
	return t.inner.RootNode()
}

// Close releases the underlying tree.
func (t *Tree) Close() {
	t.inner.Close()
}

// sitterProvider is the default TreeProvider backed by tree-sitter and the
// compiled-in grammar bindings.
type sitterProvider struct{}

// NewTreeProvider returns the default tree-sitter backed provider.
func NewTreeProvider() TreeProvider {
	return &sitterProvider{}
}

func (sp *sitterProvider) Parse(source []byte, profile *LanguageProfile) (*Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(profile.Language())

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("%w: %s parser produced no tree", ErrParseFailure, profile.Name)
	}
	if tree.RootNode().Kind() == "ERROR" {
		tree.Close()
		return nil, fmt.Errorf("%w: source is not valid %s", ErrParseFailure, profile.Name)
	}
	return &Tree{inner: tree}, nil
}

// nodeText extracts the text content of a node.
func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// startLine and endLine return a node's 1-based line bounds.
func startLine(node *sitter.Node) int {
	return int(node.StartPosition().Row) + 1
}

func endLine(node *sitter.Node) int {
	return int(node.EndPosition().Row) + 1
}

// containsLine reports whether the node's span covers the 1-based line.
func containsLine(node *sitter.Node, line int) bool {
	return startLine(node) <= line && line <= endLine(node)
}

// containsNode reports whether outer's byte span covers inner's.
func containsNode(outer, inner *sitter.Node) bool {
	return outer.StartByte() <= inner.StartByte() && inner.EndByte() <= outer.EndByte()
}

// walkTree calls the visitor for each node, descending into children only
// while the visitor returns true.
func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}
	if !visitor(node) {
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		walkTree(node.Child(i), visitor)
	}
}

// childByAnyField returns the first child found under one of the given field
// names.
func childByAnyField(node *sitter.Node, fields ...string) *sitter.Node {
	for _, f := range fields {
		if ch := node.ChildByFieldName(f); ch != nil {
			return ch
		}
	}
	return nil
}

// bodyOf returns the node's body child: the body-like field when the grammar
// exposes one, otherwise the first named child that opens a block. The lines
// before the body are the node's header.
func bodyOf(node *sitter.Node, profile *LanguageProfile) *sitter.Node {
	if body := childByAnyField(node, "body", "consequence"); body != nil {
		return body
	}
	for i := uint(0); i < node.NamedChildCount(); i++ {
		ch := node.NamedChild(i)
		if profile.Block.has(ch.Kind()) {
			return ch
		}
	}
	return nil
}
