package extractor

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// UsageRole classifies one identifier occurrence.
type UsageRole int

const (
	// RoleRead is a right-hand-side use: call argument, return expression,
	// condition outside a loop header.
	RoleRead UsageRole = iota
	// RoleWrite is the target of an assignment, declaration, augmented
	// assignment, or parameter binding.
	RoleWrite
	// RoleLoopControl is the loop variable or condition of a loop header.
	RoleLoopControl
)

func (r UsageRole) String() string {
	switch r {
	case RoleWrite:
		return "write"
	case RoleLoopControl:
		return "loop-control"
	default:
		return "read"
	}
}

// UsageEntry records a single identifier occurrence. Usage is positional,
// not aggregated per name: an identifier written and later read yields two
// entries, because compression needs per-occurrence line attribution.
type UsageEntry struct {
	Name string    `json:"name"`
	Line int       `json:"line"` // 1-based source line
	Role UsageRole `json:"role"`
	// Depth is the number of enclosing blocks between the occurrence and the
	// function body.
	Depth int `json:"depth"`
}

// analyzeUsage classifies every identifier occurrence inside the function
// node, in source order. Occurrences inside comment nodes are skipped, which
// is what the masked analysis view guarantees textually. An empty result is
// valid, not an error.
func analyzeUsage(funcNode *sitter.Node, profile *LanguageProfile, source []byte) []UsageEntry {
	var entries []UsageEntry

	walkTree(funcNode, func(n *sitter.Node) bool {
		if profile.Comment.has(n.Kind()) {
			return false
		}
		if !profile.Identifier.has(n.Kind()) {
			return true
		}
		entries = append(entries, UsageEntry{
			Name:  nodeText(n, source),
			Line:  startLine(n),
			Role:  classifyOccurrence(n, funcNode, profile),
			Depth: blockDepth(n, funcNode, profile),
		})
		// php wraps name inside variable_name; count the outer node once
		return false
	})
	return entries
}

// classifyOccurrence determines an occurrence's role by climbing its
// ancestors inside the function. Loop-header membership wins over a write,
// which wins over the default read.
func classifyOccurrence(id *sitter.Node, funcNode *sitter.Node, profile *LanguageProfile) UsageRole {
	// parameter bindings are writes
	if params := childByAnyField(funcNode, "parameters", "parameter_list"); params != nil && containsNode(params, id) {
		return RoleWrite
	}

	role := RoleRead
	for p := id.Parent(); p != nil; p = p.Parent() {
		kind := p.Kind()
		if profile.Loop.has(kind) && !inLoopBody(p, id, profile) {
			return RoleLoopControl
		}
		if role == RoleRead && (profile.Assignment.has(kind) || profile.Declaration.has(kind)) {
			if target := writeTarget(p); target != nil && containsNode(target, id) {
				role = RoleWrite
			}
		}
		if p.Id() == funcNode.Id() {
			break
		}
	}
	return role
}

// inLoopBody reports whether id falls inside the body of loop rather than
// its header. A loop without a recognizable body counts as all-header.
func inLoopBody(loop *sitter.Node, id *sitter.Node, profile *LanguageProfile) bool {
	body := bodyOf(loop, profile)
	return body != nil && containsNode(body, id)
}

// writeTarget returns the subtree holding the names an assignment or
// declaration binds. Grammars disagree on the field name; the common ones
// are tried in order.
func writeTarget(node *sitter.Node) *sitter.Node {
	return childByAnyField(node, "left", "name", "declarator", "pattern")
}

// blockDepth counts enclosing block nodes between an occurrence and the
// function node.
func blockDepth(id *sitter.Node, funcNode *sitter.Node, profile *LanguageProfile) int {
	depth := 0
	for p := id.Parent(); p != nil; p = p.Parent() {
		if p.Id() == funcNode.Id() {
			break
		}
		if profile.Block.has(p.Kind()) {
			depth++
		}
	}
	return depth
}

// boundNames returns the default identifiers of interest: every name bound
// by a write or loop binding inside the function.
func boundNames(entries []UsageEntry) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, e := range entries {
		if e.Role == RoleRead {
			continue
		}
		if _, ok := seen[e.Name]; ok {
			continue
		}
		seen[e.Name] = struct{}{}
		names = append(names, e.Name)
	}
	return names
}
