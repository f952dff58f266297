package extractor

import (
	"fmt"
	"sort"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// kindSet is a set of tree-sitter node-kind names.
type kindSet map[string]struct{}

func kinds(names ...string) kindSet {
	s := make(kindSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func (s kindSet) has(kind string) bool {
	_, ok := s[kind]
	return ok
}

// blockComment is a pair of block comment delimiters, e.g. /* and */.
type blockComment struct {
	Open  string
	Close string
}

// LanguageProfile describes how one language's grammar maps onto the concepts
// the resolver, analyzer, and compressor operate on. Profiles are immutable
// after registry construction; adding a language is a data change only.
type LanguageProfile struct {
	// Name is the logical language key, e.g. "python".
	Name string

	// Extensions are the file extensions (with leading dot) mapped to this
	// profile.
	Extensions []string

	// Function holds node kinds that represent a callable's declaration plus
	// body (named functions, methods, lambdas).
	Function kindSet

	// Block holds node kinds that open a lexical block / compound statement.
	Block kindSet

	// Comment holds node kinds the grammar uses for comments.
	Comment kindSet

	// Identifier holds node kinds representing identifier occurrences.
	Identifier kindSet

	// MemberLike holds node kinds for member/field access whose component
	// identifiers should be collected individually (obj.field).
	MemberLike kindSet

	// Assignment holds plain and augmented assignment node kinds.
	Assignment kindSet

	// Declaration holds local variable declaration node kinds.
	Declaration kindSet

	// Call holds call-expression node kinds.
	Call kindSet

	// Loop holds loop statement node kinds; their non-body portion is the
	// loop header.
	Loop kindSet

	// Control holds control-flow statement kinds whose headers must survive
	// compaction when their bodies do (conditionals, loops, switches).
	Control kindSet

	// Delimited holds node kinds whose last line is a closing delimiter (a
	// brace, ruby's end keyword); both delimiter lines survive compaction so
	// elided regions stay balanced. Empty for indentation-delimited grammars.
	Delimited kindSet

	// AttachablePrefix holds node kinds of decorator/annotation/attribute
	// siblings that belong to the following function definition.
	AttachablePrefix kindSet

	// AttachableParent holds wrapper node kinds (e.g. python's
	// decorated_definition) whose span already includes the prefix lines.
	AttachableParent kindSet

	// ClosingIsBrace is true for languages whose blocks close with a brace
	// on its own line rather than by dedent.
	ClosingIsBrace bool

	// LineComment is the line comment token used for placeholder markers.
	LineComment string

	// BlockComments lists block comment delimiter pairs, if any.
	BlockComments []blockComment

	language *sitter.Language
}

// Language returns the compiled tree-sitter grammar for this profile.
func (p *LanguageProfile) Language() *sitter.Language {
	return p.language
}

// Registry maps language names and file extensions to profiles. It is built
// once and read-only afterwards, so it may be shared across goroutines
// without locking.
type Registry struct {
	byName map[string]*LanguageProfile
	byExt  map[string]*LanguageProfile
}

// NewRegistry builds a registry containing every built-in language profile.
func NewRegistry() *Registry {
	r := &Registry{
		byName: make(map[string]*LanguageProfile),
		byExt:  make(map[string]*LanguageProfile),
	}
	for _, p := range builtinProfiles() {
		r.register(p)
	}
	return r
}

func (r *Registry) register(p *LanguageProfile) {
	r.byName[p.Name] = p
	for _, ext := range p.Extensions {
		r.byExt[ext] = p
	}
}

// Resolve maps a language hint to a profile. The hint is either an explicit
// profile name ("python"), a file extension (".py"), or a filename whose
// extension is used ("app.py"). An unmapped hint yields ErrUnsupportedLanguage.
func (r *Registry) Resolve(hint string) (*LanguageProfile, error) {
	h := strings.ToLower(strings.TrimSpace(hint))
	if h == "" {
		return nil, fmt.Errorf("%w: empty language hint", ErrUnsupportedLanguage)
	}
	if p, ok := r.byName[h]; ok {
		return p, nil
	}
	ext := h
	if i := strings.LastIndex(h, "."); i >= 0 {
		ext = h[i:]
	} else {
		ext = "." + h
	}
	if p, ok := r.byExt[ext]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, hint)
}

// Names returns the registered language names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Extensions returns the extensions mapped to the named language.
func (r *Registry) Extensions(name string) []string {
	if p, ok := r.byName[name]; ok {
		return p.Extensions
	}
	return nil
}
