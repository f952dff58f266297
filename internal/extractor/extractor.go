// Package extractor locates the function definition enclosing a source line
// and produces either its verbatim text or a semantically compacted
// rendering. Every call owns all of its derived data; the only shared state
// is the read-only language registry, so calls may run concurrently with no
// coordination.
package extractor

import (
	"fmt"
	"sort"
	"strings"
)

// Extractor is the core entry point. It is safe for concurrent use.
type Extractor struct {
	registry *Registry
	provider TreeProvider
}

// New returns an extractor backed by the built-in language registry and the
// default tree-sitter provider.
func New() *Extractor {
	return &Extractor{
		registry: NewRegistry(),
		provider: NewTreeProvider(),
	}
}

// NewWithProvider returns an extractor using a custom tree provider, e.g. a
// different parser back-end or a test double.
func NewWithProvider(provider TreeProvider) *Extractor {
	return &Extractor{
		registry: NewRegistry(),
		provider: provider,
	}
}

// Registry exposes the read-only language registry.
func (e *Extractor) Registry() *Registry {
	return e.registry
}

// FunctionText is the full extraction result: the dedented verbatim function
// text and the span it was sliced from, so a caller can report exactly which
// region matched.
type FunctionText struct {
	Text       string       `json:"text"`
	Language   string       `json:"language"`
	Span       FunctionSpan `json:"span"`
	TargetLine int          `json:"target_line"`

	// RelativeLine is the target line's 1-based position within the span.
	RelativeLine int `json:"relative_line"`
}

// CompactedFunctionText is the compaction result: the compacted text plus
// the per-line decisions that produced it.
type CompactedFunctionText struct {
	FunctionText

	// Identifiers is the effective identifier-of-interest set, sorted.
	Identifiers []string              `json:"identifiers"`
	Decisions   []CompressionDecision `json:"decisions"`
	ElidedLines int                   `json:"elided_lines"`
}

// ExtractFunction returns the verbatim, dedented text of the function
// containing the 1-based line of source.
func (e *Extractor) ExtractFunction(source, languageHint string, line int) (*FunctionText, error) {
	profile, lines, err := e.prepare(source, languageHint, line)
	if err != nil {
		return nil, err
	}

	tree, err := e.provider.Parse([]byte(source), profile)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	funcNode, err := resolveFunction(tree.Root(), profile, line)
	if err != nil {
		return nil, err
	}
	span := functionSpan(funcNode, profile, lines)

	text := dedent(sliceSpan(lines, span.StartLine, span.EndLine))
	return &FunctionText{
		Text:         strings.Join(text, "\n"),
		Language:     profile.Name,
		Span:         span,
		TargetLine:   line,
		RelativeLine: line - span.StartLine + 1,
	}, nil
}

// CompressFunction returns a compacted rendering of the function containing
// the 1-based line: control flow and lines touching the identifiers of
// interest survive, the rest collapses into placeholder markers. A nil opts
// uses the defaults (all locally bound identifiers, inline comments kept).
func (e *Extractor) CompressFunction(source, languageHint string, line int, opts *CompressOptions) (*CompactedFunctionText, error) {
	if opts == nil {
		opts = &CompressOptions{PreserveInlineComments: true}
	}

	profile, lines, err := e.prepare(source, languageHint, line)
	if err != nil {
		return nil, err
	}

	tree, err := e.provider.Parse([]byte(source), profile)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	funcNode, err := resolveFunction(tree.Root(), profile, line)
	if err != nil {
		return nil, err
	}
	span := functionSpan(funcNode, profile, lines)

	spanLines := sliceSpan(lines, span.StartLine, span.EndLine)
	view := classifyComments(funcNode, profile, spanLines, span.StartLine)
	usage := analyzeUsage(funcNode, profile, []byte(source))

	decisions, rendered := compressFunction(funcNode, profile, lines, span, view, usage, *opts)

	names := opts.Identifiers
	if len(names) == 0 {
		names = boundNames(usage)
	}
	names = append([]string(nil), names...)
	sort.Strings(names)

	elided := 0
	for _, d := range decisions {
		if !d.Retain {
			elided++
		}
	}

	return &CompactedFunctionText{
		FunctionText: FunctionText{
			Text:         strings.Join(rendered, "\n"),
			Language:     profile.Name,
			Span:         span,
			TargetLine:   line,
			RelativeLine: line - span.StartLine + 1,
		},
		Identifiers: names,
		Decisions:   decisions,
		ElidedLines: elided,
	}, nil
}

// prepare resolves the language profile and validates the query line.
func (e *Extractor) prepare(source, languageHint string, line int) (*LanguageProfile, []string, error) {
	profile, err := e.registry.Resolve(languageHint)
	if err != nil {
		return nil, nil, err
	}
	lines := splitLines(source)
	if line < 1 || line > len(lines) {
		return nil, nil, fmt.Errorf("%w: line %d outside 1..%d", ErrInvalidLineNumber, line, len(lines))
	}
	return profile, lines, nil
}
