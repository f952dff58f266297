package extractor

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// elisionMarker is the placeholder emitted once per run of elided lines.
const elisionMarker = "... omitted ..."

// DecisionReason tags why a body line was retained or elided.
type DecisionReason string

const (
	ReasonControlFlow    DecisionReason = "control-flow"
	ReasonBlockDelimiter DecisionReason = "block-delimiter"
	ReasonRelevantWrite  DecisionReason = "relevant-write"
	ReasonRelevantRead   DecisionReason = "relevant-read"
	ReasonElided         DecisionReason = "elided"
)

// CompressionDecision records the retain/elide verdict for one source line of
// the function body. Decisions are computed fresh per call and never cached
// across different identifier-of-interest sets.
type CompressionDecision struct {
	Line   int            `json:"line"` // 1-based source line
	Retain bool           `json:"retain"`
	Reason DecisionReason `json:"reason"`
}

// CompressOptions tunes compaction.
type CompressOptions struct {
	// Identifiers are the names whose touching lines must survive. Nil or
	// empty means every name locally bound inside the function. A set that
	// matches nothing yields a valid, maximally elided result.
	Identifiers []string

	// PreserveInlineComments keeps the trailing comments of elided lines,
	// with their code masked out.
	PreserveInlineComments bool
}

// compressor holds the per-call state of one compaction. No state survives
// the call.
type compressor struct {
	profile  *LanguageProfile
	span     FunctionSpan
	lines    []string // full source, 1-based via lines[n-1]
	view     *commentView
	usage    []UsageEntry
	interest map[string]struct{}

	reasons map[int]DecisionReason
}

// compressFunction decides, per body line, whether it is semantically
// load-bearing, and renders the compacted text. The decision rules, in
// priority order: block delimiters and control-flow headers always stay;
// then lines writing an identifier of interest; then reads of interest that
// are either the final read of that name or feed a retained line (single-hop
// backward relevance, deliberately not full def-use chaining); everything
// else is elided.
func compressFunction(funcNode *sitter.Node, profile *LanguageProfile, lines []string, span FunctionSpan, view *commentView, usage []UsageEntry, opts CompressOptions) ([]CompressionDecision, []string) {
	c := &compressor{
		profile: profile,
		span:    span,
		lines:   lines,
		view:    view,
		usage:   usage,
		reasons: make(map[int]DecisionReason),
	}

	names := opts.Identifiers
	if len(names) == 0 {
		names = boundNames(usage)
	}
	c.interest = make(map[string]struct{}, len(names))
	for _, n := range names {
		c.interest[n] = struct{}{}
	}

	c.markStructural(funcNode)
	c.markRelevantWrites()
	c.markRelevantReads()
	c.inheritCommentDecisions()

	decisions := c.decisions()
	return decisions, c.render(decisions, opts.PreserveInlineComments)
}

// bodyRange returns the first and last line the decision pass covers.
func (c *compressor) bodyRange() (int, int) {
	return c.span.HeaderEndLine + 1, c.span.EndLine
}

func (c *compressor) mark(line int, reason DecisionReason) {
	lo, hi := c.bodyRange()
	if line < lo || line > hi {
		return
	}
	if _, done := c.reasons[line]; done {
		return
	}
	c.reasons[line] = reason
}

// markStructural retains control-flow headers and the opening/closing lines
// of delimited nodes (braces, ruby's end), so elided regions still yield
// balanced output.
func (c *compressor) markStructural(funcNode *sitter.Node) {
	walkTree(funcNode, func(n *sitter.Node) bool {
		kind := n.Kind()
		if c.profile.Comment.has(kind) {
			return false
		}
		if c.profile.Control.has(kind) || c.profile.Loop.has(kind) {
			for ln := startLine(n); ln <= nodeHeaderEnd(n, c.profile); ln++ {
				c.mark(ln, ReasonControlFlow)
			}
		}
		if c.profile.Delimited.has(kind) {
			c.mark(startLine(n), ReasonBlockDelimiter)
			c.mark(endLine(n), ReasonBlockDelimiter)
		}
		return true
	})
}

// markRelevantWrites retains every line carrying a write or loop binding of
// an identifier of interest.
func (c *compressor) markRelevantWrites() {
	for _, e := range c.usage {
		if e.Role == RoleRead {
			continue
		}
		if _, ok := c.interest[e.Name]; !ok {
			continue
		}
		c.mark(e.Line, ReasonRelevantWrite)
	}
}

// markRelevantReads retains reads of interest that are the final read of
// that name, or that sit on a line whose own writes feed an already retained
// line. This is a one-hop heuristic, not data-flow analysis.
func (c *compressor) markRelevantReads() {
	lastRead := make(map[string]int)
	writesByLine := make(map[int][]string)
	for _, e := range c.usage {
		switch e.Role {
		case RoleRead:
			if e.Line > lastRead[e.Name] {
				lastRead[e.Name] = e.Line
			}
		default:
			writesByLine[e.Line] = append(writesByLine[e.Line], e.Name)
		}
	}

	// names read anywhere on a line retained by the earlier rules
	readOnRetained := make(map[string]struct{})
	for _, e := range c.usage {
		if e.Role != RoleRead {
			continue
		}
		if _, ok := c.reasons[e.Line]; ok {
			readOnRetained[e.Name] = struct{}{}
		}
	}

	for _, e := range c.usage {
		if e.Role != RoleRead {
			continue
		}
		if _, ok := c.interest[e.Name]; !ok {
			continue
		}
		if _, done := c.reasons[e.Line]; done {
			continue
		}
		if lastRead[e.Name] == e.Line {
			c.mark(e.Line, ReasonRelevantRead)
			continue
		}
		for _, written := range writesByLine[e.Line] {
			if _, ok := readOnRetained[written]; ok {
				c.mark(e.Line, ReasonRelevantRead)
				break
			}
		}
	}
}

// inheritCommentDecisions gives comment-only and blank lines the verdict of
// the next code line; a trailing run with no following code is elided with
// the run.
func (c *compressor) inheritCommentDecisions() {
	lo, hi := c.bodyRange()
	pending := -1 // first line of the current comment/blank run
	for ln := lo; ln <= hi; ln++ {
		if c.isPassive(ln) {
			if pending < 0 {
				pending = ln
			}
			continue
		}
		if pending >= 0 {
			if reason, ok := c.reasons[ln]; ok {
				for p := pending; p < ln; p++ {
					c.mark(p, reason)
				}
			}
			pending = -1
		}
	}
}

// isPassive reports whether a line carries no code of its own.
func (c *compressor) isPassive(line int) bool {
	if line < 1 || line > len(c.lines) {
		return false
	}
	if strings.TrimSpace(c.lines[line-1]) == "" {
		return true
	}
	return c.view.classOf(line) == CommentOnlyLine
}

// decisions materializes the verdict for every body line.
func (c *compressor) decisions() []CompressionDecision {
	lo, hi := c.bodyRange()
	if hi < lo {
		return nil
	}
	out := make([]CompressionDecision, 0, hi-lo+1)
	for ln := lo; ln <= hi; ln++ {
		if reason, ok := c.reasons[ln]; ok {
			out = append(out, CompressionDecision{Line: ln, Retain: true, Reason: reason})
		} else {
			out = append(out, CompressionDecision{Line: ln, Retain: false, Reason: ReasonElided})
		}
	}
	return out
}

// render assembles the compacted lines: the full header, retained body lines
// verbatim, and one placeholder marker per elided run. The marker is a
// comment, so the output stays block-balanced. A run of n elided source
// lines never renders as more than n output lines, so compaction cannot
// exceed the full extraction's line count.
func (c *compressor) render(decisions []CompressionDecision, preserveInline bool) []string {
	out := sliceSpan(c.lines, c.span.StartLine, c.span.HeaderEndLine)

	elided := 0 // non-blank lines in the current elided run
	flush := func(upto int) {
		if elided == 0 {
			return
		}
		run := elidedRunLength(decisions, upto)
		out = append(out, c.markerLine(upto-run, upto))
		emitted := 1
		if preserveInline {
			for ln := upto - run; ln < upto && emitted < run; ln++ {
				if c.view.classOf(ln) == CodeLineWithTrailingComment {
					if masked := maskCodeKeepComment(c.lines[ln-1], c.profile); masked != "" {
						out = append(out, masked)
						emitted++
					}
				}
			}
		}
		elided = 0
	}

	for _, d := range decisions {
		if d.Retain {
			flush(d.Line)
			out = append(out, c.lines[d.Line-1])
			continue
		}
		if strings.TrimSpace(c.lines[d.Line-1]) != "" {
			elided++
		}
	}
	flush(c.span.EndLine + 1)

	return dedent(out)
}

// markerLine indents the elision marker like the first non-blank line of the
// elided run, falling back to the line that follows the run.
func (c *compressor) markerLine(runStart, nextLine int) string {
	indent := ""
	for ln := runStart; ln < nextLine && ln >= 1 && ln <= len(c.lines); ln++ {
		l := c.lines[ln-1]
		if strings.TrimSpace(l) != "" {
			indent = l[:leadingWhitespace(l)]
			return indent + c.profile.LineComment + " " + elisionMarker
		}
	}
	if nextLine >= 1 && nextLine <= len(c.lines) {
		l := c.lines[nextLine-1]
		indent = l[:leadingWhitespace(l)]
	}
	return indent + c.profile.LineComment + " " + elisionMarker
}

// elidedRunLength counts the contiguous elided decisions ending just before
// the given line.
func elidedRunLength(decisions []CompressionDecision, before int) int {
	n := 0
	for _, d := range decisions {
		if d.Line >= before {
			break
		}
		if d.Retain {
			n = 0
		} else {
			n++
		}
	}
	return n
}
