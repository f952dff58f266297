// Package batch runs function extraction over a findings list, the typical
// output of a static-analysis run: many file:line records that each need the
// enclosing function's context.
package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gobwas/glob"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"codectx/internal/extractor"
	"codectx/internal/fetch"
	"codectx/internal/report"
)

// Finding is one record of a findings file: a location plus the line to
// extract context for.
type Finding struct {
	Location string `json:"location"`
	Line     int    `json:"line"`

	// Identifiers narrows compaction, when compaction is enabled.
	Identifiers []string `json:"identifiers,omitempty"`
}

// Options configures a batch run.
type Options struct {
	// Include holds glob patterns a finding's location must match; empty
	// means every finding is processed.
	Include []string

	// Compress switches the run from verbatim extraction to compaction.
	Compress bool

	// Workers is the number of concurrent extractions; values below one
	// fall back to one.
	Workers int

	// Progress renders a terminal progress bar when true.
	Progress bool
}

// Runner executes batch extraction runs.
type Runner struct {
	extractor *extractor.Extractor
	fetcher   *fetch.Fetcher
	includes  []glob.Glob
	opts      Options
}

// NewRunner builds a Runner; Include patterns are compiled up front so a bad
// pattern fails before any work starts.
func NewRunner(e *extractor.Extractor, f *fetch.Fetcher, opts Options) (*Runner, error) {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	r := &Runner{extractor: e, fetcher: f, opts: opts}
	for _, pattern := range opts.Include {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern %q: %w", pattern, err)
		}
		r.includes = append(r.includes, g)
	}
	return r, nil
}

// LoadFindings reads a findings file: a JSON array of {location, line}
// records.
func LoadFindings(path string) ([]Finding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read findings file: %w", err)
	}
	var findings []Finding
	if err := json.Unmarshal(data, &findings); err != nil {
		return nil, fmt.Errorf("failed to parse findings file %s: %w", path, err)
	}
	for i, f := range findings {
		if f.Location == "" || f.Line < 1 {
			return nil, fmt.Errorf("finding %d: location and a positive line are required", i)
		}
	}
	return findings, nil
}

// Run extracts context for every matching finding and returns one record per
// processed finding, in input order. Per-finding failures land in the
// record's Error field; only infrastructure problems abort the run.
func (r *Runner) Run(ctx context.Context, findings []Finding) ([]report.Record, error) {
	selected := r.filter(findings)
	if len(selected) == 0 {
		return nil, nil
	}

	var bar *progressbar.ProgressBar
	if r.opts.Progress {
		bar = progressbar.NewOptions(len(selected),
			progressbar.OptionSetDescription("Extracting context"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
		)
	}

	records := make([]report.Record, len(selected))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < r.opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				records[i] = r.processOne(ctx, selected[i])
				if bar != nil {
					_ = bar.Add(1)
				}
			}
		}()
	}

	for i := range selected {
		select {
		case jobs <- i:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		}
	}
	close(jobs)
	wg.Wait()

	if bar != nil {
		_ = bar.Finish()
		fmt.Println()
	}
	return records, nil
}

// filter returns the findings whose location matches at least one include
// pattern.
func (r *Runner) filter(findings []Finding) []Finding {
	if len(r.includes) == 0 {
		return findings
	}
	var out []Finding
	for _, f := range findings {
		path := strings.ReplaceAll(f.Location, "\\", "/")
		for _, g := range r.includes {
			if g.Match(path) {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

func (r *Runner) processOne(ctx context.Context, f Finding) report.Record {
	rec := report.Record{
		ID:         uuid.NewString(),
		Location:   f.Location,
		Line:       f.Line,
		Compressed: r.opts.Compress,
		CreatedAt:  time.Now(),
	}

	src, err := r.fetcher.Load(ctx, f.Location)
	if err != nil {
		rec.Error = err.Error()
		return rec
	}

	if r.opts.Compress {
		result, err := r.extractor.CompressFunction(src.Text, src.LanguageHint, f.Line, &extractor.CompressOptions{
			Identifiers:            f.Identifiers,
			PreserveInlineComments: true,
		})
		if err != nil {
			rec.Error = err.Error()
			return rec
		}
		fillRecord(&rec, &result.FunctionText)
		return rec
	}

	result, err := r.extractor.ExtractFunction(src.Text, src.LanguageHint, f.Line)
	if err != nil {
		rec.Error = err.Error()
		return rec
	}
	fillRecord(&rec, result)
	return rec
}

func fillRecord(rec *report.Record, ft *extractor.FunctionText) {
	rec.Language = ft.Language
	rec.StartLine = ft.Span.StartLine
	rec.EndLine = ft.Span.EndLine
	rec.Kind = ft.Span.Kind
	rec.Text = ft.Text
}
