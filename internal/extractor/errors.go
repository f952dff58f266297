package extractor

import "errors"

// Terminal failure modes of extraction and compaction. All four are reported
// to the caller verbatim; the core never retries or recovers internally.
var (
	// ErrUnsupportedLanguage means no language profile is registered for the
	// given hint or file extension.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrParseFailure means the tree provider could not produce a syntax tree
	// for the source.
	ErrParseFailure = errors.New("parse failure")

	// ErrInvalidLineNumber means the query line is not 1-based or falls
	// outside the bounds of the source text.
	ErrInvalidLineNumber = errors.New("invalid line number")

	// ErrNoEnclosingFunction means the query line exists but is outside any
	// function definition (e.g. module-level code or a blank line between
	// functions).
	ErrNoEnclosingFunction = errors.New("no enclosing function")
)
