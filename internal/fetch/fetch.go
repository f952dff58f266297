// Package fetch resolves file paths and URLs into source text for
// extraction. It handles local paths, file:// URLs, and http(s) URLs with a
// hard size cap, and rewrites GitHub blob URLs to their raw form.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"
)

// DefaultMaxBytes caps fetched sources at 50 MiB.
const DefaultMaxBytes = 50 * 1024 * 1024

// DefaultTimeout bounds a single HTTP fetch.
const DefaultTimeout = 15 * time.Second

// ErrTooLarge is returned when a source exceeds the configured byte cap.
var ErrTooLarge = errors.New("source exceeds size limit")

// Source is fetched source text plus the hint used to pick its language.
type Source struct {
	Text string

	// LanguageHint is the filename or extension derived from the location.
	LanguageHint string

	// Location is the resolved location after any URL rewriting.
	Location string
}

// Fetcher loads source text from local paths and URLs.
type Fetcher struct {
	client   *http.Client
	maxBytes int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithMaxBytes overrides the size cap.
func WithMaxBytes(n int64) Option {
	return func(f *Fetcher) { f.maxBytes = n }
}

// WithHTTPClient overrides the HTTP client, e.g. for tests.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

// WithTimeout overrides the per-fetch timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.client.Timeout = d }
}

// New creates a Fetcher with the default client, timeout, and size cap.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:   &http.Client{Timeout: DefaultTimeout},
		maxBytes: DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Load resolves location into source text. Locations may be plain filesystem
// paths, file:// URLs, or http(s) URLs; GitHub blob URLs are rewritten to
// raw.githubusercontent.com first.
func (f *Fetcher) Load(ctx context.Context, location string) (*Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, errors.New("empty source location")
	}

	u, err := url.Parse(location)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// no scheme (or a Windows drive letter): treat as a local path
		return f.loadFile(location, location)
	}

	switch u.Scheme {
	case "file":
		p, err := url.PathUnescape(u.Path)
		if err != nil {
			return nil, fmt.Errorf("invalid file URL %q: %w", location, err)
		}
		return f.loadFile(p, location)
	case "http", "https":
		raw, err := RewriteGitHubBlobURL(location)
		if err != nil {
			return nil, err
		}
		return f.loadHTTP(ctx, raw)
	default:
		return nil, fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}
}

func (f *Fetcher) loadFile(p, location string) (*Source, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", p, err)
	}
	if info.Size() > f.maxBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit %d", ErrTooLarge, p, info.Size(), f.maxBytes)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", p, err)
	}
	return &Source{
		Text:         string(data),
		LanguageHint: path.Base(strings.ReplaceAll(p, "\\", "/")),
		Location:     location,
	}, nil
}

func (f *Fetcher) loadHTTP(ctx context.Context, location string) (*Source, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid request for %s: %w", location, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch failed for %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch failed for %s: status %d", location, resp.StatusCode)
	}

	// Read one byte past the cap so an oversized body is detectable.
	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read failed for %s: %w", location, err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, location, f.maxBytes)
	}

	u, _ := url.Parse(location)
	hint := location
	if u != nil {
		hint = path.Base(u.Path)
	}
	return &Source{
		Text:         string(data),
		LanguageHint: hint,
		Location:     location,
	}, nil
}

// RewriteGitHubBlobURL converts a github.com blob URL into its
// raw.githubusercontent.com equivalent. Non-GitHub URLs pass through
// unchanged; a github.com blob URL with too few path segments is an error.
func RewriteGitHubBlobURL(location string) (string, error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", location, err)
	}
	if u.Host != "github.com" || !strings.Contains(u.Path, "/blob/") {
		return location, nil
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 5 {
		return "", fmt.Errorf("invalid GitHub blob URL %q", location)
	}
	user, repo, branch := parts[0], parts[1], parts[3]
	filePath := strings.Join(parts[4:], "/")
	return fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s/%s", user, repo, branch, filePath), nil
}
