// Package server provides the HTTP API for function extraction.
package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"codectx/internal/extractor"
	"codectx/internal/fetch"
)

// Server exposes extraction and compaction over HTTP.
type Server struct {
	extractor *extractor.Extractor
	fetcher   *fetch.Fetcher
	addr      string
	authToken string
	maxBody   int64
	mux       *http.ServeMux
}

// Options configures a Server.
type Options struct {
	Addr string

	// AuthToken enables bearer-token auth when non-empty.
	AuthToken string

	// MaxBodyBytes limits request body size; zero means DefaultMaxBodyBytes.
	MaxBodyBytes int64

	// Fetcher loads file_url sources; nil uses the default fetcher.
	Fetcher *fetch.Fetcher
}

// DefaultMaxBodyBytes limits request bodies to the same cap as fetched
// sources.
const DefaultMaxBodyBytes = fetch.DefaultMaxBytes

// New creates an HTTP server around an extractor.
func New(e *extractor.Extractor, opts Options) *Server {
	if opts.Fetcher == nil {
		opts.Fetcher = fetch.New()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	s := &Server{
		extractor: e,
		fetcher:   opts.Fetcher,
		addr:      opts.Addr,
		authToken: opts.AuthToken,
		maxBody:   opts.MaxBodyBytes,
		mux:       http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/extract", s.requireAuth(s.handleExtract))
	s.mux.HandleFunc("/api/compress", s.requireAuth(s.handleCompress))
	s.mux.HandleFunc("/api/languages", s.requireAuth(s.handleLanguages))

	// Health check stays unauthenticated for probes
	s.mux.HandleFunc("/health", s.handleHealth)
}

// Handler returns the configured route handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	log.Printf("codectx server listening on %s", s.addr)
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return srv.ListenAndServe()
}

// extractRequest is the JSON body of /api/extract and /api/compress. Either
// FileURL or Source+Filename must be set.
type extractRequest struct {
	FileURL  string `json:"file_url,omitempty"`
	Source   string `json:"source,omitempty"`
	Filename string `json:"filename,omitempty"`
	Line     int    `json:"line_number"`

	// Identifiers narrows compaction to these names (compress only).
	Identifiers []string `json:"identifiers,omitempty"`
}

// requireAuth enforces the bearer token and stamps a request ID on every
// response.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Request-ID", uuid.NewString())
		if s.authToken != "" && r.Header.Get("Authorization") != "Bearer "+s.authToken {
			errorResponse(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	jsonResponse(w, map[string][]string{"languages": s.extractor.Registry().Names()}, http.StatusOK)
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	source, hint, ok := s.resolveSource(w, r, req)
	if !ok {
		return
	}

	result, err := s.extractor.ExtractFunction(source, hint, req.Line)
	if err != nil {
		errorResponse(w, err.Error(), statusFor(err))
		return
	}
	jsonResponse(w, result, http.StatusOK)
}

func (s *Server) handleCompress(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	source, hint, ok := s.resolveSource(w, r, req)
	if !ok {
		return
	}

	opts := &extractor.CompressOptions{
		Identifiers:            req.Identifiers,
		PreserveInlineComments: true,
	}
	result, err := s.extractor.CompressFunction(source, hint, req.Line, opts)
	if err != nil {
		errorResponse(w, err.Error(), statusFor(err))
		return
	}
	jsonResponse(w, result, http.StatusOK)
}

// decodeRequest parses and validates the shared request shape.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (*extractRequest, bool) {
	if r.Method != http.MethodPost {
		errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return nil, false
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)

	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, "invalid JSON or request too large", http.StatusBadRequest)
		return nil, false
	}
	if req.Line <= 0 {
		errorResponse(w, "missing or invalid line_number", http.StatusBadRequest)
		return nil, false
	}
	if req.FileURL == "" && req.Source == "" {
		errorResponse(w, "either file_url or source+filename is required", http.StatusBadRequest)
		return nil, false
	}
	return &req, true
}

// resolveSource produces the source text and language hint from either the
// inline payload or the fetched URL.
func (s *Server) resolveSource(w http.ResponseWriter, r *http.Request, req *extractRequest) (string, string, bool) {
	if req.Source != "" {
		if req.Filename == "" {
			errorResponse(w, "filename is required with inline source", http.StatusBadRequest)
			return "", "", false
		}
		return req.Source, req.Filename, true
	}

	src, err := s.fetcher.Load(r.Context(), req.FileURL)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, fetch.ErrTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		errorResponse(w, err.Error(), status)
		return "", "", false
	}
	return src.Text, src.LanguageHint, true
}

// statusFor maps extraction failures onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, extractor.ErrUnsupportedLanguage):
		return http.StatusUnprocessableEntity
	case errors.Is(err, extractor.ErrInvalidLineNumber):
		return http.StatusBadRequest
	case errors.Is(err, extractor.ErrNoEnclosingFunction):
		return http.StatusNotFound
	case errors.Is(err, extractor.ErrParseFailure):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Response helpers
func jsonResponse(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("http: failed to encode response: %v", err)
	}
}

func errorResponse(w http.ResponseWriter, message string, status int) {
	jsonResponse(w, map[string]string{"error": message}, status)
}
