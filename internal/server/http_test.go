package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codectx/internal/extractor"
)

// Test Plan:
// - /health responds without auth
// - /api/extract rejects a missing or wrong bearer token when auth is on
// - /api/extract returns the function text and span for inline source
// - /api/compress honors the identifiers filter
// - Bad requests (missing line, missing source) return 400
// - Extraction failures map to the right statuses (422 language, 404 no
//   function, 400 bad line)
// - Responses carry an X-Request-ID header

const pySource = `def run(items):
    acc = 0
    total_logged = 0
    for item in items:
        log.info("processing %s", item)
        acc += item
    return acc
`

func newTestServer(token string) *Server {
	return New(extractor.New(), Options{AuthToken: token})
}

func postJSON(t *testing.T, s *Server, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	t.Parallel()

	s := newTestServer("secret")
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestAuth(t *testing.T) {
	t.Parallel()

	s := newTestServer("secret")
	body := map[string]any{"source": pySource, "filename": "run.py", "line_number": 2}

	w := postJSON(t, s, "/api/extract", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(t, s, "/api/extract", "wrong", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(t, s, "/api/extract", "secret", body)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestExtract_InlineSource(t *testing.T) {
	t.Parallel()

	s := newTestServer("")
	w := postJSON(t, s, "/api/extract", "", map[string]any{
		"source":      pySource,
		"filename":    "run.py",
		"line_number": 5,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var result extractor.FunctionText
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "python", result.Language)
	assert.Equal(t, 1, result.Span.StartLine)
	assert.Equal(t, 7, result.Span.EndLine)
	assert.Contains(t, result.Text, "def run(items):")
}

func TestCompress_IdentifierFilter(t *testing.T) {
	t.Parallel()

	s := newTestServer("")
	w := postJSON(t, s, "/api/compress", "", map[string]any{
		"source":      pySource,
		"filename":    "run.py",
		"line_number": 6,
		"identifiers": []string{"acc"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result extractor.CompactedFunctionText
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, []string{"acc"}, result.Identifiers)
	assert.Contains(t, result.Text, "acc += item")
	assert.NotContains(t, result.Text, "log.info")
	assert.Contains(t, result.Text, "# ... omitted ...")
}

func TestBadRequests(t *testing.T) {
	t.Parallel()

	s := newTestServer("")

	w := postJSON(t, s, "/api/extract", "", map[string]any{"source": pySource, "filename": "run.py"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "missing line_number")

	w = postJSON(t, s, "/api/extract", "", map[string]any{"line_number": 2})
	assert.Equal(t, http.StatusBadRequest, w.Code, "missing source and file_url")

	w = postJSON(t, s, "/api/extract", "", map[string]any{"source": pySource, "line_number": 2})
	assert.Equal(t, http.StatusBadRequest, w.Code, "inline source without filename")

	req := httptest.NewRequest(http.MethodGet, "/api/extract", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestErrorStatusMapping(t *testing.T) {
	t.Parallel()

	s := newTestServer("")

	w := postJSON(t, s, "/api/extract", "", map[string]any{
		"source": "x", "filename": "file.xyz", "line_number": 1,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "unsupported language")

	w = postJSON(t, s, "/api/extract", "", map[string]any{
		"source": "TIMEOUT = 30\n", "filename": "x.py", "line_number": 1,
	})
	assert.Equal(t, http.StatusNotFound, w.Code, "no enclosing function")

	w = postJSON(t, s, "/api/extract", "", map[string]any{
		"source": pySource, "filename": "x.py", "line_number": 999,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, "line past end of file")
}

func TestLanguagesEndpoint(t *testing.T) {
	t.Parallel()

	s := newTestServer("")
	req := httptest.NewRequest(http.MethodGet, "/api/languages", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["languages"], "python")
	assert.Contains(t, body["languages"], "go")
	assert.Len(t, body["languages"], 10)
}
