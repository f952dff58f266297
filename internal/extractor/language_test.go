package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the language registry:
// - Resolve by name, by dotted extension, by bare extension, by filename
// - Hints are case-insensitive and whitespace-tolerant
// - Unknown hints and empty hints fail with ErrUnsupportedLanguage
// - Every registered profile carries a grammar and a line comment token
// - Names() is sorted and covers all ten built-in languages

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	r := NewRegistry()

	cases := []struct {
		hint string
		want string
	}{
		{"python", "python"},
		{".py", "python"},
		{"py", "python"},
		{"app.py", "python"},
		{"main.go", "go"},
		{"GO", "go"},
		{"  rust  ", "rust"},
		{"component.tsx", "typescript"},
		{"lib/util.rb", "ruby"},
		{"Service.java", "java"},
		{"index.mjs", "javascript"},
		{"vector.hpp", "cpp"},
		{"parser.c", "c"},
		{"index.php", "php"},
	}
	for _, tc := range cases {
		p, err := r.Resolve(tc.hint)
		require.NoError(t, err, "hint %q", tc.hint)
		assert.Equal(t, tc.want, p.Name, "hint %q", tc.hint)
	}
}

func TestRegistryResolve_Unknown(t *testing.T) {
	t.Parallel()

	r := NewRegistry()

	_, err := r.Resolve("file.xyz")
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)

	_, err = r.Resolve("")
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)

	_, err = r.Resolve("brainfuck")
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestRegistryProfilesComplete(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	names := r.Names()

	assert.Equal(t, []string{
		"c", "cpp", "go", "java", "javascript",
		"php", "python", "ruby", "rust", "typescript",
	}, names)

	for _, name := range names {
		p, err := r.Resolve(name)
		require.NoError(t, err)
		assert.NotNil(t, p.Language(), "%s: grammar missing", name)
		assert.NotEmpty(t, p.LineComment, "%s: line comment token missing", name)
		assert.NotEmpty(t, p.Function, "%s: function kinds missing", name)
		assert.NotEmpty(t, r.Extensions(name), "%s: extensions missing", name)
		if name != "python" {
			// every grammar except indentation-delimited python closes blocks
			// with a brace or keyword line that compaction must retain
			assert.NotEmpty(t, p.Delimited, "%s: delimited kinds missing", name)
		}
	}
}
