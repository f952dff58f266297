package report

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan:
// - Open creates the schema on a fresh database
// - Write persists records and All returns them
// - ByLocation filters to one location
// - Failed extractions round-trip their error text

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "report.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func record(location string, line int) Record {
	return Record{
		ID:        uuid.NewString(),
		Location:  location,
		Line:      line,
		Language:  "python",
		StartLine: line - 1,
		EndLine:   line + 3,
		Kind:      "function_definition",
		Text:      "def f():\n    return 1",
		CreatedAt: time.Now(),
	}
}

func TestStoreWriteAndRead(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	records := []Record{
		record("app/main.py", 10),
		record("app/main.py", 42),
		record("lib/util.py", 7),
	}
	require.NoError(t, s.Write(records))

	all, err := s.All()
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byLoc, err := s.ByLocation("app/main.py")
	require.NoError(t, err)
	assert.Len(t, byLoc, 2)
	for _, r := range byLoc {
		assert.Equal(t, "app/main.py", r.Location)
		assert.Equal(t, "function_definition", r.Kind)
	}
}

func TestStoreEmptyWrite(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	require.NoError(t, s.Write(nil))

	all, err := s.All()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestStoreErrorRecord(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	failed := Record{
		ID:        uuid.NewString(),
		Location:  "gone.py",
		Line:      3,
		Language:  "python",
		Error:     "no enclosing function found",
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.Write([]Record{failed}))

	got, err := s.ByLocation("gone.py")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "no enclosing function found", got[0].Error)
	assert.Empty(t, got[0].Text)
}
