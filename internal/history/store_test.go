package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "searches.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openTestStore(t)

	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	for i, q := range []string{"first", "second", "third"} {
		require.NoError(t, s.Record(Entry{
			ID:          string(rune('a' + i)),
			Timestamp:   base.Add(time.Duration(i) * time.Minute),
			Query:       q,
			BackendUsed: "metasearch",
			Requested:   8,
			Returned:    i + 1,
			Duration:    120 * time.Millisecond,
		}))
	}

	entries, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest first.
	assert.Equal(t, "third", entries[0].Query)
	assert.Equal(t, "first", entries[2].Query)
	assert.Equal(t, "metasearch", entries[0].BackendUsed)
	assert.Equal(t, 3, entries[0].Returned)
	assert.Equal(t, 120*time.Millisecond, entries[0].Duration)
	assert.True(t, entries[0].Timestamp.Equal(base.Add(2*time.Minute)))
}

func TestRecentLimit(t *testing.T) {
	s := openTestStore(t)

	base := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Record(Entry{
			ID:        string(rune('a' + i)),
			Timestamp: base.Add(time.Duration(i) * time.Second),
			Query:     "q",
		}))
	}

	entries, err := s.Recent(2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestRecentEmptyStore(t *testing.T) {
	s := openTestStore(t)

	entries, err := s.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
