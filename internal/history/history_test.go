package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestSQLiteRecordUse(t *testing.T) {
	s := newTestStore(t)

	_, ok := s.Get("firefox.desktop")
	assert.False(t, ok)

	require.NoError(t, s.RecordUse("firefox.desktop", now))
	rec, ok := s.Get("firefox.desktop")
	require.True(t, ok)
	assert.Equal(t, int64(1), rec.UseCount)
	assert.Equal(t, now.UnixMilli(), rec.LastUsed.UnixMilli())
	assert.False(t, rec.Pinned)

	later := now.Add(time.Hour)
	require.NoError(t, s.RecordUse("firefox.desktop", later))
	rec, ok = s.Get("firefox.desktop")
	require.True(t, ok)
	assert.Equal(t, int64(2), rec.UseCount)
	assert.Equal(t, later.UnixMilli(), rec.LastUsed.UnixMilli())
}

func TestSQLitePinIndependentOfUse(t *testing.T) {
	s := newTestStore(t)

	// Pinning an item that has never been used creates a record with a
	// zero use count.
	require.NoError(t, s.SetPinned("files.desktop", true))
	rec, ok := s.Get("files.desktop")
	require.True(t, ok)
	assert.True(t, rec.Pinned)
	assert.Zero(t, rec.UseCount)
	assert.True(t, rec.LastUsed.IsZero())

	// Recording a use keeps the pin; unpinning keeps the count.
	require.NoError(t, s.RecordUse("files.desktop", now))
	rec, _ = s.Get("files.desktop")
	assert.True(t, rec.Pinned)
	assert.Equal(t, int64(1), rec.UseCount)

	require.NoError(t, s.SetPinned("files.desktop", false))
	rec, _ = s.Get("files.desktop")
	assert.False(t, rec.Pinned)
	assert.Equal(t, int64(1), rec.UseCount)
}

func TestSQLiteClearAll(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.RecordUse("a", now))
	require.NoError(t, s.SetPinned("b", true))

	require.NoError(t, s.ClearAll())
	_, ok := s.Get("a")
	assert.False(t, ok)
	_, ok = s.Get("b")
	assert.False(t, ok)
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.RecordUse("kitty.desktop", now))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()
	rec, ok := s.Get("kitty.desktop")
	require.True(t, ok)
	assert.Equal(t, int64(1), rec.UseCount)
}

func TestOpenOrFallbackDegradesToMemory(t *testing.T) {
	// A path whose parent cannot be created forces the fallback.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0o644))

	logger := log.New(os.Stderr)
	s := OpenOrFallback(filepath.Join(blocker, "sub", "history.db"), logger)
	defer s.Close()

	_, isMemory := s.(*MemoryStore)
	assert.True(t, isMemory)

	// The degraded store still honors the full contract.
	require.NoError(t, s.RecordUse("x", now))
	rec, ok := s.Get("x")
	require.True(t, ok)
	assert.Equal(t, int64(1), rec.UseCount)
}

func TestMemoryStoreContract(t *testing.T) {
	s := NewMemoryStore()

	require.NoError(t, s.RecordUse("a", now))
	require.NoError(t, s.RecordUse("a", now.Add(time.Minute)))
	require.NoError(t, s.SetPinned("b", true))

	rec, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, int64(2), rec.UseCount)

	rec, ok = s.Get("b")
	require.True(t, ok)
	assert.True(t, rec.Pinned)

	require.NoError(t, s.ClearAll())
	_, ok = s.Get("a")
	assert.False(t, ok)
}
