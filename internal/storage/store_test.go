package storage

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"teadesk-system/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *Store { return New(logger.New("test")) }

func TestReadJSONMissingFileReturnsFallback(t *testing.T) {
	s := newTestStore()
	got := ReadJSON(s, filepath.Join(t.TempDir(), "nope.json"), []string{"fallback"})
	assert.Equal(t, []string{"fallback"}, got)
}

func TestReadJSONCorruptFileReturnsFallback(t *testing.T) {
	s := newTestStore()
	path := filepath.Join(t.TempDir(), "orders.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	got := ReadJSON(s, path, map[string]int{"ok": 1})
	assert.Equal(t, map[string]int{"ok": 1}, got)
}

func TestWriteJSONRoundTrip(t *testing.T) {
	s := newTestStore()
	// parent directories do not exist yet
	path := filepath.Join(t.TempDir(), "acme", "nested", "orders.json")

	doc := []map[string]string{{"id": "ORD-1"}, {"id": "ORD-2"}}
	require.NoError(t, WriteJSON(s, path, doc))

	got := ReadJSON(s, path, []map[string]string(nil))
	assert.Equal(t, doc, got)
}

func TestWriteJSONOverwriteLeavesNoTempFiles(t *testing.T) {
	s := newTestStore()
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")

	require.NoError(t, WriteJSON(s, path, map[string]int{"v": 1}))
	require.NoError(t, WriteJSON(s, path, map[string]int{"v": 2}))

	got := ReadJSON(s, path, map[string]int(nil))
	assert.Equal(t, map[string]int{"v": 2}, got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "doc.json", entries[0].Name())
}

func TestWriteJSONReportsExhaustedFallbacks(t *testing.T) {
	s := newTestStore()
	dir := t.TempDir()
	blocker := filepath.Join(dir, "acme")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0o644))

	// the parent "directory" is a file: every write tier fails and the
	// destination is never created
	path := filepath.Join(blocker, "orders.json")
	err := WriteJSON(s, path, []string{"lost"})
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.Error(t, statErr)
}

func TestLocksSerializeSameKey(t *testing.T) {
	locks := NewLocks()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := locks.Acquire("acme/orders")
			defer release()
			counter++
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, counter)
}

func TestLocksIndependentKeysDoNotBlock(t *testing.T) {
	locks := NewLocks()

	releaseA := locks.Acquire("acme/orders")
	defer releaseA()

	done := make(chan struct{})
	go func() {
		release := locks.Acquire("acme/desks")
		release()
		close(done)
	}()
	<-done
}
