// Package testutil provides shared test helpers for stores, blobs and clocks.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/starford/vetdesk/internal/kv"
	"github.com/starford/vetdesk/internal/storage"
)

// Clock returns a func that always reports at.
func Clock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// TestKV opens a SQLite key-value store in a temp dir that is closed on cleanup.
func TestKV(t *testing.T) *kv.SQLite {
	t.Helper()
	store, err := kv.OpenSQLite(filepath.Join(t.TempDir(), "vetdesk-test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// TestBlobs creates a temporary blob directory with a storage.Provider.
func TestBlobs(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}
