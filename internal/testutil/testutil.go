// Package testutil provides shared test helpers for setting up checkpoint databases.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/viklund/stund/internal/storage"
)

// TestStore creates an initialized, empty database file in a temporary
// directory that is cleaned up with the test.
func TestStore(t *testing.T) *storage.File {
	t.Helper()
	store, err := storage.NewFile(filepath.Join(t.TempDir(), "database.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	return store
}
