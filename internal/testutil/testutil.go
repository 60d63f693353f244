// Package testutil provides shared test helpers for setting up document stores.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/starford/othala/internal/storage"
)

// TestStore creates a file store rooted in a temporary directory that is
// automatically cleaned up. The document file does not exist yet.
func TestStore(t *testing.T) storage.Provider {
	t.Helper()
	store, err := storage.NewFileStore(filepath.Join(t.TempDir(), "portfolio_data.json"))
	if err != nil {
		t.Fatal(err)
	}
	return store
}
