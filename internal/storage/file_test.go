package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileStore_WriteRead(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(filepath.Join(dir, "portfolio_data.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if store.Exists() {
		t.Error("file should not exist before first write")
	}
	if err := store.Write([]byte(`{"name":"Ada"}`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !store.Exists() {
		t.Error("file should exist after write")
	}
	data, err := store.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(data) != `{"name":"Ada"}` {
		t.Errorf("data = %q", data)
	}
}

func TestFileStore_WriteReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(filepath.Join(dir, "portfolio_data.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := store.Write([]byte("first")); err != nil {
		t.Fatal(err)
	}
	if err := store.Write([]byte("second")); err != nil {
		t.Fatal(err)
	}
	data, _ := store.Read()
	if string(data) != "second" {
		t.Errorf("data = %q", data)
	}

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".othala-tmp-") {
			t.Errorf("leftover temp file %q", e.Name())
		}
	}
}

func TestFileStore_ReadMissing(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if _, err := store.Read(); err == nil {
		t.Error("expected error reading missing file")
	}
}

func TestNewFileStore_MissingDir(t *testing.T) {
	if _, err := NewFileStore(filepath.Join(t.TempDir(), "nope", "f.json")); err == nil {
		t.Error("expected error for missing parent directory")
	}
}
