// Package storage persists the portfolio document as a single flat file.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// Provider is the interface for document file operations.
type Provider interface {
	// Read returns the raw bytes of the document file.
	Read() ([]byte, error)
	// Write atomically replaces the document file with content.
	Write(content []byte) error
	// Exists reports whether the document file is present on disk.
	Exists() bool
	// Path returns the absolute path of the document file.
	Path() string
}

// FileStore implements Provider backed by one file on the local file system.
type FileStore struct {
	path string
}

var _ Provider = (*FileStore)(nil)

// NewFileStore creates a store for the document at path. The parent
// directory must exist; the file itself may not yet.
func NewFileStore(path string) (*FileStore, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve path: %w", err)
	}
	dir := filepath.Dir(abs)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("storage: stat dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage: not a directory: %s", dir)
	}
	return &FileStore{path: abs}, nil
}

// Path returns the absolute document path.
func (f *FileStore) Path() string {
	return f.path
}

// Exists reports whether the document file is present.
func (f *FileStore) Exists() bool {
	info, err := os.Stat(f.path)
	return err == nil && !info.IsDir()
}

// Read returns the raw bytes of the document file.
func (f *FileStore) Read() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", f.path, err)
	}
	return data, nil
}

// Write atomically replaces the document: tmp file → fsync → rename. A
// crash mid-write never leaves a half-written document behind.
func (f *FileStore) Write(content []byte) error {
	dir := filepath.Dir(f.path)

	tmp, err := os.CreateTemp(dir, ".othala-tmp-*")
	if err != nil {
		return fmt.Errorf("storage: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("storage: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("storage: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: close temp: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("storage: rename: %w", err)
	}
	success = true
	return nil
}
