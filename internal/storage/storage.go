// Package storage persists CV documents. The backing store is a single JSON
// file; a missing or unreadable file yields the starter template rather than
// an error, so a fresh install and a corrupted data file both recover to a
// usable state.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jonathan/cv-studio/internal/document"
	"github.com/jonathan/cv-studio/internal/types"
)

// Store loads and saves CV documents.
type Store interface {
	Load() (types.Document, error)
	Save(doc types.Document) error
}

// FileStore persists the document as pretty-printed JSON at a fixed path.
// Writes go through a temp file and rename so a crash mid-write never leaves
// a truncated document behind.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a FileStore rooted at path. Parent directories are
// created on the first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the stored document. A missing or undecodable file falls back
// to the starter template.
func (s *FileStore) Load() (types.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return document.Template(), nil
		}
		return types.Document{}, fmt.Errorf("failed to read document file: %w", err)
	}

	var doc types.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return document.Template(), nil
	}

	return doc.EnsureShape(), nil
}

// Save writes the document atomically.
func (s *FileStore) Save(doc types.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(doc.EnsureShape(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".cv-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace document file: %w", err)
	}
	return nil
}
