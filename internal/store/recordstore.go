package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bomspace/backend/internal/models"
)

// ErrNotFound is returned when a requested record or blob does not exist.
var ErrNotFound = errors.New("not found")

// RecordStore persists the whole portal document as one pretty-printed
// JSON file. Every operation is a full load-mutate-save cycle and no
// locking is provided: if two callers save concurrently, the later
// write wins in full.
type RecordStore struct {
	path string
}

// NewRecordStore creates a record store backed by the file at path.
func NewRecordStore(path string) *RecordStore {
	return &RecordStore{path: path}
}

// Load reads the document from disk. If no document exists yet, an
// empty one is written out first and returned, so the data file is
// always present after the first read.
func (s *RecordStore) Load() (*models.Document, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		doc := models.NewDocument()
		if err := s.Save(doc); err != nil {
			return nil, err
		}
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}

	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode data file: %w", err)
	}
	doc.Normalize()
	return &doc, nil
}

// Save writes the entire document, replacing any prior content. There
// are no partial or merge writes. Timestamps serialize as ISO-8601
// (RFC 3339) strings via time.Time.
func (s *RecordStore) Save(doc *models.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	return nil
}
