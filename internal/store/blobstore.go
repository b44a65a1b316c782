package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// BlobStore holds uploaded file bytes in a flat directory. Keys are
// generated as "<uuid-hex>_<sanitized original name>" so they never
// collide and remain recognizable on disk. The store owns bytes only;
// metadata lives in the record store.
type BlobStore struct {
	root string
}

// NewBlobStore creates the storage root (recursively) if absent.
func NewBlobStore(root string) (*BlobStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &BlobStore{root: root}, nil
}

// Put writes data under a freshly generated key and returns the key.
func (b *BlobStore) Put(data []byte, originalName string) (string, error) {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	key := token + "_" + sanitizeName(originalName)
	if err := os.WriteFile(filepath.Join(b.root, key), data, 0o644); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}
	return key, nil
}

// Get returns the bytes stored under key, or ErrNotFound.
func (b *BlobStore) Get(key string) ([]byte, error) {
	path, ok := b.keyPath(key)
	if !ok {
		return nil, ErrNotFound
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}
	return data, nil
}

// Exists reports whether key resolves to a stored blob. Callers use
// this to render "file missing" for dangling upload records instead of
// failing.
func (b *BlobStore) Exists(key string) bool {
	path, ok := b.keyPath(key)
	if !ok {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// Delete removes the blob under key. Deleting a missing key is not an
// error.
func (b *BlobStore) Delete(key string) error {
	path, ok := b.keyPath(key)
	if !ok {
		return nil
	}
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}

// keyPath resolves key inside the root, rejecting anything that could
// escape the flat directory.
func (b *BlobStore) keyPath(key string) (string, bool) {
	if key == "" || key != filepath.Base(key) {
		return "", false
	}
	return filepath.Join(b.root, key), true
}

// sanitizeName strips path components and replaces characters outside
// [A-Za-z0-9._-] so the original file name can be embedded in the key.
func sanitizeName(name string) string {
	name = filepath.Base(name)
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	if sb.Len() == 0 {
		return "file"
	}
	return sb.String()
}
