package store

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func newTestBlobStore(t *testing.T) *BlobStore {
	t.Helper()
	b, err := NewBlobStore(t.TempDir() + "/uploads")
	if err != nil {
		t.Fatalf("NewBlobStore() error = %v", err)
	}
	return b
}

func TestBlobStore_PutGetRoundtrip(t *testing.T) {
	b := newTestBlobStore(t)

	data := []byte("part,qty\nbolt,12\n")
	key, err := b.Put(data, "bom.csv")
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if !strings.HasSuffix(key, "_bom.csv") {
		t.Errorf("key %q should embed the sanitized original name", key)
	}

	got, err := b.Get(key)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Error("Get() returned different bytes than Put() stored")
	}
}

func TestBlobStore_UniqueKeys(t *testing.T) {
	b := newTestBlobStore(t)

	key1, _ := b.Put([]byte("a"), "bom.csv")
	key2, _ := b.Put([]byte("b"), "bom.csv")
	if key1 == key2 {
		t.Error("two Puts of the same name must produce distinct keys")
	}
}

func TestBlobStore_SanitizesOriginalName(t *testing.T) {
	b := newTestBlobStore(t)

	key, err := b.Put([]byte("x"), "../../etc/pass wd?.csv")
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if strings.Contains(key, "/") || strings.Contains(key, "..") {
		t.Errorf("key %q should not contain path components", key)
	}
	if strings.Contains(key, " ") || strings.Contains(key, "?") {
		t.Errorf("key %q should not contain unsafe characters", key)
	}
}

func TestBlobStore_GetMissing(t *testing.T) {
	b := newTestBlobStore(t)

	if _, err := b.Get("nope_bom.csv"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() on missing key = %v, expected ErrNotFound", err)
	}
}

func TestBlobStore_DeleteIdempotent(t *testing.T) {
	b := newTestBlobStore(t)

	key, _ := b.Put([]byte("x"), "bom.csv")
	if err := b.Delete(key); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	// Deleting a missing key is not an error.
	if err := b.Delete(key); err != nil {
		t.Errorf("second Delete() error = %v, expected nil", err)
	}
	if b.Exists(key) {
		t.Error("Exists() should be false after delete")
	}
}

func TestBlobStore_RejectsTraversalKeys(t *testing.T) {
	b := newTestBlobStore(t)

	for _, key := range []string{"", "../portal.json", "a/b"} {
		if _, err := b.Get(key); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get(%q) = %v, expected ErrNotFound", key, err)
		}
		if b.Exists(key) {
			t.Errorf("Exists(%q) should be false", key)
		}
	}
}
