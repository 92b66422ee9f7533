package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	if _, ok := store.Get("view_mode"); ok {
		t.Error("fresh store must be empty")
	}

	if err := store.Set("view_mode", "list"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if v, ok := store.Get("view_mode"); !ok || v != "list" {
		t.Errorf("expected list, got %q (%v)", v, ok)
	}

	// A second store over the same file sees the persisted value.
	reloaded, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if v, ok := reloaded.Get("view_mode"); !ok || v != "list" {
		t.Errorf("expected persisted value, got %q (%v)", v, ok)
	}
}

func TestFileStoreCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "prefs.json")

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	if err := store.Set("sort_by", "size"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("preference file not written: %v", err)
	}
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	if _, err := NewFileStore(path); err == nil {
		t.Error("expected an error for a corrupt file")
	}
}

func TestMemStore(t *testing.T) {
	store := NewMemStore()

	if _, ok := store.Get("sort_order"); ok {
		t.Error("fresh store must be empty")
	}
	if err := store.Set("sort_order", "desc"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if v, ok := store.Get("sort_order"); !ok || v != "desc" {
		t.Errorf("expected desc, got %q (%v)", v, ok)
	}
}
