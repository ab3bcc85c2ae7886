package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.cache")

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	c := New(store)
	c.Set(ctx, "featured_hotels", []testRoom{{ID: 1, Name: "101"}}, time.Hour)

	// Reopen: the entry must survive, like localStorage across reloads.
	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	c2 := New(reopened)

	var rooms []testRoom
	if !c2.Get(ctx, "featured_hotels", &rooms) {
		t.Fatal("expected entry to survive a reopen")
	}
	if len(rooms) != 1 || rooms[0].ID != 1 {
		t.Errorf("got %+v", rooms)
	}
}

func TestFileStoreDeletePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.cache")

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := store.Set(ctx, "k1", "v1"); err != nil {
		t.Fatal(err)
	}
	if err := store.Set(ctx, "k2", "v2"); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, "k1"); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if _, found, _ := reopened.Get(ctx, "k1"); found {
		t.Error("deleted key should not come back after reopen")
	}
	if v, found, _ := reopened.Get(ctx, "k2"); !found || v != "v2" {
		t.Errorf("k2 should survive, got %q found=%v", v, found)
	}
}

func TestFileStoreKeysPrefix(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "test.cache"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	for _, k := range []string{Prefix + "a", Prefix + "b", "other"} {
		if err := store.Set(ctx, k, "v"); err != nil {
			t.Fatal(err)
		}
	}

	keys, err := store.Keys(ctx, Prefix)
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 2 {
		t.Errorf("expected 2 namespaced keys, got %v", keys)
	}
}
