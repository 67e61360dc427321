package store

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"testing"
)

// exerciseStore runs the Store contract against any backend.
func exerciseStore(t *testing.T, st Store) {
	t.Helper()
	ctx := context.Background()

	// Empty store
	if _, err := st.Get(ctx, "awake.fm"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get on empty store: %v, want ErrNotFound", err)
	}
	keys, err := st.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys error: %v", err)
	}
	if len(keys) != 0 {
		t.Fatalf("Keys on empty store: %v", keys)
	}

	// Put rejects empty keys
	if err := st.Put(ctx, &Snapshot{Document: []byte("{}")}); !errors.Is(err, ErrEmptyKey) {
		t.Fatalf("Put with empty key: %v, want ErrEmptyKey", err)
	}

	// Round trip
	doc := []byte(`{"root_path":"server","nodes":{}}`)
	if err := st.Put(ctx, NewSnapshot("awake.fm", doc)); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	snap, err := st.Get(ctx, "awake.fm")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if snap.Key != "awake.fm" || !bytes.Equal(snap.Document, doc) {
		t.Errorf("Get returned %q / %s", snap.Key, snap.Document)
	}
	if snap.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not stamped")
	}

	// Overwrite replaces the document
	doc2 := []byte(`{"root_path":"server","root_theme":"dark","nodes":{}}`)
	if err := st.Put(ctx, NewSnapshot("awake.fm", doc2)); err != nil {
		t.Fatalf("Put overwrite error: %v", err)
	}
	snap, err = st.Get(ctx, "awake.fm")
	if err != nil {
		t.Fatalf("Get after overwrite: %v", err)
	}
	if !bytes.Equal(snap.Document, doc2) {
		t.Errorf("overwrite not applied: %s", snap.Document)
	}

	// Keys are sorted
	if err := st.Put(ctx, NewSnapshot("zol.fm", doc)); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	keys, err = st.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys error: %v", err)
	}
	if want := []string{"awake.fm", "zol.fm"}; !reflect.DeepEqual(keys, want) {
		t.Errorf("Keys = %v, want %v", keys, want)
	}

	// Delete, including a missing key
	if err := st.Delete(ctx, "awake.fm"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := st.Delete(ctx, "awake.fm"); err != nil {
		t.Fatalf("Delete of missing key: %v", err)
	}
	if _, err := st.Get(ctx, "awake.fm"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete: %v, want ErrNotFound", err)
	}
}

func TestMemoryStore(t *testing.T) {
	st := NewMemoryStore()
	defer st.Close()
	exerciseStore(t, st)
}

func TestMemoryStoreCopiesDocuments(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	doc := []byte(`{"root_path":"server"}`)
	if err := st.Put(ctx, NewSnapshot("awake.fm", doc)); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	doc[0] = 'X' // caller mutation must not reach the store

	snap, err := st.Get(ctx, "awake.fm")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if snap.Document[0] != '{' {
		t.Error("store aliased the caller's document slice")
	}
}

func TestFileStore(t *testing.T) {
	st, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	defer st.Close()
	exerciseStore(t, st)
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	st, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	doc := []byte(`{"root_path":"server","nodes":{}}`)
	if err := st.Put(ctx, NewSnapshot("awake.fm", doc)); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	st.Close()

	reopened, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	snap, err := reopened.Get(ctx, "awake.fm")
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if !bytes.Equal(snap.Document, doc) {
		t.Errorf("document lost across reopen: %s", snap.Document)
	}
}

func TestFileStoreKeyEncoding(t *testing.T) {
	ctx := context.Background()
	st, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}

	// Keys containing path separators must not escape the base directory.
	key := "sites/awake.fm"
	if err := st.Put(ctx, NewSnapshot(key, []byte("{}"))); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	snap, err := st.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if snap.Key != key {
		t.Errorf("Key = %q, want %q", snap.Key, key)
	}
	keys, err := st.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys error: %v", err)
	}
	if len(keys) != 1 || keys[0] != key {
		t.Errorf("Keys = %v, want [%q]", keys, key)
	}
}
