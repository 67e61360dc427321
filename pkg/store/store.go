// Package store persists published content-graph snapshots.
//
// A snapshot is one site's fully-encoded graph document, keyed by site key.
// The Store interface supports Get/Put/Delete plus key listing, with
// implementations for different backends:
//   - memory: In-memory storage for development/testing
//   - file: JSON files on disk for single-instance deployments
//   - redis: Redis-backed storage for multi-instance deployments
//   - mongo: MongoDB-backed durable storage
//
// # Usage
//
// Create a store:
//
//	// Development
//	st := NewMemoryStore()
//
//	// Single instance
//	st, err := NewFileStore("")  // Uses ~/.config/artistnode/snapshots/
//
//	// Multi-instance
//	st, err := NewRedisStore(ctx, RedisConfig{Addr: "localhost:6379"})
//
// Publish and serve:
//
//	snap := store.NewSnapshot("awake.fm", document)
//	if err := st.Put(ctx, snap); err != nil {
//	    return err
//	}
//
//	snap, err := st.Get(ctx, "awake.fm")
//	if errors.Is(err, store.ErrNotFound) {
//	    // Site has no published graph yet.
//	}
package store

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for snapshot operations.
var (
	// ErrNotFound is returned when no snapshot exists under a key.
	ErrNotFound = errors.New("snapshot not found")

	// ErrEmptyKey is returned when a snapshot key is empty.
	ErrEmptyKey = errors.New("empty snapshot key")
)

// Snapshot is one published content graph: the raw wire document plus
// publish metadata. Document is kept opaque here so the store never has to
// decode what it persists.
type Snapshot struct {
	Key       string    `json:"key"`
	Document  []byte    `json:"document"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSnapshot creates a snapshot stamped with the current time.
func NewSnapshot(key string, document []byte) *Snapshot {
	return &Snapshot{Key: key, Document: document, UpdatedAt: time.Now().UTC()}
}

// Store is the interface for snapshot storage backends.
type Store interface {
	// Get retrieves the snapshot stored under key.
	// Returns ErrNotFound when no snapshot exists.
	Get(ctx context.Context, key string) (*Snapshot, error)

	// Put stores a snapshot, replacing any previous one under the same key.
	Put(ctx context.Context, snap *Snapshot) error

	// Delete removes the snapshot under key. Deleting a missing key is not
	// an error.
	Delete(ctx context.Context, key string) error

	// Keys lists every stored snapshot key in sorted order.
	Keys(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close() error
}
