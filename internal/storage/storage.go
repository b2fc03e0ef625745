// Package storage persists the serialized store state as an opaque blob
// under a named key. The core never looks inside the medium; backends are
// swappable behind the BlobStore port.
package storage

import (
	"context"
	"errors"
)

// ErrNoState reports that no blob exists for the key yet (first run).
var ErrNoState = errors.New("no persisted state")

// BlobStore is the persistence port: one value per key, last write wins.
type BlobStore interface {
	// Load returns the blob stored under key, or ErrNoState when the key
	// has never been written.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save writes the blob under key, replacing any previous value.
	Save(ctx context.Context, key string, value []byte) error

	// Close releases any resources held by the store.
	Close() error
}
