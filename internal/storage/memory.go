package storage

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory BlobStore for tests and ephemeral runs.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (m *MemoryStore) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.blobs[key]
	if !ok {
		return nil, ErrNoState
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (m *MemoryStore) Save(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	m.blobs[key] = stored
	return nil
}

func (m *MemoryStore) Close() error { return nil }
