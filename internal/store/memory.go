package store

import (
	"context"
	"sync"
)

// MemoryStore is a SnapshotStore that keeps snapshots in process memory.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
	saves     int
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snapshots: make(map[string][]byte)}
}

// Load implements SnapshotStore.
func (m *MemoryStore) Load(ctx context.Context, partition string) ([]byte, error) {
	if partition == "" {
		return nil, ErrInvalidPartition
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.snapshots[partition]
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	return append([]byte(nil), data...), nil
}

// Save implements SnapshotStore.
func (m *MemoryStore) Save(ctx context.Context, partition string, data []byte) error {
	if partition == "" {
		return ErrInvalidPartition
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.snapshots[partition] = append([]byte(nil), data...)
	m.saves++
	return nil
}

// Saves returns how many times Save has succeeded.
func (m *MemoryStore) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}
