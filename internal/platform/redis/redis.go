// Package redis implements store.SnapshotStore on a Redis server. Each
// partition is one string key under a configurable prefix.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/phrazzld/scry-notes/internal/store"
	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces snapshot keys.
const DefaultKeyPrefix = "scry-notes:"

// Store is a Redis-backed SnapshotStore.
type Store struct {
	client redis.UniversalClient
	prefix string
}

// New connects to addr and verifies the connection with a PING.
func New(ctx context.Context, addr, prefix string) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to reach redis at %s: %w", addr, err)
	}

	return NewFromClient(client, prefix), nil
}

// NewFromClient wraps an existing client.
func NewFromClient(client redis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Store{client: client, prefix: prefix}
}

// Load implements store.SnapshotStore.
func (s *Store) Load(ctx context.Context, partition string) ([]byte, error) {
	if partition == "" {
		return nil, store.ErrInvalidPartition
	}

	data, err := s.client.Get(ctx, s.key(partition)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrSnapshotNotFound
		}
		return nil, store.NewStoreError(partition, "load", "failed to get snapshot key", err)
	}

	return data, nil
}

// Save implements store.SnapshotStore.
func (s *Store) Save(ctx context.Context, partition string, data []byte) error {
	if partition == "" {
		return store.ErrInvalidPartition
	}

	if err := s.client.Set(ctx, s.key(partition), data, 0).Err(); err != nil {
		return store.NewStoreError(partition, "save", "failed to set snapshot key", err)
	}

	return nil
}

// Close closes the client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Helper to generate the Redis key for a partition
func (s *Store) key(partition string) string {
	return s.prefix + partition
}
