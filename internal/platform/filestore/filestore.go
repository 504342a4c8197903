// Package filestore implements store.SnapshotStore on the local filesystem.
// Each partition is one JSON file in a data directory, written atomically.
// Watch reports partitions changed by another process sharing the directory.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/fsnotify/fsnotify"
	"github.com/phrazzld/scry-notes/internal/redact"
	"github.com/phrazzld/scry-notes/internal/store"
)

const (
	// fileExt is appended to the partition name to form its file name.
	fileExt = ".json"

	// tempFilePrefix marks in-flight atomic writes.
	tempFilePrefix = ".scry-tmp-"
)

// Store is a directory of partition snapshot files.
type Store struct {
	dir    string
	logger *slog.Logger

	// written holds the hash of the last snapshot this Store saved per
	// partition, so Watch can tell its own writes from another process's.
	mu      sync.Mutex
	written map[string]uint64
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string, logger *slog.Logger) (*Store, error) {
	if dir == "" {
		return nil, errors.New("filestore: data directory cannot be empty")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		dir:     dir,
		logger:  logger.With("component", "filestore"),
		written: make(map[string]uint64),
	}, nil
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// Load implements store.SnapshotStore.
func (s *Store) Load(ctx context.Context, partition string) ([]byte, error) {
	path, err := s.path(partition)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, store.ErrSnapshotNotFound
		}
		return nil, store.NewStoreError(partition, "load", "failed to read snapshot file", err)
	}

	return data, nil
}

// Save implements store.SnapshotStore.
func (s *Store) Save(ctx context.Context, partition string, data []byte) error {
	path, err := s.path(partition)
	if err != nil {
		return err
	}

	// Recorded before the rename so the watcher never sees the file first.
	s.remember(partition, data)
	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return store.NewStoreError(partition, "save", "failed to write snapshot file", err)
	}

	s.logger.Debug("snapshot written", "partition", partition, "bytes", len(data))
	return nil
}

// Watch blocks until ctx is done, calling onChange with the partition name
// whenever a snapshot file in the directory is created or rewritten by
// someone else. A file whose content matches the last snapshot this Store
// saved for that partition is treated as its own write and skipped.
func (s *Store) Watch(ctx context.Context, onChange func(partition string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", s.dir, err)
	}

	s.logger.Debug("watching data directory", "dir", s.dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			partition, ok := partitionFromPath(event.Name)
			if !ok {
				continue
			}
			if s.isOwnWrite(partition, event.Name) {
				s.logger.Debug("ignoring own snapshot write", "partition", partition)
				continue
			}
			onChange(partition)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("fsnotify error", redact.ErrorAttr(err))
		}
	}
}

func (s *Store) remember(partition string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.written[partition] = xxhash.Sum64(data)
}

// isOwnWrite reports whether the file at path holds the snapshot this Store
// last saved for partition. An unreadable file counts as a foreign change.
func (s *Store) isOwnWrite(partition, path string) bool {
	s.mu.Lock()
	sum, ok := s.written[partition]
	s.mu.Unlock()
	if !ok {
		return false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return xxhash.Sum64(data) == sum
}

func (s *Store) path(partition string) (string, error) {
	if partition == "" || strings.ContainsAny(partition, `/\`) || strings.HasPrefix(partition, ".") {
		return "", store.ErrInvalidPartition
	}
	return filepath.Join(s.dir, partition+fileExt), nil
}

func partitionFromPath(path string) (string, bool) {
	name := filepath.Base(path)
	if strings.HasPrefix(name, tempFilePrefix) || !strings.HasSuffix(name, fileExt) {
		return "", false
	}
	partition := strings.TrimSuffix(name, fileExt)
	if partition == "" {
		return "", false
	}
	return partition, true
}
