// Package storetest holds the behavior every store.SnapshotStore
// implementation must share. Driver packages call Run from their own tests.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/scry-notes/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises s against the SnapshotStore contract. The store must start empty.
func Run(t *testing.T, s store.SnapshotStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("load missing partition", func(t *testing.T) {
		_, err := s.Load(ctx, "never-saved")
		assert.True(t, errors.Is(err, store.ErrSnapshotNotFound), "got %v", err)
		assert.True(t, store.IsNotFoundError(err))
	})

	t.Run("save then load", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, store.PartitionNotes, []byte(`{"notes":[]}`)))

		data, err := s.Load(ctx, store.PartitionNotes)
		require.NoError(t, err)
		assert.JSONEq(t, `{"notes":[]}`, string(data))
	})

	t.Run("save replaces previous snapshot", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, store.PartitionUI, []byte(`{"dark_mode":false}`)))
		require.NoError(t, s.Save(ctx, store.PartitionUI, []byte(`{"dark_mode":true}`)))

		data, err := s.Load(ctx, store.PartitionUI)
		require.NoError(t, err)
		assert.JSONEq(t, `{"dark_mode":true}`, string(data))
	})

	t.Run("partitions are independent", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, store.PartitionAuth, []byte(`{"a":1}`)))
		require.NoError(t, s.Save(ctx, store.PartitionFlashcards, []byte(`{"b":2}`)))

		auth, err := s.Load(ctx, store.PartitionAuth)
		require.NoError(t, err)
		cards, err := s.Load(ctx, store.PartitionFlashcards)
		require.NoError(t, err)

		assert.JSONEq(t, `{"a":1}`, string(auth))
		assert.JSONEq(t, `{"b":2}`, string(cards))
	})

	t.Run("empty partition name", func(t *testing.T) {
		err := s.Save(ctx, "", []byte(`{}`))
		assert.ErrorIs(t, err, store.ErrInvalidPartition)
		_, err = s.Load(ctx, "")
		assert.ErrorIs(t, err, store.ErrInvalidPartition)
	})
}
