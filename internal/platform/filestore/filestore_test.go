package filestore_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/phrazzld/scry-notes/internal/platform/filestore"
	"github.com/phrazzld/scry-notes/internal/store"
	"github.com/phrazzld/scry-notes/internal/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStore_Contract(t *testing.T) {
	s, err := filestore.New(t.TempDir(), discardLogger())
	require.NoError(t, err)
	storetest.Run(t, s)
}

func TestNew_RequiresDir(t *testing.T) {
	_, err := filestore.New("", discardLogger())
	assert.Error(t, err)
}

func TestStore_WritesOneFilePerPartition(t *testing.T) {
	dir := t.TempDir()
	s, err := filestore.New(dir, discardLogger())
	require.NoError(t, err)

	require.NoError(t, s.Save(context.Background(), store.PartitionNotes, []byte(`{"notes":[]}`)))

	data, err := os.ReadFile(filepath.Join(dir, "notes.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"notes":[]}`, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestStore_RejectsPathLikePartitions(t *testing.T) {
	s, err := filestore.New(t.TempDir(), discardLogger())
	require.NoError(t, err)

	for _, p := range []string{"../escape", "a/b", `a\b`, ".hidden"} {
		err := s.Save(context.Background(), p, []byte(`{}`))
		assert.ErrorIs(t, err, store.ErrInvalidPartition, p)
	}
}

func TestStore_Watch(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	watched, err := filestore.New(dir, discardLogger())
	require.NoError(t, err)
	writer, err := filestore.New(dir, discardLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	changed := make(chan string, 16)
	done := make(chan error, 1)

	go func() {
		done <- watched.Watch(ctx, func(partition string) {
			select {
			case changed <- partition:
			default:
			}
		})
	}()

	// Keep writing until the watcher has registered and reports the change.
	deadline := time.After(5 * time.Second)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	var got string
wait:
	for {
		select {
		case got = <-changed:
			break wait
		case <-ticker.C:
			require.NoError(t, writer.Save(context.Background(), store.PartitionUI, []byte(`{"dark_mode":true}`)))
		case <-deadline:
			t.Fatal("timed out waiting for change notification")
		}
	}

	assert.Equal(t, store.PartitionUI, got)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestStore_WatchSkipsOwnWrites(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	watched, err := filestore.New(dir, discardLogger())
	require.NoError(t, err)
	writer, err := filestore.New(dir, discardLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	changed := make(chan string, 256)
	done := make(chan error, 1)
	go func() {
		done <- watched.Watch(ctx, func(partition string) {
			select {
			case changed <- partition:
			default:
			}
		})
	}()

	// Each tick the watched store saves ui itself and another store saves
	// notes. Once notes is reported, every earlier ui event has been handled.
	deadline := time.After(5 * time.Second)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	var seen []string
	tick := 0
wait:
	for {
		select {
		case p := <-changed:
			seen = append(seen, p)
			if p == store.PartitionNotes {
				break wait
			}
		case <-ticker.C:
			tick++
			require.NoError(t, watched.Save(context.Background(), store.PartitionUI, []byte(fmt.Sprintf(`{"tick":%d}`, tick))))
			require.NoError(t, writer.Save(context.Background(), store.PartitionNotes, []byte(fmt.Sprintf(`{"tick":%d}`, tick))))
		case <-deadline:
			t.Fatal("timed out waiting for change notification")
		}
	}

	assert.NotContains(t, seen, store.PartitionUI)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}
