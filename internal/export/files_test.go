package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/phrazzld/scry-notes/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDirReadDir_RoundTrip(t *testing.T) {
	t.Parallel()

	second := sample()
	second.ID = "2"
	second.Title = "History"
	notes := []domain.Note{sample(), second}

	dir := filepath.Join(t.TempDir(), "export")
	paths, err := WriteDir(dir, notes)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	for _, p := range paths {
		assert.FileExists(t, p)
	}

	got, err := ReadDir(context.Background(), dir, "")
	require.NoError(t, err)

	// Path order: "biology-..." sorts before "history-...".
	assert.Empty(t, cmp.Diff(notes, got))
}

func TestReadDir_Pattern(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	nested := filepath.Join(dir, "archive", "2023")
	_, err := WriteDir(nested, []domain.Note{sample()})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.txt"), []byte("ignore me"), 0o644))

	got, err := ReadDir(context.Background(), dir, "")
	require.NoError(t, err)
	assert.Len(t, got, 1, "** descends into subdirectories")

	got, err = ReadDir(context.Background(), dir, "*.md")
	require.NoError(t, err)
	assert.Empty(t, got, "a single star stays at the root")

	_, err = ReadDir(context.Background(), dir, "[unclosed")
	assert.ErrorIs(t, err, ErrInvalidPattern)
}

func TestReadDir_MalformedFileFailsWholeRead(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := WriteDir(dir, []domain.Note{sample()})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.md"), []byte("no frontmatter"), 0o644))

	got, err := ReadDir(context.Background(), dir, "")
	assert.ErrorIs(t, err, ErrNoFrontmatter)
	assert.Nil(t, got)
}

func TestReadDir_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := WriteDir(dir, []domain.Note{sample()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ReadDir(ctx, dir, "")
	assert.ErrorIs(t, err, context.Canceled)
}
