package export

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/phrazzld/scry-notes/internal/domain"
	"golang.org/x/sync/errgroup"
)

// DefaultPattern matches every Markdown file below the import root.
const DefaultPattern = "**/*.md"

// ErrInvalidPattern is returned for a malformed glob.
var ErrInvalidPattern = errors.New("invalid glob pattern")

// maxParallelReads bounds concurrent file reads during import.
const maxParallelReads = 8

// WriteDir writes one Markdown file per note into dir, creating dir if
// needed. It returns the written paths in note order.
func WriteDir(dir string, notes []domain.Note) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	paths := make([]string, 0, len(notes))
	for _, n := range notes {
		data, err := MarshalNote(n)
		if err != nil {
			return paths, fmt.Errorf("failed to render note %s: %w", n.ID, err)
		}
		path := filepath.Join(dir, FileName(n))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// ReadDir parses every file below dir that matches pattern (DefaultPattern
// when empty). Files are read concurrently but returned in path order. Any
// unreadable or malformed file fails the whole read.
func ReadDir(ctx context.Context, dir, pattern string) ([]domain.Note, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
	}

	fsys := os.DirFS(dir)
	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to match %q in %s: %w", pattern, dir, err)
	}
	sort.Strings(matches)

	notes := make([]domain.Note, len(matches))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelReads)
	for i, name := range matches {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := fs.ReadFile(fsys, name)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", name, err)
			}
			note, err := UnmarshalNote(data)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			notes[i] = *note
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return notes, nil
}
