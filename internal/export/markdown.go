// Package export writes notes as Markdown files with YAML frontmatter and
// reads them back, so a collection can be edited or versioned outside the
// application.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/phrazzld/scry-notes/internal/domain"
	"gopkg.in/yaml.v3"
)

// Markdown format errors
var (
	ErrNoFrontmatter           = errors.New("markdown has no frontmatter")
	ErrUnterminatedFrontmatter = errors.New("frontmatter started but no closing delimiter found")
)

const delimiter = "---"

type frontmatter struct {
	ID         string    `yaml:"id"`
	Title      string    `yaml:"title"`
	OwnerID    string    `yaml:"owner_id"`
	CreatedAt  time.Time `yaml:"created_at"`
	UpdatedAt  time.Time `yaml:"updated_at"`
	IsPublic   bool      `yaml:"is_public"`
	Tags       []string  `yaml:"tags,flow"`
	SharedWith []string  `yaml:"shared_with,omitempty"`
}

// MarshalNote renders n as frontmatter followed by its content verbatim.
func MarshalNote(n domain.Note) ([]byte, error) {
	fm := frontmatter{
		ID:         n.ID,
		Title:      n.Title,
		OwnerID:    n.OwnerID,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
		IsPublic:   n.IsPublic,
		Tags:       n.Tags,
		SharedWith: n.SharedWith,
	}
	if fm.Tags == nil {
		fm.Tags = []string{}
	}

	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(fm); err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	buf.WriteString(delimiter + "\n")
	buf.WriteString(n.Content)
	return buf.Bytes(), nil
}

// UnmarshalNote parses a document written by MarshalNote. Everything after
// the closing delimiter line is the note content.
func UnmarshalNote(data []byte) (*domain.Note, error) {
	if !bytes.HasPrefix(data, []byte(delimiter+"\n")) {
		return nil, ErrNoFrontmatter
	}

	rest := data[len(delimiter)+1:]
	var header, body []byte
	if bytes.HasPrefix(rest, []byte(delimiter+"\n")) {
		body = rest[len(delimiter)+1:]
	} else {
		end := bytes.Index(rest, []byte("\n"+delimiter+"\n"))
		if end < 0 {
			if !bytes.HasSuffix(rest, []byte("\n"+delimiter)) {
				return nil, ErrUnterminatedFrontmatter
			}
			end = len(rest) - len(delimiter) - 1
			header, body = rest[:end], nil
		} else {
			header, body = rest[:end], rest[end+len(delimiter)+2:]
		}
	}

	var fm frontmatter
	if err := yaml.Unmarshal(header, &fm); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	note := &domain.Note{
		ID:         fm.ID,
		Title:      fm.Title,
		Content:    string(body),
		CreatedAt:  fm.CreatedAt,
		UpdatedAt:  fm.UpdatedAt,
		OwnerID:    fm.OwnerID,
		SharedWith: fm.SharedWith,
		IsPublic:   fm.IsPublic,
		Tags:       fm.Tags,
	}
	if note.SharedWith == nil {
		note.SharedWith = []string{}
	}
	if note.Tags == nil {
		note.Tags = []string{}
	}
	if err := note.Validate(); err != nil {
		return nil, fmt.Errorf("invalid note in frontmatter: %w", err)
	}
	return note, nil
}

// FileName is "<title-slug>-<id>.md", safe on every common filesystem.
func FileName(n domain.Note) string {
	title := slug(n.Title, 48)
	id := slug(n.ID, 64)
	if title == "" {
		return id + ".md"
	}
	return title + "-" + id + ".md"
}

func slug(s string, limit int) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if len(out) > limit {
		out = strings.TrimSuffix(out[:limit], "-")
	}
	return out
}
