package generation

import (
	"context"
	"strings"
	"time"

	"github.com/phrazzld/scry-notes/internal/domain"
)

// HeuristicGenerator builds one card per non-blank line of a note.
// A line "front: back" splits on its first colon; any other line becomes
// the back of a generic question about the note title.
type HeuristicGenerator struct {
	now func() time.Time
}

// Option configures a HeuristicGenerator.
type Option func(*HeuristicGenerator)

// WithClock overrides the clock used to stamp generated cards.
func WithClock(now func() time.Time) Option {
	return func(g *HeuristicGenerator) {
		g.now = now
	}
}

// NewHeuristicGenerator creates a HeuristicGenerator.
func NewHeuristicGenerator(opts ...Option) *HeuristicGenerator {
	g := &HeuristicGenerator{
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenerateCards implements Generator.
func (g *HeuristicGenerator) GenerateCards(ctx context.Context, note *domain.Note) ([]domain.Flashcard, error) {
	if note == nil {
		return nil, ErrNilNote
	}

	// One timestamp for the whole batch
	createdAt := g.now()
	lines := nonBlankLines(note.Content)

	cards := make([]domain.Flashcard, 0, len(lines))
	for i, line := range lines {
		front, back := splitLine(line, note.Title)
		cards = append(cards, domain.Flashcard{
			ID:        domain.FlashcardID(note.ID, i),
			Front:     front,
			Back:      back,
			NoteID:    note.ID,
			CreatedAt: createdAt,
		})
	}

	return cards, nil
}

// QuestionAbout is the front used for lines without a colon.
func QuestionAbout(title string) string {
	return "Question about " + title
}

func nonBlankLines(content string) []string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func splitLine(line, title string) (front, back string) {
	before, after, found := strings.Cut(line, ":")
	if !found {
		return QuestionAbout(title), strings.TrimSpace(line)
	}
	return strings.TrimSpace(before), strings.TrimSpace(after)
}
