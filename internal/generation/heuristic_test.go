package generation_test

import (
	"context"
	"testing"
	"time"

	"github.com/phrazzld/scry-notes/internal/domain"
	"github.com/phrazzld/scry-notes/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frontBack struct {
	Front string
	Back  string
}

func pairs(cards []domain.Flashcard) []frontBack {
	out := make([]frontBack, 0, len(cards))
	for _, c := range cards {
		out = append(out, frontBack{Front: c.Front, Back: c.Back})
	}
	return out
}

func TestHeuristicGenerator_GenerateCards(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	gen := generation.NewHeuristicGenerator(generation.WithClock(func() time.Time { return fixed }))

	tests := []struct {
		name    string
		content string
		want    []frontBack
	}{
		{
			name:    "colon and plain lines",
			content: "Mitosis: cell division process\nRandom fact line",
			want: []frontBack{
				{Front: "Mitosis", Back: "cell division process"},
				{Front: "Question about Biology", Back: "Random fact line"},
			},
		},
		{
			name:    "extra colons stay in the back",
			content: "Time: 10:30: sharp",
			want:    []frontBack{{Front: "Time", Back: "10:30: sharp"}},
		},
		{
			name:    "blank lines are skipped",
			content: "\n   \nfirst\n\n\t\nsecond  \n",
			want: []frontBack{
				{Front: "Question about Biology", Back: "first"},
				{Front: "Question about Biology", Back: "second"},
			},
		},
		{
			name:    "carriage returns are trimmed",
			content: "A: b\r\nplain\r\n",
			want: []frontBack{
				{Front: "A", Back: "b"},
				{Front: "Question about Biology", Back: "plain"},
			},
		},
		{
			name:    "empty content yields no cards",
			content: "",
			want:    []frontBack{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			note := &domain.Note{ID: "n1", OwnerID: "u1", Title: "Biology", Content: tt.content}

			cards, err := gen.GenerateCards(context.Background(), note)
			require.NoError(t, err)
			assert.Equal(t, tt.want, pairs(cards))
		})
	}
}

func TestHeuristicGenerator_IDsAndTimestamps(t *testing.T) {
	t.Parallel()

	calls := 0
	start := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	gen := generation.NewHeuristicGenerator(generation.WithClock(func() time.Time {
		calls++
		return start.Add(time.Duration(calls) * time.Minute)
	}))

	note := &domain.Note{ID: "abc", OwnerID: "u1", Title: "T", Content: "\none\n\ntwo\nthree"}
	cards, err := gen.GenerateCards(context.Background(), note)
	require.NoError(t, err)
	require.Len(t, cards, 3)

	// Indexes count surviving lines, not raw line numbers
	assert.Equal(t, "abc-card-0", cards[0].ID)
	assert.Equal(t, "abc-card-1", cards[1].ID)
	assert.Equal(t, "abc-card-2", cards[2].ID)

	// The clock is read once per batch
	assert.Equal(t, 1, calls)
	for _, c := range cards {
		assert.Equal(t, "abc", c.NoteID)
		assert.Equal(t, cards[0].CreatedAt, c.CreatedAt)
	}
}

func TestHeuristicGenerator_Deterministic(t *testing.T) {
	t.Parallel()

	gen := generation.NewHeuristicGenerator()
	note := &domain.Note{
		ID:      "n1",
		OwnerID: "u1",
		Title:   "History",
		Content: "WWII: 1939-1945\nKey events:\n- D-Day: June 6, 1944",
	}

	first, err := gen.GenerateCards(context.Background(), note)
	require.NoError(t, err)
	second, err := gen.GenerateCards(context.Background(), note)
	require.NoError(t, err)

	assert.Equal(t, pairs(first), pairs(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestHeuristicGenerator_NilNote(t *testing.T) {
	t.Parallel()

	_, err := generation.NewHeuristicGenerator().GenerateCards(context.Background(), nil)
	assert.ErrorIs(t, err, generation.ErrNilNote)
}
