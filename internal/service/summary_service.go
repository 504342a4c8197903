package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/phrazzld/scry-notes/internal/domain"
	"github.com/phrazzld/scry-notes/internal/generation"
	"github.com/phrazzld/scry-notes/internal/notify"
)

// SummaryNoteTitle is the title of notes created from a summary.
const SummaryNoteTitle = "Summary"

// SummaryService runs the sentence-ratio summarizer and can keep the
// result as a note. It holds no state of its own.
type SummaryService struct {
	notes    *NoteService
	session  SessionProvider
	notifier notify.Sink
	logger   *slog.Logger
}

// NewSummaryService creates a SummaryService that saves into notes.
func NewSummaryService(deps Deps, notes *NoteService, session SessionProvider) (*SummaryService, error) {
	if deps.Notifier == nil {
		return nil, missingDependency("summary", "notifier")
	}
	if notes == nil {
		return nil, missingDependency("summary", "notes")
	}
	if session == nil {
		return nil, missingDependency("summary", "session")
	}

	return &SummaryService{
		notes:    notes,
		session:  session,
		notifier: deps.Notifier,
		logger:   deps.logger("summary_service"),
	}, nil
}

// Summarize returns the leading sentences of text. Blank text fails with
// domain.ErrEmptyInput.
func (s *SummaryService) Summarize(ctx context.Context, text string) (string, error) {
	summary, err := generation.Summarize(text)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyInput) {
			s.notifier.Notify(ctx, notify.Error("Please enter some text to summarize"))
			return "", domain.ErrEmptyInput
		}
		s.notifier.Notify(ctx, notify.Error("Could not generate summary"))
		return "", NewServiceError("summary", "summarize", "failed to summarize text", err)
	}

	s.logger.Debug("summary generated",
		"input_sentences", len(generation.Sentences(text)),
		"summary_length", len(summary))
	s.notifier.Notify(ctx, notify.Success("Summary generated successfully"))
	return summary, nil
}

// SaveAsNote stores summary as a new note titled "Summary" for the current
// user and selects it.
func (s *SummaryService) SaveAsNote(ctx context.Context, summary string) (*domain.Note, error) {
	if strings.TrimSpace(summary) == "" {
		s.notifier.Notify(ctx, notify.Error("There is no summary to save"))
		return nil, domain.ErrEmptyInput
	}

	user, ok := s.session.CurrentUser()
	if !ok {
		s.notifier.Notify(ctx, notify.Error("Create an account to save this summary as a note"))
		return nil, ErrNotAuthenticated
	}

	title := SummaryNoteTitle
	note, err := s.notes.insert(ctx, user.ID, &domain.NoteUpdate{Title: &title, Content: &summary})
	if err != nil {
		s.notifier.Notify(ctx, notify.Error("Could not save summary"))
		return nil, err
	}

	s.notifier.Notify(ctx, notify.Success("Summary saved as a new note"))
	return note, nil
}
