package service

import (
	"context"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/phrazzld/scry-notes/internal/domain"
	"github.com/phrazzld/scry-notes/internal/events"
	"github.com/phrazzld/scry-notes/internal/notify"
	"github.com/phrazzld/scry-notes/internal/redact"
	"github.com/phrazzld/scry-notes/internal/store"
)

// SessionProvider exposes the logged-in user, if any.
type SessionProvider interface {
	CurrentUser() (*domain.User, bool)
}

type notesSnapshot struct {
	Notes       []domain.Note `json:"notes"`
	CurrentNote *domain.Note  `json:"current_note"`
}

// NoteFilter narrows List results. A note matches when Query (case-insensitive)
// occurs in its title or content and it carries every tag in Tags.
type NoteFilter struct {
	Query string
	Tags  []string
}

// NoteStats summarizes the collection for a dashboard.
type NoteStats struct {
	Total  int           `json:"total"`
	Recent []domain.Note `json:"recent"`
	Shared int           `json:"shared"`
	Public int           `json:"public"`
}

// recentNoteCount is how many notes a dashboard shows.
const recentNoteCount = 3

// NoteService is the single owner of the note collection and the current
// note selection.
type NoteService struct {
	mu      sync.Mutex
	notes   []domain.Note
	current *domain.Note

	session  SessionProvider
	state    *partition[notesSnapshot]
	notifier notify.Sink
	logger   *slog.Logger
	opts     options
}

// NewNoteService creates a NoteService. New notes are owned by the
// session's current user.
func NewNoteService(deps Deps, session SessionProvider, opts ...Option) (*NoteService, error) {
	if err := deps.validate("notes"); err != nil {
		return nil, err
	}
	if session == nil {
		return nil, missingDependency("notes", "session")
	}

	logger := deps.logger("note_service")
	s := &NoteService{
		notes:    []domain.Note{},
		session:  session,
		state:    newPartition[notesSnapshot](store.PartitionNotes, deps, logger),
		notifier: deps.Notifier,
		logger:   logger,
		opts:     newOptions(opts),
	}
	if s.opts.seed {
		s.notes = sampleNotes()
	}
	return s, nil
}

// Load restores notes and the current selection from the store.
func (s *NoteService) Load(ctx context.Context) error {
	snap, found, err := s.state.load(ctx)
	if !found {
		return err
	}

	s.mu.Lock()
	s.notes = snap.Notes
	if s.notes == nil {
		s.notes = []domain.Note{}
	}
	s.current = snap.CurrentNote
	s.mu.Unlock()
	return nil
}

// Reload is Load followed by a change event.
func (s *NoteService) Reload(ctx context.Context) error {
	err := s.Load(ctx)
	s.state.emit(ctx, events.ActionReloaded)
	return err
}

// Create inserts a fresh note owned by the current user at the front of the
// collection and selects it. Without a logged-in user nothing happens and
// (nil, nil) is returned.
func (s *NoteService) Create(ctx context.Context) (*domain.Note, error) {
	user, ok := s.session.CurrentUser()
	if !ok {
		s.logger.Debug("create note skipped without a session")
		return nil, nil
	}

	note, err := s.insert(ctx, user.ID, nil)
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, notify.Success("New note created"))
	return note, nil
}

// insert adds a new note for ownerID, applies u to it, and selects it.
func (s *NoteService) insert(ctx context.Context, ownerID string, u *domain.NoteUpdate) (*domain.Note, error) {
	s.mu.Lock()
	now := s.opts.now()
	note, err := domain.NewNote(ownerID, now)
	if err != nil {
		s.mu.Unlock()
		return nil, NewServiceError("notes", "create_note", "failed to create note object", err)
	}
	if u != nil {
		note.Apply(*u, now)
	}

	notes := make([]domain.Note, 0, len(s.notes)+1)
	notes = append(notes, *note)
	notes = append(notes, s.notes...)
	s.notes = notes
	s.current = note.Clone()
	s.save(ctx)
	s.mu.Unlock()

	s.logger.Info("note created", "note_id", note.ID, "owner_id", note.OwnerID)
	s.state.emit(ctx, events.ActionNoteCreated)
	return note, nil
}

// Import merges notes into the collection. A note whose id already exists
// replaces the stored one in place; the rest are added at the front in the
// order given. Invalid notes are skipped. It returns how many were stored.
func (s *NoteService) Import(ctx context.Context, notes []domain.Note) int {
	s.mu.Lock()
	merged := slices.Clone(s.notes)
	var added []domain.Note
	count := 0
	for i := range notes {
		n := notes[i].Clone()
		if err := n.Validate(); err != nil {
			s.logger.Warn("skipping invalid note on import", "note_id", n.ID, redact.ErrorAttr(err))
			continue
		}
		if j := slices.IndexFunc(merged, func(m domain.Note) bool { return m.ID == n.ID }); j >= 0 {
			merged[j] = *n
		} else {
			added = append(added, *n)
		}
		count++
	}
	if count > 0 {
		s.notes = append(added, merged...)
		if s.current != nil {
			if j := s.indexOf(s.current.ID); j >= 0 {
				s.current = s.notes[j].Clone()
			}
		}
		s.save(ctx)
	}
	s.mu.Unlock()

	if count > 0 {
		s.logger.Info("notes imported", "count", count)
		s.state.emit(ctx, events.ActionNotesImported)
	}
	s.notifier.Notify(ctx, notify.Success("Imported %d notes", count))
	return count
}

// Update applies u to the note with id and refreshes its UpdatedAt. The
// current note is updated in lockstep. A miss changes nothing.
func (s *NoteService) Update(ctx context.Context, id string, u domain.NoteUpdate) (*domain.Note, bool) {
	note, ok := s.mutate(ctx, id, events.ActionNoteUpdated, func(n *domain.Note, now time.Time) {
		n.Apply(u, now)
	})
	s.notifier.Notify(ctx, notify.Success("Note saved successfully"))
	return note, ok
}

// Delete removes the note with id and clears the selection if it pointed at
// it. A miss changes nothing.
func (s *NoteService) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	i := s.indexOf(id)
	if i >= 0 {
		s.notes = slices.Delete(slices.Clone(s.notes), i, i+1)
		if s.current != nil && s.current.ID == id {
			s.current = nil
		}
		s.save(ctx)
	}
	s.mu.Unlock()

	if i >= 0 {
		s.logger.Info("note deleted", "note_id", id)
		s.state.emit(ctx, events.ActionNoteDeleted)
	}
	s.notifier.Notify(ctx, notify.Success("Note deleted"))
	return i >= 0
}

// Share appends email to the note's SharedWith list. The email is neither
// validated nor deduplicated.
func (s *NoteService) Share(ctx context.Context, id, email string) (*domain.Note, bool) {
	note, ok := s.mutate(ctx, id, events.ActionNoteShared, func(n *domain.Note, now time.Time) {
		n.ShareWith(email, now)
	})
	s.notifier.Notify(ctx, notify.Success("Note shared with %s", email))
	return note, ok
}

// TogglePublic flips the note's visibility.
func (s *NoteService) TogglePublic(ctx context.Context, id string) (*domain.Note, bool) {
	note, ok := s.mutate(ctx, id, events.ActionNoteVisibility, func(n *domain.Note, now time.Time) {
		n.TogglePublic(now)
	})
	switch {
	case !ok:
		s.notifier.Notify(ctx, notify.Success("Note visibility updated"))
	case note.IsPublic:
		s.notifier.Notify(ctx, notify.Success("Note is now public"))
	default:
		s.notifier.Notify(ctx, notify.Success("Note is now private"))
	}
	return note, ok
}

// AddTag appends a trimmed tag unless it is blank or already present.
// It reports whether the tag was added.
func (s *NoteService) AddTag(ctx context.Context, id, tag string) (*domain.Note, bool) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		s.notifier.Notify(ctx, notify.Error("Please enter a tag"))
		return nil, false
	}

	added := false
	note, ok := s.mutateIf(ctx, id, events.ActionNoteUpdated, func(n *domain.Note, now time.Time) bool {
		if n.HasTag(tag) {
			return false
		}
		tags := append(slices.Clone(n.Tags), tag)
		n.Apply(domain.NoteUpdate{Tags: &tags}, now)
		added = true
		return true
	})

	switch {
	case !ok:
		s.notifier.Notify(ctx, notify.Success("Tags updated"))
	case !added:
		s.notifier.Notify(ctx, notify.Error("Tag already exists"))
	default:
		s.notifier.Notify(ctx, notify.Success("Tag added successfully"))
	}
	return note, added
}

// RemoveTag drops every occurrence of tag from the note.
func (s *NoteService) RemoveTag(ctx context.Context, id, tag string) (*domain.Note, bool) {
	note, ok := s.mutate(ctx, id, events.ActionNoteUpdated, func(n *domain.Note, now time.Time) {
		tags := slices.DeleteFunc(slices.Clone(n.Tags), func(t string) bool { return t == tag })
		n.Apply(domain.NoteUpdate{Tags: &tags}, now)
	})
	s.notifier.Notify(ctx, notify.Success("Tag removed"))
	return note, ok
}

// SetCurrent selects note, or clears the selection when note is nil. The
// note is not checked against the collection.
func (s *NoteService) SetCurrent(ctx context.Context, note *domain.Note) {
	s.mu.Lock()
	s.current = note.Clone()
	s.save(ctx)
	s.mu.Unlock()

	s.state.emit(ctx, events.ActionCurrentNote)
}

// Select makes the stored note with id current. It reports whether the id
// was found; a miss leaves the selection alone.
func (s *NoteService) Select(ctx context.Context, id string) (*domain.Note, bool) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return nil, false
	}
	s.current = s.notes[i].Clone()
	s.save(ctx)
	note := s.current.Clone()
	s.mu.Unlock()

	s.state.emit(ctx, events.ActionCurrentNote)
	return note, true
}

// Current returns the selected note.
func (s *NoteService) Current() (*domain.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil, false
	}
	return s.current.Clone(), true
}

// List returns every note, newest first.
func (s *NoteService) List() []domain.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneNotes(s.notes)
}

// Get returns the note with id.
func (s *NoteService) Get(id string) (*domain.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil, false
	}
	return s.notes[i].Clone(), true
}

// Search returns the notes matching f, in collection order.
func (s *NoteService) Search(f NoteFilter) []domain.Note {
	query := strings.ToLower(f.Query)
	return s.filter(func(n *domain.Note) bool {
		if query != "" &&
			!strings.Contains(strings.ToLower(n.Title), query) &&
			!strings.Contains(strings.ToLower(n.Content), query) {
			return false
		}
		for _, tag := range f.Tags {
			if !n.HasTag(tag) {
				return false
			}
		}
		return true
	})
}

// Tags returns the sorted set of tags used across all notes.
func (s *NoteService) Tags() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{})
	tags := make([]string, 0)
	for _, n := range s.notes {
		for _, t := range n.Tags {
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				tags = append(tags, t)
			}
		}
	}
	sort.Strings(tags)
	return tags
}

// SharedWith returns notes owned by someone else that are public or shared
// with user's email.
func (s *NoteService) SharedWith(user domain.User) []domain.Note {
	return s.filter(func(n *domain.Note) bool {
		return n.OwnerID != user.ID && (n.IsPublic || n.IsSharedWith(user.Email))
	})
}

// SharedBy returns notes owned by user that are public or shared with anyone.
func (s *NoteService) SharedBy(user domain.User) []domain.Note {
	return s.filter(func(n *domain.Note) bool {
		return n.OwnerID == user.ID && (n.IsPublic || len(n.SharedWith) > 0)
	})
}

// Dashboard summarizes the whole collection.
func (s *NoteService) Dashboard() NoteStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := NoteStats{
		Total:  len(s.notes),
		Recent: cloneNotes(s.notes[:min(recentNoteCount, len(s.notes))]),
	}
	for i := range s.notes {
		if len(s.notes[i].SharedWith) > 0 {
			stats.Shared++
		}
		if s.notes[i].IsPublic {
			stats.Public++
		}
	}
	return stats
}

func (s *NoteService) mutate(ctx context.Context, id, action string, fn func(n *domain.Note, now time.Time)) (*domain.Note, bool) {
	return s.mutateIf(ctx, id, action, func(n *domain.Note, now time.Time) bool {
		fn(n, now)
		return true
	})
}

// mutateIf runs fn on a copy of the note with id and commits the copy only
// when fn returns true. The current note, when it has the same id, gets the
// same change. It returns the note as it stands afterwards and whether the
// id was found.
func (s *NoteService) mutateIf(
	ctx context.Context,
	id, action string,
	fn func(n *domain.Note, now time.Time) bool,
) (*domain.Note, bool) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		s.logger.Debug("note mutation ignored, id not found", "note_id", id, "action", action)
		return nil, false
	}

	now := s.opts.now()
	updated := s.notes[i].Clone()
	if !fn(updated, now) {
		s.mu.Unlock()
		return updated, true
	}

	notes := slices.Clone(s.notes)
	notes[i] = *updated
	s.notes = notes
	if s.current != nil && s.current.ID == id {
		current := s.current.Clone()
		fn(current, now)
		s.current = current
	}
	s.save(ctx)
	s.mu.Unlock()

	s.state.emit(ctx, action)
	return updated.Clone(), true
}

func (s *NoteService) filter(keep func(n *domain.Note) bool) []domain.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Note, 0)
	for i := range s.notes {
		if keep(&s.notes[i]) {
			out = append(out, *s.notes[i].Clone())
		}
	}
	return out
}

// indexOf must be called with s.mu held.
func (s *NoteService) indexOf(id string) int {
	return slices.IndexFunc(s.notes, func(n domain.Note) bool { return n.ID == id })
}

// save must be called with s.mu held.
func (s *NoteService) save(ctx context.Context) {
	s.state.save(ctx, notesSnapshot{Notes: s.notes, CurrentNote: s.current})
}

func cloneNotes(notes []domain.Note) []domain.Note {
	out := make([]domain.Note, 0, len(notes))
	for i := range notes {
		out = append(out, *notes[i].Clone())
	}
	return out
}
