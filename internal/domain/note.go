package domain

import (
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
)

// DefaultNoteTitle is the title given to a freshly created note.
const DefaultNoteTitle = "Untitled Note"

// Note validation errors
var (
	ErrNoteIDEmpty    = errors.New("note ID cannot be empty")
	ErrNoteOwnerEmpty = errors.New("note owner ID cannot be empty")
)

// Note is a user-authored text entry. It is owned by one user and can be
// shared with other users by email or made public.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	OwnerID   string    `json:"owner_id"`
	// SharedWith keeps every share, so sharing twice with the same
	// email lists it twice.
	SharedWith []string `json:"shared_with"`
	IsPublic   bool     `json:"is_public"`
	Tags       []string `json:"tags"`
}

// NoteUpdate enumerates the fields an update may set. A nil field is left
// untouched. Identity, ownership and timestamps cannot be set this way.
type NoteUpdate struct {
	Title      *string
	Content    *string
	Tags       *[]string
	SharedWith *[]string
	IsPublic   *bool
}

// NewNote creates an empty private note owned by ownerID.
func NewNote(ownerID string, now time.Time) (*Note, error) {
	note := &Note{
		ID:         uuid.NewString(),
		Title:      DefaultNoteTitle,
		Content:    "",
		CreatedAt:  now,
		UpdatedAt:  now,
		OwnerID:    ownerID,
		SharedWith: []string{},
		IsPublic:   false,
		Tags:       []string{},
	}

	if err := note.Validate(); err != nil {
		return nil, err
	}

	return note, nil
}

// Validate checks if the Note has valid data.
func (n *Note) Validate() error {
	if n.ID == "" {
		return ErrNoteIDEmpty
	}

	if n.OwnerID == "" {
		return ErrNoteOwnerEmpty
	}

	return nil
}

// Clone returns a deep copy of the note, or nil for a nil receiver.
func (n *Note) Clone() *Note {
	if n == nil {
		return nil
	}
	c := *n
	c.SharedWith = cloneStrings(n.SharedWith)
	c.Tags = cloneStrings(n.Tags)
	return &c
}

// Apply sets every non-nil field of u and stamps UpdatedAt.
func (n *Note) Apply(u NoteUpdate, now time.Time) {
	if u.Title != nil {
		n.Title = *u.Title
	}
	if u.Content != nil {
		n.Content = *u.Content
	}
	if u.Tags != nil {
		n.Tags = cloneStrings(*u.Tags)
	}
	if u.SharedWith != nil {
		n.SharedWith = cloneStrings(*u.SharedWith)
	}
	if u.IsPublic != nil {
		n.IsPublic = *u.IsPublic
	}
	n.UpdatedAt = now
}

// ShareWith appends email to SharedWith. No validation or dedup happens here.
func (n *Note) ShareWith(email string, now time.Time) {
	n.SharedWith = append(cloneStrings(n.SharedWith), email)
	n.UpdatedAt = now
}

// TogglePublic flips the visibility flag.
func (n *Note) TogglePublic(now time.Time) {
	n.IsPublic = !n.IsPublic
	n.UpdatedAt = now
}

// HasTag reports whether tag is present, compared case-sensitively.
func (n *Note) HasTag(tag string) bool {
	return slices.Contains(n.Tags, tag)
}

// IsSharedWith reports whether email appears in SharedWith.
func (n *Note) IsSharedWith(email string) bool {
	return slices.Contains(n.SharedWith, email)
}

func cloneStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return append(make([]string, 0, len(s)), s...)
}
