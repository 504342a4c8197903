package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Actions carried by StateChangedEvent.
const (
	ActionLogin           = "login"
	ActionLogout          = "logout"
	ActionRegister        = "register"
	ActionNoteCreated     = "note_created"
	ActionNoteUpdated     = "note_updated"
	ActionNoteDeleted     = "note_deleted"
	ActionNoteShared      = "note_shared"
	ActionNoteVisibility  = "note_visibility_toggled"
	ActionCurrentNote     = "current_note_changed"
	ActionDeckGenerated   = "deck_generated"
	ActionCurrentDeck     = "current_deck_changed"
	ActionFlashcardsReset = "flashcards_reset"
	ActionDarkModeToggled = "dark_mode_toggled"
	ActionSidebarToggled  = "sidebar_toggled"
	ActionNotesImported   = "notes_imported"
	ActionReloaded        = "reloaded"
)

// StateChangedEvent reports that one state partition finished a transition.
type StateChangedEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Partition is the persistence partition of the state owner, e.g. "notes"
	Partition string `json:"partition"`

	// Action names the transition
	Action string `json:"action"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// NewStateChangedEvent creates a new StateChangedEvent for partition and action.
func NewStateChangedEvent(partition, action string) *StateChangedEvent {
	return &StateChangedEvent{
		ID:        uuid.New(),
		Partition: partition,
		Action:    action,
		CreatedAt: time.Now().UTC(),
	}
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *StateChangedEvent) error
}

// EventHandlerFunc adapts a plain function to EventHandler.
type EventHandlerFunc func(ctx context.Context, event *StateChangedEvent) error

// HandleEvent calls f.
func (f EventHandlerFunc) HandleEvent(ctx context.Context, event *StateChangedEvent) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
// This allows state owners to publish changes without knowing their subscribers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *StateChangedEvent) error
}

// ForPartitions wraps h so it only sees events for the listed partitions.
func ForPartitions(h EventHandler, partitions ...string) EventHandler {
	want := make(map[string]struct{}, len(partitions))
	for _, p := range partitions {
		want[p] = struct{}{}
	}
	return EventHandlerFunc(func(ctx context.Context, event *StateChangedEvent) error {
		if _, ok := want[event.Partition]; !ok {
			return nil
		}
		return h.HandleEvent(ctx, event)
	})
}

// NopEmitter discards every event.
type NopEmitter struct{}

// EmitEvent implements EventEmitter.
func (NopEmitter) EmitEvent(context.Context, *StateChangedEvent) error { return nil }
