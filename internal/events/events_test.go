package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewStateChangedEvent(t *testing.T) {
	t.Parallel()

	before := time.Now().UTC()
	event := NewStateChangedEvent("notes", ActionNoteCreated)

	assert.NotEqual(t, uuid.Nil, event.ID, "event ID should be set")
	assert.Equal(t, "notes", event.Partition)
	assert.Equal(t, ActionNoteCreated, event.Action)
	assert.False(t, event.CreatedAt.Before(before), "CreatedAt should not predate the call")

	other := NewStateChangedEvent("notes", ActionNoteCreated)
	assert.NotEqual(t, event.ID, other.ID, "each event gets its own ID")
}

// MockEventHandler records events for assertions.
type MockEventHandler struct {
	mu           sync.Mutex
	HandledCount int
	LastEvent    *StateChangedEvent
	HandlerError error
}

func (h *MockEventHandler) HandleEvent(ctx context.Context, event *StateChangedEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.HandledCount++
	h.LastEvent = event
	return h.HandlerError
}

func TestEventHandlerFunc(t *testing.T) {
	t.Parallel()

	var got *StateChangedEvent
	h := EventHandlerFunc(func(_ context.Context, e *StateChangedEvent) error {
		got = e
		return nil
	})

	event := NewStateChangedEvent("ui", ActionDarkModeToggled)
	assert.NoError(t, h.HandleEvent(context.Background(), event))
	assert.Same(t, event, got)
}

func TestForPartitions(t *testing.T) {
	t.Parallel()

	inner := &MockEventHandler{}
	h := ForPartitions(inner, "notes", "flashcards")

	ctx := context.Background()
	assert.NoError(t, h.HandleEvent(ctx, NewStateChangedEvent("ui", ActionSidebarToggled)))
	assert.NoError(t, h.HandleEvent(ctx, NewStateChangedEvent("notes", ActionNoteDeleted)))
	assert.NoError(t, h.HandleEvent(ctx, NewStateChangedEvent("flashcards", ActionDeckGenerated)))

	assert.Equal(t, 2, inner.HandledCount)
	assert.Equal(t, ActionDeckGenerated, inner.LastEvent.Action)
}

func TestNopEmitter(t *testing.T) {
	t.Parallel()
	assert.NoError(t, NopEmitter{}.EmitEvent(context.Background(), NewStateChangedEvent("ui", ActionReloaded)))
}
