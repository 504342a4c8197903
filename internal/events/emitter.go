package events

import (
	"context"
	"log/slog"
	"sync"
)

type subscription struct {
	id      uint64
	handler EventHandler
}

// InMemoryEventEmitter stores subscribed handlers in memory and dispatches
// events to them synchronously, in subscription order.
type InMemoryEventEmitter struct {
	handlers []subscription
	nextID   uint64
	mu       sync.RWMutex
	logger   *slog.Logger
}

// NewInMemoryEventEmitter creates a new instance of InMemoryEventEmitter.
func NewInMemoryEventEmitter(logger *slog.Logger) *InMemoryEventEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemoryEventEmitter{
		handlers: make([]subscription, 0),
		logger:   logger.With("component", "in_memory_event_emitter"),
	}
}

// RegisterHandler adds a handler that stays subscribed for the emitter's lifetime.
func (e *InMemoryEventEmitter) RegisterHandler(handler EventHandler) {
	_ = e.Subscribe(handler)
}

// Subscribe adds handler and returns a function that removes it again.
// Calling the returned function more than once is harmless.
func (e *InMemoryEventEmitter) Subscribe(handler EventHandler) func() {
	e.mu.Lock()
	e.nextID++
	id := e.nextID
	e.handlers = append(e.handlers, subscription{id: id, handler: handler})
	count := len(e.handlers)
	e.mu.Unlock()

	e.logger.Debug("registered new event handler", "handler_count", count)

	var once sync.Once
	return func() {
		once.Do(func() { e.unsubscribe(id) })
	}
}

func (e *InMemoryEventEmitter) unsubscribe(id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	kept := make([]subscription, 0, len(e.handlers))
	for _, s := range e.handlers {
		if s.id != id {
			kept = append(kept, s)
		}
	}
	e.handlers = kept
	e.logger.Debug("removed event handler", "handler_count", len(e.handlers))
}

// HandlerCount reports the number of subscribed handlers.
func (e *InMemoryEventEmitter) HandlerCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.handlers)
}

// EmitEvent publishes the given event to all registered handlers.
// If any handler returns an error, the event will still be sent to all other handlers,
// and the first error encountered will be returned.
func (e *InMemoryEventEmitter) EmitEvent(ctx context.Context, event *StateChangedEvent) error {
	e.mu.RLock()
	handlers := make([]subscription, len(e.handlers))
	copy(handlers, e.handlers)
	e.mu.RUnlock()

	e.logger.Debug("emitting event",
		"event_id", event.ID,
		"partition", event.Partition,
		"action", event.Action,
		"handler_count", len(handlers))

	var firstErr error
	for i, s := range handlers {
		if err := s.handler.HandleEvent(ctx, event); err != nil {
			e.logger.Error("handler failed to process event",
				"error", err,
				"handler_index", i,
				"event_id", event.ID,
				"partition", event.Partition,
				"action", event.Action)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}
