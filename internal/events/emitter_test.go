package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestInMemoryEventEmitter(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("emit event with no handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		err := emitter.EmitEvent(context.Background(), NewStateChangedEvent("notes", ActionNoteCreated))
		assert.NoError(t, err)
	})

	t.Run("emit event with successful handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)

		handler1 := &MockEventHandler{}
		handler2 := &MockEventHandler{}
		emitter.RegisterHandler(handler1)
		emitter.RegisterHandler(handler2)

		event := NewStateChangedEvent("notes", ActionNoteUpdated)
		err := emitter.EmitEvent(context.Background(), event)
		assert.NoError(t, err)

		assert.Equal(t, 1, handler1.HandledCount)
		assert.Equal(t, 1, handler2.HandledCount)
		assert.Equal(t, event, handler1.LastEvent)
		assert.Equal(t, event, handler2.LastEvent)
	})

	t.Run("emit event with failing handler", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)

		successHandler := &MockEventHandler{}
		failingHandler := &MockEventHandler{HandlerError: errors.New("handler error")}
		laterHandler := &MockEventHandler{}

		emitter.RegisterHandler(successHandler)
		emitter.RegisterHandler(failingHandler)
		emitter.RegisterHandler(laterHandler)

		err := emitter.EmitEvent(context.Background(), NewStateChangedEvent("auth", ActionLogin))
		assert.EqualError(t, err, "handler error")

		assert.Equal(t, 1, successHandler.HandledCount)
		assert.Equal(t, 1, failingHandler.HandledCount)
		assert.Equal(t, 1, laterHandler.HandledCount, "handlers after a failure still run")
	})

	t.Run("unsubscribe stops delivery", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)

		kept := &MockEventHandler{}
		dropped := &MockEventHandler{}
		emitter.RegisterHandler(kept)
		unsubscribe := emitter.Subscribe(dropped)
		assert.Equal(t, 2, emitter.HandlerCount())

		unsubscribe()
		unsubscribe()
		assert.Equal(t, 1, emitter.HandlerCount())

		assert.NoError(t, emitter.EmitEvent(context.Background(), NewStateChangedEvent("ui", ActionSidebarToggled)))
		assert.Equal(t, 1, kept.HandledCount)
		assert.Equal(t, 0, dropped.HandledCount)
	})

	t.Run("handler may unsubscribe itself during dispatch", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)

		var unsubscribe func()
		calls := 0
		unsubscribe = emitter.Subscribe(EventHandlerFunc(func(context.Context, *StateChangedEvent) error {
			calls++
			unsubscribe()
			return nil
		}))

		ctx := context.Background()
		assert.NoError(t, emitter.EmitEvent(ctx, NewStateChangedEvent("ui", ActionDarkModeToggled)))
		assert.NoError(t, emitter.EmitEvent(ctx, NewStateChangedEvent("ui", ActionDarkModeToggled)))
		assert.Equal(t, 1, calls)
	})

	t.Run("concurrent emit and subscribe", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		handler := &MockEventHandler{}
		emitter.RegisterHandler(handler)

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				_ = emitter.EmitEvent(context.Background(), NewStateChangedEvent("notes", ActionNoteShared))
			}()
			go func() {
				defer wg.Done()
				emitter.Subscribe(&MockEventHandler{})()
			}()
		}
		wg.Wait()

		assert.Equal(t, 20, handler.HandledCount)
		assert.Equal(t, 1, emitter.HandlerCount())
	})
}
