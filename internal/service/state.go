package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/scry-notes/internal/events"
	"github.com/phrazzld/scry-notes/internal/notify"
	"github.com/phrazzld/scry-notes/internal/redact"
	"github.com/phrazzld/scry-notes/internal/store"
)

// Deps are the collaborators every state owner needs.
type Deps struct {
	Store    store.SnapshotStore
	Emitter  events.EventEmitter
	Notifier notify.Sink
	Logger   *slog.Logger
}

func (d Deps) validate(service string) error {
	if d.Store == nil {
		return missingDependency(service, "store")
	}
	if d.Emitter == nil {
		return missingDependency(service, "eventEmitter")
	}
	if d.Notifier == nil {
		return missingDependency(service, "notifier")
	}
	return nil
}

func (d Deps) logger(component string) *slog.Logger {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With("component", component)
}

// Option configures a state owner.
type Option func(*options)

type options struct {
	now  func() time.Time
	seed bool
}

func newOptions(opts []Option) options {
	o := options{
		now:  func() time.Time { return time.Now().UTC() },
		seed: true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithClock overrides the clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithSeedData controls whether an empty store starts with the demo account
// and sample notes. Seeding is on by default.
func WithSeedData(enabled bool) Option {
	return func(o *options) {
		o.seed = enabled
	}
}

// partition persists one JSON snapshot type and announces its changes.
type partition[T any] struct {
	name    string
	store   store.SnapshotStore
	emitter events.EventEmitter
	logger  *slog.Logger
}

func newPartition[T any](name string, d Deps, logger *slog.Logger) *partition[T] {
	return &partition[T]{
		name:    name,
		store:   d.Store,
		emitter: d.Emitter,
		logger:  logger,
	}
}

// load returns the stored snapshot. found is false when nothing was saved yet.
func (p *partition[T]) load(ctx context.Context) (snap T, found bool, err error) {
	data, err := p.store.Load(ctx, p.name)
	if err != nil {
		if errors.Is(err, store.ErrSnapshotNotFound) {
			return snap, false, nil
		}
		return snap, false, fmt.Errorf("failed to load %s snapshot: %w", p.name, err)
	}

	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, false, fmt.Errorf("failed to decode %s snapshot: %w", p.name, err)
	}

	return snap, true, nil
}

// save writes snap. Failures are logged and otherwise ignored.
func (p *partition[T]) save(ctx context.Context, snap T) {
	data, err := json.Marshal(snap)
	if err != nil {
		p.logger.Error("failed to encode snapshot",
			"partition", p.name,
			redact.ErrorAttr(err))
		return
	}

	if err := p.store.Save(ctx, p.name, data); err != nil {
		p.logger.Error("failed to save snapshot",
			"partition", p.name,
			redact.ErrorAttr(err))
		return
	}

	p.logger.Debug("saved snapshot", "partition", p.name, "bytes", len(data))
}

// emit announces a committed transition. Call it after releasing the lock.
func (p *partition[T]) emit(ctx context.Context, action string) {
	event := events.NewStateChangedEvent(p.name, action)
	if err := p.emitter.EmitEvent(ctx, event); err != nil {
		p.logger.Warn("state change subscriber failed",
			"partition", p.name,
			"action", action,
			redact.ErrorAttr(err))
	}
}
