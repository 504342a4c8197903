// Package app assembles the state owners behind one configured store.
// Both the HTTP server and the CLI build their runtime through New.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/phrazzld/scry-notes/internal/config"
	"github.com/phrazzld/scry-notes/internal/events"
	"github.com/phrazzld/scry-notes/internal/generation"
	"github.com/phrazzld/scry-notes/internal/notify"
	"github.com/phrazzld/scry-notes/internal/platform/filestore"
	redisstore "github.com/phrazzld/scry-notes/internal/platform/redis"
	"github.com/phrazzld/scry-notes/internal/platform/sqlite"
	"github.com/phrazzld/scry-notes/internal/redact"
	"github.com/phrazzld/scry-notes/internal/service"
	"github.com/phrazzld/scry-notes/internal/service/auth"
	"github.com/phrazzld/scry-notes/internal/store"
	"golang.org/x/sync/errgroup"
)

// App holds the shared runtime and owns its cleanup.
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Store   store.SnapshotStore
	Emitter *events.InMemoryEventEmitter

	Auth       *service.AuthService
	Notes      *service.NoteService
	Flashcards *service.FlashcardService
	Summaries  *service.SummaryService
	UI         *service.UIService

	closer io.Closer
}

// Option customizes New.
type Option func(*settings)

type settings struct {
	notifier  notify.Sink
	store     store.SnapshotStore
	generator generation.Generator
	now       func() time.Time
}

// WithNotifier sets where user-facing notifications go. The default logs them.
func WithNotifier(sink notify.Sink) Option {
	return func(s *settings) {
		s.notifier = sink
	}
}

// WithStore bypasses the configured storage driver.
func WithStore(st store.SnapshotStore) Option {
	return func(s *settings) {
		s.store = st
	}
}

// WithGenerator replaces the heuristic flashcard generator.
func WithGenerator(g generation.Generator) Option {
	return func(s *settings) {
		s.generator = g
	}
}

// WithClock fixes the clock used by every service.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		s.now = now
	}
}

// New opens the configured store and wires every service to it. Nothing is
// loaded yet; call Load before serving.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: config cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	if s.notifier == nil {
		s.notifier = notify.NewLogSink(logger)
	}

	a := &App{
		Config:  cfg,
		Logger:  logger.With("component", "app"),
		Emitter: events.NewInMemoryEventEmitter(logger),
	}

	a.Store = s.store
	if a.Store == nil {
		st, closer, err := OpenStore(ctx, cfg.Storage, logger)
		if err != nil {
			return nil, err
		}
		a.Store = st
		a.closer = closer
	}

	if err := a.wire(cfg, logger, s); err != nil {
		_ = a.Close()
		return nil, err
	}

	a.Logger.Info("application initialized", "storage_driver", cfg.Storage.Driver)
	return a, nil
}

func (a *App) wire(cfg *config.Config, logger *slog.Logger, s settings) error {
	hasher, err := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to create password hasher: %w", err)
	}

	deps := service.Deps{
		Store:    a.Store,
		Emitter:  a.Emitter,
		Notifier: s.notifier,
		Logger:   logger,
	}

	svcOpts := []service.Option{service.WithSeedData(cfg.Auth.SeedDemoData)}
	var genOpts []generation.Option
	if s.now != nil {
		svcOpts = append(svcOpts, service.WithClock(s.now))
		genOpts = append(genOpts, generation.WithClock(s.now))
	}

	generator := s.generator
	if generator == nil {
		generator = generation.NewHeuristicGenerator(genOpts...)
	}

	if a.Auth, err = service.NewAuthService(deps, hasher, svcOpts...); err != nil {
		return fmt.Errorf("failed to create auth service: %w", err)
	}
	if a.Notes, err = service.NewNoteService(deps, a.Auth, svcOpts...); err != nil {
		return fmt.Errorf("failed to create note service: %w", err)
	}
	if a.Flashcards, err = service.NewFlashcardService(deps, a.Notes, generator, svcOpts...); err != nil {
		return fmt.Errorf("failed to create flashcard service: %w", err)
	}
	if a.Summaries, err = service.NewSummaryService(deps, a.Notes, a.Auth); err != nil {
		return fmt.Errorf("failed to create summary service: %w", err)
	}
	if a.UI, err = service.NewUIService(deps); err != nil {
		return fmt.Errorf("failed to create ui service: %w", err)
	}
	return nil
}

// OpenStore builds the SnapshotStore selected by cfg.Driver. The returned
// closer is nil when the store holds no resources.
func OpenStore(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (store.SnapshotStore, io.Closer, error) {
	switch cfg.Driver {
	case "memory":
		return store.NewMemoryStore(), nil, nil
	case "file", "":
		st, err := filestore.New(cfg.Dir, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open file store: %w", err)
		}
		return st, nil, nil
	case "sqlite":
		st, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return st, st, nil
	case "redis":
		st, err := redisstore.New(ctx, cfg.RedisAddr, cfg.RedisKeyPrefix)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open redis store: %w", err)
		}
		return st, st, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// Load restores every service concurrently. A partition that fails to
// load is logged and keeps its defaults; the joined errors are returned
// so callers can decide whether that is fatal.
func (a *App) Load(ctx context.Context) error {
	loaders := map[string]func(context.Context) error{
		"auth":       a.Auth.Load,
		"notes":      a.Notes.Load,
		"flashcards": a.Flashcards.Load,
		"ui":         a.UI.Load,
	}

	errs := make(chan error, len(loaders))
	g, gctx := errgroup.WithContext(ctx)
	for name, load := range loaders {
		name, load := name, load
		g.Go(func() error {
			if err := load(gctx); err != nil {
				a.Logger.Error("failed to load state, using defaults",
					"service", name,
					redact.ErrorAttr(err))
				errs <- fmt.Errorf("%s: %w", name, err)
			}
			return nil
		})
	}
	_ = g.Wait()
	close(errs)

	var all []error
	for err := range errs {
		all = append(all, err)
	}
	return errors.Join(all...)
}

// Reload re-reads the state owner behind partition.
func (a *App) Reload(ctx context.Context, partition string) error {
	switch partition {
	case store.PartitionAuth, store.PartitionAccounts:
		return a.Auth.Reload(ctx)
	case store.PartitionNotes:
		return a.Notes.Reload(ctx)
	case store.PartitionFlashcards:
		return a.Flashcards.Reload(ctx)
	case store.PartitionUI:
		return a.UI.Reload(ctx)
	default:
		return fmt.Errorf("%w: %s", store.ErrInvalidPartition, partition)
	}
}

// watcher is implemented by stores that report external changes.
type watcher interface {
	Watch(ctx context.Context, onChange func(partition string)) error
}

// Watch reloads partitions as the store reports them changed, until ctx is
// done. It returns immediately when the store cannot be watched.
func (a *App) Watch(ctx context.Context) error {
	w, ok := a.Store.(watcher)
	if !ok {
		a.Logger.Debug("store does not support watching, skipping")
		return nil
	}

	return w.Watch(ctx, func(partition string) {
		if err := a.Reload(ctx, partition); err != nil {
			a.Logger.Warn("failed to reload partition",
				"partition", partition,
				redact.ErrorAttr(err))
		}
	})
}

// Close releases the store, if it holds resources.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	if err != nil {
		a.Logger.Error("error closing store", redact.ErrorAttr(err))
		return fmt.Errorf("failed to close store: %w", err)
	}
	return nil
}
