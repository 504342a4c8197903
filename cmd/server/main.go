// Package main runs the scry-notes HTTP server over the configured
// snapshot store.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/scry-notes/internal/api"
	"github.com/phrazzld/scry-notes/internal/app"
	"github.com/phrazzld/scry-notes/internal/config"
	"github.com/phrazzld/scry-notes/internal/events"
	"github.com/phrazzld/scry-notes/internal/platform/logger"
	"github.com/phrazzld/scry-notes/internal/redact"
	"github.com/phrazzld/scry-notes/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("scry-notes server: %v", err)
	}
}

// run loads configuration, builds the application and serves until ctx
// is cancelled.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(logger.LoggerConfig{
		Level:  cfg.Server.LogLevel,
		Format: cfg.Server.LogFormat,
	})
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"storage_driver", cfg.Storage.Driver)

	a, err := app.New(ctx, cfg, l)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer a.Close()

	unsubscribe := a.Emitter.Subscribe(sessionAudit(l))
	defer unsubscribe()

	if err := a.Load(ctx); err != nil {
		l.Warn("some state could not be restored", redact.ErrorAttr(err))
	}

	if cfg.Storage.Watch {
		go watch(ctx, a, l)
	}

	return startHTTPServer(ctx, cfg.Server.Port, api.NewRouter(a, l), l)
}

func watch(ctx context.Context, a *app.App, l *slog.Logger) {
	if err := a.Watch(ctx); err != nil {
		l.Error("store watcher stopped", redact.ErrorAttr(err))
	}
}

// sessionAudit logs every login, logout and registration at info level.
func sessionAudit(l *slog.Logger) events.EventHandler {
	audit := l.With("component", "session_audit")
	return events.ForPartitions(events.EventHandlerFunc(func(ctx context.Context, e *events.StateChangedEvent) error {
		audit.InfoContext(ctx, "session state changed",
			"partition", e.Partition,
			"action", e.Action)
		return nil
	}), store.PartitionAuth, store.PartitionAccounts)
}
