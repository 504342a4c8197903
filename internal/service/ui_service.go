package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/phrazzld/scry-notes/internal/domain"
	"github.com/phrazzld/scry-notes/internal/events"
	"github.com/phrazzld/scry-notes/internal/store"
)

// UIService owns the presentation toggles. Toggling is selection-like state
// and emits no notification.
type UIService struct {
	mu    sync.Mutex
	prefs domain.UIPreferences

	state  *partition[domain.UIPreferences]
	logger *slog.Logger
}

// NewUIService creates a UIService with default preferences.
func NewUIService(deps Deps) (*UIService, error) {
	if err := deps.validate("ui"); err != nil {
		return nil, err
	}

	logger := deps.logger("ui_service")
	return &UIService{
		prefs:  domain.DefaultUIPreferences(),
		state:  newPartition[domain.UIPreferences](store.PartitionUI, deps, logger),
		logger: logger,
	}, nil
}

// Load restores preferences from the store.
func (s *UIService) Load(ctx context.Context) error {
	prefs, found, err := s.state.load(ctx)
	if !found {
		return err
	}

	s.mu.Lock()
	s.prefs = prefs
	s.mu.Unlock()
	return nil
}

// Reload is Load followed by a change event.
func (s *UIService) Reload(ctx context.Context) error {
	err := s.Load(ctx)
	s.state.emit(ctx, events.ActionReloaded)
	return err
}

// ToggleDarkMode inverts the dark mode flag and returns the new preferences.
func (s *UIService) ToggleDarkMode(ctx context.Context) domain.UIPreferences {
	return s.toggle(ctx, events.ActionDarkModeToggled, func(p *domain.UIPreferences) {
		p.DarkMode = !p.DarkMode
	})
}

// ToggleSidebar inverts the sidebar flag and returns the new preferences.
func (s *UIService) ToggleSidebar(ctx context.Context) domain.UIPreferences {
	return s.toggle(ctx, events.ActionSidebarToggled, func(p *domain.UIPreferences) {
		p.SidebarOpen = !p.SidebarOpen
	})
}

// Preferences returns the current preferences.
func (s *UIService) Preferences() domain.UIPreferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

func (s *UIService) toggle(ctx context.Context, action string, flip func(*domain.UIPreferences)) domain.UIPreferences {
	s.mu.Lock()
	flip(&s.prefs)
	prefs := s.prefs
	s.state.save(ctx, prefs)
	s.mu.Unlock()

	s.state.emit(ctx, action)
	return prefs
}
