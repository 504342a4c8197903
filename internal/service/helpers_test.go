package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/scry-notes/internal/domain"
	"github.com/phrazzld/scry-notes/internal/events"
	"github.com/phrazzld/scry-notes/internal/notify"
	"github.com/phrazzld/scry-notes/internal/platform/logger"
	"github.com/phrazzld/scry-notes/internal/service/auth"
	"github.com/phrazzld/scry-notes/internal/store"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeClock returns a fixed time that tests move forward by hand.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// eventLog records the actions of every emitted event.
type eventLog struct {
	mu     sync.Mutex
	events []events.StateChangedEvent
}

func (l *eventLog) HandleEvent(_ context.Context, e *events.StateChangedEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, *e)
	return nil
}

func (l *eventLog) Actions() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, 0, len(l.events))
	for _, e := range l.events {
		out = append(out, e.Partition+":"+e.Action)
	}
	return out
}

type fixture struct {
	store    *store.MemoryStore
	recorder *notify.Recorder
	events   *eventLog
	clock    *fakeClock
	deps     Deps
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log, _ := logger.GetTestLogger(t)
	emitter := events.NewInMemoryEventEmitter(log)
	evlog := &eventLog{}
	emitter.RegisterHandler(evlog)

	f := &fixture{
		store:    store.NewMemoryStore(),
		recorder: notify.NewRecorder(),
		events:   evlog,
		clock:    newFakeClock(),
	}
	f.deps = Deps{
		Store:    f.store,
		Emitter:  emitter,
		Notifier: f.recorder,
		Logger:   log,
	}
	return f
}

func (f *fixture) opts(extra ...Option) []Option {
	return append([]Option{WithClock(f.clock.Now)}, extra...)
}

func testHasher(t *testing.T) *auth.BcryptHasher {
	t.Helper()
	h, err := auth.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func (f *fixture) newAuth(t *testing.T, extra ...Option) *AuthService {
	t.Helper()
	s, err := NewAuthService(f.deps, testHasher(t), f.opts(extra...)...)
	require.NoError(t, err)
	return s
}

// staticSession is a SessionProvider with a fixed user.
type staticSession struct {
	user *domain.User
}

func (s staticSession) CurrentUser() (*domain.User, bool) {
	if s.user == nil {
		return nil, false
	}
	return s.user.Clone(), true
}

func loggedIn() staticSession {
	u := demoUser()
	return staticSession{user: &u}
}

func (f *fixture) newNotes(t *testing.T, session SessionProvider, extra ...Option) *NoteService {
	t.Helper()
	s, err := NewNoteService(f.deps, session, f.opts(extra...)...)
	require.NoError(t, err)
	return s
}

func messages(r *notify.Recorder) []string {
	out := make([]string, 0)
	for _, n := range r.Notifications() {
		out = append(out, string(n.Severity)+": "+n.Message)
	}
	return out
}
