package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/phrazzld/scry-notes/internal/domain"
	"github.com/phrazzld/scry-notes/internal/events"
	"github.com/phrazzld/scry-notes/internal/notify"
	"github.com/phrazzld/scry-notes/internal/redact"
	"github.com/phrazzld/scry-notes/internal/service/auth"
	"github.com/phrazzld/scry-notes/internal/store"
)

type authSnapshot struct {
	User            *domain.User `json:"user"`
	IsAuthenticated bool         `json:"is_authenticated"`
}

type accountsSnapshot struct {
	Accounts []domain.Account `json:"accounts"`
}

// AuthService owns the session (current user plus authenticated flag) and
// the account registry it checks credentials against.
type AuthService struct {
	mu            sync.Mutex
	user          *domain.User
	authenticated bool
	accounts      []domain.Account

	hasher   auth.PasswordHasher
	session  *partition[authSnapshot]
	registry *partition[accountsSnapshot]
	notifier notify.Sink
	logger   *slog.Logger
	opts     options
}

// NewAuthService creates an AuthService with an unauthenticated session.
// Unless seeding is disabled, the registry starts with the demo account.
func NewAuthService(deps Deps, hasher auth.PasswordHasher, opts ...Option) (*AuthService, error) {
	if err := deps.validate("auth"); err != nil {
		return nil, err
	}
	if hasher == nil {
		return nil, missingDependency("auth", "hasher")
	}

	logger := deps.logger("auth_service")
	s := &AuthService{
		accounts: []domain.Account{},
		hasher:   hasher,
		session:  newPartition[authSnapshot](store.PartitionAuth, deps, logger),
		registry: newPartition[accountsSnapshot](store.PartitionAccounts, deps, logger),
		notifier: deps.Notifier,
		logger:   logger,
		opts:     newOptions(opts),
	}

	if s.opts.seed {
		hash, err := hasher.Hash(DemoPassword)
		if err != nil {
			return nil, NewServiceError("auth", "create_service", "failed to hash demo password", err)
		}
		s.accounts = append(s.accounts, domain.Account{User: demoUser(), PasswordHash: hash})
	}

	return s, nil
}

// Load restores the session and registry from the store. Partitions that
// were never saved keep their defaults.
func (s *AuthService) Load(ctx context.Context) error {
	sess, sessFound, sessErr := s.session.load(ctx)
	reg, regFound, regErr := s.registry.load(ctx)

	s.mu.Lock()
	if regFound {
		s.accounts = reg.Accounts
		if s.accounts == nil {
			s.accounts = []domain.Account{}
		}
	}
	if sessFound {
		s.user = sess.User
		s.authenticated = sess.IsAuthenticated && sess.User != nil
	}
	s.mu.Unlock()

	return errors.Join(sessErr, regErr)
}

// Reload is Load followed by a change event, for stores edited externally.
func (s *AuthService) Reload(ctx context.Context) error {
	err := s.Load(ctx)
	s.session.emit(ctx, events.ActionReloaded)
	return err
}

// Login checks the credentials against the registry. On success the
// account's user becomes the session user. On failure the session is left
// as it was and domain.ErrInvalidCredentials is returned.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	s.mu.Lock()
	account, ok := s.findAccount(email)
	if ok {
		if err := s.hasher.Compare(account.PasswordHash, password); err != nil {
			if !errors.Is(err, auth.ErrPasswordMismatch) {
				s.logger.Warn("stored password hash is unusable",
					"user_id", account.User.ID,
					redact.ErrorAttr(err))
			}
			ok = false
		}
	}
	if !ok {
		s.mu.Unlock()
		s.logger.Debug("login rejected", "email", redact.String(email))
		s.notifier.Notify(ctx, notify.Error("Invalid email or password"))
		return nil, domain.ErrInvalidCredentials
	}

	user := account.User
	s.user = &user
	s.authenticated = true
	s.saveSession(ctx)
	s.mu.Unlock()

	s.logger.Info("user logged in", "user_id", user.ID)
	s.session.emit(ctx, events.ActionLogin)
	s.notifier.Notify(ctx, notify.Success("Logged in successfully"))
	return user.Clone(), nil
}

// Register adds an account and logs it in. An exact, case-sensitive email
// match against an existing account fails with domain.ErrUserExists and
// leaves the registry untouched.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (*domain.User, error) {
	user, err := domain.NewUser(email, name)
	if err != nil {
		s.notifier.Notify(ctx, notify.Error("Please enter a valid email address"))
		return nil, NewServiceError("auth", "register", "invalid user", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.notifier.Notify(ctx, notify.Error("Could not create account"))
		return nil, NewServiceError("auth", "register", "failed to hash password", err)
	}

	s.mu.Lock()
	if _, exists := s.findAccount(email); exists {
		s.mu.Unlock()
		s.logger.Debug("attempted to register existing email", "email", redact.String(email))
		s.notifier.Notify(ctx, notify.Error("User already exists"))
		return nil, domain.ErrUserExists
	}

	accounts := make([]domain.Account, 0, len(s.accounts)+1)
	accounts = append(accounts, s.accounts...)
	accounts = append(accounts, domain.Account{User: *user, PasswordHash: hash})
	s.accounts = accounts
	s.user = user.Clone()
	s.authenticated = true
	s.registry.save(ctx, accountsSnapshot{Accounts: s.accounts})
	s.saveSession(ctx)
	s.mu.Unlock()

	s.logger.Info("user registered", "user_id", user.ID)
	s.session.emit(ctx, events.ActionRegister)
	s.notifier.Notify(ctx, notify.Success("Account created successfully"))
	return user, nil
}

// Logout clears the session. It always succeeds.
func (s *AuthService) Logout(ctx context.Context) {
	s.mu.Lock()
	s.user = nil
	s.authenticated = false
	s.saveSession(ctx)
	s.mu.Unlock()

	s.session.emit(ctx, events.ActionLogout)
	s.notifier.Notify(ctx, notify.Success("Logged out successfully"))
}

// CurrentUser returns a copy of the session user.
func (s *AuthService) CurrentUser() (*domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.authenticated || s.user == nil {
		return nil, false
	}
	return s.user.Clone(), true
}

// IsAuthenticated reports whether a user is logged in.
func (s *AuthService) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// HasAccount reports whether email is registered.
func (s *AuthService) HasAccount(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.findAccount(email)
	return ok
}

// AccountCount reports how many accounts are registered.
func (s *AuthService) AccountCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.accounts)
}

// findAccount must be called with s.mu held.
func (s *AuthService) findAccount(email string) (domain.Account, bool) {
	for _, a := range s.accounts {
		if a.User.Email == email {
			return a, true
		}
	}
	return domain.Account{}, false
}

// saveSession must be called with s.mu held.
func (s *AuthService) saveSession(ctx context.Context) {
	s.session.save(ctx, authSnapshot{User: s.user.Clone(), IsAuthenticated: s.authenticated})
}
