package session

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// State is the login state derived from the stored session.
type State int

const (
	// StateAnonymous means no session is held.
	StateAnonymous State = iota
	// StateAuthenticated means a session is held and not yet expired.
	StateAuthenticated
	// StateExpired means a session is held but its expiry has passed.
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateExpired:
		return "expired"
	default:
		return "anonymous"
	}
}

// Credentials are what the login endpoint accepts.
type Credentials struct {
	UsernameOrEmail string
	Password        string
}

// Grant is the auth service's answer to a successful login.
// ExpiresTime is the token lifetime in minutes.
type Grant struct {
	AccessToken  string
	RefreshToken string
	ExpiresTime  int
}

// AuthService performs the network half of a login.
type AuthService interface {
	Login(ctx context.Context, creds Credentials) (Grant, error)
}

// Manager derives the login state from a Store and drives the
// login/logout transitions. Expiry is evaluated lazily at the point of
// use; there is no background timer and no proactive token refresh.
type Manager struct {
	store  Store
	auth   AuthService
	now    func() time.Time
	logger zerolog.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) { m.now = now }
}

// NewManager creates a manager over the given store and auth service.
func NewManager(store Store, auth AuthService, logger zerolog.Logger, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:  store,
		auth:   auth,
		now:    time.Now,
		logger: logger.With().Str("component", "auth").Logger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Login exchanges credentials for a session and stores it. On failure
// the store is untouched and the state stays Anonymous. The store is
// cleared first so a failed or abandoned earlier login can never leak
// its tokens into this attempt.
func (m *Manager) Login(ctx context.Context, creds Credentials) error {
	if err := m.store.Clear(); err != nil {
		return err
	}

	grant, err := m.auth.Login(ctx, creds)
	if err != nil {
		m.logger.Debug().Err(err).Msg("login failed")
		return err
	}

	expiresAt := m.now().Add(time.Duration(grant.ExpiresTime) * time.Minute)
	if err := m.store.Save(Session{
		AccessToken:  grant.AccessToken,
		RefreshToken: grant.RefreshToken,
		ExpiresAt:    expiresAt,
	}); err != nil {
		return err
	}

	m.logger.Info().Time("expires_at", expiresAt).Msg("logged in")
	return nil
}

// Logout clears the stored session. It needs no network and always
// succeeds, so it is safe to call proactively before a new login
// attempt to guarantee a clean slate.
func (m *Manager) Logout() {
	if err := m.store.Clear(); err != nil {
		m.logger.Warn().Err(err).Msg("failed to clear session store")
	}
}

// Session returns the currently stored session.
func (m *Manager) Session() Session {
	return m.store.Read()
}

// State evaluates the login state at the current instant.
func (m *Manager) State() State {
	return m.StateAt(m.now())
}

// StateAt evaluates the login state at the given instant. Expiry uses
// strict now > expiresAt: a session expiring exactly now is still
// Authenticated for that evaluation.
func (m *Manager) StateAt(now time.Time) State {
	s := m.store.Read()
	if s.IsZero() {
		return StateAnonymous
	}
	if s.ExpiredAt(now) {
		return StateExpired
	}
	return StateAuthenticated
}

// Now returns the manager's current wall-clock time.
func (m *Manager) Now() time.Time {
	return m.now()
}
