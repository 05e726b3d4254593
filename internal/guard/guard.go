// Package guard gates protected views on the locally held session.
// The gating decision is a pure clock comparison against the stored
// expiry; no network call validates the token here. A revoked but
// unexpired token is only caught when the API answers 401.
package guard

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/startuplens/lens/pkg/session"
)

// LoginRoute is where unauthenticated users are sent.
const LoginRoute = "/login"

// User-visible notices.
const (
	NoticeLoginRequired  = "Please login to continue."
	NoticeSessionExpired = "Session expired, please login again."
)

// Decision is the outcome of a session check.
type Decision struct {
	Allowed  bool
	Notice   string
	Redirect string
}

// Check derives the gating decision from the session alone. A missing
// or half-populated session and an expired one both gate to the login
// route, differing only in the notice shown.
func Check(s session.Session, now time.Time) Decision {
	if s.IsZero() {
		return Decision{Notice: NoticeLoginRequired, Redirect: LoginRoute}
	}
	if s.ExpiredAt(now) {
		return Decision{Notice: NoticeSessionExpired, Redirect: LoginRoute}
	}
	return Decision{Allowed: true}
}

// Notifier surfaces a user-visible notice.
type Notifier interface {
	Notify(msg string)
}

// Navigator moves the user to another route.
type Navigator interface {
	NavigateTo(route string)
}

// Guard combines the pure check with its effects: on a failed check it
// transitions the session manager to anonymous, emits the notice, and
// redirects. It runs on every protected view, so navigating between
// protected views after expiry re-triggers the redirect.
type Guard struct {
	manager *session.Manager
	notify  Notifier
	nav     Navigator
	logger  zerolog.Logger
}

// New creates a guard over the session manager.
func New(manager *session.Manager, notifier Notifier, navigator Navigator, logger zerolog.Logger) *Guard {
	return &Guard{
		manager: manager,
		notify:  notifier,
		nav:     navigator,
		logger:  logger.With().Str("component", "guard").Logger(),
	}
}

// Require re-evaluates the session now and reports whether the
// protected view may render. On failure nothing should be rendered.
func (g *Guard) Require() bool {
	d := Check(g.manager.Session(), g.manager.Now())
	if d.Allowed {
		return true
	}

	g.logger.Debug().Str("notice", d.Notice).Msg("access denied")
	g.manager.Logout()
	g.notify.Notify(d.Notice)
	g.nav.NavigateTo(d.Redirect)
	return false
}
