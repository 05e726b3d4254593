// Package session holds the client's locally persisted proof of
// authentication and derives the login state from it.
package session

import "time"

// Storage keys used by durable stores.
const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keyExpiration   = "expirationTimestamp"
)

// Session is the locally held proof of authentication. AccessToken and
// ExpiresAt are always set together: a session carrying only one half
// reads as no session at all.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// IsZero reports whether no usable session is held.
func (s Session) IsZero() bool {
	return s.AccessToken == "" || s.ExpiresAt.IsZero()
}

// ExpiredAt reports whether the session is past its expiry at the given
// instant. A session expiring exactly now is still valid for that one
// evaluation.
func (s Session) ExpiredAt(now time.Time) bool {
	if s.IsZero() {
		return true
	}
	return now.After(s.ExpiresAt)
}

// normalize enforces the token/expiry pairing: if either half is
// missing, both are dropped. The refresh token is left alone.
func normalize(s Session) Session {
	if s.AccessToken == "" || s.ExpiresAt.IsZero() {
		return Session{RefreshToken: s.RefreshToken}
	}
	return s
}

// Store persists a session across process restarts. Implementations
// make every Save and Clear visible to all readers in the same process
// immediately.
type Store interface {
	// Save writes all session fields. Stores that cannot reach their
	// durable backing keep the session in memory and report success;
	// callers must not assume the session survives a restart.
	Save(s Session) error
	// Clear removes the session. Idempotent.
	Clear() error
	// Read returns the current session, with the access token and
	// expiry nulled out if either is missing.
	Read() Session
}
