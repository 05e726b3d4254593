package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	grant  Grant
	err    error
	calls  int
	lastIn Credentials
}

func (f *fakeAuth) Login(_ context.Context, creds Credentials) (Grant, error) {
	f.calls++
	f.lastIn = creds
	if f.err != nil {
		return Grant{}, f.err
	}
	return f.grant, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestManager_LoginStoresSession(t *testing.T) {
	loginInstant := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	auth := &fakeAuth{grant: Grant{
		AccessToken:  "abc",
		RefreshToken: "def",
		ExpiresTime:  60,
	}}
	m := NewManager(store, auth, zerolog.Nop(), WithClock(fixedClock(loginInstant)))

	creds := Credentials{UsernameOrEmail: "demo", Password: "secret1"}
	require.NoError(t, m.Login(context.Background(), creds))

	assert.Equal(t, creds, auth.lastIn)

	s := store.Read()
	assert.Equal(t, "abc", s.AccessToken)
	assert.Equal(t, "def", s.RefreshToken)

	// expires_time is minutes: 60 min after login == +3,600,000 ms.
	wantExpiry := loginInstant.Add(3_600_000 * time.Millisecond)
	assert.True(t, wantExpiry.Equal(s.ExpiresAt))
	assert.Equal(t, StateAuthenticated, m.State())
}

func TestManager_LoginClearsPreviousSession(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save(Session{
		AccessToken: "stale",
		ExpiresAt:   time.Now().Add(time.Hour),
	}))
	auth := &fakeAuth{err: errors.New("bad credentials")}
	m := NewManager(store, auth, zerolog.Nop())

	err := m.Login(context.Background(), Credentials{UsernameOrEmail: "demo", Password: "wrong"})
	require.Error(t, err)

	// The stale token must not leak into (or survive) the failed attempt.
	assert.True(t, store.Read().IsZero())
	assert.Equal(t, StateAnonymous, m.State())
}

func TestManager_LogoutIdempotent(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save(Session{
		AccessToken: "abc",
		ExpiresAt:   time.Now().Add(time.Hour),
	}))
	m := NewManager(store, &fakeAuth{}, zerolog.Nop())

	m.Logout()
	assert.True(t, store.Read().IsZero())

	m.Logout()
	assert.True(t, store.Read().IsZero())
	assert.Equal(t, StateAnonymous, m.State())
}

func TestManager_StateAt(t *testing.T) {
	loginInstant := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	expiry := loginInstant.Add(time.Hour)
	store := NewMemoryStore()
	require.NoError(t, store.Save(Session{AccessToken: "abc", ExpiresAt: expiry}))
	m := NewManager(store, &fakeAuth{}, zerolog.Nop())

	tests := []struct {
		name string
		at   time.Time
		want State
	}{
		{"before expiry", expiry.Add(-time.Minute), StateAuthenticated},
		{"exactly at expiry", expiry, StateAuthenticated},
		{"after expiry", expiry.Add(time.Millisecond), StateExpired},
		{"well after expiry", loginInstant.Add(3_700_000 * time.Millisecond), StateExpired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.StateAt(tt.at))
		})
	}
}

func TestManager_StateAnonymousWithoutSession(t *testing.T) {
	m := NewManager(NewMemoryStore(), &fakeAuth{}, zerolog.Nop())
	assert.Equal(t, StateAnonymous, m.State())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "anonymous", StateAnonymous.String())
	assert.Equal(t, "authenticated", StateAuthenticated.String())
	assert.Equal(t, "expired", StateExpired.String())
}
