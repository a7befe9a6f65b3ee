package session

import (
	"log/slog"
	"time"
)

// Manager answers session-validity and role questions on top of a Store.
// It never refreshes tokens: an expired session is terminal and the only
// way back is a fresh login.
type Manager struct {
	store Store
	now   func() time.Time
}

func NewManager(store Store) *Manager {
	return &Manager{store: store, now: time.Now}
}

// Current returns the session when one is present, decodable, and
// unexpired. A token that fails either check is cleared immediately so no
// later request goes out carrying dead credentials.
func (m *Manager) Current() (Session, error) {
	sess, ok := m.store.Get()
	if !ok {
		return Session{}, ErrNoSession
	}

	claims, err := DecodeClaims(sess.Token)
	if err != nil {
		slog.Warn("stored token undecodable, clearing session")
		if clearErr := m.store.Clear(); clearErr != nil {
			slog.Warn("session clear failed", "err", clearErr)
		}
		return Session{}, ErrInvalidToken
	}

	if claims.Expired(m.now()) {
		if clearErr := m.store.Clear(); clearErr != nil {
			slog.Warn("session clear failed", "err", clearErr)
		}
		return Session{}, ErrExpiredToken
	}

	return sess, nil
}

func (m *Manager) Valid() bool {
	_, err := m.Current()
	return err == nil
}

// RequireRole gates role-specific entry points. The decoded role claim is
// authoritative, not the denormalized store field, so a stale store row
// cannot widen access.
func (m *Manager) RequireRole(role string) (Session, error) {
	sess, err := m.Current()
	if err != nil {
		return Session{}, err
	}
	claims, err := DecodeClaims(sess.Token)
	if err != nil {
		return Session{}, ErrInvalidToken
	}
	if claims.Role != role {
		return Session{}, ErrWrongRole
	}
	return sess, nil
}
