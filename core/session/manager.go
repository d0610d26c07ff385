package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Manager handles session lifecycle: creation at sign-in, expiry-checked
// retrieval, refresh, and deletion at sign-out.
type Manager struct {
	store Store
	ttl   time.Duration
}

// NewManager creates a session manager with the given store and
// time-to-live for new sessions.
func NewManager(store Store, ttl time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl}
}

// Create builds and persists a session for the user.
func (m *Manager) Create(ctx context.Context, userID uuid.UUID, opts ...NewOption) (Session, error) {
	sess, err := New(userID, m.ttl, opts...)
	if err != nil {
		return Session{}, err
	}
	if err := m.store.Store(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Get retrieves a session by ID and validates expiration. A stored but
// expired session reads as ErrExpired regardless of backend cleanup lag.
func (m *Manager) Get(ctx context.Context, id uuid.UUID) (Session, error) {
	sess, err := m.store.Retrieve(ctx, id)
	if err != nil {
		return Session{}, err
	}
	if sess.IsExpired() {
		return Session{}, ErrExpired
	}
	return *sess, nil
}

// Refresh extends a live session's expiration by the manager TTL.
// Expired sessions cannot be refreshed.
func (m *Manager) Refresh(ctx context.Context, id uuid.UUID) (Session, error) {
	sess, err := m.Get(ctx, id)
	if err != nil {
		return Session{}, err
	}

	expiresAt := time.Now().Add(m.ttl)
	if err := m.store.Update(ctx, id, Update{ExpiresAt: &expiresAt}); err != nil {
		return Session{}, err
	}

	sess.ExpiresAt = expiresAt
	sess.UpdatedAt = time.Now()
	return sess, nil
}

// Delete removes a session.
func (m *Manager) Delete(ctx context.Context, id uuid.UUID) error {
	return m.store.Delete(ctx, id)
}

// CleanupExpired removes expired sessions from the store. Should be
// called periodically to prevent session table growth.
func (m *Manager) CleanupExpired(ctx context.Context) (int64, error) {
	return m.store.Cleanup(ctx)
}

// TTL returns the session time-to-live duration.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}
