package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Update is a partial session update. Nil fields are left untouched.
type Update struct {
	Token     *string
	ExpiresAt *time.Time
	IPAddress *string
	UserAgent *string
	User      *UserInfo
}

// apply copies the set fields onto the session and bumps UpdatedAt.
func (u Update) apply(s *Session) {
	if u.Token != nil {
		s.Token = *u.Token
	}
	if u.ExpiresAt != nil {
		s.ExpiresAt = *u.ExpiresAt
	}
	if u.IPAddress != nil {
		s.IPAddress = *u.IPAddress
	}
	if u.UserAgent != nil {
		s.UserAgent = *u.UserAgent
	}
	if u.User != nil {
		s.User = u.User
	}
	s.UpdatedAt = time.Now()
}

// isZero reports whether the update carries no changes.
func (u Update) isZero() bool {
	return u.Token == nil && u.ExpiresAt == nil && u.IPAddress == nil &&
		u.UserAgent == nil && u.User == nil
}

// Store defines the persistence interface for sessions.
// Implementations must handle concurrent access safely.
type Store interface {
	// Store persists a session, overwriting any session with the same ID.
	Store(ctx context.Context, sess Session) error
	// Retrieve loads a session by ID. Returns ErrNotFound when absent.
	Retrieve(ctx context.Context, id uuid.UUID) (*Session, error)
	// Update applies a partial update. Returns ErrNotFound when absent.
	Update(ctx context.Context, id uuid.UUID, upd Update) error
	// Delete removes a session. Returns ErrNotFound when absent.
	Delete(ctx context.Context, id uuid.UUID) error
	// Cleanup removes expired sessions and returns the count removed.
	// Backends with native TTL expiration may report zero.
	Cleanup(ctx context.Context) (int64, error)
	// Close releases resources held by the store.
	Close() error
}
