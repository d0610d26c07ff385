package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
)

// UserInfo is an optional denormalized projection of the session owner,
// stored alongside the session so authorization checks avoid a user lookup.
type UserInfo struct {
	Email       string         `json:"email,omitempty"`
	Name        string         `json:"name,omitempty"`
	Roles       []string       `json:"roles,omitempty"`
	Permissions []string       `json:"permissions,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Session represents an authenticated user session.
type Session struct {
	// ID is the stable unique session identifier that never changes
	// during the session lifecycle.
	ID uuid.UUID `json:"id"`

	// UserID identifies the authenticated owner of the session.
	UserID uuid.UUID `json:"userId"`

	// Token is the cryptographically secure session token (32 bytes
	// base64url). Used as cookie value or JWT session claim.
	Token string `json:"token"`

	IPAddress string `json:"ipAddress,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`

	// User is an optional identity projection. May be nil.
	User *UserInfo `json:"user,omitempty"`

	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewOption customizes a session at creation time.
type NewOption func(*Session)

// WithIPAddress records the client IP the session was created from.
func WithIPAddress(ip string) NewOption {
	return func(s *Session) {
		s.IPAddress = ip
	}
}

// WithUserAgent records the client User-Agent the session was created from.
func WithUserAgent(ua string) NewOption {
	return func(s *Session) {
		s.UserAgent = ua
	}
}

// WithUser attaches a user projection to the session.
func WithUser(user *UserInfo) NewOption {
	return func(s *Session) {
		s.User = user
	}
}

// New creates a session for the given user with a generated ID and token.
func New(userID uuid.UUID, ttl time.Duration, opts ...NewOption) (Session, error) {
	token, err := generateToken()
	if err != nil {
		return Session{}, errors.Join(ErrTokenGeneration, err)
	}

	now := time.Now()
	sess := Session{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(&sess)
	}
	return sess, nil
}

// IsExpired returns true if the session has expired. A session whose
// ExpiresAt is even a millisecond in the past is dead regardless of
// whether storage has deleted it yet.
func (s Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// RemainingLifetime returns the time until expiration. Non-positive for
// expired sessions.
func (s Session) RemainingLifetime() time.Duration {
	return time.Until(s.ExpiresAt)
}

// generateToken creates a cryptographically secure random token using
// 32 bytes (256 bits) encoded as base64 URL-safe string without padding.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
