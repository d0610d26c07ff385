package authz

import (
	"context"
	"time"
)

// User is the authorization-relevant projection of an account. It is
// sourced from the session store or a decoded token, never owned here.
type User struct {
	ID    string
	Email string
	// Role is a single coarse role such as "admin" or "manager".
	Role string
	// Scopes are fine-grained permissions, possibly containing wildcard
	// segments ("billing:*").
	Scopes []string
	// Extra carries claims the authorization layer passes through.
	Extra map[string]any
}

// SessionInfo is the resolved session attached to a request context.
type SessionInfo struct {
	ID        string
	User      User
	ExpiresAt time.Time
}

// Expired reports whether the session is past its deadline. A zero
// ExpiresAt means the resolver did not provide one and expiry was already
// enforced upstream.
func (s *SessionInfo) Expired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// Context is the request context flowing through the middleware chain.
// Session is nil for anonymous requests.
type Context struct {
	context.Context

	Session *SessionInfo
	// Claims holds extra request-scoped claims (tenant, impersonation)
	// that handlers may consult.
	Claims map[string]any
}

// NewContext builds an authorization context over a standard context.
func NewContext(ctx context.Context, sess *SessionInfo) Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return Context{Context: ctx, Session: sess}
}

// Authenticated reports whether a live session is present. Sessions past
// their deadline do not count, no matter what storage still holds.
func (c Context) Authenticated() bool {
	return c.Session != nil && !c.Session.Expired()
}

// UserID returns the authenticated user's ID, or "" when anonymous.
func (c Context) UserID() string {
	if c.Session == nil {
		return ""
	}
	return c.Session.User.ID
}
