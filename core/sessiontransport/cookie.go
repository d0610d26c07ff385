package sessiontransport

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/saaskit/gatekit/core/authz"
	"github.com/saaskit/gatekit/core/cookie"
	"github.com/saaskit/gatekit/core/session"
)

// Cookie transports sessions over a signed HTTP cookie holding the
// session ID. The signature makes the ID tamper-proof; the session state
// itself stays server-side.
type Cookie struct {
	manager *session.Manager
	cookies *cookie.Manager
	name    string
}

// NewCookie creates a cookie-based session transport. An empty name
// falls back to the default session cookie name.
func NewCookie(manager *session.Manager, cookies *cookie.Manager, name string) *Cookie {
	if name == "" {
		name = cookie.DefaultSessionCookieName
	}
	return &Cookie{manager: manager, cookies: cookies, name: name}
}

// Resolve loads the live session identified by the request's signed
// session cookie.
func (c *Cookie) Resolve(ctx context.Context, r *http.Request) (session.Session, error) {
	value, err := c.cookies.GetSigned(r, c.name)
	if err != nil {
		if errors.Is(err, cookie.ErrCookieNotFound) {
			return session.Session{}, ErrNoCredentials
		}
		return session.Session{}, errors.Join(ErrInvalidCredentials, err)
	}

	id, err := uuid.Parse(value)
	if err != nil {
		return session.Session{}, errors.Join(ErrInvalidCredentials, err)
	}

	return c.manager.Get(ctx, id)
}

// Establish writes the signed session cookie. The cookie lives exactly
// as long as the session does.
func (c *Cookie) Establish(w http.ResponseWriter, sess session.Session) error {
	remaining := sess.RemainingLifetime()
	if remaining <= 0 {
		return session.ErrExpired
	}
	return c.cookies.SetSigned(w, c.name, sess.ID.String(),
		cookie.WithMaxAge(int(remaining.Seconds())),
	)
}

// Refresh extends the session server-side and re-issues the cookie with
// the new lifetime.
func (c *Cookie) Refresh(ctx context.Context, w http.ResponseWriter, r *http.Request) (session.Session, error) {
	sess, err := c.Resolve(ctx, r)
	if err != nil {
		return session.Session{}, err
	}

	refreshed, err := c.manager.Refresh(ctx, sess.ID)
	if err != nil {
		return session.Session{}, err
	}

	if err := c.Establish(w, refreshed); err != nil {
		return session.Session{}, err
	}
	return refreshed, nil
}

// SignOut deletes the session server-side and clears the cookie. The
// cookie is cleared even when the store delete fails so the client drops
// its credentials either way.
func (c *Cookie) SignOut(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	defer c.cookies.Delete(w, c.name)

	sess, err := c.Resolve(ctx, r)
	if err != nil {
		if errors.Is(err, ErrNoCredentials) || errors.Is(err, session.ErrNotFound) || errors.Is(err, session.ErrExpired) {
			return nil
		}
		return err
	}

	if err := c.manager.Delete(ctx, sess.ID); err != nil && !errors.Is(err, session.ErrNotFound) {
		return err
	}
	return nil
}

// Context resolves the request into an authorization context. Requests
// without a live session get an anonymous context rather than an error;
// policy middlewares decide whether that is acceptable.
func (c *Cookie) Context(ctx context.Context, r *http.Request) authz.Context {
	sess, err := c.Resolve(ctx, r)
	if err != nil {
		return authz.NewContext(ctx, nil)
	}
	return authz.NewContext(ctx, SessionInfo(sess))
}
