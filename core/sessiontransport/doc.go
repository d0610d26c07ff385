// Package sessiontransport resolves inbound request credentials into
// sessions and authorization contexts.
//
// Two transports cover the common surfaces:
//
//   - Cookie: a signed cookie carries the session ID; the session state
//     lives server-side and is loaded through the session manager.
//   - JWT: an Authorization bearer token carries the identity in its
//     verified claims; no store lookup happens.
//
// Both expose Context, which produces an authz.Context for the
// middleware chain. Requests without valid credentials resolve to an
// anonymous context; RequireRole and friends turn that into
// ErrUnauthenticated where a user is required.
//
//	transport := sessiontransport.NewCookie(manager, cookies, "")
//	ctx := transport.Context(r.Context(), r)
//	out, err := protected(ctx, input)
package sessiontransport
