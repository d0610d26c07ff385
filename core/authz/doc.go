// Package authz provides a composable authorization middleware chain for
// protected operations: role checks, wildcard scope matching, ownership
// gates, and rate limiting.
//
// A Handler is any protected operation; middlewares wrap it so that it
// either runs with a context guaranteed to satisfy the applied policy,
// or never runs at all:
//
//	protected := authz.Chain(
//		authz.WithLogging(log, "notes.delete"),
//		authz.RequireRole("admin"),
//		authz.RequireScope("notes:delete"),
//		authz.RateLimit(authz.RateLimitConfig{Limiter: limiter}),
//	)(deleteNote)
//
//	out, err := protected(authz.NewContext(ctx, sess), input)
//
// The first middleware listed is outermost and executes first. Every
// denial is an authz.Error from a fixed taxonomy (ErrUnauthenticated,
// ErrForbidden, ErrTooManyRequests) so transports can map failures
// mechanically, and no middleware swallows a denial from an earlier
// stage.
//
// Scope checks understand wildcards on both sides: a user holding
// "billing:*" passes RequireScope("billing:refund"), and a global "*"
// grant passes everything. All required scopes must be covered, not
// just one.
package authz
