package authz

import (
	"log/slog"
	"slices"
	"time"

	"github.com/saaskit/gatekit/core/logger"
)

// Handler is a protected operation. Input is the operation's decoded
// request payload; the returned value is surfaced to the caller unchanged.
type Handler func(ctx Context, input any) (any, error)

// Middleware wraps a handler with a policy check. A denial short-circuits:
// the wrapped handler never runs.
type Middleware func(Handler) Handler

// Chain composes middlewares so the first one listed is outermost and
// therefore executes first.
func Chain(middlewares ...Middleware) Middleware {
	return func(next Handler) Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}

// Conditional applies the middleware only when the predicate holds,
// otherwise the request passes straight through.
func Conditional(predicate func(ctx Context, input any) bool, mw Middleware) Middleware {
	return func(next Handler) Handler {
		guarded := mw(next)
		return func(ctx Context, input any) (any, error) {
			if predicate(ctx, input) {
				return guarded(ctx, input)
			}
			return next(ctx, input)
		}
	}
}

// RequireRole admits only sessions whose user holds one of the roles.
func RequireRole(roles ...string) Middleware {
	return func(next Handler) Handler {
		return func(ctx Context, input any) (any, error) {
			if !ctx.Authenticated() {
				return nil, ErrUnauthenticated
			}
			if !slices.Contains(roles, ctx.Session.User.Role) {
				return nil, ErrForbidden.WithMessage("Insufficient role")
			}
			return next(ctx, input)
		}
	}
}

// RequireAdmin admits only users with the admin role.
var RequireAdmin = RequireRole("admin")

// RequireManagerOrAdmin admits managers and admins.
var RequireManagerOrAdmin = RequireRole("admin", "manager")

// RequireScope admits only users holding every required scope, either
// exactly or through a wildcard grant.
func RequireScope(scopes ...string) Middleware {
	return func(next Handler) Handler {
		return func(ctx Context, input any) (any, error) {
			if !ctx.Authenticated() {
				return nil, ErrUnauthenticated
			}
			granted := ctx.Session.User.Scopes
			for _, required := range scopes {
				if !scopeSatisfied(granted, required) {
					return nil, ErrForbidden.WithMessage("Missing required scope: " + required)
				}
			}
			return next(ctx, input)
		}
	}
}

// WithLogging records the outcome and duration of every call to the
// wrapped operation.
func WithLogging(log *slog.Logger, operation string) Middleware {
	return func(next Handler) Handler {
		return func(ctx Context, input any) (any, error) {
			start := time.Now()
			out, err := next(ctx, input)
			if err != nil {
				log.WarnContext(ctx, "operation denied or failed",
					logger.Operation(operation),
					logger.Elapsed(start),
					logger.Error(err),
				)
				return nil, err
			}
			log.InfoContext(ctx, "operation completed",
				logger.Operation(operation),
				logger.Elapsed(start),
			)
			return out, nil
		}
	}
}
