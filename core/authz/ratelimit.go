package authz

import (
	"time"

	"github.com/saaskit/gatekit/pkg/ratelimiter"
)

// RateLimitConfig wires a shared limiter into the middleware chain.
type RateLimitConfig struct {
	// Limiter is the shared sliding-window limiter. Required.
	Limiter *ratelimiter.Limiter
	// Identifier resolves the counting key for a request. Defaults to
	// the session user ID, or "anonymous" without one.
	Identifier func(ctx Context) string
}

// RateLimit denies requests over the limit with ErrTooManyRequests
// carrying retry timing in its details. Limiter backend failures
// propagate unchanged; they are storage errors, not denials.
func RateLimit(cfg RateLimitConfig) Middleware {
	identify := cfg.Identifier
	if identify == nil {
		identify = defaultIdentifier
	}

	return func(next Handler) Handler {
		return func(ctx Context, input any) (any, error) {
			result, err := cfg.Limiter.Check(ctx, identify(ctx))
			if err != nil {
				return nil, err
			}
			if !result.Allowed {
				return nil, ErrTooManyRequests.WithDetails(map[string]any{
					"retry_after_seconds": int(result.RetryAfter().Seconds()),
					"reset_time":          result.ResetAt.UTC().Format(time.RFC3339),
				})
			}
			return next(ctx, input)
		}
	}
}

func defaultIdentifier(ctx Context) string {
	if id := ctx.UserID(); id != "" {
		return id
	}
	return "anonymous"
}
