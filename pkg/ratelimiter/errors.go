package ratelimiter

import "errors"

// Package-level error definitions for rate limiter operations.
var (
	ErrInvalidConfig    = errors.New("ratelimiter: invalid configuration")
	ErrStoreRequired    = errors.New("ratelimiter: store is required")
	ErrStoreUnavailable = errors.New("ratelimiter: store unavailable")
)
