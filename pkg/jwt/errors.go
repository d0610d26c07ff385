package jwt

import "errors"

var (
	// ErrTokenInvalid is returned when the token structure or signature is invalid.
	ErrTokenInvalid = errors.New("jwt: invalid token")
	// ErrTokenExpired is returned when the token's exp claim is in the past.
	ErrTokenExpired = errors.New("jwt: token expired")
	// ErrSecretTooShort is returned when the signing secret is shorter than 32 bytes.
	ErrSecretTooShort = errors.New("jwt: signing secret too short")
	// ErrSigningFailed is returned when token generation fails.
	ErrSigningFailed = errors.New("jwt: failed to sign token")
	// ErrInvalidDuration is returned when an expiry specification cannot be parsed.
	ErrInvalidDuration = errors.New("jwt: invalid duration")
)
