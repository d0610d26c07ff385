package csrf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"time"
)

// DefaultExpiry is the default token validity window.
const DefaultExpiry = time.Hour

// tokenBytes is the raw entropy per token (hex-encodes to 64 characters).
const tokenBytes = 32

// ErrTokenGeneration is returned when the random source fails.
var ErrTokenGeneration = errors.New("csrf: failed to generate token")

// Token is a CSRF token with its expiry timestamp.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Generator creates tokens with a configurable validity window.
type Generator struct {
	expiry time.Duration
}

// NewGenerator creates a token generator. A non-positive expiry falls back
// to DefaultExpiry.
func NewGenerator(expiry time.Duration) *Generator {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &Generator{expiry: expiry}
}

// Generate creates a fresh token valid for the generator's window.
func (g *Generator) Generate() (Token, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return Token{}, errors.Join(ErrTokenGeneration, err)
	}
	return Token{
		Value:     hex.EncodeToString(b),
		ExpiresAt: time.Now().Add(g.expiry),
	}, nil
}

// Validate reports whether candidate equals expected using a constant-time
// comparison. Returns false for any mismatch, including length mismatch or
// empty input; it never panics.
func Validate(candidate, expected string) bool {
	if candidate == "" || expected == "" {
		return false
	}
	if len(candidate) != len(expected) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(expected)) == 1
}

// IsExpired reports whether the expiry timestamp is in the past.
func IsExpired(expiresAt time.Time) bool {
	return expiresAt.Before(time.Now())
}
