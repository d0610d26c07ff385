package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const minSecretLength = 32

// Payload carries the claims embedded in a session token.
// IssuedAt and ExpiresAt are set by Sign; they are stripped and replaced
// when a token is refreshed.
type Payload struct {
	UserID      string   `json:"userId"`
	SessionID   string   `json:"sessionId"`
	Roles       []string `json:"roles,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
	TenantID    string   `json:"tenantId,omitempty"`
	jwtlib.RegisteredClaims
}

// Service signs and verifies HMAC-SHA256 tokens with a fixed secret and
// a default time-to-live.
type Service struct {
	secret []byte
	ttl    time.Duration
	method jwtlib.SigningMethod
}

// New creates a JWT service. The secret must be at least 32 bytes for
// HMAC-SHA256. The ttl is applied by Sign; use SignWithTTL to override it
// per token.
func New(secret string, ttl time.Duration) (*Service, error) {
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("%w: got %d bytes, need at least %d", ErrSecretTooShort, len(secret), minSecretLength)
	}
	if ttl == 0 {
		ttl = time.Hour
	}
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		method: jwtlib.SigningMethodHS256,
	}, nil
}

// Sign creates a token carrying the payload with fresh iat/exp claims.
func (s *Service) Sign(payload Payload) (string, error) {
	return s.SignWithTTL(payload, s.ttl)
}

// SignWithTTL creates a token with an explicit time-to-live.
// A negative ttl produces an already-expired token; Verify will reject it.
func (s *Service) SignWithTTL(payload Payload, ttl time.Duration) (string, error) {
	now := time.Now()
	payload.IssuedAt = jwtlib.NewNumericDate(now)
	payload.ExpiresAt = jwtlib.NewNumericDate(now.Add(ttl))

	token, err := jwtlib.NewWithClaims(s.method, payload).SignedString(s.secret)
	if err != nil {
		return "", errors.Join(ErrSigningFailed, err)
	}
	return token, nil
}

// Verify parses the token, checks its signature and temporal claims, and
// returns the payload. It never returns a payload for a failing check:
// expired tokens yield ErrTokenExpired, everything else ErrTokenInvalid.
func (s *Service) Verify(token string) (Payload, error) {
	var payload Payload
	_, err := jwtlib.ParseWithClaims(token, &payload,
		func(t *jwtlib.Token) (any, error) { return s.secret, nil },
		jwtlib.WithValidMethods([]string{s.method.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Payload{}, errors.Join(ErrTokenExpired, err)
		}
		return Payload{}, errors.Join(ErrTokenInvalid, err)
	}
	return payload, nil
}

// Decode extracts the payload without verifying the signature.
// It must never be used as an authorization source; it exists for
// non-trust-boundary inspection such as reading a session id for logging.
// Returns nil for structurally invalid tokens.
func Decode(token string) *Payload {
	var payload Payload
	if _, _, err := jwtlib.NewParser().ParseUnverified(token, &payload); err != nil {
		return nil
	}
	return &payload
}

// Refresh verifies the old token, strips its timestamps and re-signs the
// remaining claims with a fresh iat/exp. A token that fails verification
// cannot be refreshed.
func (s *Service) Refresh(token string) (string, error) {
	payload, err := s.Verify(token)
	if err != nil {
		return "", err
	}

	payload.IssuedAt = nil
	payload.ExpiresAt = nil

	return s.Sign(payload)
}

// ParseExpiresIn converts an expiry specification into a duration.
// Accepted forms: bare integers (seconds), Go duration strings ("15m", "1h"),
// and a day suffix ("7d").
func ParseExpiresIn(v string) (time.Duration, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, fmt.Errorf("%w: empty duration", ErrInvalidDuration)
	}

	if secs, err := strconv.ParseInt(v, 10, 64); err == nil {
		return time.Duration(secs) * time.Second, nil
	}

	if strings.HasSuffix(v, "d") {
		days, err := strconv.ParseInt(strings.TrimSuffix(v, "d"), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, v)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, v)
	}
	return d, nil
}
