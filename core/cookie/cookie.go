package cookie

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"net/http"
	"slices"
	"strings"
	"time"
)

const (
	// MaxCookieSize is the maximum accepted cookie value length.
	MaxCookieSize = 4095
	// DefaultSessionCookieName is the default name for the session cookie.
	DefaultSessionCookieName = "gatekit_session"
	// DefaultMaxAge is the default session cookie lifetime (7 days).
	DefaultMaxAge = 7 * 24 * time.Hour
)

// invalidValueChars are rejected in cookie values to prevent header and
// markup injection.
const invalidValueChars = `<>'"&`

// SecureOptions returns cookie attributes for the given environment.
// Production gets Secure + the configured domain; anything else disables
// Secure and pins the domain to localhost for local development.
func SecureOptions(environment, domain string) Options {
	opts := Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(DefaultMaxAge.Seconds()),
	}

	if environment == "production" {
		opts.Secure = true
		opts.Domain = domain
	} else {
		opts.Secure = false
		opts.Domain = "localhost"
	}

	return opts
}

// ValidateValue reports whether a cookie value is safe to store: non-empty,
// within the size limit, and free of markup/injection characters.
func ValidateValue(value string) bool {
	if value == "" || len(value) > MaxCookieSize {
		return false
	}
	return !strings.ContainsAny(value, invalidValueChars)
}

// Sign appends a hex SHA-256 signature over value+secret, producing
// "value.signature".
func Sign(value, secret string) string {
	return value + "." + signature(value, secret)
}

// Verify recomputes the signature of a signed value and returns the
// original value. Tampered or malformed input yields ok=false, never an
// error or panic.
func Verify(signed, secret string) (value string, ok bool) {
	idx := strings.LastIndexByte(signed, '.')
	if idx <= 0 || idx == len(signed)-1 {
		return "", false
	}

	value, sig := signed[:idx], signed[idx+1:]
	expected := signature(value, secret)

	if subtle.ConstantTimeCompare([]byte(sig), []byte(expected)) != 1 {
		return "", false
	}
	return value, true
}

// signature computes the hex SHA-256 digest of value+secret.
func signature(value, secret string) string {
	sum := sha256.Sum256([]byte(value + secret))
	return hex.EncodeToString(sum[:])
}

// Manager handles HTTP cookie operations with signing and secret rotation.
// The first secret signs new cookies; all secrets are tried on verification
// so old cookies stay valid during rotation.
type Manager struct {
	secrets  []string
	defaults Options
}

// New creates a cookie manager with the given secrets and default options.
func New(secrets []string, opts ...Option) (*Manager, error) {
	secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	defaults := Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	defaults = applyOptions(defaults, opts)

	return &Manager{secrets: secrets, defaults: defaults}, nil
}

// Set stores a cookie value after validating it.
func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) error {
	if !ValidateValue(value) {
		return ErrInvalidValue
	}

	options := applyOptions(m.defaults, opts)

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     options.Path,
		Domain:   options.Domain,
		MaxAge:   options.MaxAge,
		Secure:   options.Secure,
		HttpOnly: options.HttpOnly,
		SameSite: options.SameSite,
	})
	return nil
}

// Get retrieves a cookie value.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	cookie, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return cookie.Value, nil
}

// Delete removes a cookie.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     m.defaults.Path,
		Domain:   m.defaults.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   m.defaults.Secure,
		HttpOnly: m.defaults.HttpOnly,
		SameSite: m.defaults.SameSite,
	})
}

// SetSigned stores a signed cookie value.
func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, opts ...Option) error {
	if !ValidateValue(value) {
		return ErrInvalidValue
	}
	return m.Set(w, name, Sign(value, m.secrets[0]), opts...)
}

// GetSigned retrieves and verifies a signed cookie value. All secrets are
// tried to support rotation.
func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	signed, err := m.Get(r, name)
	if err != nil {
		return "", err
	}

	for _, secret := range m.secrets {
		if value, ok := Verify(signed, secret); ok {
			return value, nil
		}
	}
	return "", ErrInvalidSignature
}
