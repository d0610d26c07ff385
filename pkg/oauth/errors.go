package oauth

import (
	"errors"
	"fmt"
)

var (
	// ErrProviderNotConfigured is returned when the requested provider has no
	// client credentials registered. This is a configuration error, not a
	// user-input error.
	ErrProviderNotConfigured = errors.New("oauth: provider not configured")

	// ErrProviderNotSupported is returned when the provider is configured but
	// has no known endpoints or profile normalization.
	ErrProviderNotSupported = errors.New("oauth: provider not supported")

	// ErrEmailAlreadyRegistered is returned by LinkAccount when the profile
	// email belongs to an existing account created through another method.
	// The message is intentionally generic; callers may replace the copy.
	ErrEmailAlreadyRegistered = errors.New("oauth: email already registered")
)

// ExchangeError indicates the provider token endpoint call failed.
type ExchangeError struct {
	Provider string
	Status   string
	Err      error
}

func (e *ExchangeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("oauth: %s token exchange failed: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("oauth: %s token exchange failed: %s", e.Provider, e.Status)
}

func (e *ExchangeError) Unwrap() error { return e.Err }

// ProfileError indicates the provider profile endpoint call failed.
type ProfileError struct {
	Provider string
	Status   string
	Err      error
}

func (e *ProfileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("oauth: failed to fetch %s profile: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("oauth: failed to fetch %s profile: %s", e.Provider, e.Status)
}

func (e *ProfileError) Unwrap() error { return e.Err }
