package session

import "errors"

var (
	// ErrNotFound is returned when a session cannot be found in the store.
	ErrNotFound = errors.New("session not found")
	// ErrExpired is returned when a session has expired and is no longer valid.
	ErrExpired = errors.New("session has expired")
	// ErrTokenGeneration is returned when token generation fails.
	ErrTokenGeneration = errors.New("failed to generate token")
	// ErrSerialization is returned when a session cannot be encoded or decoded.
	ErrSerialization = errors.New("session serialization failed")
	// ErrCircularReference is returned when session metadata contains a
	// self-referencing structure that cannot be serialized.
	ErrCircularReference = errors.New("session metadata contains a circular reference")
	// ErrStorageFailure is returned when all configured storage backends fail.
	ErrStorageFailure = errors.New("session storage failure")
	// ErrInvalidConfig is returned for unusable storage configuration.
	ErrInvalidConfig = errors.New("invalid session storage config")
)
