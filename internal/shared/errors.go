// Package shared defines sentinel errors used across service layers.
// Callers should use errors.Is to match these values.
package shared

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Credential errors. ErrUserNotFound and ErrPasswordMismatch both wrap
	// ErrInvalidCredentials so the transport layer can reject them with one
	// generic message and not leak which usernames exist.
	ErrMissingCredentials = errors.New("missing credentials")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = fmt.Errorf("%w: unknown user", ErrInvalidCredentials)
	ErrPasswordMismatch   = fmt.Errorf("%w: password mismatch", ErrInvalidCredentials)

	// Token lifecycle errors. The three kinds map to distinct HTTP outcomes:
	// expired is retriable by re-authenticating, the other two are not.
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenMalformed   = errors.New("token malformed")
	ErrSignatureInvalid = errors.New("token signature invalid")

	// Upload pipeline errors.
	ErrStorage = errors.New("storage error")
	ErrPublish = errors.New("publish error")

	// Notification delivery errors (logged, never fatal to the consumer).
	ErrNotification = errors.New("notification error")
)
