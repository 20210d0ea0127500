package billing

import (
	"errors"
	"fmt"
)

// Sentinel classes for the engine's failure taxonomy. Callers branch with
// errors.Is; the concrete errors below wrap one of these and add context.
var (
	// ErrValidation marks malformed input to a mirror/upsert. Fatal, not retried.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks a referenced entity that does not exist locally. Fatal.
	ErrNotFound = errors.New("not found")
	// ErrExternalService marks a failed provider RPC. Retryable by the caller
	// with backoff; the engine never retries internally.
	ErrExternalService = errors.New("external service error")
	// ErrConflict marks a unique-constraint race. Recovered internally by the
	// Customer Binder and never surfaced to callers.
	ErrConflict = errors.New("conflict")
)

// ValidationError wraps ErrValidation with field context.
func ValidationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFoundError wraps ErrNotFound with entity context.
func NotFoundError(entity, id string) error {
	return fmt.Errorf("%w: %s %q", ErrNotFound, entity, id)
}

// ExternalServiceError wraps a provider failure.
func ExternalServiceError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrExternalService, op, err)
}

// ConflictError wraps ErrConflict with key context.
func ConflictError(key string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrConflict, key, err)
}
