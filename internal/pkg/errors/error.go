package xerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services, repositories and handlers.
// response.FromError maps each one onto an HTTP status.
var (
	// Storage layer
	ErrNotFound       = errors.New("resource not found")
	ErrDuplicateEntry = errors.New("duplicate entry")
	ErrConflict       = errors.New("conflict: resource already exists")

	// Auth boundary
	ErrUnauthorized   = errors.New("unauthorized access")
	ErrForbidden      = errors.New("forbidden")
	ErrSessionExpired = errors.New("session expired or invalid")
	ErrRateLimited    = errors.New("too many requests")

	// Request validation
	ErrInvalidInput = errors.New("invalid input")
	ErrBadRequest   = errors.New("bad request")

	// Catch-all
	ErrInternal = errors.New("internal server error")
)

// ErrPlacaNoEncontrada is returned when the national vehicle registry has
// no record for a plate. Kept distinct from ErrNotFound so handlers can
// tell a missing local row from a missing registry record.
var ErrPlacaNoEncontrada = errors.New("placa no registrada")

// Wrap adds context to an error while keeping the sentinel reachable
// through errors.Is.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// MessageOrDefault returns err.Error() or a fallback message if err is nil.
func MessageOrDefault(err error, fallback string) string {
	if err != nil {
		return err.Error()
	}
	return fallback
}
