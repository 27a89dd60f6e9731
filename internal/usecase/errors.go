package usecase

import (
	"errors"
	"fmt"

	"movie-catalog/internal/data/repository"
)

// Error kinds; handlers map them to status codes with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
)

// Error carries a client-facing message together with its kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...any) error {
	return newError(ErrNotFound, format, args...)
}

func badRequest(format string, args ...any) error {
	return newError(ErrBadRequest, format, args...)
}

func unauthorized(format string, args ...any) error {
	return newError(ErrUnauthorized, format, args...)
}

func conflict(format string, args ...any) error {
	return newError(ErrConflict, format, args...)
}

// conflictOr turns unique violations into a conflict with msg and wraps anything else.
func conflictOr(err error, msg, op string) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return conflict("%s", msg)
	}
	return fmt.Errorf("%s: %w", op, err)
}
