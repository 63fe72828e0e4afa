// Package apperr defines the error taxonomy shared by the store and
// service layers. Handlers map these onto HTTP status codes; nothing
// else translates or wraps them.
package apperr

import (
	"errors"
	"fmt"
)

// ErrNotFound signals that an id did not resolve to a row.
var ErrNotFound = errors.New("not found")

// ValidationError signals a missing or out-of-range field. The message
// is safe to surface to the client.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundf wraps ErrNotFound with context about what was missing.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err resolves to ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
