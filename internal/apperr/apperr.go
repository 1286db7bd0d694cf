// Package apperr defines the sentinel error categories shared by the any2coco
// commands.
//
// Error taxonomy
//
//	UserError    – caused by missing or invalid user input (wrong flag, source
//	               directory that does not exist, …). The CLI prints only the
//	               message; usage help is NOT repeated. Exit code: 1.
//
//	ErrCancelled – the user declined a confirmation prompt (for example the
//	               overwrite check on an existing annotations.json).
//	               Exit code: 0 (not a failure).
//
// Conversion failures (malformed sidecars, image decode errors, copy errors)
// are defined next to the component that raises them and are propagated with
// fmt.Errorf("context: %w", err) wrapping.
package apperr

import (
	"errors"
	"fmt"
)

// ErrCancelled is returned when the user explicitly aborts an interactive
// operation. The CLI exits 0 rather than 1 when it sees this error.
var ErrCancelled = errors.New("operation cancelled")

// UserError represents an error caused by invalid or missing user input.
type UserError struct {
	Message string
}

func (e *UserError) Error() string { return e.Message }

// User creates a UserError with the given message.
func User(msg string) error { return &UserError{Message: msg} }

// Userf creates a formatted UserError.
func Userf(format string, args ...any) error {
	return &UserError{Message: fmt.Sprintf(format, args...)}
}

// IsUser reports whether err is (or wraps) a *UserError.
func IsUser(err error) bool {
	var u *UserError
	return errors.As(err, &u)
}
