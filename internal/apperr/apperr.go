// Package apperr holds the error kinds shared by repositories, services and
// the HTTP layer. Callers wrap a kind with a human readable message and match
// it later with errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
	ErrDomain     = errors.New("rule violated")
)

// Validation reports a malformed or incomplete input.
func Validation(format string, args ...interface{}) error {
	return wrap(ErrValidation, format, args...)
}

// Conflict reports a uniqueness or ownership collision.
func Conflict(format string, args ...interface{}) error {
	return wrap(ErrConflict, format, args...)
}

// NotFound reports a missing entity that the operation requires.
func NotFound(format string, args ...interface{}) error {
	return wrap(ErrNotFound, format, args...)
}

// Domain reports a business rule violation, e.g. booking in the past.
func Domain(format string, args ...interface{}) error {
	return wrap(ErrDomain, format, args...)
}

func wrap(kind error, format string, args ...interface{}) error {
	return &kindError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// Message returns the diagnostic text of err without the kind prefix.
func Message(err error) string {
	var ke *kindError
	if errors.As(err, &ke) {
		return ke.msg
	}
	return err.Error()
}
