package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by services and repositories. Handlers map them to HTTP status codes.
var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrDuplicate          = errors.New("already in use")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// MissingFieldError reports a required field that was absent or blank.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return e.Field + " is required"
}

// Is makes errors.Is(err, ErrInvalidArgument) true for missing fields.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// DuplicateFieldError reports the first field found to collide with an existing user.
type DuplicateFieldError struct {
	Field string
}

func (e *DuplicateFieldError) Error() string {
	return e.Field + " already taken"
}

// Is makes errors.Is(err, ErrDuplicate) true for any duplicate field.
func (e *DuplicateFieldError) Is(target error) bool {
	return target == ErrDuplicate
}

// InvalidArgumentf returns an error wrapping ErrInvalidArgument with a formatted message.
// The message alone is what callers see; the sentinel is only for classification.
func InvalidArgumentf(format string, args ...any) error {
	return &invalidArgumentError{msg: fmt.Sprintf(format, args...)}
}

type invalidArgumentError struct {
	msg string
}

func (e *invalidArgumentError) Error() string { return e.msg }

func (e *invalidArgumentError) Is(target error) bool { return target == ErrInvalidArgument }
