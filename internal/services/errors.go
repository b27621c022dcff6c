package services

import (
	"errors"
	"fmt"
)

// Shared error taxonomy. Handlers map these with errors.Is/As; services never
// report a partial success alongside one of them.
var (
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")
	ErrConflict  = errors.New("conflict")
)

// ValidationError rejects a malformed request before any store access.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErr(format string, args ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
