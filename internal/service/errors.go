package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials covers bad username or password at login.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrDuplicateUsername is returned when registering a taken username.
	ErrDuplicateUsername = errors.New("username already in use")

	// ErrNotOwner is returned when acting on an account owned by another user.
	ErrNotOwner = errors.New("account does not belong to user")

	// ErrAccountNotFound is returned for references to nonexistent accounts.
	ErrAccountNotFound = errors.New("account not found")
)

// ValidationError carries a user-facing message for rejected input.
// It is surfaced as a flash message, never as a server fault.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalidf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
