package services

import (
	"errors"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidState = errors.New("invalid state")
	ErrValidation   = errors.New("validation failed")
	// ErrNoChange reports a request that asked for a state the record is
	// already in.
	ErrNoChange = errors.New("no change")
)

// Error carries a message meant for the person who made the request. Kind is
// one of the sentinel errors above so callers can branch with errors.Is.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Kind.Error() + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func notFound(msg string) error     { return &Error{Kind: ErrNotFound, Message: msg} }
func forbidden(msg string) error    { return &Error{Kind: ErrForbidden, Message: msg} }
func invalidState(msg string) error { return &Error{Kind: ErrInvalidState, Message: msg} }
func invalid(msg string) error      { return &Error{Kind: ErrValidation, Message: msg} }
func noChange(msg string) error     { return &Error{Kind: ErrNoChange, Message: msg} }

// UserMessage extracts the user-facing text of err, if it has one.
func UserMessage(err error) (string, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Message, true
	}
	return "", false
}
