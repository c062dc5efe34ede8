package shared

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a referenced record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation marks business-rule and input-shape violations.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicate indicates a natural key is already taken.
	ErrDuplicate = fmt.Errorf("%w: duplicate entry", ErrValidation)
)

// Error carries a user-facing message while still matching a sentinel through
// errors.Is.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// UserMessage returns the text shown to API clients.
func (e *Error) UserMessage() string { return e.Message }

type userMessager interface {
	UserMessage() string
}

// NotFound builds the "<Resource> com ID n não encontrado(a)" error.
func NotFound(resource string, id int64) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf("%s com ID %d não encontrado(a)", resource, id)}
}

// Invalid builds a business-rule violation with the given message.
func Invalid(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

// Duplicate builds a duplicate-key violation with the given message.
func Duplicate(format string, args ...any) error {
	return &Error{Kind: ErrDuplicate, Message: fmt.Sprintf(format, args...)}
}

// Message returns the first user-facing message in err's chain, or the error
// text when none is present.
func Message(err error) string {
	var m userMessager
	if errors.As(err, &m) {
		return m.UserMessage()
	}
	return err.Error()
}
