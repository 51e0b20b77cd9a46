package domain

import "errors"

// Error kinds shared by every bounded context. Context-specific sentinels wrap
// one of these so callers can branch on the kind with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

// NewNotFound returns a sentinel of kind ErrNotFound.
func NewNotFound(msg string) error {
	return &kindError{msg: msg, kind: ErrNotFound}
}

// NewValidation returns a sentinel of kind ErrValidation.
func NewValidation(msg string) error {
	return &kindError{msg: msg, kind: ErrValidation}
}

type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }
