package domain

import "errors"

var (
	ErrValidation   = errors.New("validation failed")
	ErrNoteNotFound = errors.New("note not found")
	ErrStore        = errors.New("note store failure")
)

// ValidationError names the first offending field of a rejected request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return ErrValidation.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
