package validate

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formcheck/pkg/message"
)

// ErrValidation is the sentinel every ValidationError matches with errors.Is.
var ErrValidation = errors.New("validate: validation failed")

// ValidationError reports a rule violation. Message is the user-facing
// payload forwarded to message widgets.
type ValidationError struct {
	Message message.Message
	Err     error
}

// NewValidationError builds a ValidationError carrying m.
func NewValidationError(m message.Message) *ValidationError {
	return &ValidationError{Message: m}
}

// ValidationErrorf builds a ValidationError whose summary and detail are the
// formatted text.
func ValidationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: message.Text(fmt.Sprintf(format, args...))}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ErrValidation.Error()
	}
	if text := e.Message.String(); text != "" {
		return "validate: " + text
	}
	if e.Err != nil {
		return "validate: " + e.Err.Error()
	}
	return ErrValidation.Error()
}

// Unwrap exposes the cause, if any, and the ErrValidation sentinel.
func (e *ValidationError) Unwrap() []error {
	if e == nil {
		return nil
	}
	if e.Err != nil {
		return []error{ErrValidation, e.Err}
	}
	return []error{ErrValidation}
}
