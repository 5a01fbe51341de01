package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// The service layer surfaces every failure as one of these recoverable
// kinds; handlers translate them into HTTP responses. Nothing here is
// process-fatal.
var (
	ErrNotFound  = errors.New("record not found")
	ErrForbidden = errors.New("forbidden")
	ErrConflict  = errors.New("conflict")
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// StateError reports a task-lifecycle violation: the task is completed or
// overdue and therefore no longer editable. It is surfaced to the client
// as a field-level message, never as a hard failure.
type StateError struct {
	Message string
}

func (e *StateError) Error() string {
	return e.Message
}

var errTaskNotEditable = &StateError{Message: "This task is either completed or overdue."}

// asNotFound maps gorm's sentinel onto the service-level one so callers
// only ever match against ErrNotFound.
func asNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
