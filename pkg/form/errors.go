package form

import (
	"errors"
	"fmt"
)

var (
	// ErrLocked is returned when a locked form receives further edits.
	ErrLocked = errors.New("form: submissions locked")
	// ErrRegistryRequired signals a state or engine built without a registry.
	ErrRegistryRequired = errors.New("form: registry is required")
	// errEmptyFieldName guards registry declarations.
	errEmptyFieldName = errors.New("form: field name is required")
)

// UnknownFieldError reports a field name that was never registered. It
// indicates registry misuse rather than bad user input.
type UnknownFieldError struct {
	Name string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("form: unknown field %q", e.Name)
}

// IsUnknownField reports whether err wraps an UnknownFieldError.
func IsUnknownField(err error) bool {
	var target *UnknownFieldError
	return errors.As(err, &target)
}

// ValidationError is the per-field failure produced by a Rule. The message is
// what ends up in the state's error map.
type ValidationError struct {
	Field   string
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(rule, message string) error {
	return &ValidationError{Rule: rule, Message: message}
}
