package query

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyFieldPath reports an empty path string or segment list.
var ErrEmptyFieldPath = errors.New("field path must not be empty")

// Errors is a list of validation errors collected in one pass.
type Errors []error

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// Unwrap exposes the members to errors.Is and errors.As.
func (e Errors) Unwrap() []error { return e }

// InvalidFieldPathError reports a malformed dotted path.
type InvalidFieldPathError struct {
	Path   string
	Reason string
}

func (e *InvalidFieldPathError) Error() string {
	return "invalid field path '" + e.Path + "': " + e.Reason
}

// InvalidLimitError reports a limit that must be greater than zero.
type InvalidLimitError struct {
	Limit int
}

func (e *InvalidLimitError) Error() string {
	return fmt.Sprintf("invalid limit %d: must be greater than 0", e.Limit)
}

// UnknownFieldError reports a filter referencing a field the schema
// does not declare.
type UnknownFieldError struct {
	Field  string
	Schema string
}

func (e *UnknownFieldError) Error() string {
	return "unknown field '" + e.Field + "' in schema '" + e.Schema + "'"
}

// TypeMismatchError reports a filter value incompatible with the
// field's declared type.
type TypeMismatchError struct {
	Field    string
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch for field '%s': expected %s, got %s",
		e.Field, e.Expected, e.Actual)
}

// EmptyInValuesError reports an IN filter with no candidate values.
type EmptyInValuesError struct {
	Field string
}

func (e *EmptyInValuesError) Error() string {
	return "IN filter for field '" + e.Field + "' has no values"
}
