package schema

import (
	"errors"
	"fmt"
)

// Validation errors that carry no payload.
var (
	ErrEmptyEnumVariants = errors.New("enum variants must not be empty")
	ErrEmptyEnumVariant  = errors.New("enum variant must not be an empty string")
	ErrEmptyFields       = errors.New("schema must have at least one field")
)

// InvalidSchemaNameError reports a schema name that is not PascalCase.
type InvalidSchemaNameError struct {
	Name string
}

func (e *InvalidSchemaNameError) Error() string {
	return fmt.Sprintf("invalid schema name %q: must be PascalCase [A-Z][a-zA-Z0-9]*", e.Name)
}

// InvalidFieldNameError reports a field name that is not snake_case.
type InvalidFieldNameError struct {
	Name string
}

func (e *InvalidFieldNameError) Error() string {
	return fmt.Sprintf("invalid field name %q: must be snake_case [a-z][a-z0-9_]*", e.Name)
}

// InvalidVersionError reports a schema version below 1.
type InvalidVersionError struct {
	Version uint32
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid schema version %d: must be >= 1", e.Version)
}

// DuplicateEnumVariantError reports a repeated enum variant.
type DuplicateEnumVariantError struct {
	Variant string
}

func (e *DuplicateEnumVariantError) Error() string {
	return fmt.Sprintf("duplicate enum variant %q", e.Variant)
}

// InvalidIntegerRangeError reports an integer constraint with min > max.
type InvalidIntegerRangeError struct {
	Min int64
	Max int64
}

func (e *InvalidIntegerRangeError) Error() string {
	return fmt.Sprintf("invalid integer range: min (%d) > max (%d)", e.Min, e.Max)
}

// InvalidFloatStringError reports a float default that does not parse.
type InvalidFloatStringError struct {
	Value string
}

func (e *InvalidFloatStringError) Error() string {
	return fmt.Sprintf("invalid float string %q: must be a valid number", e.Value)
}

// DuplicateFieldError reports a repeated field name within one schema
// or composite.
type DuplicateFieldError struct {
	Name string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("duplicate field name %q", e.Name)
}

// DuplicateAnnotationError reports a repeated annotation kind.
type DuplicateAnnotationError struct {
	Kind string
}

func (e *DuplicateAnnotationError) Error() string {
	return fmt.Sprintf("duplicate annotation %q", e.Kind)
}

// InvalidIDError reports an identifier string with a bad prefix or body.
type InvalidIDError struct {
	ID     string
	Prefix string
	Reason string
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid %s id %q: %s", e.Prefix, e.ID, e.Reason)
}
