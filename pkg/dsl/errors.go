package dsl

import (
	"fmt"
	"strings"

	"github.com/schemaforge/forge/pkg/token"
)

// Errors is the list of diagnostics produced by one lex or parse pass.
// A pass reports everything it can find rather than stopping at the
// first problem.
type Errors []error

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// Unwrap exposes the individual diagnostics to errors.Is and errors.As.
func (e Errors) Unwrap() []error { return e }

// InvalidTokenError reports bytes the lexer could not match to any
// token rule.
type InvalidTokenError struct {
	Span token.Span
}

func (e *InvalidTokenError) Error() string {
	return fmt.Sprintf("invalid token at %s", e.Span)
}

// UnexpectedTokenError reports a token that does not fit the grammar.
type UnexpectedTokenError struct {
	Expected string
	Found    string
	Span     token.Span
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("unexpected token at %s: expected %s, found %s", e.Span, e.Expected, e.Found)
}

// UnexpectedEOFError reports input that ended mid-construct.
type UnexpectedEOFError struct {
	Expected string
}

func (e *UnexpectedEOFError) Error() string {
	return fmt.Sprintf("unexpected end of input: expected %s", e.Expected)
}

// InvalidSchemaNameError reports a schema name that is not PascalCase,
// with a suggested rewrite.
type InvalidSchemaNameError struct {
	Name       string
	Suggestion string
	Span       token.Span
}

func (e *InvalidSchemaNameError) Error() string {
	msg := fmt.Sprintf("invalid schema name '%s' at %s: must be PascalCase [A-Z][a-zA-Z0-9]*", e.Name, e.Span)
	if e.Suggestion != "" {
		msg += fmt.Sprintf("; did you mean '%s'?", e.Suggestion)
	}
	return msg
}

// InvalidFieldNameError reports a field name that is not snake_case,
// with a suggested rewrite.
type InvalidFieldNameError struct {
	Name       string
	Suggestion string
	Span       token.Span
}

func (e *InvalidFieldNameError) Error() string {
	msg := fmt.Sprintf("invalid field name '%s' at %s: must be snake_case [a-z][a-z0-9_]*", e.Name, e.Span)
	if e.Suggestion != "" {
		msg += fmt.Sprintf("; did you mean '%s'?", e.Suggestion)
	}
	return msg
}

// DuplicateFieldNameError reports a field declared twice in one schema
// or composite body.
type DuplicateFieldNameError struct {
	Name string
	Span token.Span
}

func (e *DuplicateFieldNameError) Error() string {
	return fmt.Sprintf("duplicate field name '%s' at %s", e.Name, e.Span)
}

// DuplicateAnnotationError reports an annotation kind used twice on the
// same schema or field.
type DuplicateAnnotationError struct {
	Kind string
	Span token.Span
}

func (e *DuplicateAnnotationError) Error() string {
	return fmt.Sprintf("duplicate annotation '@%s' at %s", e.Kind, e.Span)
}

// EmptySchemaError reports a schema body with no fields.
type EmptySchemaError struct {
	Name string
	Span token.Span
}

func (e *EmptySchemaError) Error() string {
	return fmt.Sprintf("schema '%s' at %s has no fields; add at least one field", e.Name, e.Span)
}

// InvalidIntegerLiteralError reports an integer literal that does not
// parse or is out of range.
type InvalidIntegerLiteralError struct {
	Text string
	Span token.Span
}

func (e *InvalidIntegerLiteralError) Error() string {
	return fmt.Sprintf("invalid integer literal '%s' at %s: expected a valid integer", e.Text, e.Span)
}

// InvalidFloatLiteralError reports a float literal that does not parse.
type InvalidFloatLiteralError struct {
	Text string
	Span token.Span
}

func (e *InvalidFloatLiteralError) Error() string {
	return fmt.Sprintf("invalid float literal '%s' at %s: expected a valid number", e.Text, e.Span)
}

// EmptyEnumVariantsError reports an enum declared with no variants.
type EmptyEnumVariantsError struct {
	Span token.Span
}

func (e *EmptyEnumVariantsError) Error() string {
	return fmt.Sprintf("enum at %s has no variants; provide at least one quoted string", e.Span)
}

// DuplicateEnumVariantError reports a repeated enum variant.
type DuplicateEnumVariantError struct {
	Variant string
	Span    token.Span
}

func (e *DuplicateEnumVariantError) Error() string {
	return fmt.Sprintf("duplicate enum variant '%s' at %s", e.Variant, e.Span)
}

// InvalidIntegerRangeError reports an integer constraint with min > max.
type InvalidIntegerRangeError struct {
	Min  int64
	Max  int64
	Span token.Span
}

func (e *InvalidIntegerRangeError) Error() string {
	return fmt.Sprintf("invalid integer range at %s: min (%d) > max (%d)", e.Span, e.Min, e.Max)
}

// ValidationError wraps a schema model constructor failure with the
// span of the construct that triggered it.
type ValidationError struct {
	Err  error
	Span token.Span
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema validation error at %s: %v", e.Span, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }
