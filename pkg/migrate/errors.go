package migrate

import "errors"

// ErrEmptyPlan reports an attempt to apply a plan with no steps.
var ErrEmptyPlan = errors.New("migration plan has no steps to apply")

// DestructiveWithoutConfirmationError reports a destructive step that
// was not explicitly confirmed.
type DestructiveWithoutConfirmationError struct {
	Step string
}

func (e *DestructiveWithoutConfirmationError) Error() string {
	return "destructive migration step requires confirmation: " + e.Step
}

// RequiredFieldWithoutDefaultError reports a required field added with
// no default value to backfill existing records.
type RequiredFieldWithoutDefaultError struct {
	Field string
}

func (e *RequiredFieldWithoutDefaultError) Error() string {
	return "required field '" + e.Field + "' was added without a default value for backfill"
}

// UnsupportedConversionError reports a type change with no usable value
// transform.
type UnsupportedConversionError struct {
	Field string
	From  string
	To    string
}

func (e *UnsupportedConversionError) Error() string {
	return "unsupported type conversion for field '" + e.Field + "': " + e.From + " -> " + e.To
}
