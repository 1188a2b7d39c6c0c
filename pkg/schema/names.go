// Package schema defines the validated schema model: names, versions,
// field types, constraints, annotations and the runtime value domain.
// Every validated type is constructed through a constructor that
// enforces its invariants; the zero value of a validated type is not
// meaningful.
package schema

import "encoding/json"

// SchemaName is a validated PascalCase identifier for a schema.
type SchemaName struct {
	value string
}

// NewSchemaName validates s against [A-Z][a-zA-Z0-9]* and returns the
// name, or an InvalidSchemaNameError.
func NewSchemaName(s string) (SchemaName, error) {
	if !IsPascalCase(s) {
		return SchemaName{}, &InvalidSchemaNameError{Name: s}
	}
	return SchemaName{value: s}, nil
}

// MustSchemaName is like NewSchemaName but panics on invalid input.
// Intended for literals in tests and fixtures.
func MustSchemaName(s string) SchemaName {
	n, err := NewSchemaName(s)
	if err != nil {
		panic(err)
	}
	return n
}

func (n SchemaName) String() string { return n.value }

// IsZero reports whether the name is the unusable zero value.
func (n SchemaName) IsZero() bool { return n.value == "" }

func (n SchemaName) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.value)
}

func (n *SchemaName) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	name, err := NewSchemaName(s)
	if err != nil {
		return err
	}
	*n = name
	return nil
}

// FieldName is a validated snake_case identifier for a field.
type FieldName struct {
	value string
}

// NewFieldName validates s against [a-z][a-z0-9_]* and returns the
// name, or an InvalidFieldNameError.
func NewFieldName(s string) (FieldName, error) {
	if !IsSnakeCase(s) {
		return FieldName{}, &InvalidFieldNameError{Name: s}
	}
	return FieldName{value: s}, nil
}

// MustFieldName is like NewFieldName but panics on invalid input.
func MustFieldName(s string) FieldName {
	n, err := NewFieldName(s)
	if err != nil {
		panic(err)
	}
	return n
}

func (n FieldName) String() string { return n.value }

// IsZero reports whether the name is the unusable zero value.
func (n FieldName) IsZero() bool { return n.value == "" }

func (n FieldName) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.value)
}

func (n *FieldName) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	name, err := NewFieldName(s)
	if err != nil {
		return err
	}
	*n = name
	return nil
}

// IsPascalCase reports whether s matches [A-Z][a-zA-Z0-9]*.
func IsPascalCase(s string) bool {
	if len(s) == 0 {
		return false
	}
	if s[0] < 'A' || s[0] > 'Z' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !isASCIILetter(c) && !isASCIIDigit(c) {
			return false
		}
	}
	return true
}

// IsSnakeCase reports whether s matches [a-z][a-z0-9_]*.
func IsSnakeCase(s string) bool {
	if len(s) == 0 {
		return false
	}
	if s[0] < 'a' || s[0] > 'z' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && !isASCIIDigit(c) && c != '_' {
			return false
		}
	}
	return true
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isASCIIDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
