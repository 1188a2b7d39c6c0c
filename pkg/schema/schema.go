package schema

import (
	"fmt"
	"strings"
)

// SchemaDefinition is a complete validated schema: a named, versioned
// collection of fields plus schema-level annotations.
type SchemaDefinition struct {
	ID          SchemaID
	Name        SchemaName
	Fields      []FieldDefinition
	Annotations []Annotation
}

// NewSchemaDefinition validates the aggregate invariants: at least one
// field, no duplicate field names, no duplicate annotation kinds. A
// fresh id is minted.
func NewSchemaDefinition(name SchemaName, fields []FieldDefinition, annotations []Annotation) (SchemaDefinition, error) {
	if err := validateSchemaParts(fields, annotations); err != nil {
		return SchemaDefinition{}, err
	}
	return SchemaDefinition{
		ID:          NewSchemaID(),
		Name:        name,
		Fields:      fields,
		Annotations: annotations,
	}, nil
}

// ValidateFields checks a field list for emptiness and duplicates. Used
// for composite sub-fields, which carry the same invariants as a
// schema body.
func ValidateFields(fields []FieldDefinition) error {
	if len(fields) == 0 {
		return ErrEmptyFields
	}
	return checkDuplicateFieldNames(fields)
}

// checkDuplicateFieldNames allows empty field lists; composite fields
// may be empty where top-level schemas may not.
func checkDuplicateFieldNames(fields []FieldDefinition) error {
	seen := make(map[FieldName]struct{}, len(fields))
	for _, f := range fields {
		if _, dup := seen[f.Name]; dup {
			return &DuplicateFieldError{Name: f.Name.String()}
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}

func validateSchemaParts(fields []FieldDefinition, annotations []Annotation) error {
	if err := ValidateFields(fields); err != nil {
		return err
	}
	kinds := make(map[string]struct{}, len(annotations))
	for _, a := range annotations {
		if _, dup := kinds[a.Kind()]; dup {
			return &DuplicateAnnotationError{Kind: a.Kind()}
		}
		kinds[a.Kind()] = struct{}{}
	}
	return nil
}

// Field returns the field with the given name, if present.
func (s SchemaDefinition) Field(name FieldName) (FieldDefinition, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDefinition{}, false
}

// HasField reports whether a field with the given name exists.
func (s SchemaDefinition) HasField(name FieldName) bool {
	_, ok := s.Field(name)
	return ok
}

// FieldNames returns the field names in declaration order.
func (s SchemaDefinition) FieldNames() []FieldName {
	names := make([]FieldName, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Version returns the declared version, defaulting to the initial
// version when no @version annotation is present.
func (s SchemaDefinition) Version() Version {
	for _, a := range s.Annotations {
		if v, ok := a.(VersionAnnotation); ok {
			return v.Version
		}
	}
	return InitialVersion()
}

// IsSystem reports whether the schema carries the @system annotation.
func (s SchemaDefinition) IsSystem() bool {
	for _, a := range s.Annotations {
		if _, ok := a.(SystemAnnotation); ok {
			return true
		}
	}
	return false
}

// DisplayField returns the field named by @display, if declared.
func (s SchemaDefinition) DisplayField() (FieldName, bool) {
	for _, a := range s.Annotations {
		if d, ok := a.(DisplayAnnotation); ok {
			return d.Field, true
		}
	}
	return FieldName{}, false
}

// Access returns the schema's @access annotation, if declared.
func (s SchemaDefinition) Access() (AccessAnnotation, bool) {
	for _, a := range s.Annotations {
		if acc, ok := a.(AccessAnnotation); ok {
			return acc, true
		}
	}
	return AccessAnnotation{}, false
}

func (s SchemaDefinition) String() string {
	var b strings.Builder
	b.WriteString(s.Name.String())
	b.WriteString(" (")
	b.WriteString(s.Version().String())
	b.WriteString(", ")
	if n := len(s.Fields); n == 1 {
		b.WriteString("1 field")
	} else {
		fmt.Fprintf(&b, "%d fields", n)
	}
	b.WriteByte(')')
	return b.String()
}
