package schema

import "strings"

// FieldModifier adjusts how a field behaves. Implementations are
// Required, Indexed and Default.
type FieldModifier interface {
	isModifier()
	// String renders the modifier in its source form.
	String() string
}

// Required marks a field as mandatory.
type Required struct{}

func (Required) isModifier()    {}
func (Required) String() string { return "required" }

// Indexed marks a field for index creation.
type Indexed struct{}

func (Indexed) isModifier()    {}
func (Indexed) String() string { return "indexed" }

// Default attaches a literal default value to a field.
type Default struct {
	Value DefaultValue
}

func (Default) isModifier() {}
func (d Default) String() string {
	return "default(" + d.Value.String() + ")"
}

// ModifiersEqual reports whether two modifiers are the same, including
// default payloads.
func ModifiersEqual(a, b FieldModifier) bool {
	switch am := a.(type) {
	case Required:
		_, ok := b.(Required)
		return ok
	case Indexed:
		_, ok := b.(Indexed)
		return ok
	case Default:
		bm, ok := b.(Default)
		return ok && am.Value == bm.Value
	default:
		return false
	}
}

// FieldDefinition is one declared field of a schema or composite.
type FieldDefinition struct {
	Name        FieldName
	Type        FieldType
	Modifiers   []FieldModifier
	Annotations []FieldAnnotation
}

// NewField builds a field with no modifiers or annotations.
func NewField(name FieldName, typ FieldType) FieldDefinition {
	return FieldDefinition{Name: name, Type: typ}
}

// WithModifiers returns a copy with the given modifiers appended.
func (f FieldDefinition) WithModifiers(mods ...FieldModifier) FieldDefinition {
	f.Modifiers = append(append([]FieldModifier{}, f.Modifiers...), mods...)
	return f
}

// WithAnnotations returns a copy with the given annotations appended.
func (f FieldDefinition) WithAnnotations(anns ...FieldAnnotation) FieldDefinition {
	f.Annotations = append(append([]FieldAnnotation{}, f.Annotations...), anns...)
	return f
}

// IsRequired reports whether the field carries the required modifier.
func (f FieldDefinition) IsRequired() bool {
	for _, m := range f.Modifiers {
		if _, ok := m.(Required); ok {
			return true
		}
	}
	return false
}

// IsIndexed reports whether the field carries the indexed modifier.
func (f FieldDefinition) IsIndexed() bool {
	for _, m := range f.Modifiers {
		if _, ok := m.(Indexed); ok {
			return true
		}
	}
	return false
}

// Default returns the field's default value, if any.
func (f FieldDefinition) Default() (DefaultValue, bool) {
	for _, m := range f.Modifiers {
		if d, ok := m.(Default); ok {
			return d.Value, true
		}
	}
	return DefaultValue{}, false
}

// HasOwner reports whether the field is annotated @owner.
func (f FieldDefinition) HasOwner() bool {
	for _, a := range f.Annotations {
		if _, ok := a.(OwnerAnnotation); ok {
			return true
		}
	}
	return false
}

// Equal reports structural equality of two field definitions.
func (f FieldDefinition) Equal(other FieldDefinition) bool {
	if f.Name != other.Name || !TypesEqual(f.Type, other.Type) {
		return false
	}
	if len(f.Modifiers) != len(other.Modifiers) {
		return false
	}
	for i := range f.Modifiers {
		if !ModifiersEqual(f.Modifiers[i], other.Modifiers[i]) {
			return false
		}
	}
	if len(f.Annotations) != len(other.Annotations) {
		return false
	}
	for i := range f.Annotations {
		if !FieldAnnotationsEqual(f.Annotations[i], other.Annotations[i]) {
			return false
		}
	}
	return true
}

// String renders the field as a single source line without trailing
// annotations.
func (f FieldDefinition) String() string {
	var b strings.Builder
	b.WriteString(f.Name.String())
	b.WriteString(": ")
	b.WriteString(f.Type.String())
	for _, m := range f.Modifiers {
		b.WriteByte(' ')
		b.WriteString(m.String())
	}
	return b.String()
}
