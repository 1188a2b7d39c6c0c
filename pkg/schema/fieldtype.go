package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Cardinality says how many records a relation field points at.
type Cardinality int

const (
	One Cardinality = iota
	Many
)

func (c Cardinality) String() string {
	switch c {
	case One:
		return "one"
	case Many:
		return "many"
	default:
		return fmt.Sprintf("cardinality(%d)", int(c))
	}
}

func (c Cardinality) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Cardinality) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "one":
		*c = One
	case "many":
		*c = Many
	default:
		return fmt.Errorf("unknown cardinality %q", s)
	}
	return nil
}

// FieldType is the declared type of a field. Implementations are the
// closed set of variants below. Array and Composite nest recursively.
type FieldType interface {
	isFieldType()
	// String renders the type in its source form, e.g. "text(max: 255)",
	// "integer[]", "-> Company". Composite types render as a summary
	// since their full form spans multiple lines.
	String() string
}

// TextType is a short text field, optionally length-limited.
type TextType struct {
	Constraints TextConstraints
}

func (TextType) isFieldType() {}
func (t TextType) String() string {
	if t.Constraints.MaxLength != nil {
		return fmt.Sprintf("text(max: %d)", *t.Constraints.MaxLength)
	}
	return "text"
}

// RichTextType is a long formatted text field.
type RichTextType struct{}

func (RichTextType) isFieldType()   {}
func (RichTextType) String() string { return "richtext" }

// IntegerType is a 64-bit integer field, optionally range-limited.
type IntegerType struct {
	Constraints IntegerConstraints
}

func (IntegerType) isFieldType() {}
func (t IntegerType) String() string {
	var params []string
	if t.Constraints.Min != nil {
		params = append(params, fmt.Sprintf("min: %d", *t.Constraints.Min))
	}
	if t.Constraints.Max != nil {
		params = append(params, fmt.Sprintf("max: %d", *t.Constraints.Max))
	}
	if len(params) == 0 {
		return "integer"
	}
	return "integer(" + strings.Join(params, ", ") + ")"
}

// FloatType is a 64-bit float field.
type FloatType struct {
	Constraints FloatConstraints
}

func (FloatType) isFieldType() {}
func (t FloatType) String() string {
	if t.Constraints.Precision != nil {
		return fmt.Sprintf("float(precision: %d)", *t.Constraints.Precision)
	}
	return "float"
}

// BooleanType is a boolean field.
type BooleanType struct{}

func (BooleanType) isFieldType()   {}
func (BooleanType) String() string { return "boolean" }

// DateTimeType is an instant-in-time field.
type DateTimeType struct{}

func (DateTimeType) isFieldType()   {}
func (DateTimeType) String() string { return "datetime" }

// EnumType is a closed set of named variants.
type EnumType struct {
	Variants EnumVariants
}

func (EnumType) isFieldType() {}
func (t EnumType) String() string {
	var b strings.Builder
	b.WriteString("enum(")
	for i, v := range t.Variants.Slice() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('"')
		b.WriteString(v)
		b.WriteByte('"')
	}
	b.WriteByte(')')
	return b.String()
}

// JSONType is an opaque JSON document field.
type JSONType struct{}

func (JSONType) isFieldType()   {}
func (JSONType) String() string { return "json" }

// RelationType points at records of another schema.
type RelationType struct {
	Target      SchemaName
	Cardinality Cardinality
}

func (RelationType) isFieldType() {}
func (t RelationType) String() string {
	if t.Cardinality == Many {
		return "-> " + t.Target.String() + "[]"
	}
	return "-> " + t.Target.String()
}

// ArrayType is an ordered list of a single element type.
type ArrayType struct {
	Inner FieldType
}

func (ArrayType) isFieldType() {}
func (t ArrayType) String() string {
	return t.Inner.String() + "[]"
}

// CompositeType is an inline record of named sub-fields.
type CompositeType struct {
	Fields []FieldDefinition
}

func (CompositeType) isFieldType() {}
func (t CompositeType) String() string {
	return fmt.Sprintf("composite(%d fields)", len(t.Fields))
}

// TypesEqual reports structural equality of two field types, including
// constraints and nested types.
func TypesEqual(a, b FieldType) bool {
	switch at := a.(type) {
	case TextType:
		bt, ok := b.(TextType)
		return ok && at.Constraints.Equal(bt.Constraints)
	case RichTextType:
		_, ok := b.(RichTextType)
		return ok
	case IntegerType:
		bt, ok := b.(IntegerType)
		return ok && at.Constraints.Equal(bt.Constraints)
	case FloatType:
		bt, ok := b.(FloatType)
		return ok && at.Constraints.Equal(bt.Constraints)
	case BooleanType:
		_, ok := b.(BooleanType)
		return ok
	case DateTimeType:
		_, ok := b.(DateTimeType)
		return ok
	case EnumType:
		bt, ok := b.(EnumType)
		return ok && at.Variants.Equal(bt.Variants)
	case JSONType:
		_, ok := b.(JSONType)
		return ok
	case RelationType:
		bt, ok := b.(RelationType)
		return ok && at.Target == bt.Target && at.Cardinality == bt.Cardinality
	case ArrayType:
		bt, ok := b.(ArrayType)
		return ok && TypesEqual(at.Inner, bt.Inner)
	case CompositeType:
		bt, ok := b.(CompositeType)
		if !ok || len(at.Fields) != len(bt.Fields) {
			return false
		}
		for i := range at.Fields {
			if !at.Fields[i].Equal(bt.Fields[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// IsRelation reports whether t is a relation type.
func IsRelation(t FieldType) bool {
	_, ok := t.(RelationType)
	return ok
}
