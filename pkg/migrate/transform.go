package migrate

import (
	"encoding/json"
	"fmt"

	"github.com/schemaforge/forge/pkg/schema"
)

// TransformKind enumerates the value conversion policies.
type TransformKind int

const (
	// TransformIdentity keeps values unchanged (compatible types).
	TransformIdentity TransformKind = iota
	// TransformIntegerToFloat widens integers to floats.
	TransformIntegerToFloat
	// TransformFloatToInteger truncates floats to integers.
	TransformFloatToInteger
	// TransformToString renders any scalar as text.
	TransformToString
	// TransformSetDefault replaces every existing value with a default.
	TransformSetDefault
	// TransformSetNull discards existing values.
	TransformSetNull
)

// ValueTransform describes how existing field values are converted when
// a field's type changes.
type ValueTransform struct {
	kind  TransformKind
	value schema.DefaultValue
}

// Identity is the no-op transform for compatible types.
func Identity() ValueTransform { return ValueTransform{kind: TransformIdentity} }

// IntegerToFloat widens stored integers to floats.
func IntegerToFloat() ValueTransform { return ValueTransform{kind: TransformIntegerToFloat} }

// FloatToInteger truncates stored floats to integers.
func FloatToInteger() ValueTransform { return ValueTransform{kind: TransformFloatToInteger} }

// ToString renders stored scalars as text.
func ToString() ValueTransform { return ValueTransform{kind: TransformToString} }

// SetDefault replaces every stored value with the given default.
func SetDefault(value schema.DefaultValue) ValueTransform {
	return ValueTransform{kind: TransformSetDefault, value: value}
}

// SetNull discards stored values.
func SetNull() ValueTransform { return ValueTransform{kind: TransformSetNull} }

// Kind returns the transform's conversion policy.
func (t ValueTransform) Kind() TransformKind { return t.kind }

// DefaultValue returns the replacement value of a set-default
// transform.
func (t ValueTransform) DefaultValue() (schema.DefaultValue, bool) {
	if t.kind != TransformSetDefault {
		return schema.DefaultValue{}, false
	}
	return t.value, true
}

func (t ValueTransform) String() string {
	switch t.kind {
	case TransformIdentity:
		return "identity"
	case TransformIntegerToFloat:
		return "integer_to_float"
	case TransformFloatToInteger:
		return "float_to_integer"
	case TransformToString:
		return "to_string"
	case TransformSetDefault:
		return "set_default(" + t.value.String() + ")"
	case TransformSetNull:
		return "set_null"
	default:
		return "unknown"
	}
}

type valueTransformJSON struct {
	Transform string               `json:"transform"`
	Value     *schema.DefaultValue `json:"value,omitempty"`
}

var transformNames = map[TransformKind]string{
	TransformIdentity:       "identity",
	TransformIntegerToFloat: "integer_to_float",
	TransformFloatToInteger: "float_to_integer",
	TransformToString:       "to_string",
	TransformSetDefault:     "set_default",
	TransformSetNull:        "set_null",
}

func (t ValueTransform) MarshalJSON() ([]byte, error) {
	name, ok := transformNames[t.kind]
	if !ok {
		return nil, fmt.Errorf("cannot encode transform kind %d", t.kind)
	}
	out := valueTransformJSON{Transform: name}
	if t.kind == TransformSetDefault {
		v := t.value
		out.Value = &v
	}
	return json.Marshal(out)
}

func (t *ValueTransform) UnmarshalJSON(data []byte) error {
	var in valueTransformJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	for kind, name := range transformNames {
		if name != in.Transform {
			continue
		}
		if kind == TransformSetDefault {
			if in.Value == nil {
				return fmt.Errorf("set_default transform missing value")
			}
			*t = SetDefault(*in.Value)
			return nil
		}
		*t = ValueTransform{kind: kind}
		return nil
	}
	return fmt.Errorf("unknown transform %q", in.Transform)
}

// InferTransform picks the conversion policy for a type change. Numeric
// widenings and narrowings convert; anything becomes text; incompatible
// pairs discard data via set-null.
func InferTransform(oldType, newType schema.FieldType) ValueTransform {
	switch oldType.(type) {
	case schema.IntegerType:
		if _, ok := newType.(schema.FloatType); ok {
			return IntegerToFloat()
		}
	case schema.FloatType:
		if _, ok := newType.(schema.IntegerType); ok {
			return FloatToInteger()
		}
	}
	if _, ok := newType.(schema.TextType); ok {
		return ToString()
	}
	return SetNull()
}
