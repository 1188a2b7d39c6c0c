package schema

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Value is a runtime value as stored in a record field. Implementations
// are the closed set of variants below; consumers switch on the
// concrete type and must keep a default arm for forward compatibility.
type Value interface {
	isValue()
	// String renders the value for display. It is not an escaped
	// query literal; compilation to query text lives elsewhere.
	String() string
}

// NullValue is the absent value.
type NullValue struct{}

func (NullValue) isValue()       {}
func (NullValue) String() string { return "null" }

// TextValue is a plain or rich text payload.
type TextValue string

func (TextValue) isValue()         {}
func (v TextValue) String() string { return string(v) }

// IntegerValue is a 64-bit signed integer payload.
type IntegerValue int64

func (IntegerValue) isValue() {}
func (v IntegerValue) String() string {
	return strconv.FormatInt(int64(v), 10)
}

// FloatValue is a 64-bit float payload.
type FloatValue float64

func (FloatValue) isValue() {}
func (v FloatValue) String() string {
	return strconv.FormatFloat(float64(v), 'g', -1, 64)
}

// BooleanValue is a boolean payload.
type BooleanValue bool

func (BooleanValue) isValue() {}
func (v BooleanValue) String() string {
	return strconv.FormatBool(bool(v))
}

// DateTimeValue is an instant in time.
type DateTimeValue time.Time

func (DateTimeValue) isValue() {}
func (v DateTimeValue) String() string {
	return time.Time(v).UTC().Format(time.RFC3339)
}

// Time returns the underlying instant.
func (v DateTimeValue) Time() time.Time { return time.Time(v) }

// EnumValue is a selected enum variant name.
type EnumValue string

func (EnumValue) isValue()         {}
func (v EnumValue) String() string { return string(v) }

// JSONValue is an opaque JSON document, stored as its raw encoding.
type JSONValue json.RawMessage

func (JSONValue) isValue()         {}
func (v JSONValue) String() string { return string(v) }

// ArrayValue is an ordered list of values.
type ArrayValue []Value

func (ArrayValue) isValue() {}
func (v ArrayValue) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, elem := range v {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(elem.String())
	}
	b.WriteByte(']')
	return b.String()
}

// ValueEntry is one named member of a composite value.
type ValueEntry struct {
	Key   string
	Value Value
}

// CompositeValue is an ordered name-to-value mapping.
type CompositeValue []ValueEntry

func (CompositeValue) isValue() {}
func (v CompositeValue) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range v {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.Key)
		b.WriteString(": ")
		b.WriteString(e.Value.String())
	}
	b.WriteByte('}')
	return b.String()
}

// RefValue is a reference to a single record.
type RefValue struct {
	Target EntityID
}

func (RefValue) isValue()         {}
func (v RefValue) String() string { return v.Target.String() }

// RefArrayValue is a reference to many records.
type RefArrayValue []EntityID

func (RefArrayValue) isValue() {}
func (v RefArrayValue) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, id := range v {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(id.String())
	}
	b.WriteByte(']')
	return b.String()
}

// IsNull reports whether v is the null value.
func IsNull(v Value) bool {
	_, ok := v.(NullValue)
	return ok
}
