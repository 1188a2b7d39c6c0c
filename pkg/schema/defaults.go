package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultKind discriminates the variants of DefaultValue.
type DefaultKind int

const (
	DefaultString DefaultKind = iota
	DefaultInteger
	DefaultFloat
	DefaultBoolean
)

func (k DefaultKind) String() string {
	switch k {
	case DefaultString:
		return "string"
	case DefaultInteger:
		return "integer"
	case DefaultFloat:
		return "float"
	case DefaultBoolean:
		return "boolean"
	default:
		return fmt.Sprintf("defaultkind(%d)", int(k))
	}
}

// DefaultValue is a literal default attached to a field via the
// default(...) modifier. Float defaults keep their source text so the
// printer can reproduce the literal exactly.
type DefaultValue struct {
	kind    DefaultKind
	str     string // string payload, or float source text
	integer int64
	boolean bool
}

// StringDefault builds a string default.
func StringDefault(s string) DefaultValue {
	return DefaultValue{kind: DefaultString, str: s}
}

// IntegerDefault builds an integer default.
func IntegerDefault(i int64) DefaultValue {
	return DefaultValue{kind: DefaultInteger, integer: i}
}

// FloatDefault builds a float default from its source text, validating
// that the text parses as a finite number.
func FloatDefault(src string) (DefaultValue, error) {
	f, err := strconv.ParseFloat(src, 64)
	if err != nil {
		return DefaultValue{}, &InvalidFloatStringError{Value: src}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return DefaultValue{}, &InvalidFloatStringError{Value: src}
	}
	return DefaultValue{kind: DefaultFloat, str: src}, nil
}

// BooleanDefault builds a boolean default.
func BooleanDefault(b bool) DefaultValue {
	return DefaultValue{kind: DefaultBoolean, boolean: b}
}

// Kind returns the variant discriminator.
func (d DefaultValue) Kind() DefaultKind { return d.kind }

// AsString returns the string payload. Only meaningful for
// DefaultString.
func (d DefaultValue) AsString() string { return d.str }

// AsInt returns the integer payload. Only meaningful for
// DefaultInteger.
func (d DefaultValue) AsInt() int64 { return d.integer }

// AsFloat returns the parsed float payload. Only meaningful for
// DefaultFloat.
func (d DefaultValue) AsFloat() float64 {
	f, _ := strconv.ParseFloat(d.str, 64)
	return f
}

// FloatSource returns the original float literal text. Only meaningful
// for DefaultFloat.
func (d DefaultValue) FloatSource() string { return d.str }

// AsBool returns the boolean payload. Only meaningful for
// DefaultBoolean.
func (d DefaultValue) AsBool() bool { return d.boolean }

// String renders the default as it appears in source, with string
// payloads quoted. Backslashes and quotes inside string payloads are
// escaped so the output lexes back to the same value.
func (d DefaultValue) String() string {
	switch d.kind {
	case DefaultString:
		return `"` + EscapeString(d.str) + `"`
	case DefaultInteger:
		return strconv.FormatInt(d.integer, 10)
	case DefaultFloat:
		return d.str
	case DefaultBoolean:
		return strconv.FormatBool(d.boolean)
	default:
		return "<invalid default>"
	}
}

// EscapeString escapes backslashes and double quotes for embedding in
// a double-quoted source literal. Backslashes are escaped first.
func EscapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

type defaultValueJSON struct {
	Kind    string `json:"kind"`
	String  string `json:"string,omitempty"`
	Integer int64  `json:"integer,omitempty"`
	Float   string `json:"float,omitempty"`
	Boolean bool   `json:"boolean,omitempty"`
}

func (d DefaultValue) MarshalJSON() ([]byte, error) {
	out := defaultValueJSON{Kind: d.kind.String()}
	switch d.kind {
	case DefaultString:
		out.String = d.str
	case DefaultInteger:
		out.Integer = d.integer
	case DefaultFloat:
		out.Float = d.str
	case DefaultBoolean:
		out.Boolean = d.boolean
	}
	return json.Marshal(out)
}

func (d *DefaultValue) UnmarshalJSON(data []byte) error {
	var in defaultValueJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	switch in.Kind {
	case "string":
		*d = StringDefault(in.String)
	case "integer":
		*d = IntegerDefault(in.Integer)
	case "float":
		dv, err := FloatDefault(in.Float)
		if err != nil {
			return err
		}
		*d = dv
	case "boolean":
		*d = BooleanDefault(in.Boolean)
	default:
		return fmt.Errorf("unknown default value kind %q", in.Kind)
	}
	return nil
}
