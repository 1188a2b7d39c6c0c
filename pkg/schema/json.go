package schema

import (
	"encoding/json"
	"fmt"
	"time"
)

// JSON encoding of the schema model. Interface-typed parts (field
// types, modifiers, annotations) are encoded as tagged objects with a
// "kind" discriminator. Decoding re-runs every constructor invariant,
// so a hand-edited document cannot produce an invalid model.

type fieldTypeJSON struct {
	Kind        string            `json:"kind"`
	MaxLength   *uint32           `json:"max_length,omitempty"`
	Min         *int64            `json:"min,omitempty"`
	Max         *int64            `json:"max,omitempty"`
	Precision   *uint8            `json:"precision,omitempty"`
	Variants    []string          `json:"variants,omitempty"`
	Target      string            `json:"target,omitempty"`
	Cardinality *Cardinality      `json:"cardinality,omitempty"`
	Element     *json.RawMessage  `json:"element,omitempty"`
	Fields      []json.RawMessage `json:"fields,omitempty"`
}

// MarshalFieldType encodes a field type as a tagged JSON object.
func MarshalFieldType(t FieldType) ([]byte, error) {
	out := fieldTypeJSON{}
	switch ft := t.(type) {
	case TextType:
		out.Kind = "text"
		out.MaxLength = ft.Constraints.MaxLength
	case RichTextType:
		out.Kind = "richtext"
	case IntegerType:
		out.Kind = "integer"
		out.Min = ft.Constraints.Min
		out.Max = ft.Constraints.Max
	case FloatType:
		out.Kind = "float"
		out.Precision = ft.Constraints.Precision
	case BooleanType:
		out.Kind = "boolean"
	case DateTimeType:
		out.Kind = "datetime"
	case EnumType:
		out.Kind = "enum"
		out.Variants = ft.Variants.Slice()
	case JSONType:
		out.Kind = "json"
	case RelationType:
		out.Kind = "relation"
		out.Target = ft.Target.String()
		card := ft.Cardinality
		out.Cardinality = &card
	case ArrayType:
		inner, err := MarshalFieldType(ft.Inner)
		if err != nil {
			return nil, err
		}
		out.Kind = "array"
		raw := json.RawMessage(inner)
		out.Element = &raw
	case CompositeType:
		out.Kind = "composite"
		for _, f := range ft.Fields {
			enc, err := json.Marshal(f)
			if err != nil {
				return nil, err
			}
			out.Fields = append(out.Fields, json.RawMessage(enc))
		}
	default:
		return nil, fmt.Errorf("cannot encode field type %T", t)
	}
	return json.Marshal(out)
}

// UnmarshalFieldType decodes a tagged field type object, re-validating
// every constraint.
func UnmarshalFieldType(data []byte) (FieldType, error) {
	var in fieldTypeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, err
	}
	switch in.Kind {
	case "text":
		return TextType{Constraints: TextConstraints{MaxLength: in.MaxLength}}, nil
	case "richtext":
		return RichTextType{}, nil
	case "integer":
		c := IntegerConstraints{Min: in.Min, Max: in.Max}
		if err := c.Validate(); err != nil {
			return nil, err
		}
		return IntegerType{Constraints: c}, nil
	case "float":
		return FloatType{Constraints: FloatConstraints{Precision: in.Precision}}, nil
	case "boolean":
		return BooleanType{}, nil
	case "datetime":
		return DateTimeType{}, nil
	case "enum":
		variants, err := NewEnumVariants(in.Variants)
		if err != nil {
			return nil, err
		}
		return EnumType{Variants: variants}, nil
	case "json":
		return JSONType{}, nil
	case "relation":
		target, err := NewSchemaName(in.Target)
		if err != nil {
			return nil, err
		}
		card := One
		if in.Cardinality != nil {
			card = *in.Cardinality
		}
		return RelationType{Target: target, Cardinality: card}, nil
	case "array":
		if in.Element == nil {
			return nil, fmt.Errorf("array type missing element")
		}
		inner, err := UnmarshalFieldType(*in.Element)
		if err != nil {
			return nil, err
		}
		return ArrayType{Inner: inner}, nil
	case "composite":
		fields := make([]FieldDefinition, 0, len(in.Fields))
		for _, raw := range in.Fields {
			var f FieldDefinition
			if err := json.Unmarshal(raw, &f); err != nil {
				return nil, err
			}
			fields = append(fields, f)
		}
		if err := checkDuplicateFieldNames(fields); err != nil {
			return nil, err
		}
		return CompositeType{Fields: fields}, nil
	default:
		return nil, fmt.Errorf("unknown field type kind %q", in.Kind)
	}
}

type modifierJSON struct {
	Modifier string        `json:"modifier"`
	Value    *DefaultValue `json:"value,omitempty"`
}

func marshalModifier(m FieldModifier) (json.RawMessage, error) {
	out := modifierJSON{}
	switch mod := m.(type) {
	case Required:
		out.Modifier = "required"
	case Indexed:
		out.Modifier = "indexed"
	case Default:
		out.Modifier = "default"
		v := mod.Value
		out.Value = &v
	default:
		return nil, fmt.Errorf("cannot encode modifier %T", m)
	}
	return json.Marshal(out)
}

func unmarshalModifier(data []byte) (FieldModifier, error) {
	var in modifierJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, err
	}
	switch in.Modifier {
	case "required":
		return Required{}, nil
	case "indexed":
		return Indexed{}, nil
	case "default":
		if in.Value == nil {
			return nil, fmt.Errorf("default modifier missing value")
		}
		return Default{Value: *in.Value}, nil
	default:
		return nil, fmt.Errorf("unknown modifier %q", in.Modifier)
	}
}

type annotationJSON struct {
	Kind    string   `json:"kind"`
	Version *Version `json:"version,omitempty"`
	Field   string   `json:"field,omitempty"`
	Read    []string `json:"read,omitempty"`
	Write   []string `json:"write,omitempty"`
	Delete  []string `json:"delete,omitempty"`
}

func marshalAnnotation(a Annotation) (json.RawMessage, error) {
	out := annotationJSON{Kind: a.Kind()}
	switch ann := a.(type) {
	case VersionAnnotation:
		v := ann.Version
		out.Version = &v
	case DisplayAnnotation:
		out.Field = ann.Field.String()
	case SystemAnnotation:
	case AccessAnnotation:
		out.Read, out.Write, out.Delete = ann.Read, ann.Write, ann.Delete
	default:
		return nil, fmt.Errorf("cannot encode annotation %T", a)
	}
	return json.Marshal(out)
}

func unmarshalAnnotation(data []byte) (Annotation, error) {
	var in annotationJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, err
	}
	switch in.Kind {
	case KindVersion:
		if in.Version == nil {
			return nil, fmt.Errorf("version annotation missing version")
		}
		return VersionAnnotation{Version: *in.Version}, nil
	case KindDisplay:
		field, err := NewFieldName(in.Field)
		if err != nil {
			return nil, err
		}
		return DisplayAnnotation{Field: field}, nil
	case KindSystem:
		return SystemAnnotation{}, nil
	case KindAccess:
		return AccessAnnotation{Read: in.Read, Write: in.Write, Delete: in.Delete}, nil
	default:
		return nil, fmt.Errorf("unknown annotation kind %q", in.Kind)
	}
}

func marshalFieldAnnotation(a FieldAnnotation) (json.RawMessage, error) {
	out := annotationJSON{Kind: a.Kind()}
	switch ann := a.(type) {
	case OwnerAnnotation:
	case FieldAccessAnnotation:
		out.Read, out.Write = ann.Read, ann.Write
	default:
		return nil, fmt.Errorf("cannot encode field annotation %T", a)
	}
	return json.Marshal(out)
}

func unmarshalFieldAnnotation(data []byte) (FieldAnnotation, error) {
	var in annotationJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, err
	}
	switch in.Kind {
	case KindOwner:
		return OwnerAnnotation{}, nil
	case KindFieldAccess:
		return FieldAccessAnnotation{Read: in.Read, Write: in.Write}, nil
	default:
		return nil, fmt.Errorf("unknown field annotation kind %q", in.Kind)
	}
}

type fieldDefinitionJSON struct {
	Name        FieldName         `json:"name"`
	Type        json.RawMessage   `json:"type"`
	Modifiers   []json.RawMessage `json:"modifiers,omitempty"`
	Annotations []json.RawMessage `json:"annotations,omitempty"`
}

func (f FieldDefinition) MarshalJSON() ([]byte, error) {
	typ, err := MarshalFieldType(f.Type)
	if err != nil {
		return nil, err
	}
	out := fieldDefinitionJSON{Name: f.Name, Type: typ}
	for _, m := range f.Modifiers {
		enc, err := marshalModifier(m)
		if err != nil {
			return nil, err
		}
		out.Modifiers = append(out.Modifiers, enc)
	}
	for _, a := range f.Annotations {
		enc, err := marshalFieldAnnotation(a)
		if err != nil {
			return nil, err
		}
		out.Annotations = append(out.Annotations, enc)
	}
	return json.Marshal(out)
}

func (f *FieldDefinition) UnmarshalJSON(data []byte) error {
	var in fieldDefinitionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	typ, err := UnmarshalFieldType(in.Type)
	if err != nil {
		return err
	}
	out := FieldDefinition{Name: in.Name, Type: typ}
	for _, raw := range in.Modifiers {
		m, err := unmarshalModifier(raw)
		if err != nil {
			return err
		}
		out.Modifiers = append(out.Modifiers, m)
	}
	for _, raw := range in.Annotations {
		a, err := unmarshalFieldAnnotation(raw)
		if err != nil {
			return err
		}
		out.Annotations = append(out.Annotations, a)
	}
	*f = out
	return nil
}

type valueEntryJSON struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

type valueJSON struct {
	Kind     string            `json:"kind"`
	Text     *string           `json:"text,omitempty"`
	Integer  *int64            `json:"integer,omitempty"`
	Float    *float64          `json:"float,omitempty"`
	Boolean  *bool             `json:"boolean,omitempty"`
	DateTime *string           `json:"datetime,omitempty"`
	Variant  *string           `json:"variant,omitempty"`
	Document *json.RawMessage  `json:"document,omitempty"`
	Elements []json.RawMessage `json:"elements,omitempty"`
	Entries  []valueEntryJSON  `json:"entries,omitempty"`
	Target   string            `json:"target,omitempty"`
	Targets  []string          `json:"targets,omitempty"`
}

// MarshalValue encodes a runtime value as a tagged JSON object.
func MarshalValue(v Value) ([]byte, error) {
	out := valueJSON{}
	switch val := v.(type) {
	case NullValue:
		out.Kind = "null"
	case TextValue:
		out.Kind = "text"
		s := string(val)
		out.Text = &s
	case IntegerValue:
		out.Kind = "integer"
		n := int64(val)
		out.Integer = &n
	case FloatValue:
		out.Kind = "float"
		f := float64(val)
		out.Float = &f
	case BooleanValue:
		out.Kind = "boolean"
		b := bool(val)
		out.Boolean = &b
	case DateTimeValue:
		out.Kind = "datetime"
		s := val.String()
		out.DateTime = &s
	case EnumValue:
		out.Kind = "enum"
		s := string(val)
		out.Variant = &s
	case JSONValue:
		out.Kind = "json"
		raw := json.RawMessage(val)
		out.Document = &raw
	case ArrayValue:
		out.Kind = "array"
		out.Elements = make([]json.RawMessage, 0, len(val))
		for _, elem := range val {
			enc, err := MarshalValue(elem)
			if err != nil {
				return nil, err
			}
			out.Elements = append(out.Elements, json.RawMessage(enc))
		}
	case CompositeValue:
		out.Kind = "composite"
		out.Entries = make([]valueEntryJSON, 0, len(val))
		for _, e := range val {
			enc, err := MarshalValue(e.Value)
			if err != nil {
				return nil, err
			}
			out.Entries = append(out.Entries, valueEntryJSON{Key: e.Key, Value: enc})
		}
	case RefValue:
		out.Kind = "ref"
		out.Target = val.Target.String()
	case RefArrayValue:
		out.Kind = "ref_array"
		out.Targets = make([]string, 0, len(val))
		for _, id := range val {
			out.Targets = append(out.Targets, id.String())
		}
	default:
		return nil, fmt.Errorf("cannot encode value %T", v)
	}
	return json.Marshal(out)
}

// UnmarshalValue decodes a tagged value object, re-validating reference
// identifiers.
func UnmarshalValue(data []byte) (Value, error) {
	var in valueJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, err
	}
	switch in.Kind {
	case "null":
		return NullValue{}, nil
	case "text":
		if in.Text == nil {
			return nil, fmt.Errorf("text value missing payload")
		}
		return TextValue(*in.Text), nil
	case "integer":
		if in.Integer == nil {
			return nil, fmt.Errorf("integer value missing payload")
		}
		return IntegerValue(*in.Integer), nil
	case "float":
		if in.Float == nil {
			return nil, fmt.Errorf("float value missing payload")
		}
		return FloatValue(*in.Float), nil
	case "boolean":
		if in.Boolean == nil {
			return nil, fmt.Errorf("boolean value missing payload")
		}
		return BooleanValue(*in.Boolean), nil
	case "datetime":
		if in.DateTime == nil {
			return nil, fmt.Errorf("datetime value missing payload")
		}
		t, err := time.Parse(time.RFC3339, *in.DateTime)
		if err != nil {
			return nil, err
		}
		return DateTimeValue(t), nil
	case "enum":
		if in.Variant == nil {
			return nil, fmt.Errorf("enum value missing variant")
		}
		return EnumValue(*in.Variant), nil
	case "json":
		if in.Document == nil {
			return nil, fmt.Errorf("json value missing document")
		}
		return JSONValue(*in.Document), nil
	case "array":
		arr := make(ArrayValue, 0, len(in.Elements))
		for _, raw := range in.Elements {
			elem, err := UnmarshalValue(raw)
			if err != nil {
				return nil, err
			}
			arr = append(arr, elem)
		}
		return arr, nil
	case "composite":
		comp := make(CompositeValue, 0, len(in.Entries))
		for _, e := range in.Entries {
			val, err := UnmarshalValue(e.Value)
			if err != nil {
				return nil, err
			}
			comp = append(comp, ValueEntry{Key: e.Key, Value: val})
		}
		return comp, nil
	case "ref":
		target, err := ParseEntityID(in.Target)
		if err != nil {
			return nil, err
		}
		return RefValue{Target: target}, nil
	case "ref_array":
		ids := make(RefArrayValue, 0, len(in.Targets))
		for _, s := range in.Targets {
			id, err := ParseEntityID(s)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
		return ids, nil
	default:
		return nil, fmt.Errorf("unknown value kind %q", in.Kind)
	}
}

type schemaDefinitionJSON struct {
	ID          SchemaID          `json:"id"`
	Name        SchemaName        `json:"name"`
	Fields      []FieldDefinition `json:"fields"`
	Annotations []json.RawMessage `json:"annotations,omitempty"`
}

func (s SchemaDefinition) MarshalJSON() ([]byte, error) {
	out := schemaDefinitionJSON{ID: s.ID, Name: s.Name, Fields: s.Fields}
	for _, a := range s.Annotations {
		enc, err := marshalAnnotation(a)
		if err != nil {
			return nil, err
		}
		out.Annotations = append(out.Annotations, enc)
	}
	return json.Marshal(out)
}

func (s *SchemaDefinition) UnmarshalJSON(data []byte) error {
	var in schemaDefinitionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	annotations := make([]Annotation, 0, len(in.Annotations))
	for _, raw := range in.Annotations {
		a, err := unmarshalAnnotation(raw)
		if err != nil {
			return err
		}
		annotations = append(annotations, a)
	}
	if err := validateSchemaParts(in.Fields, annotations); err != nil {
		return err
	}
	*s = SchemaDefinition{
		ID:          in.ID,
		Name:        in.Name,
		Fields:      in.Fields,
		Annotations: annotations,
	}
	if len(annotations) == 0 {
		s.Annotations = nil
	}
	return nil
}
