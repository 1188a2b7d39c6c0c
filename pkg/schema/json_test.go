package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaJSONRoundTrip(t *testing.T) {
	v2, err := NewVersion(2)
	require.NoError(t, err)
	rng, err := NewIntegerRange(0, 150)
	require.NoError(t, err)
	half, err := FloatDefault("0.5")
	require.NoError(t, err)

	fields := []FieldDefinition{
		NewField(MustFieldName("name"), TextType{Constraints: TextConstraints{}.WithMaxLength(120)}).
			WithModifiers(Required{}, Indexed{}),
		NewField(MustFieldName("bio"), RichTextType{}),
		NewField(MustFieldName("age"), IntegerType{Constraints: rng}),
		NewField(MustFieldName("score"), FloatType{}).
			WithModifiers(Default{Value: half}),
		NewField(MustFieldName("active"), BooleanType{}).
			WithModifiers(Default{Value: BooleanDefault(true)}),
		NewField(MustFieldName("created_at"), DateTimeType{}),
		NewField(MustFieldName("stage"), EnumType{Variants: MustEnumVariants("Lead", "Won", "Lost")}),
		NewField(MustFieldName("meta"), JSONType{}),
		NewField(MustFieldName("company"), RelationType{Target: MustSchemaName("Company")}).
			WithAnnotations(OwnerAnnotation{}),
		NewField(MustFieldName("tags"), ArrayType{Inner: TextType{}}),
		NewField(MustFieldName("address"), CompositeType{Fields: []FieldDefinition{
			NewField(MustFieldName("street"), TextType{}),
			NewField(MustFieldName("city"), TextType{}).WithModifiers(Required{}),
		}}),
	}
	anns := []Annotation{
		VersionAnnotation{Version: v2},
		DisplayAnnotation{Field: MustFieldName("name")},
		AccessAnnotation{Read: []string{"admin"}, Write: []string{"admin"}, Delete: []string{"admin"}},
	}
	original, err := NewSchemaDefinition(MustSchemaName("Contact"), fields, anns)
	require.NoError(t, err)

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded SchemaDefinition
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, original.ID, decoded.ID)
	assert.Equal(t, original.Name, decoded.Name)
	require.Len(t, decoded.Fields, len(original.Fields))
	for i := range original.Fields {
		assert.True(t, original.Fields[i].Equal(decoded.Fields[i]),
			"field %s should survive the round trip", original.Fields[i].Name)
	}
	assert.Equal(t, uint32(2), decoded.Version().Uint32())

	display, ok := decoded.DisplayField()
	require.True(t, ok)
	assert.Equal(t, "name", display.String())
}

func TestSchemaJSONRejectsInvalidDocuments(t *testing.T) {
	// Invalid name.
	bad := []byte(`{"id":"schema_0190a000-0000-7000-8000-000000000000","name":"not_pascal","fields":[{"name":"x","type":{"kind":"text"}}]}`)
	var s SchemaDefinition
	assert.Error(t, json.Unmarshal(bad, &s))

	// Empty field list.
	bad = []byte(`{"id":"schema_0190a000-0000-7000-8000-000000000000","name":"Contact","fields":[]}`)
	assert.ErrorIs(t, json.Unmarshal(bad, &s), ErrEmptyFields)

	// Duplicate field names.
	bad = []byte(`{"id":"schema_0190a000-0000-7000-8000-000000000000","name":"Contact","fields":[` +
		`{"name":"x","type":{"kind":"text"}},{"name":"x","type":{"kind":"integer"}}]}`)
	var dupErr *DuplicateFieldError
	assert.ErrorAs(t, json.Unmarshal(bad, &s), &dupErr)

	// Inverted integer range inside a field type.
	bad = []byte(`{"id":"schema_0190a000-0000-7000-8000-000000000000","name":"Contact","fields":[` +
		`{"name":"x","type":{"kind":"integer","min":9,"max":1}}]}`)
	var rangeErr *InvalidIntegerRangeError
	assert.ErrorAs(t, json.Unmarshal(bad, &s), &rangeErr)

	// Unknown field type kind.
	bad = []byte(`{"id":"schema_0190a000-0000-7000-8000-000000000000","name":"Contact","fields":[` +
		`{"name":"x","type":{"kind":"blob"}}]}`)
	assert.Error(t, json.Unmarshal(bad, &s))
}

func TestFieldTypeJSONTags(t *testing.T) {
	data, err := MarshalFieldType(RelationType{Target: MustSchemaName("Company"), Cardinality: Many})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"relation","target":"Company","cardinality":"many"}`, string(data))

	decoded, err := UnmarshalFieldType(data)
	require.NoError(t, err)
	rel, ok := decoded.(RelationType)
	require.True(t, ok)
	assert.Equal(t, Many, rel.Cardinality)

	data, err = MarshalFieldType(ArrayType{Inner: EnumType{Variants: MustEnumVariants("A")}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"array","element":{"kind":"enum","variants":["A"]}}`, string(data))
}
