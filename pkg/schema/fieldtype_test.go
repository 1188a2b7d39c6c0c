package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypesEqual(t *testing.T) {
	max := uint32(120)
	limited := TextType{Constraints: TextConstraints{}.WithMaxLength(max)}

	assert.True(t, TypesEqual(TextType{}, TextType{}))
	assert.False(t, TypesEqual(TextType{}, limited))
	assert.True(t, TypesEqual(limited, TextType{Constraints: TextConstraints{}.WithMaxLength(120)}))
	assert.False(t, TypesEqual(TextType{}, RichTextType{}))
	assert.False(t, TypesEqual(IntegerType{}, FloatType{}))

	rng, err := NewIntegerRange(0, 10)
	require.NoError(t, err)
	assert.False(t, TypesEqual(IntegerType{}, IntegerType{Constraints: rng}))

	enumA := EnumType{Variants: MustEnumVariants("A", "B")}
	enumB := EnumType{Variants: MustEnumVariants("B", "A")}
	assert.False(t, TypesEqual(enumA, enumB))

	relOne := RelationType{Target: MustSchemaName("Company"), Cardinality: One}
	relMany := RelationType{Target: MustSchemaName("Company"), Cardinality: Many}
	assert.False(t, TypesEqual(relOne, relMany))
	assert.True(t, TypesEqual(relOne, RelationType{Target: MustSchemaName("Company")}))

	assert.True(t, TypesEqual(ArrayType{Inner: BooleanType{}}, ArrayType{Inner: BooleanType{}}))
	assert.False(t, TypesEqual(ArrayType{Inner: BooleanType{}}, ArrayType{Inner: TextType{}}))

	compA := CompositeType{Fields: []FieldDefinition{NewField(MustFieldName("street"), TextType{})}}
	compB := CompositeType{Fields: []FieldDefinition{NewField(MustFieldName("street"), RichTextType{})}}
	assert.True(t, TypesEqual(compA, compA))
	assert.False(t, TypesEqual(compA, compB))
}

func TestFieldTypeString(t *testing.T) {
	cases := []struct {
		typ  FieldType
		want string
	}{
		{TextType{}, "text"},
		{TextType{Constraints: TextConstraints{}.WithMaxLength(80)}, "text(max: 80)"},
		{RichTextType{}, "richtext"},
		{IntegerType{}, "integer"},
		{FloatType{Constraints: FloatConstraints{}.WithPrecision(2)}, "float(precision: 2)"},
		{BooleanType{}, "boolean"},
		{DateTimeType{}, "datetime"},
		{EnumType{Variants: MustEnumVariants("Lead", "Won")}, `enum("Lead", "Won")`},
		{JSONType{}, "json"},
		{RelationType{Target: MustSchemaName("Company")}, "-> Company"},
		{RelationType{Target: MustSchemaName("Tag"), Cardinality: Many}, "-> Tag[]"},
		{ArrayType{Inner: IntegerType{}}, "integer[]"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.typ.String())
	}

	rng, err := NewIntegerRange(-5, 5)
	require.NoError(t, err)
	assert.Equal(t, "integer(min: -5, max: 5)", IntegerType{Constraints: rng}.String())

	minOnly := int64(1)
	assert.Equal(t, "integer(min: 1)", IntegerType{Constraints: IntegerConstraints{Min: &minOnly}}.String())
}

func TestIntegerRangeValidation(t *testing.T) {
	_, err := NewIntegerRange(10, 5)
	var rangeErr *InvalidIntegerRangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, int64(10), rangeErr.Min)
	assert.Equal(t, int64(5), rangeErr.Max)

	min, max := int64(3), int64(1)
	bad := IntegerConstraints{Min: &min, Max: &max}
	assert.Error(t, bad.Validate())
	assert.NoError(t, IntegerConstraints{Min: &min}.Validate())
}

func TestDefaultValue(t *testing.T) {
	s := StringDefault("hi")
	assert.Equal(t, `"hi"`, s.String())

	i := IntegerDefault(-3)
	assert.Equal(t, "-3", i.String())
	assert.Equal(t, int64(-3), i.AsInt())

	f, err := FloatDefault("2.50")
	require.NoError(t, err)
	assert.Equal(t, "2.50", f.String()) // source text preserved
	assert.InDelta(t, 2.5, f.AsFloat(), 1e-9)

	_, err = FloatDefault("not-a-number")
	var floatErr *InvalidFloatStringError
	require.ErrorAs(t, err, &floatErr)

	_, err = FloatDefault("NaN")
	assert.Error(t, err)

	b := BooleanDefault(true)
	assert.Equal(t, "true", b.String())
	assert.True(t, b.AsBool())
}

func TestPrefixedIDs(t *testing.T) {
	id := NewSchemaID()
	assert.Contains(t, id.String(), "schema_")

	parsed, err := ParseSchemaID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseSchemaID("entity_0190a000-0000-7000-8000-000000000000")
	var idErr *InvalidIDError
	require.ErrorAs(t, err, &idErr)

	_, err = ParseSchemaID("schema_not-a-uuid")
	assert.Error(t, err)

	eid := NewEntityID()
	assert.Contains(t, eid.String(), "entity_")
	_, err = ParseEntityID(eid.String())
	assert.NoError(t, err)

	// Two mints never collide.
	assert.NotEqual(t, NewSchemaID(), NewSchemaID())
}
