package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemaforge/forge/pkg/schema"
)

func contactSchema(t *testing.T) schema.SchemaDefinition {
	t.Helper()
	s, err := schema.NewSchemaDefinition(schema.MustSchemaName("Contact"), []schema.FieldDefinition{
		schema.NewField(schema.MustFieldName("name"), schema.TextType{}),
		schema.NewField(schema.MustFieldName("age"), schema.IntegerType{}),
		schema.NewField(schema.MustFieldName("score"), schema.FloatType{}),
		schema.NewField(schema.MustFieldName("active"), schema.BooleanType{}),
		schema.NewField(schema.MustFieldName("status"),
			schema.EnumType{Variants: schema.MustEnumVariants("Active", "Inactive")}),
		schema.NewField(schema.MustFieldName("metadata"), schema.JSONType{}),
		schema.NewField(schema.MustFieldName("address"), schema.CompositeType{
			Fields: []schema.FieldDefinition{
				schema.NewField(schema.MustFieldName("city"), schema.TextType{}),
			},
		}),
	}, nil)
	require.NoError(t, err)
	return s
}

func TestValidateFilterAcceptsMatchingTypes(t *testing.T) {
	s := contactSchema(t)
	filters := []Filter{
		Eq{Path: MustFieldPath("name"), Value: schema.TextValue("Jane")},
		Gt{Path: MustFieldPath("age"), Value: schema.IntegerValue(30)},
		Eq{Path: MustFieldPath("active"), Value: schema.BooleanValue(true)},
		Contains{Path: MustFieldPath("name"), Value: "an"},
		StartsWith{Path: MustFieldPath("status"), Value: "Act"},
		In{Path: MustFieldPath("age"), Values: []schema.Value{
			schema.IntegerValue(1), schema.IntegerValue(2),
		}},
	}
	for _, f := range filters {
		assert.NoError(t, ValidateFilter(f, s), "filter: %s", f)
	}
}

func TestValidateFilterUnknownField(t *testing.T) {
	s := contactSchema(t)
	err := ValidateFilter(Eq{Path: MustFieldPath("ghost"), Value: schema.TextValue("x")}, s)

	var unknown *UnknownFieldError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "unknown field 'ghost' in schema 'Contact'", unknown.Error())
}

func TestValidateFilterTypeMismatch(t *testing.T) {
	s := contactSchema(t)
	err := ValidateFilter(Eq{Path: MustFieldPath("age"), Value: schema.TextValue("thirty")}, s)

	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "type mismatch for field 'age': expected integer, got text", mismatch.Error())
}

func TestValidateFilterNullComparesWithAnything(t *testing.T) {
	s := contactSchema(t)
	assert.NoError(t, ValidateFilter(Eq{Path: MustFieldPath("age"), Value: schema.NullValue{}}, s))
	assert.NoError(t, ValidateFilter(Ne{Path: MustFieldPath("name"), Value: schema.NullValue{}}, s))
}

func TestValidateFilterFloatAcceptsInteger(t *testing.T) {
	s := contactSchema(t)
	assert.NoError(t, ValidateFilter(Gt{Path: MustFieldPath("score"), Value: schema.IntegerValue(3)}, s))
	assert.Error(t, ValidateFilter(Gt{Path: MustFieldPath("age"), Value: schema.FloatValue(3.5)}, s))
}

func TestValidateFilterEnumAcceptsTextOrEnum(t *testing.T) {
	s := contactSchema(t)
	assert.NoError(t, ValidateFilter(Eq{Path: MustFieldPath("status"), Value: schema.EnumValue("Active")}, s))
	assert.NoError(t, ValidateFilter(Eq{Path: MustFieldPath("status"), Value: schema.TextValue("Active")}, s))
	assert.Error(t, ValidateFilter(Eq{Path: MustFieldPath("status"), Value: schema.IntegerValue(1)}, s))
}

func TestValidateFilterJSONAcceptsAnything(t *testing.T) {
	s := contactSchema(t)
	assert.NoError(t, ValidateFilter(Eq{Path: MustFieldPath("metadata"), Value: schema.IntegerValue(1)}, s))
}

func TestValidateFilterNestedPathSkipsTypeCheck(t *testing.T) {
	s := contactSchema(t)
	// Only the root field is resolved for nested paths.
	assert.NoError(t, ValidateFilter(Eq{Path: MustFieldPath("address.city"), Value: schema.IntegerValue(1)}, s))

	err := ValidateFilter(Eq{Path: MustFieldPath("missing.city"), Value: schema.TextValue("x")}, s)
	var unknown *UnknownFieldError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "missing.city", unknown.Field)
}

func TestValidateFilterContainsRequiresText(t *testing.T) {
	s := contactSchema(t)
	err := ValidateFilter(Contains{Path: MustFieldPath("age"), Value: "3"}, s)

	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "type mismatch for field 'age': expected text, got integer", mismatch.Error())

	assert.Error(t, ValidateFilter(StartsWith{Path: MustFieldPath("active"), Value: "t"}, s))
}

func TestValidateFilterEmptyIn(t *testing.T) {
	s := contactSchema(t)
	err := ValidateFilter(In{Path: MustFieldPath("age")}, s)

	var empty *EmptyInValuesError
	require.ErrorAs(t, err, &empty)
	assert.Equal(t, "IN filter for field 'age' has no values", empty.Error())
}

func TestValidateFilterCollectsAllErrors(t *testing.T) {
	s := contactSchema(t)
	f := And{Filters: []Filter{
		Eq{Path: MustFieldPath("ghost"), Value: schema.TextValue("x")},
		Gt{Path: MustFieldPath("age"), Value: schema.TextValue("thirty")},
		Not{Inner: In{Path: MustFieldPath("status")}},
	}}

	err := ValidateFilter(f, s)
	var errs Errors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 3)

	var unknown *UnknownFieldError
	assert.ErrorAs(t, err, &unknown)
	var mismatch *TypeMismatchError
	assert.ErrorAs(t, err, &mismatch)
	var empty *EmptyInValuesError
	assert.ErrorAs(t, err, &empty)
}
