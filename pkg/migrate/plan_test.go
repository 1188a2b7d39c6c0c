package migrate

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemaforge/forge/pkg/schema"
)

func textField(t *testing.T, name string) schema.FieldDefinition {
	t.Helper()
	return schema.NewField(schema.MustFieldName(name), schema.TextType{})
}

func testSchema(t *testing.T, name string, fields ...schema.FieldDefinition) schema.SchemaDefinition {
	t.Helper()
	s, err := schema.NewSchemaDefinition(schema.MustSchemaName(name), fields, nil)
	require.NoError(t, err)
	return s
}

func TestMigrationIDPrefix(t *testing.T) {
	id := NewMigrationID()
	assert.True(t, strings.HasPrefix(id.String(), "migration_"))
}

func TestMigrationIDParseRoundTrip(t *testing.T) {
	id := NewMigrationID()
	parsed, err := ParseMigrationID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestMigrationIDRejectsWrongPrefix(t *testing.T) {
	_, err := ParseMigrationID("entity_018f3c80-1234-7abc-8def-0123456789ab")
	require.Error(t, err)

	var idErr *schema.InvalidIDError
	assert.ErrorAs(t, err, &idErr)
}

func TestSafetyStrings(t *testing.T) {
	assert.Equal(t, "safe", Safe.String())
	assert.Equal(t, "requires_confirmation", RequiresConfirmation.String())
	assert.Equal(t, "destructive", Destructive.String())
}

func TestSafetyMax(t *testing.T) {
	assert.Equal(t, Destructive, Safe.Max(Destructive))
	assert.Equal(t, RequiresConfirmation, RequiresConfirmation.Max(Safe))
	assert.Equal(t, Safe, Safe.Max(Safe))
}

func TestValueTransformStrings(t *testing.T) {
	assert.Equal(t, "identity", Identity().String())
	assert.Equal(t, "integer_to_float", IntegerToFloat().String())
	assert.Equal(t, "float_to_integer", FloatToInteger().String())
	assert.Equal(t, "to_string", ToString().String())
	assert.Equal(t, "set_null", SetNull().String())
	assert.Equal(t, "set_default(0)", SetDefault(schema.IntegerDefault(0)).String())
}

func TestInferTransform(t *testing.T) {
	tests := []struct {
		name string
		old  schema.FieldType
		new  schema.FieldType
		want TransformKind
	}{
		{"integer widens to float", schema.IntegerType{}, schema.FloatType{}, TransformIntegerToFloat},
		{"float truncates to integer", schema.FloatType{}, schema.IntegerType{}, TransformFloatToInteger},
		{"boolean renders to text", schema.BooleanType{}, schema.TextType{}, TransformToString},
		{"datetime renders to text", schema.DateTimeType{}, schema.TextType{}, TransformToString},
		{"incompatible pair discards", schema.TextType{}, schema.BooleanType{}, TransformSetNull},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, InferTransform(tc.old, tc.new).Kind())
		})
	}
}

func TestStepSafetyClassification(t *testing.T) {
	name := schema.MustFieldName("email")

	safe := []Step{
		CreateSchema{Name: schema.MustSchemaName("Test")},
		AddField{Field: textField(t, "email")},
		AddIndex{Field: name},
		AddRelation{Name: name, Target: schema.MustSchemaName("Company"), Cardinality: schema.One},
		RemoveRequired{Field: name},
		SetFieldDefault{Field: name, Value: schema.StringDefault("x")},
		RemoveFieldDefault{Field: name},
	}
	for _, step := range safe {
		assert.Equal(t, Safe, step.Safety(), "expected safe: %s", step)
	}

	confirm := []Step{
		RenameField{OldName: name, NewName: schema.MustFieldName("address")},
		ChangeType{Name: name, OldType: schema.IntegerType{}, NewType: schema.FloatType{}, Transform: IntegerToFloat()},
		RemoveIndex{Field: name},
		BackfillRequired{Field: name, DefaultValue: schema.TextValue("x")},
		AddRequired{Field: name},
	}
	for _, step := range confirm {
		assert.Equal(t, RequiresConfirmation, step.Safety(), "expected requires_confirmation: %s", step)
	}

	destructive := []Step{
		DropSchema{Name: schema.MustSchemaName("Old")},
		RemoveField{Name: name},
		RemoveRelation{Name: name},
	}
	for _, step := range destructive {
		assert.Equal(t, Destructive, step.Safety(), "expected destructive: %s", step)
	}
}

func TestStepStrings(t *testing.T) {
	assert.Equal(t, "ADD field 'email'",
		AddField{Field: textField(t, "email")}.String())
	assert.Equal(t, "REMOVE field 'old_field'",
		RemoveField{Name: schema.MustFieldName("old_field")}.String())
	assert.Equal(t, "RENAME field 'name' to 'full_name'",
		RenameField{OldName: schema.MustFieldName("name"), NewName: schema.MustFieldName("full_name")}.String())
	assert.Equal(t, "CHANGE TYPE of 'score' from integer to float via integer_to_float",
		ChangeType{
			Name:      schema.MustFieldName("score"),
			OldType:   schema.IntegerType{},
			NewType:   schema.FloatType{},
			Transform: IntegerToFloat(),
		}.String())
	assert.Equal(t, "ADD RELATION 'company' -> Company (one)",
		AddRelation{
			Name:        schema.MustFieldName("company"),
			Target:      schema.MustSchemaName("Company"),
			Cardinality: schema.One,
		}.String())
	assert.Equal(t, `SET DEFAULT on 'status' to "active"`,
		SetFieldDefault{Field: schema.MustFieldName("status"), Value: schema.StringDefault("active")}.String())
}

func TestEmptyPlanIsSafe(t *testing.T) {
	plan := NewPlan(schema.NewSchemaID(), schema.MustSchemaName("Test"), nil)
	assert.True(t, plan.IsEmpty())
	assert.Equal(t, Safe, plan.OverallSafety())
	assert.True(t, plan.IsSafe())
	assert.False(t, plan.HasDestructiveSteps())
}

func TestPlanOverallSafetyIsWorstStep(t *testing.T) {
	plan := NewPlan(schema.NewSchemaID(), schema.MustSchemaName("Test"), []Step{
		AddField{Field: textField(t, "email")},
		AddRequired{Field: schema.MustFieldName("email")},
	})
	assert.Equal(t, RequiresConfirmation, plan.OverallSafety())
	assert.False(t, plan.IsSafe())
	assert.False(t, plan.HasDestructiveSteps())

	plan.Steps = append(plan.Steps, RemoveField{Name: schema.MustFieldName("fax")})
	assert.Equal(t, Destructive, plan.OverallSafety())
	assert.True(t, plan.HasDestructiveSteps())
}

func TestPlanValidate(t *testing.T) {
	empty := NewPlan(schema.NewSchemaID(), schema.MustSchemaName("Test"), nil)
	assert.ErrorIs(t, empty.Validate(false), ErrEmptyPlan)

	destructive := NewPlan(schema.NewSchemaID(), schema.MustSchemaName("Test"), []Step{
		DropSchema{Name: schema.MustSchemaName("Test")},
	})
	err := destructive.Validate(false)
	var confErr *DestructiveWithoutConfirmationError
	require.ErrorAs(t, err, &confErr)
	assert.Contains(t, confErr.Step, "DROP schema 'Test'")

	assert.NoError(t, destructive.Validate(true))
}

func TestPlanString(t *testing.T) {
	plan := NewPlan(schema.NewSchemaID(), schema.MustSchemaName("Contact"), []Step{
		AddField{Field: textField(t, "phone")},
		RemoveField{Name: schema.MustFieldName("fax")},
	})

	out := plan.String()
	assert.Contains(t, out, "Migration plan for 'Contact': 2 steps (destructive)")
	assert.Contains(t, out, "  1. ADD field 'phone' [safe]")
	assert.Contains(t, out, "  2. REMOVE field 'fax' [destructive]")
}

func TestPlanJSONRoundTrip(t *testing.T) {
	plan := NewPlan(schema.NewSchemaID(), schema.MustSchemaName("Contact"), []Step{
		CreateSchema{Name: schema.MustSchemaName("Contact"), Fields: []schema.FieldDefinition{textField(t, "name")}},
		AddField{Field: textField(t, "phone")},
		RemoveField{Name: schema.MustFieldName("fax")},
		RenameField{OldName: schema.MustFieldName("name"), NewName: schema.MustFieldName("full_name")},
		ChangeType{
			Name:      schema.MustFieldName("score"),
			OldType:   schema.IntegerType{},
			NewType:   schema.FloatType{},
			Transform: IntegerToFloat(),
		},
		AddIndex{Field: schema.MustFieldName("email")},
		AddRelation{
			Name:        schema.MustFieldName("company"),
			Target:      schema.MustSchemaName("Company"),
			Cardinality: schema.Many,
		},
		BackfillRequired{Field: schema.MustFieldName("status"), DefaultValue: schema.TextValue("new")},
		SetFieldDefault{Field: schema.MustFieldName("status"), Value: schema.StringDefault("new")},
	})

	data, err := json.Marshal(plan)
	require.NoError(t, err)

	var back Plan
	require.NoError(t, json.Unmarshal(data, &back))

	assert.Equal(t, plan.ID, back.ID)
	assert.Equal(t, plan.SchemaName, back.SchemaName)
	require.Len(t, back.Steps, len(plan.Steps))
	for i := range plan.Steps {
		assert.Equal(t, plan.Steps[i].String(), back.Steps[i].String(), "step %d", i)
		assert.Equal(t, plan.Steps[i].Safety(), back.Steps[i].Safety(), "step %d", i)
	}
}

func TestUnmarshalStepRejectsBadDocuments(t *testing.T) {
	cases := []string{
		`{"step": "warp_field"}`,
		`{"step": "remove_field", "name": "NotSnake"}`,
		`{"step": "add_field"}`,
		`{"step": "set_default", "field_name": "status"}`,
	}
	for _, doc := range cases {
		_, err := UnmarshalStep([]byte(doc))
		assert.Error(t, err, "document: %s", doc)
	}
}
