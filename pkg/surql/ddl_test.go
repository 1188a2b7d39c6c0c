package surql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemaforge/forge/pkg/migrate"
	"github.com/schemaforge/forge/pkg/schema"
)

func TestFieldTypeSurql(t *testing.T) {
	tests := []struct {
		typ  schema.FieldType
		want string
	}{
		{schema.TextType{}, "string"},
		{schema.RichTextType{}, "string"},
		{schema.EnumType{Variants: schema.MustEnumVariants("A", "B")}, "string"},
		{schema.IntegerType{}, "int"},
		{schema.FloatType{}, "float"},
		{schema.BooleanType{}, "bool"},
		{schema.DateTimeType{}, "datetime"},
		{schema.JSONType{}, "object"},
		{schema.CompositeType{}, "object"},
		{schema.RelationType{Target: schema.MustSchemaName("Company")}, "option<record<Company>>"},
		{
			schema.RelationType{Target: schema.MustSchemaName("Company"), Cardinality: schema.Many},
			"option<array<record<Company>>>",
		},
		{schema.ArrayType{Inner: schema.IntegerType{}}, "array<int>"},
		{schema.ArrayType{Inner: schema.ArrayType{Inner: schema.TextType{}}}, "array<array<string>>"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, FieldTypeSurql(tc.typ))
	}
}

func TestStepCreateSchema(t *testing.T) {
	stmts := StepStatements("ignored", migrate.CreateSchema{
		Name: schema.MustSchemaName("Contact"),
		Fields: []schema.FieldDefinition{
			schema.NewField(schema.MustFieldName("name"), schema.TextType{}).
				WithModifiers(schema.Required{}),
			schema.NewField(schema.MustFieldName("email"),
				schema.TextType{Constraints: schema.TextConstraints{}.WithMaxLength(255)}),
		},
	})

	require.Len(t, stmts, 3)
	assert.Equal(t, "DEFINE TABLE Contact SCHEMAFULL;", stmts[0])
	assert.Equal(t, "DEFINE FIELD name ON Contact TYPE string ASSERT $value != NONE;", stmts[1])
	assert.Equal(t, "DEFINE FIELD email ON Contact TYPE option<string> ASSERT string::len($value) <= 255;", stmts[2])
}

func TestStepDropSchema(t *testing.T) {
	stmts := StepStatements("ignored", migrate.DropSchema{Name: schema.MustSchemaName("Old")})
	assert.Equal(t, []string{"REMOVE TABLE Old;"}, stmts)
}

func TestStepAddFieldVariants(t *testing.T) {
	intRange, err := schema.NewIntegerRange(0, 120)
	require.NoError(t, err)

	tests := []struct {
		name  string
		field schema.FieldDefinition
		want  []string
	}{
		{
			"plain optional text",
			schema.NewField(schema.MustFieldName("name"), schema.TextType{}),
			[]string{"DEFINE FIELD name ON Contact TYPE option<string>;"},
		},
		{
			"bounded integer",
			schema.NewField(schema.MustFieldName("age"), schema.IntegerType{Constraints: intRange}),
			[]string{"DEFINE FIELD age ON Contact TYPE option<int> ASSERT $value >= 0 AND $value <= 120;"},
		},
		{
			"required enum",
			schema.NewField(schema.MustFieldName("status"),
				schema.EnumType{Variants: schema.MustEnumVariants("Active", "Inactive")}).
				WithModifiers(schema.Required{}),
			[]string{"DEFINE FIELD status ON Contact TYPE string ASSERT $value IN ['Active', 'Inactive'] AND $value != NONE;"},
		},
		{
			"default value",
			schema.NewField(schema.MustFieldName("status"), schema.TextType{}).
				WithModifiers(schema.Default{Value: schema.StringDefault("active")}),
			[]string{"DEFINE FIELD status ON Contact TYPE option<string> VALUE $value OR 'active';"},
		},
		{
			"indexed field",
			schema.NewField(schema.MustFieldName("email"), schema.TextType{}).
				WithModifiers(schema.Indexed{}),
			[]string{
				"DEFINE FIELD email ON Contact TYPE option<string>;",
				"DEFINE INDEX idx_Contact_email ON Contact FIELDS email;",
			},
		},
		{
			"relation keeps its own option",
			schema.NewField(schema.MustFieldName("company"),
				schema.RelationType{Target: schema.MustSchemaName("Company")}),
			[]string{"DEFINE FIELD company ON Contact TYPE option<record<Company>>;"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StepStatements("Contact", migrate.AddField{Field: tc.field}))
		})
	}
}

func TestStepAddCompositeField(t *testing.T) {
	field := schema.NewField(schema.MustFieldName("address"), schema.CompositeType{
		Fields: []schema.FieldDefinition{
			schema.NewField(schema.MustFieldName("city"), schema.TextType{}),
			schema.NewField(schema.MustFieldName("zip"),
				schema.TextType{Constraints: schema.TextConstraints{}.WithMaxLength(10)}),
		},
	})

	stmts := StepStatements("Contact", migrate.AddField{Field: field})
	require.Len(t, stmts, 3)
	assert.Equal(t, "DEFINE FIELD address ON Contact TYPE option<object>;", stmts[0])
	assert.Equal(t, "DEFINE FIELD address.city ON Contact TYPE string;", stmts[1])
	assert.Equal(t, "DEFINE FIELD address.zip ON Contact TYPE string ASSERT string::len($value) <= 10;", stmts[2])
}

func TestStepRemoveField(t *testing.T) {
	stmts := StepStatements("Contact", migrate.RemoveField{Name: schema.MustFieldName("fax")})
	assert.Equal(t, []string{"REMOVE FIELD fax ON Contact;"}, stmts)
}

func TestStepRenameField(t *testing.T) {
	stmts := StepStatements("Contact", migrate.RenameField{
		OldName: schema.MustFieldName("name"),
		NewName: schema.MustFieldName("full_name"),
	})
	assert.Equal(t, []string{
		"DEFINE FIELD full_name ON Contact TYPE any;",
		"UPDATE Contact SET full_name = name;",
		"REMOVE FIELD name ON Contact;",
	}, stmts)
}

func TestStepChangeType(t *testing.T) {
	stmts := StepStatements("Stats", migrate.ChangeType{
		Name:      schema.MustFieldName("score"),
		OldType:   schema.IntegerType{},
		NewType:   schema.FloatType{},
		Transform: migrate.IntegerToFloat(),
	})
	assert.Equal(t, []string{"DEFINE FIELD OVERWRITE score ON Stats TYPE float;"}, stmts)

	bounded := StepStatements("Stats", migrate.ChangeType{
		Name:      schema.MustFieldName("score"),
		OldType:   schema.FloatType{},
		NewType:   schema.IntegerType{Constraints: schema.IntegerConstraints{}.WithMin(0).WithMax(100)},
		Transform: migrate.FloatToInteger(),
	})
	assert.Equal(t,
		[]string{"DEFINE FIELD OVERWRITE score ON Stats TYPE int ASSERT $value >= 0 AND $value <= 100;"},
		bounded)
}

func TestStepIndexes(t *testing.T) {
	add := StepStatements("Contact", migrate.AddIndex{Field: schema.MustFieldName("email")})
	assert.Equal(t, []string{"DEFINE INDEX idx_Contact_email ON Contact FIELDS email;"}, add)

	remove := StepStatements("Contact", migrate.RemoveIndex{Field: schema.MustFieldName("email")})
	assert.Equal(t, []string{"REMOVE INDEX idx_Contact_email ON Contact;"}, remove)
}

func TestStepRelations(t *testing.T) {
	one := StepStatements("Contact", migrate.AddRelation{
		Name:        schema.MustFieldName("company"),
		Target:      schema.MustSchemaName("Company"),
		Cardinality: schema.One,
	})
	assert.Equal(t, []string{"DEFINE FIELD company ON Contact TYPE option<record<Company>>;"}, one)

	many := StepStatements("Contact", migrate.AddRelation{
		Name:        schema.MustFieldName("deals"),
		Target:      schema.MustSchemaName("Deal"),
		Cardinality: schema.Many,
	})
	assert.Equal(t, []string{"DEFINE FIELD deals ON Contact TYPE option<array<record<Deal>>>;"}, many)

	remove := StepStatements("Contact", migrate.RemoveRelation{Name: schema.MustFieldName("company")})
	assert.Equal(t, []string{"REMOVE FIELD company ON Contact;"}, remove)
}

func TestStepRequiredLifecycle(t *testing.T) {
	backfill := StepStatements("Contact", migrate.BackfillRequired{
		Field:        schema.MustFieldName("status"),
		DefaultValue: schema.TextValue("new"),
	})
	assert.Equal(t, []string{"UPDATE Contact SET status = 'new' WHERE status = NONE;"}, backfill)

	add := StepStatements("Contact", migrate.AddRequired{Field: schema.MustFieldName("status")})
	assert.Equal(t, []string{"DEFINE FIELD OVERWRITE status ON Contact ASSERT $value != NONE;"}, add)

	remove := StepStatements("Contact", migrate.RemoveRequired{Field: schema.MustFieldName("status")})
	assert.Equal(t, []string{"DEFINE FIELD OVERWRITE status ON Contact TYPE any;"}, remove)
}

func TestStepDefaults(t *testing.T) {
	set := StepStatements("Contact", migrate.SetFieldDefault{
		Field: schema.MustFieldName("status"),
		Value: schema.StringDefault("active"),
	})
	assert.Equal(t, []string{"DEFINE FIELD OVERWRITE status ON Contact VALUE $value OR 'active';"}, set)

	setFloat, err := schema.FloatDefault("0.50")
	require.NoError(t, err)
	stmts := StepStatements("Deal", migrate.SetFieldDefault{
		Field: schema.MustFieldName("probability"),
		Value: setFloat,
	})
	assert.Equal(t, []string{"DEFINE FIELD OVERWRITE probability ON Deal VALUE $value OR 0.50;"}, stmts)

	remove := StepStatements("Contact", migrate.RemoveFieldDefault{Field: schema.MustFieldName("status")})
	assert.Equal(t, []string{"DEFINE FIELD OVERWRITE status ON Contact TYPE any;"}, remove)
}

func TestPlanStatements(t *testing.T) {
	plan := migrate.NewPlan(schema.NewSchemaID(), schema.MustSchemaName("Contact"), []migrate.Step{
		migrate.AddField{Field: schema.NewField(schema.MustFieldName("phone"), schema.TextType{})},
		migrate.RemoveField{Name: schema.MustFieldName("fax")},
	})

	stmts := PlanStatements(plan)
	assert.Equal(t, []string{
		"DEFINE FIELD phone ON Contact TYPE option<string>;",
		"REMOVE FIELD fax ON Contact;",
	}, stmts)
}
