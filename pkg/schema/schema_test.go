package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema(t *testing.T) SchemaDefinition {
	t.Helper()
	fields := []FieldDefinition{
		NewField(MustFieldName("name"), TextType{}).WithModifiers(Required{}),
		NewField(MustFieldName("email"), TextType{}).WithModifiers(Indexed{}),
		NewField(MustFieldName("age"), IntegerType{}),
	}
	s, err := NewSchemaDefinition(MustSchemaName("Contact"), fields, nil)
	require.NoError(t, err)
	return s
}

func TestNewSchemaDefinition(t *testing.T) {
	s := testSchema(t)
	assert.True(t, strings.HasPrefix(s.ID.String(), "schema_"))
	assert.Equal(t, "Contact", s.Name.String())
	assert.Len(t, s.Fields, 3)
	assert.Equal(t, uint32(1), s.Version().Uint32())
	assert.False(t, s.IsSystem())
}

func TestSchemaDefinitionRejectsEmptyFields(t *testing.T) {
	_, err := NewSchemaDefinition(MustSchemaName("Empty"), nil, nil)
	assert.ErrorIs(t, err, ErrEmptyFields)
}

func TestSchemaDefinitionRejectsDuplicateFields(t *testing.T) {
	fields := []FieldDefinition{
		NewField(MustFieldName("name"), TextType{}),
		NewField(MustFieldName("name"), IntegerType{}),
	}
	_, err := NewSchemaDefinition(MustSchemaName("Contact"), fields, nil)
	var dupErr *DuplicateFieldError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "name", dupErr.Name)
}

func TestSchemaDefinitionRejectsDuplicateAnnotations(t *testing.T) {
	fields := []FieldDefinition{NewField(MustFieldName("name"), TextType{})}
	anns := []Annotation{
		VersionAnnotation{Version: InitialVersion()},
		VersionAnnotation{Version: InitialVersion().Next()},
	}
	_, err := NewSchemaDefinition(MustSchemaName("Contact"), fields, anns)
	var dupErr *DuplicateAnnotationError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "version", dupErr.Kind)
}

func TestSchemaAnnotationAccessors(t *testing.T) {
	v2, err := NewVersion(2)
	require.NoError(t, err)
	fields := []FieldDefinition{NewField(MustFieldName("name"), TextType{})}
	anns := []Annotation{
		VersionAnnotation{Version: v2},
		DisplayAnnotation{Field: MustFieldName("name")},
		SystemAnnotation{},
		AccessAnnotation{Read: []string{"admin", "user"}, Write: []string{"admin"}},
	}
	s, err := NewSchemaDefinition(MustSchemaName("Contact"), fields, anns)
	require.NoError(t, err)

	assert.Equal(t, uint32(2), s.Version().Uint32())
	assert.True(t, s.IsSystem())

	display, ok := s.DisplayField()
	require.True(t, ok)
	assert.Equal(t, "name", display.String())

	access, ok := s.Access()
	require.True(t, ok)
	assert.Equal(t, []string{"admin", "user"}, access.Read)
	assert.Equal(t, "Contact (v2, 1 field)", s.String())
}

func TestFieldLookup(t *testing.T) {
	s := testSchema(t)

	f, ok := s.Field(MustFieldName("email"))
	require.True(t, ok)
	assert.True(t, f.IsIndexed())
	assert.False(t, f.IsRequired())

	_, ok = s.Field(MustFieldName("missing"))
	assert.False(t, ok)

	names := s.FieldNames()
	require.Len(t, names, 3)
	assert.Equal(t, "name", names[0].String())
}

func TestFieldModifierHelpers(t *testing.T) {
	f := NewField(MustFieldName("status"), EnumType{Variants: MustEnumVariants("Open", "Closed")}).
		WithModifiers(Required{}, Default{Value: StringDefault("Open")})

	assert.True(t, f.IsRequired())
	assert.False(t, f.IsIndexed())

	dv, ok := f.Default()
	require.True(t, ok)
	assert.Equal(t, DefaultString, dv.Kind())
	assert.Equal(t, "Open", dv.AsString())

	assert.Equal(t, `status: enum("Open", "Closed") required default("Open")`, f.String())
}

func TestFieldOwnerAnnotation(t *testing.T) {
	f := NewField(MustFieldName("owner"), RelationType{Target: MustSchemaName("User")}).
		WithAnnotations(OwnerAnnotation{})
	assert.True(t, f.HasOwner())
	assert.False(t, NewField(MustFieldName("x"), TextType{}).HasOwner())
}
