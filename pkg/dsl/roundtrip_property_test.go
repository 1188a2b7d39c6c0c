package dsl

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/schemaforge/forge/pkg/schema"
)

var (
	propSchemaNames = []string{"Contact", "Company", "Deal", "Task", "Pipeline", "Note"}
	propFieldNames  = []string{"name", "email", "amount", "stage", "owner_id", "created_at", "notes", "score"}
)

// propFieldType maps a pair of selector ints onto a concrete field type.
func propFieldType(kind, param int) schema.FieldType {
	switch kind % 8 {
	case 0:
		if param%2 == 0 {
			return schema.TextType{}
		}
		return schema.TextType{Constraints: schema.TextConstraints{}.WithMaxLength(uint32(param%500 + 1))}
	case 1:
		return schema.RichTextType{}
	case 2:
		lo := int64(param % 100)
		return schema.IntegerType{Constraints: schema.IntegerConstraints{}.WithMin(lo).WithMax(lo + 10)}
	case 3:
		return schema.FloatType{Constraints: schema.FloatConstraints{}.WithPrecision(uint8(param%6 + 1))}
	case 4:
		return schema.BooleanType{}
	case 5:
		return schema.DateTimeType{}
	case 6:
		return schema.EnumType{Variants: schema.MustEnumVariants("Alpha", "Beta", "Gamma")}
	default:
		card := schema.One
		if param%2 == 1 {
			card = schema.Many
		}
		return schema.RelationType{Target: schema.MustSchemaName("Company"), Cardinality: card}
	}
}

func propModifiers(mask int) []schema.FieldModifier {
	var mods []schema.FieldModifier
	if mask&1 != 0 {
		mods = append(mods, schema.Required{})
	}
	if mask&2 != 0 {
		mods = append(mods, schema.Indexed{})
	}
	if mask&4 != 0 {
		mods = append(mods, schema.Default{Value: schema.IntegerDefault(int64(mask))})
	}
	return mods
}

// TestProperty_PrintParseRoundTrip checks that printing any generated
// schema and parsing the result yields a structurally equal schema.
func TestProperty_PrintParseRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("parse(print(s)) is structurally equal to s", prop.ForAll(
		func(nameIdx, fieldCount, kindSeed, paramSeed, modSeed int) bool {
			if fieldCount < 1 {
				fieldCount = 1
			}
			if fieldCount > len(propFieldNames) {
				fieldCount = len(propFieldNames)
			}

			fields := make([]schema.FieldDefinition, 0, fieldCount)
			for i := 0; i < fieldCount; i++ {
				typ := propFieldType(kindSeed+i, paramSeed+i*7)
				f := schema.NewField(schema.MustFieldName(propFieldNames[i]), typ)
				mods := propModifiers((modSeed + i) % 8)
				if len(mods) > 0 {
					f = f.WithModifiers(mods...)
				}
				fields = append(fields, f)
			}

			original, err := schema.NewSchemaDefinition(
				schema.MustSchemaName(propSchemaNames[nameIdx%len(propSchemaNames)]),
				fields, nil)
			if err != nil {
				return false
			}

			parsed, err := Parse(Print(original))
			if err != nil || len(parsed) != 1 {
				return false
			}

			back := parsed[0]
			if back.Name != original.Name || len(back.Fields) != len(original.Fields) {
				return false
			}
			for i := range original.Fields {
				if !original.Fields[i].Equal(back.Fields[i]) {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 1000),
		gen.IntRange(1, 8),
		gen.IntRange(0, 1000),
		gen.IntRange(0, 1000),
		gen.IntRange(0, 1000),
	))

	properties.Property("printing is idempotent through a parse", prop.ForAll(
		func(kindSeed, paramSeed int) bool {
			typ := propFieldType(kindSeed, paramSeed)
			original, err := schema.NewSchemaDefinition(
				schema.MustSchemaName("Sample"),
				[]schema.FieldDefinition{schema.NewField(schema.MustFieldName("value"), typ)},
				nil)
			if err != nil {
				return false
			}

			printed := Print(original)
			parsed, err := Parse(printed)
			if err != nil || len(parsed) != 1 {
				return false
			}
			return Print(parsed[0]) == printed
		},
		gen.IntRange(0, 1000),
		gen.IntRange(0, 1000),
	))

	properties.TestingRun(t)
}
