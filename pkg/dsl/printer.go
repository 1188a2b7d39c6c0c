package dsl

import (
	"strings"

	"github.com/schemaforge/forge/pkg/schema"
)

const indentUnit = "    "

// Print renders a schema definition as canonical DSL text. The output
// parses back to a structurally equal schema (the minted id aside).
func Print(s schema.SchemaDefinition) string {
	var b strings.Builder
	printSchema(&b, s)
	return b.String()
}

// PrintAll renders multiple schema definitions separated by blank
// lines.
func PrintAll(schemas []schema.SchemaDefinition) string {
	var b strings.Builder
	for i, s := range schemas {
		if i > 0 {
			b.WriteByte('\n')
		}
		printSchema(&b, s)
	}
	return b.String()
}

func printSchema(b *strings.Builder, s schema.SchemaDefinition) {
	for _, a := range s.Annotations {
		printAnnotation(b, a)
		b.WriteByte('\n')
	}

	b.WriteString("schema ")
	b.WriteString(s.Name.String())
	b.WriteString(" {\n")

	for _, f := range s.Fields {
		b.WriteString(indentUnit)
		printField(b, f, 1)
		b.WriteByte('\n')
	}

	b.WriteString("}\n")
}

func printAnnotation(b *strings.Builder, a schema.Annotation) {
	switch a.(type) {
	case schema.VersionAnnotation, schema.DisplayAnnotation,
		schema.SystemAnnotation, schema.AccessAnnotation:
		b.WriteString(a.String())
	default:
		// Future annotation kinds render as a placeholder instead of
		// failing.
		b.WriteString("@unknown")
	}
}

func printField(b *strings.Builder, f schema.FieldDefinition, depth int) {
	b.WriteString(f.Name.String())
	b.WriteString(": ")
	printType(b, f.Type, depth)

	for _, m := range f.Modifiers {
		b.WriteByte(' ')
		printModifier(b, m)
	}
	for _, a := range f.Annotations {
		b.WriteByte(' ')
		printFieldAnnotation(b, a)
	}
}

func printType(b *strings.Builder, t schema.FieldType, depth int) {
	switch ft := t.(type) {
	case schema.CompositeType:
		b.WriteString("composite {\n")
		inner := strings.Repeat(indentUnit, depth+1)
		for _, f := range ft.Fields {
			b.WriteString(inner)
			printField(b, f, depth+1)
			b.WriteByte('\n')
		}
		b.WriteString(strings.Repeat(indentUnit, depth))
		b.WriteByte('}')
	case schema.ArrayType:
		printType(b, ft.Inner, depth)
		b.WriteString("[]")
	case schema.TextType, schema.RichTextType, schema.IntegerType, schema.FloatType,
		schema.BooleanType, schema.DateTimeType, schema.EnumType, schema.JSONType,
		schema.RelationType:
		// The source form of every non-nesting type is its String().
		b.WriteString(t.String())
	default:
		// Future field types render as a placeholder instead of
		// failing.
		b.WriteString("unknown")
	}
}

func printModifier(b *strings.Builder, m schema.FieldModifier) {
	switch m.(type) {
	case schema.Required, schema.Indexed, schema.Default:
		b.WriteString(m.String())
	default:
		b.WriteString("unknown_modifier")
	}
}

func printFieldAnnotation(b *strings.Builder, a schema.FieldAnnotation) {
	switch a.(type) {
	case schema.OwnerAnnotation, schema.FieldAccessAnnotation:
		b.WriteString(a.String())
	default:
		b.WriteString("@unknown")
	}
}
