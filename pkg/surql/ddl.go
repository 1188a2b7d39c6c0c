package surql

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/schemaforge/forge/pkg/migrate"
	"github.com/schemaforge/forge/pkg/schema"
)

// PlanStatements renders a full migration plan as DDL statements in
// step order, using the plan's schema name as the table.
func PlanStatements(plan migrate.Plan) []string {
	var out []string
	for _, step := range plan.Steps {
		out = append(out, StepStatements(plan.SchemaName.String(), step)...)
	}
	return out
}

// StepStatements renders the statements for one migration step against
// a table. Schema-level steps carry their own name and ignore the
// table argument.
func StepStatements(table string, step migrate.Step) []string {
	switch s := step.(type) {
	case migrate.CreateSchema:
		name := s.Name.String()
		out := []string{fmt.Sprintf("DEFINE TABLE %s SCHEMAFULL;", name)}
		for _, field := range s.Fields {
			out = append(out, defineFieldStatements(name, field)...)
		}
		return out
	case migrate.DropSchema:
		return []string{fmt.Sprintf("REMOVE TABLE %s;", s.Name)}
	case migrate.AddField:
		return defineFieldStatements(table, s.Field)
	case migrate.RemoveField:
		return []string{fmt.Sprintf("REMOVE FIELD %s ON %s;", s.Name, table)}
	case migrate.RenameField:
		// Copy through a temporary untyped field; the follow-up type
		// change restores the declared type under the new name.
		return []string{
			fmt.Sprintf("DEFINE FIELD %s ON %s TYPE any;", s.NewName, table),
			fmt.Sprintf("UPDATE %s SET %s = %s;", table, s.NewName, s.OldName),
			fmt.Sprintf("REMOVE FIELD %s ON %s;", s.OldName, table),
		}
	case migrate.ChangeType:
		stmt := fmt.Sprintf("DEFINE FIELD OVERWRITE %s ON %s TYPE %s", s.Name, table, FieldTypeSurql(s.NewType))
		if asserts := fieldAssertions(s.NewType); len(asserts) > 0 {
			stmt += " ASSERT " + strings.Join(asserts, " AND ")
		}
		return []string{stmt + ";"}
	case migrate.AddIndex:
		return []string{fmt.Sprintf("DEFINE INDEX idx_%s_%s ON %s FIELDS %s;", table, s.Field, table, s.Field)}
	case migrate.RemoveIndex:
		return []string{fmt.Sprintf("REMOVE INDEX idx_%s_%s ON %s;", table, s.Field, table)}
	case migrate.AddRelation:
		typ := fmt.Sprintf("option<record<%s>>", s.Target)
		if s.Cardinality == schema.Many {
			typ = fmt.Sprintf("option<array<record<%s>>>", s.Target)
		}
		return []string{fmt.Sprintf("DEFINE FIELD %s ON %s TYPE %s;", s.Name, table, typ)}
	case migrate.RemoveRelation:
		return []string{fmt.Sprintf("REMOVE FIELD %s ON %s;", s.Name, table)}
	case migrate.BackfillRequired:
		return []string{fmt.Sprintf("UPDATE %s SET %s = %s WHERE %s = NONE;", table, s.Field, Literal(s.DefaultValue), s.Field)}
	case migrate.AddRequired:
		return []string{fmt.Sprintf("DEFINE FIELD OVERWRITE %s ON %s ASSERT $value != NONE;", s.Field, table)}
	case migrate.RemoveRequired:
		return []string{fmt.Sprintf("DEFINE FIELD OVERWRITE %s ON %s TYPE any;", s.Field, table)}
	case migrate.SetFieldDefault:
		return []string{fmt.Sprintf("DEFINE FIELD OVERWRITE %s ON %s VALUE $value OR %s;", s.Field, table, defaultLiteral(s.Value))}
	case migrate.RemoveFieldDefault:
		return []string{fmt.Sprintf("DEFINE FIELD OVERWRITE %s ON %s TYPE any;", s.Field, table)}
	default:
		return []string{fmt.Sprintf("-- unsupported migration step for table %s", table)}
	}
}

// FieldTypeSurql maps a declared field type to its SurrealQL type.
func FieldTypeSurql(t schema.FieldType) string {
	switch typ := t.(type) {
	case schema.TextType, schema.RichTextType, schema.EnumType:
		return "string"
	case schema.IntegerType:
		return "int"
	case schema.FloatType:
		return "float"
	case schema.BooleanType:
		return "bool"
	case schema.DateTimeType:
		return "datetime"
	case schema.JSONType, schema.CompositeType:
		return "object"
	case schema.RelationType:
		if typ.Cardinality == schema.Many {
			return fmt.Sprintf("option<array<record<%s>>>", typ.Target)
		}
		return fmt.Sprintf("option<record<%s>>", typ.Target)
	case schema.ArrayType:
		return "array<" + FieldTypeSurql(typ.Inner) + ">"
	default:
		return "any"
	}
}

// fieldAssertions renders constraint checks for a type. Float
// precision is a rendering concern and produces no assertion.
func fieldAssertions(t schema.FieldType) []string {
	var out []string
	switch typ := t.(type) {
	case schema.TextType:
		if typ.Constraints.MaxLength != nil {
			out = append(out, fmt.Sprintf("string::len($value) <= %d", *typ.Constraints.MaxLength))
		}
	case schema.IntegerType:
		if typ.Constraints.Min != nil {
			out = append(out, fmt.Sprintf("$value >= %d", *typ.Constraints.Min))
		}
		if typ.Constraints.Max != nil {
			out = append(out, fmt.Sprintf("$value <= %d", *typ.Constraints.Max))
		}
	case schema.EnumType:
		variants := typ.Variants.Slice()
		quoted := make([]string, len(variants))
		for i, v := range variants {
			quoted[i] = quote(v)
		}
		out = append(out, "$value IN ["+strings.Join(quoted, ", ")+"]")
	}
	return out
}

// defineFieldStatements renders the DEFINE FIELD statement for one
// field plus any nested composite fields and index definitions.
// Non-required fields get an option<...> wrapper so absent values pass
// the type check; relations are already optional.
func defineFieldStatements(table string, f schema.FieldDefinition) []string {
	typ := FieldTypeSurql(f.Type)
	if !f.IsRequired() && !strings.HasPrefix(typ, "option<") {
		typ = "option<" + typ + ">"
	}

	asserts := fieldAssertions(f.Type)
	if f.IsRequired() {
		asserts = append(asserts, "$value != NONE")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "DEFINE FIELD %s ON %s TYPE %s", f.Name, table, typ)
	if len(asserts) > 0 {
		b.WriteString(" ASSERT ")
		b.WriteString(strings.Join(asserts, " AND "))
	}
	if dv, ok := f.Default(); ok {
		b.WriteString(" VALUE $value OR ")
		b.WriteString(defaultLiteral(dv))
	}
	b.WriteByte(';')

	out := []string{b.String()}

	if composite, ok := f.Type.(schema.CompositeType); ok {
		for _, sub := range composite.Fields {
			stmt := fmt.Sprintf("DEFINE FIELD %s.%s ON %s TYPE %s", f.Name, sub.Name, table, FieldTypeSurql(sub.Type))
			if subAsserts := fieldAssertions(sub.Type); len(subAsserts) > 0 {
				stmt += " ASSERT " + strings.Join(subAsserts, " AND ")
			}
			out = append(out, stmt+";")
		}
	}

	if f.IsIndexed() {
		out = append(out, fmt.Sprintf("DEFINE INDEX idx_%s_%s ON %s FIELDS %s;", table, f.Name, table, f.Name))
	}
	return out
}

// defaultLiteral renders a field default for a VALUE clause. Defaults
// come from validated source literals, so strings embed as-is.
func defaultLiteral(d schema.DefaultValue) string {
	switch d.Kind() {
	case schema.DefaultString:
		return "'" + d.AsString() + "'"
	case schema.DefaultInteger:
		return strconv.FormatInt(d.AsInt(), 10)
	case schema.DefaultFloat:
		return d.FloatSource()
	case schema.DefaultBoolean:
		return strconv.FormatBool(d.AsBool())
	default:
		return "NONE"
	}
}
