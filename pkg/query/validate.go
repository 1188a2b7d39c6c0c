package query

import "github.com/schemaforge/forge/pkg/schema"

// ValidateFilter checks a filter tree against a schema definition and
// collects every violation rather than stopping at the first. Nested
// paths are resolved to their root field only; sub-field types inside
// composites are not checked.
func ValidateFilter(f Filter, s schema.SchemaDefinition) error {
	var errs Errors
	walkFilter(f, s, &errs)
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func walkFilter(f Filter, s schema.SchemaDefinition, errs *Errors) {
	switch filter := f.(type) {
	case Eq:
		checkComparison(filter.Path, filter.Value, s, errs)
	case Ne:
		checkComparison(filter.Path, filter.Value, s, errs)
	case Gt:
		checkComparison(filter.Path, filter.Value, s, errs)
	case Gte:
		checkComparison(filter.Path, filter.Value, s, errs)
	case Lt:
		checkComparison(filter.Path, filter.Value, s, errs)
	case Lte:
		checkComparison(filter.Path, filter.Value, s, errs)
	case Contains:
		checkTextual(filter.Path, s, errs)
	case StartsWith:
		checkTextual(filter.Path, s, errs)
	case In:
		if len(filter.Values) == 0 {
			*errs = append(*errs, &EmptyInValuesError{Field: filter.Path.String()})
		}
		for _, v := range filter.Values {
			checkComparison(filter.Path, v, s, errs)
		}
	case And:
		for _, member := range filter.Filters {
			walkFilter(member, s, errs)
		}
	case Or:
		for _, member := range filter.Filters {
			walkFilter(member, s, errs)
		}
	case Not:
		walkFilter(filter.Inner, s, errs)
	}
}

// resolveRoot looks up the path's top-level field. On failure it
// records an error and reports false.
func resolveRoot(path FieldPath, s schema.SchemaDefinition, errs *Errors) (schema.FieldDefinition, bool) {
	for _, field := range s.Fields {
		if field.Name.String() == path.Root() {
			return field, true
		}
	}
	*errs = append(*errs, &UnknownFieldError{Field: path.String(), Schema: s.Name.String()})
	return schema.FieldDefinition{}, false
}

func checkComparison(path FieldPath, value schema.Value, s schema.SchemaDefinition, errs *Errors) {
	field, ok := resolveRoot(path, s, errs)
	if !ok || !path.IsSimple() {
		return
	}
	if !valueCompatible(field.Type, value) {
		*errs = append(*errs, &TypeMismatchError{
			Field:    path.String(),
			Expected: typeLabel(field.Type),
			Actual:   valueLabel(value),
		})
	}
}

func checkTextual(path FieldPath, s schema.SchemaDefinition, errs *Errors) {
	field, ok := resolveRoot(path, s, errs)
	if !ok || !path.IsSimple() {
		return
	}
	switch field.Type.(type) {
	case schema.TextType, schema.RichTextType, schema.EnumType:
	default:
		*errs = append(*errs, &TypeMismatchError{
			Field:    path.String(),
			Expected: "text",
			Actual:   typeLabel(field.Type),
		})
	}
}

// valueCompatible reports whether a filter value can be compared with
// a field of the given type. Null compares with anything. Float fields
// accept integer literals; enum fields accept variant names given as
// enum or text values. Structured types accept any value since their
// contents are not modeled here.
func valueCompatible(t schema.FieldType, v schema.Value) bool {
	if schema.IsNull(v) {
		return true
	}
	switch t.(type) {
	case schema.TextType, schema.RichTextType:
		_, ok := v.(schema.TextValue)
		return ok
	case schema.IntegerType:
		_, ok := v.(schema.IntegerValue)
		return ok
	case schema.FloatType:
		switch v.(type) {
		case schema.FloatValue, schema.IntegerValue:
			return true
		}
		return false
	case schema.BooleanType:
		_, ok := v.(schema.BooleanValue)
		return ok
	case schema.DateTimeType:
		_, ok := v.(schema.DateTimeValue)
		return ok
	case schema.EnumType:
		switch v.(type) {
		case schema.EnumValue, schema.TextValue:
			return true
		}
		return false
	default:
		return true
	}
}

func typeLabel(t schema.FieldType) string {
	switch t.(type) {
	case schema.TextType:
		return "text"
	case schema.RichTextType:
		return "richtext"
	case schema.IntegerType:
		return "integer"
	case schema.FloatType:
		return "float"
	case schema.BooleanType:
		return "boolean"
	case schema.DateTimeType:
		return "datetime"
	case schema.EnumType:
		return "enum"
	case schema.JSONType:
		return "json"
	case schema.RelationType:
		return "relation"
	case schema.ArrayType:
		return "array"
	case schema.CompositeType:
		return "composite"
	default:
		return "unknown"
	}
}

func valueLabel(v schema.Value) string {
	switch v.(type) {
	case schema.NullValue:
		return "null"
	case schema.TextValue:
		return "text"
	case schema.IntegerValue:
		return "integer"
	case schema.FloatValue:
		return "float"
	case schema.BooleanValue:
		return "boolean"
	case schema.DateTimeValue:
		return "datetime"
	case schema.EnumValue:
		return "enum"
	case schema.JSONValue:
		return "json"
	case schema.ArrayValue:
		return "array"
	case schema.CompositeValue:
		return "composite"
	case schema.RefValue:
		return "ref"
	case schema.RefArrayValue:
		return "ref_array"
	default:
		return "unknown"
	}
}
