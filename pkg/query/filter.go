package query

import (
	"strconv"
	"strings"

	"github.com/schemaforge/forge/pkg/schema"
)

// Filter is a predicate over record fields. Implementations are the
// closed set of variants below; And, Or and Not nest recursively.
// Consumers switch on the concrete type and keep a default arm.
type Filter interface {
	isFilter()
	// String renders the filter for display. It is not backend query
	// text; compilation lives elsewhere.
	String() string
}

// Eq matches records whose field equals the value.
type Eq struct {
	Path  FieldPath
	Value schema.Value
}

// Ne matches records whose field differs from the value.
type Ne struct {
	Path  FieldPath
	Value schema.Value
}

// Gt matches records whose field is greater than the value.
type Gt struct {
	Path  FieldPath
	Value schema.Value
}

// Gte matches records whose field is greater than or equal to the value.
type Gte struct {
	Path  FieldPath
	Value schema.Value
}

// Lt matches records whose field is less than the value.
type Lt struct {
	Path  FieldPath
	Value schema.Value
}

// Lte matches records whose field is less than or equal to the value.
type Lte struct {
	Path  FieldPath
	Value schema.Value
}

// Contains matches text fields containing the substring.
type Contains struct {
	Path  FieldPath
	Value string
}

// StartsWith matches text fields beginning with the prefix.
type StartsWith struct {
	Path  FieldPath
	Value string
}

// In matches records whose field equals any of the values. The value
// list must be non-empty to validate.
type In struct {
	Path   FieldPath
	Values []schema.Value
}

// And matches records satisfying every member filter.
type And struct {
	Filters []Filter
}

// Or matches records satisfying at least one member filter.
type Or struct {
	Filters []Filter
}

// Not matches records failing the inner filter.
type Not struct {
	Inner Filter
}

func (Eq) isFilter()         {}
func (Ne) isFilter()         {}
func (Gt) isFilter()         {}
func (Gte) isFilter()        {}
func (Lt) isFilter()         {}
func (Lte) isFilter()        {}
func (Contains) isFilter()   {}
func (StartsWith) isFilter() {}
func (In) isFilter()         {}
func (And) isFilter()        {}
func (Or) isFilter()         {}
func (Not) isFilter()        {}

// displayValue renders a value inside a filter. Text is quoted so that
// "name = "Jane"" reads unambiguously; enum variants stay bare.
func displayValue(v schema.Value) string {
	if t, ok := v.(schema.TextValue); ok {
		return strconv.Quote(string(t))
	}
	return v.String()
}

func comparison(path FieldPath, op string, value schema.Value) string {
	return path.String() + " " + op + " " + displayValue(value)
}

func (f Eq) String() string  { return comparison(f.Path, "=", f.Value) }
func (f Ne) String() string  { return comparison(f.Path, "!=", f.Value) }
func (f Gt) String() string  { return comparison(f.Path, ">", f.Value) }
func (f Gte) String() string { return comparison(f.Path, ">=", f.Value) }
func (f Lt) String() string  { return comparison(f.Path, "<", f.Value) }
func (f Lte) String() string { return comparison(f.Path, "<=", f.Value) }

func (f Contains) String() string {
	return f.Path.String() + " CONTAINS " + strconv.Quote(f.Value)
}

func (f StartsWith) String() string {
	return f.Path.String() + " STARTS WITH " + strconv.Quote(f.Value)
}

func (f In) String() string {
	var b strings.Builder
	b.WriteString(f.Path.String())
	b.WriteString(" IN [")
	for i, v := range f.Values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(displayValue(v))
	}
	b.WriteByte(']')
	return b.String()
}

func joinFilters(filters []Filter, sep string) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, f := range filters {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(f.String())
	}
	b.WriteByte(')')
	return b.String()
}

func (f And) String() string { return joinFilters(f.Filters, " AND ") }
func (f Or) String() string  { return joinFilters(f.Filters, " OR ") }

func (f Not) String() string {
	return "NOT (" + f.Inner.String() + ")"
}
