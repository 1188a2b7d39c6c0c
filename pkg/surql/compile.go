// Package surql compiles queries and migration plans to SurrealQL
// statements. Compilation is purely textual: it assumes the input was
// validated against a schema beforehand and renders table names as
// given.
package surql

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/schemaforge/forge/pkg/query"
	"github.com/schemaforge/forge/pkg/schema"
)

// CompileQuery renders a record query as a SELECT statement against
// the given table.
func CompileQuery(q query.Query, table string) string {
	var b strings.Builder
	b.WriteString("SELECT * FROM ")
	b.WriteString(table)
	if q.Filter != nil {
		b.WriteString(" WHERE ")
		b.WriteString(CompileFilter(q.Filter))
	}
	if len(q.Sort) > 0 {
		b.WriteString(" ORDER BY ")
		for i, key := range q.Sort {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(key.Path.String())
			b.WriteByte(' ')
			b.WriteString(key.Order.String())
		}
	}
	if q.Limit != nil {
		fmt.Fprintf(&b, " LIMIT %d", *q.Limit)
	}
	if q.Offset != nil {
		fmt.Fprintf(&b, " START %d", *q.Offset)
	}
	b.WriteByte(';')
	return b.String()
}

// CompileCount renders a counting variant of the query. Sort, limit
// and offset do not affect the count and are dropped.
func CompileCount(q query.Query, table string) string {
	var b strings.Builder
	b.WriteString("SELECT count() FROM ")
	b.WriteString(table)
	if q.Filter != nil {
		b.WriteString(" WHERE ")
		b.WriteString(CompileFilter(q.Filter))
	}
	b.WriteString(" GROUP ALL;")
	return b.String()
}

// CompileAggregate renders an aggregate query. Each operation becomes
// a projection aliased agg_0, agg_1, ... in declaration order.
func CompileAggregate(q query.AggregateQuery, table string) string {
	var b strings.Builder
	b.WriteString("SELECT ")
	for i, op := range q.Ops {
		if i > 0 {
			b.WriteString(", ")
		}
		switch agg := op.(type) {
		case query.Count:
			fmt.Fprintf(&b, "count() AS agg_%d", i)
		case query.Sum:
			fmt.Fprintf(&b, "math::sum(%s) AS agg_%d", agg.Field, i)
		case query.Avg:
			fmt.Fprintf(&b, "math::mean(%s) AS agg_%d", agg.Field, i)
		default:
			fmt.Fprintf(&b, "count() AS agg_%d", i)
		}
	}
	b.WriteString(" FROM ")
	b.WriteString(table)
	if q.Filter != nil {
		b.WriteString(" WHERE ")
		b.WriteString(CompileFilter(q.Filter))
	}
	b.WriteString(" GROUP ALL;")
	return b.String()
}

// CompileFilter renders a filter tree as a SurrealQL condition.
// Degenerate conjunctions collapse to constants: an empty AND matches
// everything, an empty OR matches nothing.
func CompileFilter(f query.Filter) string {
	switch filter := f.(type) {
	case query.Eq:
		return filter.Path.String() + " = " + Literal(filter.Value)
	case query.Ne:
		return filter.Path.String() + " != " + Literal(filter.Value)
	case query.Gt:
		return filter.Path.String() + " > " + Literal(filter.Value)
	case query.Gte:
		return filter.Path.String() + " >= " + Literal(filter.Value)
	case query.Lt:
		return filter.Path.String() + " < " + Literal(filter.Value)
	case query.Lte:
		return filter.Path.String() + " <= " + Literal(filter.Value)
	case query.Contains:
		return filter.Path.String() + " CONTAINS " + quote(filter.Value)
	case query.StartsWith:
		return "string::startsWith(" + filter.Path.String() + ", " + quote(filter.Value) + ")"
	case query.In:
		literals := make([]string, len(filter.Values))
		for i, v := range filter.Values {
			literals[i] = Literal(v)
		}
		return filter.Path.String() + " IN [" + strings.Join(literals, ", ") + "]"
	case query.And:
		if len(filter.Filters) == 0 {
			return "true"
		}
		return "(" + joinCompiled(filter.Filters, " AND ") + ")"
	case query.Or:
		if len(filter.Filters) == 0 {
			return "false"
		}
		return "(" + joinCompiled(filter.Filters, " OR ") + ")"
	case query.Not:
		return "!(" + CompileFilter(filter.Inner) + ")"
	default:
		return "true"
	}
}

func joinCompiled(filters []query.Filter, sep string) string {
	parts := make([]string, len(filters))
	for i, f := range filters {
		parts[i] = CompileFilter(f)
	}
	return strings.Join(parts, sep)
}

// Literal renders a runtime value as a SurrealQL literal.
func Literal(v schema.Value) string {
	switch value := v.(type) {
	case schema.NullValue:
		return "NONE"
	case schema.TextValue:
		return quote(string(value))
	case schema.EnumValue:
		return quote(string(value))
	case schema.IntegerValue:
		return strconv.FormatInt(int64(value), 10)
	case schema.FloatValue:
		return strconv.FormatFloat(float64(value), 'g', -1, 64)
	case schema.BooleanValue:
		return strconv.FormatBool(bool(value))
	case schema.DateTimeValue:
		return "d" + quote(value.String())
	case schema.JSONValue:
		return string(value)
	case schema.ArrayValue:
		elems := make([]string, len(value))
		for i, elem := range value {
			elems[i] = Literal(elem)
		}
		return "[" + strings.Join(elems, ", ") + "]"
	case schema.CompositeValue:
		entries := make([]string, len(value))
		for i, entry := range value {
			entries[i] = entry.Key + ": " + Literal(entry.Value)
		}
		return "{ " + strings.Join(entries, ", ") + " }"
	case schema.RefValue:
		return quote(value.Target.String())
	case schema.RefArrayValue:
		ids := make([]string, len(value))
		for i, id := range value {
			ids[i] = quote(id.String())
		}
		return "[" + strings.Join(ids, ", ") + "]"
	default:
		return "NONE"
	}
}

// quote single-quotes a string for SurrealQL, escaping backslashes
// before quotes so the escapes themselves survive.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}
