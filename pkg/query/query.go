package query

import (
	"fmt"
	"strings"

	"github.com/schemaforge/forge/pkg/schema"
)

// SortOrder is the direction of one sort key.
type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

func (o SortOrder) String() string {
	if o == Descending {
		return "DESC"
	}
	return "ASC"
}

// SortKey orders results by one field path.
type SortKey struct {
	Path  FieldPath
	Order SortOrder
}

// Query selects records of one schema: an optional filter, sort keys
// in priority order and an optional limit and offset. The zero filter
// (nil) selects everything.
type Query struct {
	Schema schema.SchemaID
	Filter Filter
	Sort   []SortKey
	Limit  *int
	Offset *int
}

// NewQuery builds an unfiltered query over the schema.
func NewQuery(id schema.SchemaID) Query {
	return Query{Schema: id}
}

// WithFilter returns a copy with the filter replaced.
func (q Query) WithFilter(f Filter) Query {
	q.Filter = f
	return q
}

// WithSort returns a copy with a sort key appended.
func (q Query) WithSort(path FieldPath, order SortOrder) Query {
	q.Sort = append(append([]SortKey{}, q.Sort...), SortKey{Path: path, Order: order})
	return q
}

// WithLimit returns a copy capped at n results.
func (q Query) WithLimit(n int) Query {
	q.Limit = &n
	return q
}

// WithOffset returns a copy skipping the first n results.
func (q Query) WithOffset(n int) Query {
	q.Offset = &n
	return q
}

// Validate checks structural invariants independent of any schema. A
// declared limit must be greater than zero.
func (q Query) Validate() error {
	if q.Limit != nil && *q.Limit <= 0 {
		return &InvalidLimitError{Limit: *q.Limit}
	}
	return nil
}

func (q Query) String() string {
	var b strings.Builder
	b.WriteString("SELECT * FROM ")
	b.WriteString(q.Schema.String())
	if q.Filter != nil {
		b.WriteString(" WHERE ")
		b.WriteString(q.Filter.String())
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
	return b.String()
}
