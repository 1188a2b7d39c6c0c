package query

import "github.com/schemaforge/forge/pkg/schema"

// AggregateOp is one aggregation over matching records.
type AggregateOp interface {
	isAggregateOp()
	String() string
}

// Count counts matching records.
type Count struct{}

// Sum totals a numeric field across matching records.
type Sum struct {
	Field FieldPath
}

// Avg averages a numeric field across matching records.
type Avg struct {
	Field FieldPath
}

func (Count) isAggregateOp() {}
func (Sum) isAggregateOp()   {}
func (Avg) isAggregateOp()   {}

func (Count) String() string { return "count" }
func (a Sum) String() string { return "sum(" + a.Field.String() + ")" }
func (a Avg) String() string { return "avg(" + a.Field.String() + ")" }

// AggregateQuery computes one or more aggregates over records of one
// schema, optionally restricted by a filter.
type AggregateQuery struct {
	Schema schema.SchemaID
	Ops    []AggregateOp
	Filter Filter
}

// NewAggregateQuery builds an aggregate query with no operations yet.
func NewAggregateQuery(id schema.SchemaID) AggregateQuery {
	return AggregateQuery{Schema: id}
}

// WithOp returns a copy with the operation appended.
func (q AggregateQuery) WithOp(op AggregateOp) AggregateQuery {
	q.Ops = append(append([]AggregateOp{}, q.Ops...), op)
	return q
}

// WithFilter returns a copy with the filter replaced.
func (q AggregateQuery) WithFilter(f Filter) AggregateQuery {
	q.Filter = f
	return q
}
