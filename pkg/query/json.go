package query

import (
	"encoding/json"
	"fmt"

	"github.com/schemaforge/forge/pkg/schema"
)

// JSON encoding of queries. Filters and aggregate operations encode as
// tagged objects with an "op" discriminator; decoding re-validates
// paths and values through their constructors.

type filterJSON struct {
	Op      string            `json:"op"`
	Path    string            `json:"path,omitempty"`
	Value   *json.RawMessage  `json:"value,omitempty"`
	Text    string            `json:"text,omitempty"`
	Values  []json.RawMessage `json:"values,omitempty"`
	Filters []json.RawMessage `json:"filters,omitempty"`
	Filter  *json.RawMessage  `json:"filter,omitempty"`
}

func comparisonJSON(op string, path FieldPath, value schema.Value) (filterJSON, error) {
	enc, err := schema.MarshalValue(value)
	if err != nil {
		return filterJSON{}, err
	}
	raw := json.RawMessage(enc)
	return filterJSON{Op: op, Path: path.String(), Value: &raw}, nil
}

// MarshalFilter encodes a filter tree as tagged JSON.
func MarshalFilter(f Filter) ([]byte, error) {
	var out filterJSON
	var err error
	switch filter := f.(type) {
	case Eq:
		out, err = comparisonJSON("eq", filter.Path, filter.Value)
	case Ne:
		out, err = comparisonJSON("ne", filter.Path, filter.Value)
	case Gt:
		out, err = comparisonJSON("gt", filter.Path, filter.Value)
	case Gte:
		out, err = comparisonJSON("gte", filter.Path, filter.Value)
	case Lt:
		out, err = comparisonJSON("lt", filter.Path, filter.Value)
	case Lte:
		out, err = comparisonJSON("lte", filter.Path, filter.Value)
	case Contains:
		out = filterJSON{Op: "contains", Path: filter.Path.String(), Text: filter.Value}
	case StartsWith:
		out = filterJSON{Op: "starts_with", Path: filter.Path.String(), Text: filter.Value}
	case In:
		out = filterJSON{Op: "in", Path: filter.Path.String()}
		for _, v := range filter.Values {
			enc, encErr := schema.MarshalValue(v)
			if encErr != nil {
				return nil, encErr
			}
			out.Values = append(out.Values, json.RawMessage(enc))
		}
	case And:
		out = filterJSON{Op: "and"}
		out.Filters, err = marshalFilterList(filter.Filters)
	case Or:
		out = filterJSON{Op: "or"}
		out.Filters, err = marshalFilterList(filter.Filters)
	case Not:
		enc, encErr := MarshalFilter(filter.Inner)
		if encErr != nil {
			return nil, encErr
		}
		raw := json.RawMessage(enc)
		out = filterJSON{Op: "not", Filter: &raw}
	default:
		return nil, fmt.Errorf("cannot encode filter %T", f)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(out)
}

func marshalFilterList(filters []Filter) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(filters))
	for _, f := range filters {
		enc, err := MarshalFilter(f)
		if err != nil {
			return nil, err
		}
		out = append(out, json.RawMessage(enc))
	}
	return out, nil
}

// UnmarshalFilter decodes a tagged filter object.
func UnmarshalFilter(data []byte) (Filter, error) {
	var in filterJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, err
	}

	switch in.Op {
	case "eq", "ne", "gt", "gte", "lt", "lte":
		path, err := ParseFieldPath(in.Path)
		if err != nil {
			return nil, err
		}
		if in.Value == nil {
			return nil, fmt.Errorf("%s filter missing value", in.Op)
		}
		value, err := schema.UnmarshalValue(*in.Value)
		if err != nil {
			return nil, err
		}
		switch in.Op {
		case "eq":
			return Eq{Path: path, Value: value}, nil
		case "ne":
			return Ne{Path: path, Value: value}, nil
		case "gt":
			return Gt{Path: path, Value: value}, nil
		case "gte":
			return Gte{Path: path, Value: value}, nil
		case "lt":
			return Lt{Path: path, Value: value}, nil
		default:
			return Lte{Path: path, Value: value}, nil
		}
	case "contains":
		path, err := ParseFieldPath(in.Path)
		if err != nil {
			return nil, err
		}
		return Contains{Path: path, Value: in.Text}, nil
	case "starts_with":
		path, err := ParseFieldPath(in.Path)
		if err != nil {
			return nil, err
		}
		return StartsWith{Path: path, Value: in.Text}, nil
	case "in":
		path, err := ParseFieldPath(in.Path)
		if err != nil {
			return nil, err
		}
		values := make([]schema.Value, 0, len(in.Values))
		for _, raw := range in.Values {
			v, err := schema.UnmarshalValue(raw)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		return In{Path: path, Values: values}, nil
	case "and", "or":
		filters := make([]Filter, 0, len(in.Filters))
		for _, raw := range in.Filters {
			f, err := UnmarshalFilter(raw)
			if err != nil {
				return nil, err
			}
			filters = append(filters, f)
		}
		if in.Op == "and" {
			return And{Filters: filters}, nil
		}
		return Or{Filters: filters}, nil
	case "not":
		if in.Filter == nil {
			return nil, fmt.Errorf("not filter missing inner filter")
		}
		inner, err := UnmarshalFilter(*in.Filter)
		if err != nil {
			return nil, err
		}
		return Not{Inner: inner}, nil
	default:
		return nil, fmt.Errorf("unknown filter op %q", in.Op)
	}
}

type sortJSON struct {
	Path  FieldPath `json:"path"`
	Order string    `json:"order"`
}

type queryJSON struct {
	Schema schema.SchemaID  `json:"schema"`
	Filter *json.RawMessage `json:"filter,omitempty"`
	Sort   []sortJSON       `json:"sort,omitempty"`
	Limit  *int             `json:"limit,omitempty"`
	Offset *int             `json:"offset,omitempty"`
}

func (q Query) MarshalJSON() ([]byte, error) {
	out := queryJSON{Schema: q.Schema, Limit: q.Limit, Offset: q.Offset}
	if q.Filter != nil {
		enc, err := MarshalFilter(q.Filter)
		if err != nil {
			return nil, err
		}
		raw := json.RawMessage(enc)
		out.Filter = &raw
	}
	for _, key := range q.Sort {
		order := "asc"
		if key.Order == Descending {
			order = "desc"
		}
		out.Sort = append(out.Sort, sortJSON{Path: key.Path, Order: order})
	}
	return json.Marshal(out)
}

func (q *Query) UnmarshalJSON(data []byte) error {
	var in queryJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	out := Query{Schema: in.Schema, Limit: in.Limit, Offset: in.Offset}
	if in.Filter != nil {
		f, err := UnmarshalFilter(*in.Filter)
		if err != nil {
			return err
		}
		out.Filter = f
	}
	for _, key := range in.Sort {
		order := Ascending
		switch key.Order {
		case "asc", "":
		case "desc":
			order = Descending
		default:
			return fmt.Errorf("unknown sort order %q", key.Order)
		}
		out.Sort = append(out.Sort, SortKey{Path: key.Path, Order: order})
	}
	*q = out
	return nil
}

type aggregateOpJSON struct {
	Op    string `json:"op"`
	Field string `json:"field,omitempty"`
}

type aggregateJSON struct {
	Schema schema.SchemaID   `json:"schema"`
	Ops    []aggregateOpJSON `json:"ops"`
	Filter *json.RawMessage  `json:"filter,omitempty"`
}

func (q AggregateQuery) MarshalJSON() ([]byte, error) {
	out := aggregateJSON{Schema: q.Schema}
	for _, op := range q.Ops {
		switch agg := op.(type) {
		case Count:
			out.Ops = append(out.Ops, aggregateOpJSON{Op: "count"})
		case Sum:
			out.Ops = append(out.Ops, aggregateOpJSON{Op: "sum", Field: agg.Field.String()})
		case Avg:
			out.Ops = append(out.Ops, aggregateOpJSON{Op: "avg", Field: agg.Field.String()})
		default:
			return nil, fmt.Errorf("cannot encode aggregate op %T", op)
		}
	}
	if q.Filter != nil {
		enc, err := MarshalFilter(q.Filter)
		if err != nil {
			return nil, err
		}
		raw := json.RawMessage(enc)
		out.Filter = &raw
	}
	return json.Marshal(out)
}

func (q *AggregateQuery) UnmarshalJSON(data []byte) error {
	var in aggregateJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	out := AggregateQuery{Schema: in.Schema}
	for _, op := range in.Ops {
		switch op.Op {
		case "count":
			out.Ops = append(out.Ops, Count{})
		case "sum", "avg":
			field, err := ParseFieldPath(op.Field)
			if err != nil {
				return err
			}
			if op.Op == "sum" {
				out.Ops = append(out.Ops, Sum{Field: field})
			} else {
				out.Ops = append(out.Ops, Avg{Field: field})
			}
		default:
			return fmt.Errorf("unknown aggregate op %q", op.Op)
		}
	}
	if in.Filter != nil {
		f, err := UnmarshalFilter(*in.Filter)
		if err != nil {
			return err
		}
		out.Filter = f
	}
	*q = out
	return nil
}
