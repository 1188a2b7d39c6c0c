// Package query defines the typed query representation: dotted field
// paths, filter trees, sort keys and aggregates over a schema. Queries
// are built programmatically, validated against a schema definition
// and compiled to backend statements elsewhere.
package query

import (
	"encoding/json"
	"strings"

	"github.com/schemaforge/forge/pkg/schema"
)

// FieldPath addresses a field, possibly nested inside a composite, as
// a non-empty list of segments. The dotted form "address.city" is the
// canonical rendering.
type FieldPath struct {
	segments []string
}

// ParseFieldPath parses a dotted path. The path must be non-empty and
// every segment between dots must be non-empty.
func ParseFieldPath(s string) (FieldPath, error) {
	if s == "" {
		return FieldPath{}, ErrEmptyFieldPath
	}
	segments := strings.Split(s, ".")
	for _, seg := range segments {
		if seg == "" {
			return FieldPath{}, &InvalidFieldPathError{Path: s, Reason: "path contains empty segment"}
		}
	}
	return FieldPath{segments: segments}, nil
}

// FromSegments builds a path from pre-split segments.
func FromSegments(segments []string) (FieldPath, error) {
	if len(segments) == 0 {
		return FieldPath{}, ErrEmptyFieldPath
	}
	joined := strings.Join(segments, ".")
	for _, seg := range segments {
		if seg == "" {
			return FieldPath{}, &InvalidFieldPathError{Path: joined, Reason: "path contains empty segment"}
		}
	}
	return FieldPath{segments: append([]string{}, segments...)}, nil
}

// Single builds a one-segment path from a validated field name.
func Single(name schema.FieldName) FieldPath {
	return FieldPath{segments: []string{name.String()}}
}

// MustFieldPath parses a dotted path and panics on error. For tests
// and compile-time constants.
func MustFieldPath(s string) FieldPath {
	p, err := ParseFieldPath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Segments returns a copy of the path segments.
func (p FieldPath) Segments() []string {
	return append([]string{}, p.segments...)
}

// Depth returns the number of segments.
func (p FieldPath) Depth() int { return len(p.segments) }

// IsSimple reports whether the path addresses a top-level field.
func (p FieldPath) IsSimple() bool { return len(p.segments) == 1 }

// Root returns the first segment, the top-level field name.
func (p FieldPath) Root() string {
	if len(p.segments) == 0 {
		return ""
	}
	return p.segments[0]
}

// Leaf returns the last segment.
func (p FieldPath) Leaf() string {
	if len(p.segments) == 0 {
		return ""
	}
	return p.segments[len(p.segments)-1]
}

// IsZero reports whether the path is the uninitialized zero value.
func (p FieldPath) IsZero() bool { return len(p.segments) == 0 }

func (p FieldPath) String() string {
	return strings.Join(p.segments, ".")
}

func (p FieldPath) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *FieldPath) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseFieldPath(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
