package token

import "fmt"

// Span is a half-open byte range [Start, End) in source text.
// Every lexer and parser diagnostic carries one.
type Span struct {
	Start int
	End   int
}

// NewSpan creates a span from start (inclusive) to end (exclusive).
func NewSpan(start, end int) Span {
	return Span{Start: start, End: end}
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Contains reports whether the span contains the given byte offset.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}
