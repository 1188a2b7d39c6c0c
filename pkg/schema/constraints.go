package schema

// TextConstraints limits a text field. All limits are optional.
type TextConstraints struct {
	MaxLength *uint32 `json:"max_length,omitempty"`
}

// WithMaxLength returns a copy with the maximum length set.
func (c TextConstraints) WithMaxLength(n uint32) TextConstraints {
	c.MaxLength = &n
	return c
}

// Equal reports whether both constraint sets are equivalent.
func (c TextConstraints) Equal(other TextConstraints) bool {
	return eqUint32Ptr(c.MaxLength, other.MaxLength)
}

// IntegerConstraints limits an integer field to an inclusive range.
type IntegerConstraints struct {
	Min *int64 `json:"min,omitempty"`
	Max *int64 `json:"max,omitempty"`
}

// NewIntegerRange builds constraints with both bounds set, validating
// min <= max.
func NewIntegerRange(min, max int64) (IntegerConstraints, error) {
	if min > max {
		return IntegerConstraints{}, &InvalidIntegerRangeError{Min: min, Max: max}
	}
	return IntegerConstraints{Min: &min, Max: &max}, nil
}

// WithMin returns a copy with the lower bound set.
func (c IntegerConstraints) WithMin(min int64) IntegerConstraints {
	c.Min = &min
	return c
}

// WithMax returns a copy with the upper bound set.
func (c IntegerConstraints) WithMax(max int64) IntegerConstraints {
	c.Max = &max
	return c
}

// Validate checks that min <= max when both bounds are present.
func (c IntegerConstraints) Validate() error {
	if c.Min != nil && c.Max != nil && *c.Min > *c.Max {
		return &InvalidIntegerRangeError{Min: *c.Min, Max: *c.Max}
	}
	return nil
}

// Equal reports whether both constraint sets are equivalent.
func (c IntegerConstraints) Equal(other IntegerConstraints) bool {
	return eqInt64Ptr(c.Min, other.Min) && eqInt64Ptr(c.Max, other.Max)
}

// FloatConstraints limits a float field.
type FloatConstraints struct {
	// Precision is the number of decimal places kept when rendering.
	Precision *uint8 `json:"precision,omitempty"`
}

// WithPrecision returns a copy with the precision set.
func (c FloatConstraints) WithPrecision(p uint8) FloatConstraints {
	c.Precision = &p
	return c
}

// Equal reports whether both constraint sets are equivalent.
func (c FloatConstraints) Equal(other FloatConstraints) bool {
	return eqUint8Ptr(c.Precision, other.Precision)
}

func eqUint32Ptr(a, b *uint32) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqInt64Ptr(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqUint8Ptr(a, b *uint8) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
