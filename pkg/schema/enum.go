package schema

import "encoding/json"

// EnumVariants is a validated, non-empty list of distinct enum variant
// names. Variant order is the declaration order and is preserved.
type EnumVariants struct {
	values []string
}

// NewEnumVariants validates that variants is non-empty, that no variant
// is an empty string, and that no variant repeats.
func NewEnumVariants(variants []string) (EnumVariants, error) {
	if len(variants) == 0 {
		return EnumVariants{}, ErrEmptyEnumVariants
	}
	seen := make(map[string]struct{}, len(variants))
	for _, v := range variants {
		if v == "" {
			return EnumVariants{}, ErrEmptyEnumVariant
		}
		if _, dup := seen[v]; dup {
			return EnumVariants{}, &DuplicateEnumVariantError{Variant: v}
		}
		seen[v] = struct{}{}
	}
	values := make([]string, len(variants))
	copy(values, variants)
	return EnumVariants{values: values}, nil
}

// MustEnumVariants is like NewEnumVariants but panics on invalid input.
func MustEnumVariants(variants ...string) EnumVariants {
	ev, err := NewEnumVariants(variants)
	if err != nil {
		panic(err)
	}
	return ev
}

// Slice returns a copy of the variant names in declaration order.
func (e EnumVariants) Slice() []string {
	out := make([]string, len(e.values))
	copy(out, e.values)
	return out
}

// Len returns the number of variants.
func (e EnumVariants) Len() int { return len(e.values) }

// Contains reports whether name is one of the variants.
func (e EnumVariants) Contains(name string) bool {
	for _, v := range e.values {
		if v == name {
			return true
		}
	}
	return false
}

// Equal reports whether both lists hold the same variants in the same
// order.
func (e EnumVariants) Equal(other EnumVariants) bool {
	if len(e.values) != len(other.values) {
		return false
	}
	for i, v := range e.values {
		if other.values[i] != v {
			return false
		}
	}
	return true
}

func (e EnumVariants) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.values)
}

func (e *EnumVariants) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	ev, err := NewEnumVariants(values)
	if err != nil {
		return err
	}
	*e = ev
	return nil
}
