package dsl

import "strings"

// ToPascalCase converts an arbitrary identifier to a PascalCase
// suggestion: word boundaries at underscores, hyphens, spaces, and
// lower-to-upper transitions.
func ToPascalCase(s string) string {
	var b strings.Builder
	upperNext := true
	for _, r := range s {
		switch {
		case r == '_' || r == '-' || r == ' ':
			upperNext = true
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			upperNext = false
		case r >= 'a' && r <= 'z':
			if upperNext {
				b.WriteRune(r - 'a' + 'A')
			} else {
				b.WriteRune(r)
			}
			upperNext = false
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r)
			upperNext = false
		}
	}
	return b.String()
}

// ToSnakeCase converts an arbitrary identifier to a snake_case
// suggestion: uppercase letters start a new underscore-separated word.
func ToSnakeCase(s string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range s {
		switch {
		case r == '-' || r == ' ' || r == '_':
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "_") {
				b.WriteByte('_')
			}
			prevLower = false
		case r >= 'A' && r <= 'Z':
			if prevLower {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
			prevLower = false
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
			prevLower = true
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			prevLower = true
		}
	}
	return strings.Trim(b.String(), "_")
}
