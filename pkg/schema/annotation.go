package schema

import (
	"strconv"
	"strings"
)

// Annotation kinds, as returned by Kind(). A schema carries at most one
// annotation of each kind, and likewise for field annotations.
const (
	KindVersion     = "version"
	KindDisplay     = "display"
	KindSystem      = "system"
	KindAccess      = "access"
	KindOwner       = "owner"
	KindFieldAccess = "field_access"
)

// Annotation is a schema-level directive written as @name(...) above
// the schema body.
type Annotation interface {
	// Kind is the annotation's name, used for duplicate detection.
	Kind() string
	// String renders the annotation in its source form.
	String() string
}

// VersionAnnotation pins the schema's declared version.
type VersionAnnotation struct {
	Version Version
}

func (VersionAnnotation) Kind() string { return KindVersion }
func (a VersionAnnotation) String() string {
	return "@version(" + strconv.FormatUint(uint64(a.Version.Uint32()), 10) + ")"
}

// DisplayAnnotation names the field shown when a record is summarized.
type DisplayAnnotation struct {
	Field FieldName
}

func (DisplayAnnotation) Kind() string { return KindDisplay }
func (a DisplayAnnotation) String() string {
	return `@display("` + a.Field.String() + `")`
}

// SystemAnnotation marks a schema as system-defined and not user
// editable.
type SystemAnnotation struct{}

func (SystemAnnotation) Kind() string   { return KindSystem }
func (SystemAnnotation) String() string { return "@system" }

// AccessAnnotation lists the roles allowed to read, write and delete
// records of the schema.
type AccessAnnotation struct {
	Read   []string
	Write  []string
	Delete []string
}

func (AccessAnnotation) Kind() string { return KindAccess }
func (a AccessAnnotation) String() string {
	return "@access(read: " + formatRoleList(a.Read) +
		", write: " + formatRoleList(a.Write) +
		", delete: " + formatRoleList(a.Delete) + ")"
}

// AnnotationsEqual reports whether two schema annotations are the same.
func AnnotationsEqual(a, b Annotation) bool {
	switch av := a.(type) {
	case VersionAnnotation:
		bv, ok := b.(VersionAnnotation)
		return ok && av.Version == bv.Version
	case DisplayAnnotation:
		bv, ok := b.(DisplayAnnotation)
		return ok && av.Field == bv.Field
	case SystemAnnotation:
		_, ok := b.(SystemAnnotation)
		return ok
	case AccessAnnotation:
		bv, ok := b.(AccessAnnotation)
		return ok && eqStrings(av.Read, bv.Read) &&
			eqStrings(av.Write, bv.Write) && eqStrings(av.Delete, bv.Delete)
	default:
		return false
	}
}

// FieldAnnotation is a directive attached to a single field.
type FieldAnnotation interface {
	// Kind is the annotation's name, used for duplicate detection.
	Kind() string
	// String renders the annotation in its source form.
	String() string
}

// OwnerAnnotation marks a relation field as the record's owner.
type OwnerAnnotation struct{}

func (OwnerAnnotation) Kind() string   { return KindOwner }
func (OwnerAnnotation) String() string { return "@owner" }

// FieldAccessAnnotation narrows read and write roles for one field.
type FieldAccessAnnotation struct {
	Read  []string
	Write []string
}

func (FieldAccessAnnotation) Kind() string { return KindFieldAccess }
func (a FieldAccessAnnotation) String() string {
	return "@field_access(read: " + formatRoleList(a.Read) +
		", write: " + formatRoleList(a.Write) + ")"
}

// formatRoleList renders role names as a bracketed, quoted list.
func formatRoleList(roles []string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, r := range roles {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('"')
		b.WriteString(r)
		b.WriteByte('"')
	}
	b.WriteByte(']')
	return b.String()
}

// FieldAnnotationsEqual reports whether two field annotations are the
// same.
func FieldAnnotationsEqual(a, b FieldAnnotation) bool {
	switch av := a.(type) {
	case OwnerAnnotation:
		_, ok := b.(OwnerAnnotation)
		return ok
	case FieldAccessAnnotation:
		bv, ok := b.(FieldAccessAnnotation)
		return ok && eqStrings(av.Read, bv.Read) && eqStrings(av.Write, bv.Write)
	default:
		return false
	}
}

func eqStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
