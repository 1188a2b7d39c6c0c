package migrate

import (
	"fmt"
	"strconv"

	"github.com/schemaforge/forge/pkg/schema"
)

// Step is a single, atomic migration operation. The set of
// implementations is closed within this package; consumers matching on
// steps should degrade gracefully on unrecognized variants.
type Step interface {
	isStep()
	// Safety classifies how risky applying the step is.
	Safety() Safety
	// String renders the step as one human-readable line.
	String() string
}

// CreateSchema creates a new schema table with its full field list.
type CreateSchema struct {
	Name   schema.SchemaName
	Fields []schema.FieldDefinition
}

func (CreateSchema) isStep()          {}
func (CreateSchema) Safety() Safety   { return Safe }
func (s CreateSchema) String() string {
	return "CREATE schema '" + s.Name.String() + "' with " + strconv.Itoa(len(s.Fields)) + " fields"
}

// DropSchema removes an entire schema table.
type DropSchema struct {
	Name schema.SchemaName
}

func (DropSchema) isStep()          {}
func (DropSchema) Safety() Safety   { return Destructive }
func (s DropSchema) String() string { return "DROP schema '" + s.Name.String() + "'" }

// AddField adds a new non-relation field.
type AddField struct {
	Field schema.FieldDefinition
}

func (AddField) isStep()          {}
func (AddField) Safety() Safety   { return Safe }
func (s AddField) String() string { return "ADD field '" + s.Field.Name.String() + "'" }

// RemoveField drops a non-relation field and its data.
type RemoveField struct {
	Name schema.FieldName
}

func (RemoveField) isStep()          {}
func (RemoveField) Safety() Safety   { return Destructive }
func (s RemoveField) String() string { return "REMOVE field '" + s.Name.String() + "'" }

// RenameField renames a field in place.
type RenameField struct {
	OldName schema.FieldName
	NewName schema.FieldName
}

func (RenameField) isStep()        {}
func (RenameField) Safety() Safety { return RequiresConfirmation }
func (s RenameField) String() string {
	return "RENAME field '" + s.OldName.String() + "' to '" + s.NewName.String() + "'"
}

// ChangeType retypes a field, converting existing values through the
// transform.
type ChangeType struct {
	Name      schema.FieldName
	OldType   schema.FieldType
	NewType   schema.FieldType
	Transform ValueTransform
}

func (ChangeType) isStep()        {}
func (ChangeType) Safety() Safety { return RequiresConfirmation }
func (s ChangeType) String() string {
	return fmt.Sprintf("CHANGE TYPE of '%s' from %s to %s via %s",
		s.Name, s.OldType, s.NewType, s.Transform)
}

// AddIndex creates an index on a field.
type AddIndex struct {
	Field schema.FieldName
}

func (AddIndex) isStep()          {}
func (AddIndex) Safety() Safety   { return Safe }
func (s AddIndex) String() string { return "ADD INDEX on '" + s.Field.String() + "'" }

// RemoveIndex drops an index; queries depending on it degrade.
type RemoveIndex struct {
	Field schema.FieldName
}

func (RemoveIndex) isStep()          {}
func (RemoveIndex) Safety() Safety   { return RequiresConfirmation }
func (s RemoveIndex) String() string { return "REMOVE INDEX on '" + s.Field.String() + "'" }

// AddRelation adds a relation field pointing at another schema.
type AddRelation struct {
	Name        schema.FieldName
	Target      schema.SchemaName
	Cardinality schema.Cardinality
}

func (AddRelation) isStep()        {}
func (AddRelation) Safety() Safety { return Safe }
func (s AddRelation) String() string {
	return fmt.Sprintf("ADD RELATION '%s' -> %s (%s)", s.Name, s.Target, s.Cardinality)
}

// RemoveRelation drops a relation field and its links.
type RemoveRelation struct {
	Name schema.FieldName
}

func (RemoveRelation) isStep()          {}
func (RemoveRelation) Safety() Safety   { return Destructive }
func (s RemoveRelation) String() string { return "REMOVE RELATION '" + s.Name.String() + "'" }

// BackfillRequired fills a newly required field on existing records.
type BackfillRequired struct {
	Field        schema.FieldName
	DefaultValue schema.Value
}

func (BackfillRequired) isStep()        {}
func (BackfillRequired) Safety() Safety { return RequiresConfirmation }
func (s BackfillRequired) String() string {
	return fmt.Sprintf("BACKFILL '%s' with %s", s.Field, s.DefaultValue)
}

// AddRequired marks an existing field required; existing records may
// violate it.
type AddRequired struct {
	Field schema.FieldName
}

func (AddRequired) isStep()          {}
func (AddRequired) Safety() Safety   { return RequiresConfirmation }
func (s AddRequired) String() string { return "ADD REQUIRED on '" + s.Field.String() + "'" }

// RemoveRequired lifts the required constraint from a field.
type RemoveRequired struct {
	Field schema.FieldName
}

func (RemoveRequired) isStep()          {}
func (RemoveRequired) Safety() Safety   { return Safe }
func (s RemoveRequired) String() string { return "REMOVE REQUIRED on '" + s.Field.String() + "'" }

// SetFieldDefault sets or replaces a field's default value.
type SetFieldDefault struct {
	Field schema.FieldName
	Value schema.DefaultValue
}

func (SetFieldDefault) isStep()        {}
func (SetFieldDefault) Safety() Safety { return Safe }
func (s SetFieldDefault) String() string {
	return "SET DEFAULT on '" + s.Field.String() + "' to " + s.Value.String()
}

// RemoveFieldDefault removes a field's default value.
type RemoveFieldDefault struct {
	Field schema.FieldName
}

func (RemoveFieldDefault) isStep()          {}
func (RemoveFieldDefault) Safety() Safety   { return Safe }
func (s RemoveFieldDefault) String() string { return "REMOVE DEFAULT on '" + s.Field.String() + "'" }
