package migrate

import (
	"github.com/schemaforge/forge/pkg/schema"
)

// Rename is an explicit (old name, new name) hint for the diff engine.
type Rename struct {
	OldName schema.FieldName
	NewName schema.FieldName
}

// CreateNew builds the plan for a brand new schema: a single
// CreateSchema step.
func CreateNew(s schema.SchemaDefinition) Plan {
	steps := []Step{CreateSchema{Name: s.Name, Fields: s.Fields}}
	return NewPlan(s.ID, s.Name, steps)
}

// Diff compares two schema definitions field by field and produces the
// plan transforming old into new. Pure: no I/O, no side effects.
// Identical inputs yield an empty plan.
func Diff(old, new schema.SchemaDefinition) Plan {
	return DiffWithRenames(old, new, nil)
}

// DiffWithRenames diffs with explicit rename hints. A hinted rename
// whose old field exists emits RenameField instead of RemoveField plus
// AddField; when the type changed as well, a ChangeType step follows
// under the new name.
//
// Step ordering is deterministic: renames, removals, additions, type
// changes, then modifier diffs (required, index, default per field).
func DiffWithRenames(old, new schema.SchemaDefinition, renames []Rename) Plan {
	var steps []Step

	steps = diffFields(old, new, renames, steps)
	steps = diffModifiers(old, new, renames, steps)

	return NewPlan(new.ID, new.Name, steps)
}

func diffFields(old, new schema.SchemaDefinition, renames []Rename, steps []Step) []Step {
	renamedFrom := make(map[schema.FieldName]schema.FieldName, len(renames))
	renamedTo := make(map[schema.FieldName]schema.FieldName, len(renames))
	for _, r := range renames {
		renamedFrom[r.OldName] = r.NewName
		renamedTo[r.NewName] = r.OldName
	}

	for _, r := range renames {
		oldField, ok := old.Field(r.OldName)
		if !ok {
			continue
		}
		steps = append(steps, RenameField{OldName: r.OldName, NewName: r.NewName})

		if newField, ok := new.Field(r.NewName); ok {
			if !schema.TypesEqual(oldField.Type, newField.Type) {
				steps = append(steps, changeType(r.NewName, oldField.Type, newField.Type))
			}
		}
	}

	// Removed fields, skipping rename sources.
	for _, oldField := range old.Fields {
		if _, hinted := renamedFrom[oldField.Name]; hinted {
			continue
		}
		if !new.HasField(oldField.Name) {
			steps = append(steps, removeField(oldField))
		}
	}

	// Added fields, skipping rename targets.
	for _, newField := range new.Fields {
		if _, hinted := renamedTo[newField.Name]; hinted {
			continue
		}
		if !old.HasField(newField.Name) {
			steps = append(steps, addField(newField))
		}
	}

	// Retyped fields (same name on both sides), skipping renamed
	// fields handled above.
	for _, newField := range new.Fields {
		if _, hinted := renamedTo[newField.Name]; hinted {
			continue
		}
		oldField, ok := old.Field(newField.Name)
		if !ok {
			continue
		}
		if !schema.TypesEqual(oldField.Type, newField.Type) {
			steps = append(steps, changeType(newField.Name, oldField.Type, newField.Type))
		}
	}

	return steps
}

func diffModifiers(old, new schema.SchemaDefinition, renames []Rename, steps []Step) []Step {
	renamedTo := make(map[schema.FieldName]schema.FieldName, len(renames))
	for _, r := range renames {
		renamedTo[r.NewName] = r.OldName
	}

	for _, newField := range new.Fields {
		// Resolve the old counterpart by name or through a rename hint.
		oldName := newField.Name
		if hinted, ok := renamedTo[newField.Name]; ok {
			oldName = hinted
		}
		oldField, ok := old.Field(oldName)
		if !ok {
			continue
		}
		// Retyped fields already carry a ChangeType step; modifier
		// diffs only apply when the type is unchanged.
		if !schema.TypesEqual(oldField.Type, newField.Type) {
			continue
		}
		steps = diffFieldModifiers(oldField, newField, steps)
	}

	return steps
}

func diffFieldModifiers(oldField, newField schema.FieldDefinition, steps []Step) []Step {
	oldRequired, newRequired := oldField.IsRequired(), newField.IsRequired()
	switch {
	case !oldRequired && newRequired:
		steps = append(steps, AddRequired{Field: newField.Name})
	case oldRequired && !newRequired:
		steps = append(steps, RemoveRequired{Field: newField.Name})
	}

	oldIndexed, newIndexed := oldField.IsIndexed(), newField.IsIndexed()
	switch {
	case !oldIndexed && newIndexed:
		steps = append(steps, AddIndex{Field: newField.Name})
	case oldIndexed && !newIndexed:
		steps = append(steps, RemoveIndex{Field: newField.Name})
	}

	oldDefault, hadDefault := oldField.Default()
	newDefault, hasDefault := newField.Default()
	switch {
	case !hadDefault && hasDefault:
		steps = append(steps, SetFieldDefault{Field: newField.Name, Value: newDefault})
	case hadDefault && !hasDefault:
		steps = append(steps, RemoveFieldDefault{Field: newField.Name})
	case hadDefault && hasDefault && oldDefault != newDefault:
		steps = append(steps, SetFieldDefault{Field: newField.Name, Value: newDefault})
	}

	return steps
}

// removeField emits RemoveRelation for relation fields, RemoveField
// otherwise.
func removeField(f schema.FieldDefinition) Step {
	if _, ok := f.Type.(schema.RelationType); ok {
		return RemoveRelation{Name: f.Name}
	}
	return RemoveField{Name: f.Name}
}

// addField emits AddRelation for relation fields, AddField otherwise.
func addField(f schema.FieldDefinition) Step {
	if rel, ok := f.Type.(schema.RelationType); ok {
		return AddRelation{Name: f.Name, Target: rel.Target, Cardinality: rel.Cardinality}
	}
	return AddField{Field: f}
}

func changeType(name schema.FieldName, oldType, newType schema.FieldType) Step {
	return ChangeType{
		Name:      name,
		OldType:   oldType,
		NewType:   newType,
		Transform: InferTransform(oldType, newType),
	}
}
