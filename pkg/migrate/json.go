package migrate

import (
	"encoding/json"
	"fmt"

	"github.com/schemaforge/forge/pkg/schema"
)

// JSON encoding of migration plans. Steps encode as tagged objects with
// a "step" discriminator; decoding re-validates names, ids and types
// through the schema package's constructors.

type stepJSON struct {
	Step        string                   `json:"step"`
	Name        string                   `json:"name,omitempty"`
	OldName     string                   `json:"old_name,omitempty"`
	NewName     string                   `json:"new_name,omitempty"`
	Field       *json.RawMessage         `json:"field,omitempty"`
	FieldName   string                   `json:"field_name,omitempty"`
	Fields      []schema.FieldDefinition `json:"fields,omitempty"`
	OldType     *json.RawMessage         `json:"old_type,omitempty"`
	NewType     *json.RawMessage         `json:"new_type,omitempty"`
	Transform   *ValueTransform          `json:"transform,omitempty"`
	Target      string                   `json:"target,omitempty"`
	Cardinality *schema.Cardinality      `json:"cardinality,omitempty"`
	Value       *json.RawMessage         `json:"value,omitempty"`
	Default     *schema.DefaultValue     `json:"default,omitempty"`
}

// MarshalStep encodes a migration step as a tagged JSON object.
func MarshalStep(s Step) ([]byte, error) {
	out := stepJSON{}
	switch step := s.(type) {
	case CreateSchema:
		out.Step = "create_schema"
		out.Name = step.Name.String()
		out.Fields = step.Fields
	case DropSchema:
		out.Step = "drop_schema"
		out.Name = step.Name.String()
	case AddField:
		enc, err := json.Marshal(step.Field)
		if err != nil {
			return nil, err
		}
		out.Step = "add_field"
		raw := json.RawMessage(enc)
		out.Field = &raw
	case RemoveField:
		out.Step = "remove_field"
		out.Name = step.Name.String()
	case RenameField:
		out.Step = "rename_field"
		out.OldName = step.OldName.String()
		out.NewName = step.NewName.String()
	case ChangeType:
		oldEnc, err := schema.MarshalFieldType(step.OldType)
		if err != nil {
			return nil, err
		}
		newEnc, err := schema.MarshalFieldType(step.NewType)
		if err != nil {
			return nil, err
		}
		out.Step = "change_type"
		out.Name = step.Name.String()
		oldRaw, newRaw := json.RawMessage(oldEnc), json.RawMessage(newEnc)
		out.OldType, out.NewType = &oldRaw, &newRaw
		tr := step.Transform
		out.Transform = &tr
	case AddIndex:
		out.Step = "add_index"
		out.FieldName = step.Field.String()
	case RemoveIndex:
		out.Step = "remove_index"
		out.FieldName = step.Field.String()
	case AddRelation:
		out.Step = "add_relation"
		out.Name = step.Name.String()
		out.Target = step.Target.String()
		card := step.Cardinality
		out.Cardinality = &card
	case RemoveRelation:
		out.Step = "remove_relation"
		out.Name = step.Name.String()
	case BackfillRequired:
		enc, err := schema.MarshalValue(step.DefaultValue)
		if err != nil {
			return nil, err
		}
		out.Step = "backfill_required"
		out.FieldName = step.Field.String()
		raw := json.RawMessage(enc)
		out.Value = &raw
	case AddRequired:
		out.Step = "add_required"
		out.FieldName = step.Field.String()
	case RemoveRequired:
		out.Step = "remove_required"
		out.FieldName = step.Field.String()
	case SetFieldDefault:
		out.Step = "set_default"
		out.FieldName = step.Field.String()
		dv := step.Value
		out.Default = &dv
	case RemoveFieldDefault:
		out.Step = "remove_default"
		out.FieldName = step.Field.String()
	default:
		return nil, fmt.Errorf("cannot encode migration step %T", s)
	}
	return json.Marshal(out)
}

// UnmarshalStep decodes a tagged migration step object.
func UnmarshalStep(data []byte) (Step, error) {
	var in stepJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, err
	}
	switch in.Step {
	case "create_schema":
		name, err := schema.NewSchemaName(in.Name)
		if err != nil {
			return nil, err
		}
		return CreateSchema{Name: name, Fields: in.Fields}, nil
	case "drop_schema":
		name, err := schema.NewSchemaName(in.Name)
		if err != nil {
			return nil, err
		}
		return DropSchema{Name: name}, nil
	case "add_field":
		if in.Field == nil {
			return nil, fmt.Errorf("add_field step missing field")
		}
		var f schema.FieldDefinition
		if err := json.Unmarshal(*in.Field, &f); err != nil {
			return nil, err
		}
		return AddField{Field: f}, nil
	case "remove_field":
		name, err := schema.NewFieldName(in.Name)
		if err != nil {
			return nil, err
		}
		return RemoveField{Name: name}, nil
	case "rename_field":
		oldName, err := schema.NewFieldName(in.OldName)
		if err != nil {
			return nil, err
		}
		newName, err := schema.NewFieldName(in.NewName)
		if err != nil {
			return nil, err
		}
		return RenameField{OldName: oldName, NewName: newName}, nil
	case "change_type":
		name, err := schema.NewFieldName(in.Name)
		if err != nil {
			return nil, err
		}
		if in.OldType == nil || in.NewType == nil || in.Transform == nil {
			return nil, fmt.Errorf("change_type step missing types or transform")
		}
		oldType, err := schema.UnmarshalFieldType(*in.OldType)
		if err != nil {
			return nil, err
		}
		newType, err := schema.UnmarshalFieldType(*in.NewType)
		if err != nil {
			return nil, err
		}
		return ChangeType{Name: name, OldType: oldType, NewType: newType, Transform: *in.Transform}, nil
	case "add_index":
		field, err := schema.NewFieldName(in.FieldName)
		if err != nil {
			return nil, err
		}
		return AddIndex{Field: field}, nil
	case "remove_index":
		field, err := schema.NewFieldName(in.FieldName)
		if err != nil {
			return nil, err
		}
		return RemoveIndex{Field: field}, nil
	case "add_relation":
		name, err := schema.NewFieldName(in.Name)
		if err != nil {
			return nil, err
		}
		target, err := schema.NewSchemaName(in.Target)
		if err != nil {
			return nil, err
		}
		card := schema.One
		if in.Cardinality != nil {
			card = *in.Cardinality
		}
		return AddRelation{Name: name, Target: target, Cardinality: card}, nil
	case "remove_relation":
		name, err := schema.NewFieldName(in.Name)
		if err != nil {
			return nil, err
		}
		return RemoveRelation{Name: name}, nil
	case "backfill_required":
		field, err := schema.NewFieldName(in.FieldName)
		if err != nil {
			return nil, err
		}
		if in.Value == nil {
			return nil, fmt.Errorf("backfill_required step missing value")
		}
		value, err := schema.UnmarshalValue(*in.Value)
		if err != nil {
			return nil, err
		}
		return BackfillRequired{Field: field, DefaultValue: value}, nil
	case "add_required":
		field, err := schema.NewFieldName(in.FieldName)
		if err != nil {
			return nil, err
		}
		return AddRequired{Field: field}, nil
	case "remove_required":
		field, err := schema.NewFieldName(in.FieldName)
		if err != nil {
			return nil, err
		}
		return RemoveRequired{Field: field}, nil
	case "set_default":
		field, err := schema.NewFieldName(in.FieldName)
		if err != nil {
			return nil, err
		}
		if in.Default == nil {
			return nil, fmt.Errorf("set_default step missing value")
		}
		return SetFieldDefault{Field: field, Value: *in.Default}, nil
	case "remove_default":
		field, err := schema.NewFieldName(in.FieldName)
		if err != nil {
			return nil, err
		}
		return RemoveFieldDefault{Field: field}, nil
	default:
		return nil, fmt.Errorf("unknown migration step %q", in.Step)
	}
}

type planJSON struct {
	ID         MigrationID       `json:"id"`
	SchemaID   schema.SchemaID   `json:"schema_id"`
	SchemaName schema.SchemaName `json:"schema_name"`
	Steps      []json.RawMessage `json:"steps"`
}

func (p Plan) MarshalJSON() ([]byte, error) {
	out := planJSON{
		ID:         p.ID,
		SchemaID:   p.SchemaID,
		SchemaName: p.SchemaName,
		Steps:      make([]json.RawMessage, 0, len(p.Steps)),
	}
	for _, step := range p.Steps {
		enc, err := MarshalStep(step)
		if err != nil {
			return nil, err
		}
		out.Steps = append(out.Steps, json.RawMessage(enc))
	}
	return json.Marshal(out)
}

func (p *Plan) UnmarshalJSON(data []byte) error {
	var in planJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	out := Plan{ID: in.ID, SchemaID: in.SchemaID, SchemaName: in.SchemaName}
	for _, raw := range in.Steps {
		step, err := UnmarshalStep(raw)
		if err != nil {
			return err
		}
		out.Steps = append(out.Steps, step)
	}
	*p = out
	return nil
}
