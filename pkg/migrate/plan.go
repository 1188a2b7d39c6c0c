package migrate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/schemaforge/forge/pkg/schema"
)

const migrationIDPrefix = "migration"

// MigrationID is a globally unique migration identifier of the form
// "migration_<uuidv7>".
type MigrationID struct {
	value string
}

// NewMigrationID mints a fresh time-ordered migration id.
func NewMigrationID() MigrationID {
	return MigrationID{value: schema.NewPrefixedID(migrationIDPrefix)}
}

// ParseMigrationID validates s as a "migration_<uuid>" identifier.
func ParseMigrationID(s string) (MigrationID, error) {
	v, err := schema.ParsePrefixedID(migrationIDPrefix, s)
	if err != nil {
		return MigrationID{}, err
	}
	return MigrationID{value: v}, nil
}

func (id MigrationID) String() string { return id.value }

// IsZero reports whether the id is the unusable zero value.
func (id MigrationID) IsZero() bool { return id.value == "" }

func (id MigrationID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.value)
}

func (id *MigrationID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMigrationID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Plan is an ordered list of migration steps targeting one schema.
type Plan struct {
	ID         MigrationID
	SchemaID   schema.SchemaID
	SchemaName schema.SchemaName
	Steps      []Step
}

// NewPlan builds a plan with a freshly minted id.
func NewPlan(schemaID schema.SchemaID, name schema.SchemaName, steps []Step) Plan {
	return Plan{
		ID:         NewMigrationID(),
		SchemaID:   schemaID,
		SchemaName: name,
		Steps:      steps,
	}
}

// Len returns the number of steps.
func (p Plan) Len() int { return len(p.Steps) }

// IsEmpty reports whether the plan has no steps.
func (p Plan) IsEmpty() bool { return len(p.Steps) == 0 }

// OverallSafety is the maximum severity across all steps. An empty
// plan is Safe.
func (p Plan) OverallSafety() Safety {
	worst := Safe
	for _, step := range p.Steps {
		worst = worst.Max(step.Safety())
	}
	return worst
}

// IsSafe reports whether every step is safe.
func (p Plan) IsSafe() bool { return p.OverallSafety() == Safe }

// HasDestructiveSteps reports whether any step is destructive.
func (p Plan) HasDestructiveSteps() bool {
	for _, step := range p.Steps {
		if step.Safety() == Destructive {
			return true
		}
	}
	return false
}

// Validate checks the plan before execution. Destructive steps need
// explicit confirmation; an empty plan has nothing to apply.
func (p Plan) Validate(confirmDestructive bool) error {
	if p.IsEmpty() {
		return ErrEmptyPlan
	}
	if !confirmDestructive {
		for _, step := range p.Steps {
			if step.Safety() == Destructive {
				return &DestructiveWithoutConfirmationError{Step: step.String()}
			}
		}
	}
	return nil
}

// String renders the plan as a heading followed by one numbered line
// per step with its safety tag.
func (p Plan) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Migration plan for '%s': %d steps (%s)\n",
		p.SchemaName, len(p.Steps), p.OverallSafety())
	for i, step := range p.Steps {
		fmt.Fprintf(&b, "  %d. %s [%s]\n", i+1, step, step.Safety())
	}
	return b.String()
}
