package schema

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// Prefixes for the typed identifiers minted by this package.
const (
	schemaIDPrefix = "schema"
	entityIDPrefix = "entity"
)

// SchemaID is a globally unique schema identifier of the form
// "schema_<uuidv7>".
type SchemaID struct {
	value string
}

// NewSchemaID mints a fresh time-ordered schema id.
func NewSchemaID() SchemaID {
	return SchemaID{value: newPrefixedID(schemaIDPrefix)}
}

// ParseSchemaID validates s as a "schema_<uuid>" identifier.
func ParseSchemaID(s string) (SchemaID, error) {
	v, err := parsePrefixedID(schemaIDPrefix, s)
	if err != nil {
		return SchemaID{}, err
	}
	return SchemaID{value: v}, nil
}

func (id SchemaID) String() string { return id.value }

// IsZero reports whether the id is the unusable zero value.
func (id SchemaID) IsZero() bool { return id.value == "" }

func (id SchemaID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.value)
}

func (id *SchemaID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseSchemaID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// EntityID identifies a stored record, "entity_<uuidv7>".
type EntityID struct {
	value string
}

// NewEntityID mints a fresh time-ordered entity id.
func NewEntityID() EntityID {
	return EntityID{value: newPrefixedID(entityIDPrefix)}
}

// ParseEntityID validates s as an "entity_<uuid>" identifier.
func ParseEntityID(s string) (EntityID, error) {
	v, err := parsePrefixedID(entityIDPrefix, s)
	if err != nil {
		return EntityID{}, err
	}
	return EntityID{value: v}, nil
}

func (id EntityID) String() string { return id.value }

// IsZero reports whether the id is the unusable zero value.
func (id EntityID) IsZero() bool { return id.value == "" }

func (id EntityID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.value)
}

func (id *EntityID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseEntityID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// NewPrefixedID mints a "<prefix>_<uuidv7>" identifier. Exposed for
// id families defined outside this package.
func NewPrefixedID(prefix string) string {
	return newPrefixedID(prefix)
}

// ParsePrefixedID validates s as a "<prefix>_<uuid>" identifier and
// returns it unchanged.
func ParsePrefixedID(prefix, s string) (string, error) {
	return parsePrefixedID(prefix, s)
}

func newPrefixedID(prefix string) string {
	return prefix + "_" + uuid.Must(uuid.NewV7()).String()
}

func parsePrefixedID(prefix, s string) (string, error) {
	rest, ok := strings.CutPrefix(s, prefix+"_")
	if !ok {
		return "", &InvalidIDError{ID: s, Prefix: prefix, Reason: "missing '" + prefix + "_' prefix"}
	}
	if _, err := uuid.Parse(rest); err != nil {
		return "", &InvalidIDError{ID: s, Prefix: prefix, Reason: "suffix is not a valid uuid"}
	}
	return s, nil
}
