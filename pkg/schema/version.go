package schema

import (
	"encoding/json"
	"strconv"
)

// Version is a validated schema version. Versions start at 1.
type Version struct {
	value uint32
}

// NewVersion validates v >= 1 and returns the version, or an
// InvalidVersionError.
func NewVersion(v uint32) (Version, error) {
	if v < 1 {
		return Version{}, &InvalidVersionError{Version: v}
	}
	return Version{value: v}, nil
}

// InitialVersion returns version 1, the version of a freshly defined
// schema.
func InitialVersion() Version {
	return Version{value: 1}
}

// Uint32 returns the numeric version.
func (v Version) Uint32() uint32 { return v.value }

// Next returns the following version.
func (v Version) Next() Version {
	return Version{value: v.value + 1}
}

func (v Version) String() string {
	return "v" + strconv.FormatUint(uint64(v.value), 10)
}

func (v Version) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.value)
}

func (v *Version) UnmarshalJSON(data []byte) error {
	var n uint32
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	ver, err := NewVersion(n)
	if err != nil {
		return err
	}
	*v = ver
	return nil
}
