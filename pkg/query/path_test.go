package query

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemaforge/forge/pkg/schema"
)

func TestParseFieldPathSimple(t *testing.T) {
	p, err := ParseFieldPath("email")
	require.NoError(t, err)
	assert.Equal(t, []string{"email"}, p.Segments())
	assert.True(t, p.IsSimple())
	assert.Equal(t, 1, p.Depth())
	assert.Equal(t, "email", p.Root())
	assert.Equal(t, "email", p.Leaf())
	assert.Equal(t, "email", p.String())
}

func TestParseFieldPathNested(t *testing.T) {
	p, err := ParseFieldPath("address.city")
	require.NoError(t, err)
	assert.Equal(t, []string{"address", "city"}, p.Segments())
	assert.False(t, p.IsSimple())
	assert.Equal(t, "address", p.Root())
	assert.Equal(t, "city", p.Leaf())
	assert.Equal(t, "address.city", p.String())
}

func TestParseFieldPathEmpty(t *testing.T) {
	_, err := ParseFieldPath("")
	assert.ErrorIs(t, err, ErrEmptyFieldPath)
}

func TestParseFieldPathEmptySegment(t *testing.T) {
	for _, bad := range []string{".email", "email.", "address..city"} {
		_, err := ParseFieldPath(bad)
		var pathErr *InvalidFieldPathError
		require.ErrorAs(t, err, &pathErr, "path: %s", bad)
		assert.Equal(t, "invalid field path '"+bad+"': path contains empty segment", pathErr.Error())
	}
}

func TestFromSegments(t *testing.T) {
	p, err := FromSegments([]string{"address", "zip"})
	require.NoError(t, err)
	assert.Equal(t, "address.zip", p.String())

	_, err = FromSegments(nil)
	assert.ErrorIs(t, err, ErrEmptyFieldPath)

	_, err = FromSegments([]string{"address", ""})
	assert.Error(t, err)
}

func TestSingleFromFieldName(t *testing.T) {
	p := Single(schema.MustFieldName("email"))
	assert.Equal(t, "email", p.String())
	assert.True(t, p.IsSimple())
}

func TestSegmentsReturnsCopy(t *testing.T) {
	p := MustFieldPath("address.city")
	segs := p.Segments()
	segs[0] = "mutated"
	assert.Equal(t, "address.city", p.String())
}

func TestFieldPathJSONRoundTrip(t *testing.T) {
	p := MustFieldPath("address.city")
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, `"address.city"`, string(data))

	var back FieldPath
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, p, back)
}

func TestFieldPathJSONRejectsMalformed(t *testing.T) {
	var p FieldPath
	assert.Error(t, json.Unmarshal([]byte(`""`), &p))
	assert.Error(t, json.Unmarshal([]byte(`"a..b"`), &p))
}
