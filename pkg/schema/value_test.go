package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValueString(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	cases := []struct {
		value Value
		want  string
	}{
		{NullValue{}, "null"},
		{TextValue("hello"), "hello"},
		{IntegerValue(-42), "-42"},
		{FloatValue(2.5), "2.5"},
		{BooleanValue(false), "false"},
		{DateTimeValue(ts), "2024-03-01T12:30:00Z"},
		{EnumValue("Active"), "Active"},
		{JSONValue(`{"a":1}`), `{"a":1}`},
		{ArrayValue{IntegerValue(1), IntegerValue(2)}, "[1, 2]"},
		{CompositeValue{{Key: "city", Value: TextValue("Oslo")}}, "{city: Oslo}"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.value.String())
	}

	assert.True(t, IsNull(NullValue{}))
	assert.False(t, IsNull(TextValue("")))
}
