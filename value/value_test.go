package value_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halvard-io/synthgen/value"
)

func TestObjectPreservesInsertionOrderButSortsOnDemand(t *testing.T) {
	obj := value.NewObject(
		value.Field{Name: "zebra", Value: value.Str("z")},
		value.Field{Name: "apple", Value: value.Str("a")},
	)

	assert.Equal(t, []string{"zebra", "apple"}, obj.Names())
	assert.Equal(t, []string{"apple", "zebra"}, obj.SortedNames())
}

func TestObjectSetOverwritesKeepsPosition(t *testing.T) {
	obj := value.NewObject(value.Field{Name: "a", Value: value.Str("first")})
	obj.Set("a", value.Str("second"))

	got, ok := obj.Get("a")
	require.True(t, ok)
	s, _ := got.AsString()
	assert.Equal(t, "second", s)
	assert.Equal(t, []string{"a"}, obj.Names())
}

func TestToJSONNarrowsObjectKeyOrder(t *testing.T) {
	obj := value.NewObject(
		value.Field{Name: "b", Value: value.Num(value.NewInt(value.I64, 2))},
		value.Field{Name: "a", Value: value.Num(value.NewInt(value.I64, 1))},
	)
	raw, err := value.ToJSON(value.ObjectValue(obj))
	require.NoError(t, err)

	data, err := value.MarshalJSON(value.ObjectValue(obj))
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1,"b":2}`, string(data))
	assert.IsType(t, map[string]any{}, raw)
}

func TestDateTimeRoundTripsThroughDeclaredFormat(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	v := value.DateTime(ts, "2006-01-02")

	raw, err := value.ToJSON(v)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", raw)
}

func TestUUIDRoundTripsHyphenated(t *testing.T) {
	id := uuid.New()
	v := value.UUIDValue(id)

	raw, err := value.ToJSON(v)
	require.NoError(t, err)
	assert.Equal(t, id.String(), raw)
}

func TestFromJSONIntegerVsFloat(t *testing.T) {
	intVal, err := value.DecodeJSONValue([]byte(`42`))
	require.NoError(t, err)
	n, ok := intVal.AsNumber()
	require.True(t, ok)
	assert.Equal(t, value.I64, n.Variant())

	floatVal, err := value.DecodeJSONValue([]byte(`3.5`))
	require.NoError(t, err)
	n, ok = floatVal.AsNumber()
	require.True(t, ok)
	assert.Equal(t, value.F64, n.Variant())
}

func TestAggregateReconstructsNestedValue(t *testing.T) {
	tokens := []value.Token{
		value.BeginObject(),
		value.FieldKey("id"),
		value.Primitive(value.Num(value.NewInt(value.I64, 1))),
		value.FieldKey("tags"),
		value.BeginArray(),
		value.Primitive(value.Str("a")),
		value.Primitive(value.Str("b")),
		value.EndArray(),
		value.EndObject(),
	}

	v, err := value.Aggregate(tokens)
	require.NoError(t, err)

	obj, ok := v.AsObject()
	require.True(t, ok)
	tags, ok := obj.Get("tags")
	require.True(t, ok)
	elems, ok := tags.AsArray()
	require.True(t, ok)
	require.Len(t, elems, 2)
	s0, _ := elems[0].AsString()
	assert.Equal(t, "a", s0)
}

func TestAggregateRejectsUnmatchedEnd(t *testing.T) {
	_, err := value.Aggregate([]value.Token{value.EndObject()})
	assert.Error(t, err)
}

func TestAggregatePropagatesSpecialError(t *testing.T) {
	_, err := value.Aggregate([]value.Token{value.SpecialError(assert.AnError)})
	assert.ErrorIs(t, err, assert.AnError)
}
