package content_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halvard-io/synthgen/content"
	"github.com/halvard-io/synthgen/value"
)

func exampleRecord() value.Value {
	return value.ObjectValue(value.NewObject(
		value.Field{Name: "id", Value: value.Num(value.NewUint(value.U64, 7))},
		value.Field{Name: "name", Value: value.Str("ada")},
	))
}

func TestFromValue_AcceptsItsSource(t *testing.T) {
	values := []value.Value{
		value.Null(),
		value.Bool(true),
		value.Num(value.NewInt(value.I32, -4)),
		value.Str("hello"),
		value.Array([]value.Value{value.Str("a"), value.Str("b")}),
		exampleRecord(),
	}
	for _, v := range values {
		c := content.FromValue(v)
		assert.True(t, c.Accepts(v), "FromValue(%s) must accept its source", v)
	}
}

func TestOptionalMerge_Idempotent(t *testing.T) {
	values := []value.Value{
		value.Bool(false),
		value.Num(value.NewUint(value.U64, 3)),
		value.Str("x"),
		value.Array([]value.Value{value.Num(value.NewUint(value.U64, 1)), value.Num(value.NewUint(value.U64, 2))}),
		exampleRecord(),
	}
	for _, v := range values {
		c := content.FromValue(v)
		merged, err := content.OptionalMergeStrategy{}.Merge(c, v)
		require.NoError(t, err)
		assert.True(t, merged.Accepts(v))
		// Merging the inferred content with its own source must not widen:
		// a second merge produces the same shape again.
		again, err := content.OptionalMergeStrategy{}.Merge(merged, v)
		require.NoError(t, err)
		assert.Equal(t, merged, again)
	}
}

func TestOptionalMerge_MissingFieldBecomesOptional(t *testing.T) {
	c := content.FromValue(exampleRecord())

	partial := value.ObjectValue(value.NewObject(
		value.Field{Name: "id", Value: value.Num(value.NewUint(value.U64, 8))},
	))
	merged, err := content.OptionalMergeStrategy{}.Merge(c, partial)
	require.NoError(t, err)

	obj := merged.(content.Object)
	name, ok := obj.Field("name")
	require.True(t, ok)
	assert.True(t, name.Optional)
	id, _ := obj.Field("id")
	assert.False(t, id.Optional)
}

func TestOptionalMerge_NewFieldAddedAsOptional(t *testing.T) {
	c := content.FromValue(exampleRecord())

	extended := value.ObjectValue(value.NewObject(
		value.Field{Name: "id", Value: value.Num(value.NewUint(value.U64, 9))},
		value.Field{Name: "name", Value: value.Str("bob")},
		value.Field{Name: "email", Value: value.Str("bob@example.com")},
	))
	merged, err := content.OptionalMergeStrategy{}.Merge(c, extended)
	require.NoError(t, err)

	obj := merged.(content.Object)
	email, ok := obj.Field("email")
	require.True(t, ok)
	assert.True(t, email.Optional)
	assert.True(t, merged.Accepts(extended))
}

func TestOptionalMerge_KindMismatchWidensToOneOf(t *testing.T) {
	c := content.FromValue(value.Str("a"))
	merged, err := content.OptionalMergeStrategy{}.Merge(c, value.Num(value.NewUint(value.U64, 1)))
	require.NoError(t, err)

	oneOf, ok := merged.(content.OneOf)
	require.True(t, ok)
	assert.Len(t, oneOf.Variants, 2)
	assert.True(t, merged.Accepts(value.Str("a")))
	assert.True(t, merged.Accepts(value.Num(value.NewUint(value.U64, 1))))
}

func TestOptionalMerge_NullMakesNullable(t *testing.T) {
	c := content.FromValue(value.Str("a"))
	merged, err := content.OptionalMergeStrategy{}.Merge(c, value.Null())
	require.NoError(t, err)
	assert.True(t, content.IsNullable(merged))

	// A second null merge is a no-op.
	again, err := content.OptionalMergeStrategy{}.Merge(merged, value.Null())
	require.NoError(t, err)
	assert.Equal(t, merged, again)
}

func TestOptionalMerge_ConstantsWidenToCategorical(t *testing.T) {
	c := content.FromValue(value.Str("a"))
	merged, err := content.OptionalMergeStrategy{}.Merge(c, value.Str("b"))
	require.NoError(t, err)

	str := merged.(content.String)
	cat, ok := str.Mode.(content.StringCategorical)
	require.True(t, ok)
	assert.Len(t, cat.Entries, 2)
}

func TestValueMerge_DepthZeroReplaces(t *testing.T) {
	c := content.FromValue(exampleRecord())
	replacement := value.Str("flat")

	merged, err := content.ValueMergeStrategy{Depth: 0}.Merge(c, replacement)
	require.NoError(t, err)
	assert.Equal(t, content.KindString, merged.Kind())
}

func TestValueMerge_UnknownFieldFailsWithHint(t *testing.T) {
	c := content.FromValue(exampleRecord())
	bad := value.ObjectValue(value.NewObject(
		value.Field{Name: "nmae", Value: value.Str("typo")},
	))

	_, err := content.ValueMergeStrategy{Depth: 4}.Merge(c, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nmae")
}

func TestValueMerge_ReplaceSwapsArraysOutright(t *testing.T) {
	c := content.FromValue(value.Array([]value.Value{value.Str("a")}))
	next := value.Array([]value.Value{value.Num(value.NewUint(value.U64, 1)), value.Num(value.NewUint(value.U64, 2))})

	merged, err := content.ValueMergeStrategy{Depth: 4, Replace: true}.Merge(c, next)
	require.NoError(t, err)
	assert.True(t, merged.Accepts(next))
	arr := merged.(content.Array)
	assert.Equal(t, content.KindNumber, arr.Elem.Kind())
}
