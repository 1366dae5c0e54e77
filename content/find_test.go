package content_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halvard-io/synthgen/content"
	"github.com/halvard-io/synthgen/diag"
	"github.com/halvard-io/synthgen/value"
)

func u64Const(v uint64) content.Content {
	return content.NewNumber(value.U64, content.NewNumberConstant(value.NewUint(value.U64, v)))
}

func strConst(s string) content.Content {
	return content.NewString(content.NewStringConstant(s))
}

func usersCollection(t *testing.T) content.Content {
	t.Helper()
	record := content.NewObject(
		[]string{"id", "email"},
		map[string]content.FieldContent{
			"id":    {Content: u64Const(1)},
			"email": {Content: strConst("a@b.c")},
		},
	)
	return content.NewArray(u64Const(2), record)
}

func TestFind_DescendsArrayAndObject(t *testing.T) {
	root := usersCollection(t)

	got, err := content.Find(root, []string{"content", "email"})
	require.NoError(t, err)
	assert.Equal(t, content.KindString, got.Kind())

	got, err = content.Find(root, []string{"length"})
	require.NoError(t, err)
	assert.Equal(t, content.KindNumber, got.Kind())
}

func TestFind_DescendsOneOfByIndex(t *testing.T) {
	root := content.NewOneOf(
		content.Variant{Weight: 1, Content: strConst("x")},
		content.Variant{Weight: 1, Content: content.NewNull()},
	)

	got, err := content.Find(root, []string{"1"})
	require.NoError(t, err)
	assert.Equal(t, content.KindNull, got.Kind())

	_, err = content.Find(root, []string{"2"})
	require.Error(t, err)
}

func TestFind_TransparentWrappers(t *testing.T) {
	inner := usersCollection(t)
	unique, err := content.NewUnique(inner, content.UniqueExactSet)
	require.NoError(t, err)
	root := content.NewHidden(unique)

	got, err := content.Find(root, []string{"content", "id"})
	require.NoError(t, err)
	assert.Equal(t, content.KindNumber, got.Kind())
}

func TestFind_MissSuggestsClosestSibling(t *testing.T) {
	root := usersCollection(t)

	_, err := content.Find(root, []string{"content", "emial"})
	require.Error(t, err)
	issue, ok := err.(diag.Issue)
	require.True(t, ok)
	assert.Equal(t, diag.NotFound, issue.Kind())
	assert.Equal(t, "email", issue.Hint())
}

func TestFind_LeafRejectsFurtherDescent(t *testing.T) {
	_, err := content.Find(strConst("x"), []string{"anything"})
	require.Error(t, err)
	issue, ok := err.(diag.Issue)
	require.True(t, ok)
	assert.Equal(t, diag.NotFound, issue.Kind())
}

func TestUpdate_ReplacesDeepNodeWithoutMutatingOriginal(t *testing.T) {
	root := usersCollection(t)

	updated, err := content.Update(root, []string{"content", "email"}, func(content.Content) (content.Content, error) {
		return strConst("replaced"), nil
	})
	require.NoError(t, err)

	got, err := content.Find(updated, []string{"content", "email"})
	require.NoError(t, err)
	str := got.(content.String)
	assert.Equal(t, "replaced", str.Mode.(content.StringConstant).Value)

	// Original tree is untouched.
	orig, err := content.Find(root, []string{"content", "email"})
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", orig.(content.String).Mode.(content.StringConstant).Value)
}

func TestUpdateField_TogglesOptional(t *testing.T) {
	root := usersCollection(t)

	updated, err := content.UpdateField(root, []string{"content", "email"}, func(f content.FieldContent) (content.FieldContent, error) {
		f.Optional = true
		return f, nil
	})
	require.NoError(t, err)

	arr := updated.(content.Array)
	obj := arr.Elem.(content.Object)
	field, ok := obj.Field("email")
	require.True(t, ok)
	assert.True(t, field.Optional)
}

func TestUpdateField_NonObjectParentFails(t *testing.T) {
	root := usersCollection(t)

	_, err := content.UpdateField(root, []string{"length", "x"}, func(f content.FieldContent) (content.FieldContent, error) {
		return f, nil
	})
	require.Error(t, err)
	issue, ok := err.(diag.Issue)
	require.True(t, ok)
	assert.Equal(t, diag.Optionalise, issue.Kind())
}
