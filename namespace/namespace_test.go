package namespace_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halvard-io/synthgen/address"
	"github.com/halvard-io/synthgen/content"
	"github.com/halvard-io/synthgen/diag"
	"github.com/halvard-io/synthgen/namespace"
	"github.com/halvard-io/synthgen/value"
)

func usersContent(t *testing.T) content.Content {
	t.Helper()
	record := content.NewObject(
		[]string{"id", "email"},
		map[string]content.FieldContent{
			"id":    {Content: content.NewNumber(value.U64, content.NewNumberConstant(value.NewUint(value.U64, 1)))},
			"email": {Content: content.NewString(content.NewStringConstant("a@b.c"))},
		},
	)
	length := content.NewNumber(value.U64, content.NewNumberConstant(value.NewUint(value.U64, 2)))
	return content.NewArray(length, record)
}

func mustRef(t *testing.T, s string) address.FieldRef {
	t.Helper()
	ref, err := address.ParseFieldRef(s)
	require.NoError(t, err)
	return ref
}

func TestPut_RejectsBadNamesAndDuplicates(t *testing.T) {
	ns := namespace.New()

	require.NoError(t, ns.Put("users", usersContent(t)))
	require.NoError(t, ns.Put("audit-log_2", content.NewNull()))

	err := ns.Put("users", content.NewNull())
	require.Error(t, err)
	assert.Equal(t, diag.Override, err.(diag.Issue).Kind())

	for _, bad := range []string{"", "a b", "users.id", "usérs"} {
		err := ns.Put(bad, content.NewNull())
		require.Error(t, err, "name %q", bad)
		assert.Equal(t, diag.BadRequest, err.(diag.Issue).Kind())
	}
}

func TestGet_MissSuggestsClosestName(t *testing.T) {
	ns := namespace.New()
	require.NoError(t, ns.Put("users", usersContent(t)))
	require.NoError(t, ns.Put("orders", content.NewNull()))

	_, err := ns.Get("user")
	require.Error(t, err)
	issue := err.(diag.Issue)
	assert.Equal(t, diag.NotFound, issue.Kind())
	assert.Equal(t, "users", issue.Hint())
}

func TestDelete_RemovesFromIterationOrder(t *testing.T) {
	ns := namespace.New()
	require.NoError(t, ns.Put("a", content.NewNull()))
	require.NoError(t, ns.Put("b", content.NewNull()))
	require.NoError(t, ns.Put("c", content.NewNull()))

	require.NoError(t, ns.Delete("b"))
	assert.Equal(t, []string{"a", "c"}, ns.Names())

	require.Error(t, ns.Delete("b"))
}

func TestTryMerge_BootstrapsMissingCollection(t *testing.T) {
	ns := namespace.New()
	example := value.ObjectValue(value.NewObject(
		value.Field{Name: "id", Value: value.Num(value.NewUint(value.U64, 1))},
	))

	require.NoError(t, ns.TryMerge(content.OptionalMergeStrategy{}, "events", example))

	c, err := ns.Get("events")
	require.NoError(t, err)
	assert.True(t, c.Accepts(example))
}

func TestTryUpdate_FailureLeavesNamespaceUnchanged(t *testing.T) {
	ns := namespace.New()
	require.NoError(t, ns.Put("users", usersContent(t)))
	before, err := ns.Get("users")
	require.NoError(t, err)

	bad := value.ObjectValue(value.NewObject(
		value.Field{Name: "unknown_field", Value: value.Str("x")},
	))
	// ValueMergeStrategy rejects undeclared fields: updating the record
	// object at users.content with an example that has an undeclared field
	// fails.
	err = ns.TryUpdate(content.ValueMergeStrategy{Depth: 3}, mustRef(t, "users.content"), bad)
	require.Error(t, err)

	after, getErr := ns.Get("users")
	require.NoError(t, getErr)
	assert.Equal(t, before, after)
}

func TestOptionalise_Involution(t *testing.T) {
	ns := namespace.New()
	require.NoError(t, ns.Put("users", usersContent(t)))
	ref := mustRef(t, "users.content.email")

	snapshot, err := ns.Get("users")
	require.NoError(t, err)

	require.NoError(t, ns.Optionalise(ref, true))
	once, err := ns.Get("users")
	require.NoError(t, err)

	// Toggling on twice equals once.
	require.NoError(t, ns.Optionalise(ref, true))
	twice, err := ns.Get("users")
	require.NoError(t, err)
	assert.Equal(t, once, twice)

	// Toggling back off restores the prior content.
	require.NoError(t, ns.Optionalise(ref, false))
	restored, err := ns.Get("users")
	require.NoError(t, err)
	assert.Equal(t, snapshot, restored)
}

func TestOptionalise_RejectsNonField(t *testing.T) {
	ns := namespace.New()
	require.NoError(t, ns.Put("users", usersContent(t)))

	err := ns.Optionalise(mustRef(t, "users"), true)
	require.Error(t, err)
	assert.Equal(t, diag.Optionalise, err.(diag.Issue).Kind())

	err = ns.Optionalise(mustRef(t, "users.length"), true)
	require.Error(t, err)
	assert.Equal(t, diag.Optionalise, err.(diag.Issue).Kind())
}

func TestFind_ResolvesFieldRef(t *testing.T) {
	ns := namespace.New()
	require.NoError(t, ns.Put("users", usersContent(t)))

	c, err := ns.Find(mustRef(t, "users.content.id"))
	require.NoError(t, err)
	assert.Equal(t, content.KindNumber, c.Kind())

	_, err = ns.Find(mustRef(t, "users.content.emial"))
	require.Error(t, err)
	assert.Equal(t, "email", err.(diag.Issue).Hint())
}

func TestValidate_ReportsDanglingSameAs(t *testing.T) {
	ns := namespace.New()
	require.NoError(t, ns.Put("users", usersContent(t)))

	dangling := content.NewObject(
		[]string{"user_id"},
		map[string]content.FieldContent{
			"user_id": {Content: content.NewSameAs(mustRef(t, "users.content.missing"))},
		},
	)
	length := content.NewNumber(value.U64, content.NewNumberConstant(value.NewUint(value.U64, 1)))
	require.NoError(t, ns.Put("orders", content.NewArray(length, dangling)))

	collector := diag.NewCollectorUnlimited()
	ns.Validate(collector)
	result := collector.Result()
	require.False(t, result.OK())
	issues := result.Issues()
	require.Len(t, issues, 1)
	assert.Equal(t, diag.NotFound, issues[0].Kind())
	assert.Equal(t, "orders.content.user_id", issues[0].Path())
}
