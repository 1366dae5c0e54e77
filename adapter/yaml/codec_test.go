package yaml_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	codec "github.com/halvard-io/synthgen/adapter/yaml"
	"github.com/halvard-io/synthgen/content"
	"github.com/halvard-io/synthgen/location"
	"github.com/halvard-io/synthgen/sample"
	"github.com/halvard-io/synthgen/value"
)

const usersSchema = `
users:
  type: array
  length:
    type: number
    subtype: u64
    constant: 2
  content:
    type: object
    fields:
      id:
        type: number
        subtype: u64
        incrementing:
          start: 1
          step: 1
      email:
        type: string
        constant: a@b.c
        optional: true
`

func testSource(t *testing.T) location.SourceID {
	t.Helper()
	return location.MustNewSourceID("inline:" + t.Name())
}

func TestDecode_UsersSchema(t *testing.T) {
	ns, err := codec.New().Decode(context.Background(), testSource(t), []byte(usersSchema))
	require.NoError(t, err)

	root, err := ns.Get("users")
	require.NoError(t, err)
	arr, ok := root.(content.Array)
	require.True(t, ok)
	obj, ok := arr.Elem.(content.Object)
	require.True(t, ok)
	assert.Equal(t, []string{"id", "email"}, obj.Names(), "field declaration order survives decoding")
	email, _ := obj.Field("email")
	assert.True(t, email.Optional)
}

func TestDecode_ThenSample(t *testing.T) {
	ns, err := codec.New().Decode(context.Background(), testSource(t), []byte(usersSchema))
	require.NoError(t, err)

	result, err := sample.New().Namespace(context.Background(), ns, sample.Request{Collection: "users", Count: 2, Seed: 0})
	require.NoError(t, err)

	records := result.Records("users")
	require.Len(t, records, 2)
	first, _ := records[0].AsObject()
	id, ok := first.Get("id")
	require.True(t, ok)
	num, _ := id.AsNumber()
	u, _ := num.Uint64()
	assert.Equal(t, uint64(1), u)
}

func TestDecode_SyntaxError(t *testing.T) {
	_, err := codec.New().Decode(context.Background(), testSource(t), []byte("users: [unclosed"))
	require.Error(t, err)
}

func TestRoundTrip_MatchesJSONGrammar(t *testing.T) {
	c := codec.New()
	ns, err := c.Decode(context.Background(), testSource(t), []byte(usersSchema))
	require.NoError(t, err)

	encoded, err := c.Encode(context.Background(), ns)
	require.NoError(t, err)

	again, err := c.Decode(context.Background(), location.MustNewSourceID("inline:again"), encoded)
	require.NoError(t, err)

	reEncoded, err := c.Encode(context.Background(), again)
	require.NoError(t, err)
	assert.Equal(t, string(encoded), string(reEncoded))
}

func TestDecode_EmptyDocument(t *testing.T) {
	ns, err := codec.New().Decode(context.Background(), testSource(t), []byte(""))
	require.NoError(t, err)
	assert.Zero(t, ns.Len())
}

func TestDecode_NumbersKeepSubtype(t *testing.T) {
	schema := `
score:
  type: number
  subtype: f32
  range:
    low: 0.5
    high: 2.5
    step: 0.5
`
	ns, err := codec.New().Decode(context.Background(), testSource(t), []byte(schema))
	require.NoError(t, err)
	root, err := ns.Get("score")
	require.NoError(t, err)
	num := root.(content.Number)
	assert.Equal(t, value.F32, num.Variant)
	r := num.Mode.(content.Range)
	assert.InDelta(t, 0.5, r.Low.AsFloat64(), 1e-9)
	assert.InDelta(t, 2.5, r.High.AsFloat64(), 1e-9)
}
