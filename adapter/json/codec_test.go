package json_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	codec "github.com/halvard-io/synthgen/adapter/json"
	"github.com/halvard-io/synthgen/content"
	"github.com/halvard-io/synthgen/diag"
	"github.com/halvard-io/synthgen/internal/source"
	"github.com/halvard-io/synthgen/location"
	"github.com/halvard-io/synthgen/sample"
	"github.com/halvard-io/synthgen/value"
)

func testSource(t *testing.T) location.SourceID {
	t.Helper()
	return location.MustNewSourceID("inline:" + t.Name())
}

const usersSchema = `{
	"users": {
		"type": "array",
		"length": {"type": "number", "subtype": "u64", "constant": 2},
		"content": {
			"type": "object",
			"fields": {
				"id": {"type": "number", "subtype": "u64", "incrementing": {"start": 1, "step": 1}}
			}
		}
	}
}`

func TestDecode_UsersSchema(t *testing.T) {
	ns, err := codec.New().Decode(context.Background(), testSource(t), []byte(usersSchema))
	require.NoError(t, err)

	root, err := ns.Get("users")
	require.NoError(t, err)
	arr, ok := root.(content.Array)
	require.True(t, ok)
	assert.Equal(t, content.KindNumber, arr.Length.Kind())
	assert.Equal(t, content.KindObject, arr.Elem.Kind())
}

func TestDecode_ThenSample(t *testing.T) {
	ns, err := codec.New().Decode(context.Background(), testSource(t), []byte(usersSchema))
	require.NoError(t, err)

	result, err := sample.New().Namespace(context.Background(), ns, sample.Request{Count: 2, Seed: 0})
	require.NoError(t, err)

	raw, err := value.MarshalJSON(result.Value())
	require.NoError(t, err)
	assert.Equal(t, `{"users":[{"id":1},{"id":2}]}`, string(raw))
}

func TestDecode_ToleratesCommentsAndTrailingCommas(t *testing.T) {
	schema := `{
		// the only collection
		"x": {"type": "bool", "constant": true,},
	}`
	ns, err := codec.New().Decode(context.Background(), testSource(t), []byte(schema))
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, ns.Names())
}

func TestDecode_StrictRejectsComments(t *testing.T) {
	schema := "{\n\t// nope\n\t\"x\": {\"type\": \"bool\", \"constant\": true}\n}"
	_, err := codec.New(codec.WithStrictJSON()).Decode(context.Background(), testSource(t), []byte(schema))
	require.Error(t, err)
	assert.Equal(t, diag.Serialization, err.(diag.Issue).Kind())
}

func TestDecode_SyntaxErrorCarriesPosition(t *testing.T) {
	registry := source.NewRegistry()
	c := codec.New(codec.WithStrictJSON(), codec.WithSourceRegistry(registry))

	_, err := c.Decode(context.Background(), testSource(t), []byte("{\n  \"x\": {,}\n}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2:", "syntax errors should name their line")
}

func TestDecode_UnknownFieldSuggestsClosest(t *testing.T) {
	schema := `{"x": {"type": "bool", "constatn": true}}`
	_, err := codec.New().Decode(context.Background(), testSource(t), []byte(schema))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "constant")
}

func TestDecode_UnknownKindSuggestsClosest(t *testing.T) {
	schema := `{"x": {"type": "bol", "constant": true}}`
	_, err := codec.New().Decode(context.Background(), testSource(t), []byte(schema))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"bool"`)
}

func TestRoundTrip_AllKinds(t *testing.T) {
	schema := `{
		"everything": {
			"type": "array",
			"length": {"type": "number", "subtype": "u64", "range": {"low": 1, "high": 5, "step": 1}},
			"content": {
				"type": "object",
				"fields": {
					"id": {"type": "number", "subtype": "u64", "incrementing": {"start": 1, "step": 1}},
					"big": {"type": "number", "subtype": "u128", "constant": "340282366920938463463374607431768211455"},
					"score": {"type": "number", "subtype": "f64", "range": {"low": 0, "high": 1, "step": 0.25}},
					"flag": {"type": "bool", "frequency": 0.25},
					"kind": {"type": "string", "categorical": [{"value": "basic", "weight": 3}, {"value": "pro", "weight": 1}]},
					"code": {"type": "string", "pattern": "[A-Z]{3}", "optional": true},
					"name": {"type": "string", "faker": {"generator": "person.first_name"}},
					"token": {"type": "string", "uuid": true},
					"joined": {"type": "string", "date_time": {"format": "2006-01-02", "low": "2020-01-01", "high": "2021-01-01"}},
					"secret": {"type": "hidden", "content": {"type": "string", "constant": "s"}},
					"choice": {"type": "one_of", "variants": [
						{"type": "null", "weight": 1},
						{"type": "string", "constant": "x", "weight": 3}
					]},
					"key": {"type": "unique", "algorithm": "exact_set", "content": {"type": "number", "subtype": "u64", "incrementing": {"start": 1, "step": 1}}},
					"at": {"type": "series", "format": "2006-01-02T15:04:05Z07:00", "incrementing": {"start": "2024-01-01T00:00:00Z", "duration": "1h"}}
				}
			}
		}
	}`
	c := codec.New()
	ns, err := c.Decode(context.Background(), testSource(t), []byte(schema))
	require.NoError(t, err)

	encoded, err := c.Encode(context.Background(), ns)
	require.NoError(t, err)

	again, err := c.Decode(context.Background(), location.MustNewSourceID("inline:again"), encoded)
	require.NoError(t, err)

	reEncoded, err := c.Encode(context.Background(), again)
	require.NoError(t, err)
	assert.Equal(t, string(encoded), string(reEncoded), "encode must be a fixed point after one decode/encode cycle")
}

func TestDecode_RejectsBadCollectionName(t *testing.T) {
	schema := `{"bad name": {"type": "null"}}`
	_, err := codec.New().Decode(context.Background(), testSource(t), []byte(schema))
	require.Error(t, err)
	assert.Equal(t, diag.BadRequest, err.(diag.Issue).Kind())
}

func TestDecode_SameAsRef(t *testing.T) {
	schema := `{
		"users": {
			"type": "array",
			"length": {"type": "number", "subtype": "u64", "constant": 1},
			"content": {"type": "object", "fields": {
				"id": {"type": "number", "subtype": "u64", "incrementing": {"start": 1, "step": 1}}
			}}
		},
		"orders": {
			"type": "array",
			"length": {"type": "number", "subtype": "u64", "constant": 1},
			"content": {"type": "object", "fields": {
				"user_id": {"type": "same_as", "ref": "users.content.id"}
			}}
		}
	}`
	ns, err := codec.New().Decode(context.Background(), testSource(t), []byte(schema))
	require.NoError(t, err)

	collector := diag.NewCollectorUnlimited()
	ns.Validate(collector)
	assert.True(t, collector.Result().OK())
}
