package schematree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObj_PreservesDeclarationOrder(t *testing.T) {
	o := NewObj()
	o.Set("zebra", 1)
	o.Set("apple", 2)
	o.Set("mango", 3)
	assert.Equal(t, []string{"zebra", "apple", "mango"}, o.Keys())

	// Overwriting keeps the first-seen position.
	o.Set("apple", 4)
	assert.Equal(t, []string{"zebra", "apple", "mango"}, o.Keys())
	v, ok := o.Get("apple")
	require.True(t, ok)
	assert.Equal(t, 4, v)
}

func TestObj_MarshalJSONKeepsOrder(t *testing.T) {
	o := NewObj()
	o.Set("b", 1)
	o.Set("a", NewObj())
	raw, err := o.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"b":1,"a":{}}`, string(raw))
}
