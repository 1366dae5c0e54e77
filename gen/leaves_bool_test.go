package gen_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halvard-io/synthgen/gen"
)

func TestBernoulli_ZeroAlwaysFalse(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 20; i++ {
		v, err := gen.Aggregate(gen.Bernoulli(0), rng)
		require.NoError(t, err)
		b, _ := v.AsBool()
		assert.False(t, b)
	}
}

func TestBernoulli_OneAlwaysTrue(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 20; i++ {
		v, err := gen.Aggregate(gen.Bernoulli(1), rng)
		require.NoError(t, err)
		b, _ := v.AsBool()
		assert.True(t, b)
	}
}

func TestCategoricalBool_RespectsDeclaredEntriesOnly(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	entries := []gen.Weighted[bool]{{Value: true, Weight: 1}}
	for i := 0; i < 10; i++ {
		v, err := gen.Aggregate(gen.CategoricalBool(entries), rng)
		require.NoError(t, err)
		b, _ := v.AsBool()
		assert.True(t, b)
	}
}
