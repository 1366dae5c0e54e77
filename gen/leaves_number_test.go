package gen_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halvard-io/synthgen/gen"
	"github.com/halvard-io/synthgen/value"
)

func TestNumberRange_StaysWithinBoundsAndOnStep(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	low := value.NewInt(value.I64, 0)
	high := value.NewInt(value.I64, 100)
	step := value.NewInt(value.I64, 5)

	for i := 0; i < 50; i++ {
		v, err := gen.Aggregate(gen.NumberRange(value.I64, low, high, step), rng)
		require.NoError(t, err)
		n, _ := v.AsNumber()
		got, _ := n.Int64()
		assert.True(t, got >= 0 && got < 100, "value %d out of [0,100)", got)
		assert.Equal(t, int64(0), got%5, "value %d not a multiple of step 5", got)
	}
}

func TestCategoricalNumber_OnlyEverYieldsListedValues(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	entries := []gen.Weighted[value.Number]{
		{Value: value.NewInt(value.I64, 1), Weight: 1},
		{Value: value.NewInt(value.I64, 2), Weight: 1},
		{Value: value.NewInt(value.I64, 3), Weight: 1},
	}
	allowed := map[int64]bool{1: true, 2: true, 3: true}
	for i := 0; i < 30; i++ {
		v, err := gen.Aggregate(gen.CategoricalNumber(entries), rng)
		require.NoError(t, err)
		n, _ := v.AsNumber()
		got, _ := n.Int64()
		assert.True(t, allowed[got], "unexpected categorical value %d", got)
	}
}

func TestIncrementing_CountsUpFromStartByStep(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	factory := gen.NewIncrementing(value.NewInt(value.I64, 10), value.NewInt(value.I64, 3))

	want := []int64{10, 13, 16, 19}
	for _, w := range want {
		g, err := factory()
		require.NoError(t, err)
		v, err := gen.Aggregate(g, rng)
		require.NoError(t, err)
		n, _ := v.AsNumber()
		got, _ := n.Int64()
		assert.Equal(t, w, got)
	}
}

func TestIncrementing_OverflowIsFatal(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	factory := gen.NewIncrementing(value.NewInt(value.I8, 126), value.NewInt(value.I8, 1))

	g, err := factory()
	require.NoError(t, err)
	_, err = gen.Aggregate(g, rng) // 126, first call just returns start
	require.NoError(t, err)

	g, err = factory()
	require.NoError(t, err)
	_, err = gen.Aggregate(g, rng) // 127, still within i8
	require.NoError(t, err)

	g, err = factory()
	require.NoError(t, err)
	_, err = gen.Aggregate(g, rng) // 128 overflows i8
	require.Error(t, err)
}
