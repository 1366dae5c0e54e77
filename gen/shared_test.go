package gen_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halvard-io/synthgen/gen"
	"github.com/halvard-io/synthgen/value"
)

func TestShared_TwoConsumersSeeTheSameSequence(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	i := 0
	shared := gen.NewShared(func() (gen.ValueGen, error) {
		i++
		return gen.Const(value.Num(value.NewInt(value.I64, int64(i)))), nil
	})

	a := shared.Register()
	b := shared.Register()

	va1, err := gen.Aggregate(shared.Consumer(a), rng)
	require.NoError(t, err)
	vb1, err := gen.Aggregate(shared.Consumer(b), rng)
	require.NoError(t, err)

	na, _ := va1.AsNumber()
	nb, _ := vb1.AsNumber()
	gotA, _ := na.Int64()
	gotB, _ := nb.Int64()
	assert.Equal(t, gotA, gotB, "both consumers must observe the same first advance")
}

func TestShared_LateConsumerJoinsFromCurrentPosition(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	i := 0
	shared := gen.NewShared(func() (gen.ValueGen, error) {
		i++
		return gen.Const(value.Num(value.NewInt(value.I64, int64(i)))), nil
	})

	a := shared.Register()
	v1, err := gen.Aggregate(shared.Consumer(a), rng)
	require.NoError(t, err)
	n1, _ := v1.AsNumber()
	got1, _ := n1.Int64()
	assert.Equal(t, int64(1), got1)

	// b joins after the first advance and must not replay it.
	b := shared.Register()
	v2, err := gen.Aggregate(shared.Consumer(b), rng)
	require.NoError(t, err)
	n2, _ := v2.AsNumber()
	got2, _ := n2.Int64()
	assert.Equal(t, int64(2), got2)
}

func TestShared_CloneReplaysUnconsumedQueue(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	i := 0
	shared := gen.NewShared(func() (gen.ValueGen, error) {
		i++
		return gen.Const(value.Num(value.NewInt(value.I64, int64(i)))), nil
	})

	a := shared.Register()
	b := shared.Register()
	// Advance the shared sequence once via b, queuing it for a (unconsumed).
	_, err := gen.Aggregate(shared.Consumer(b), rng)
	require.NoError(t, err)

	clone := shared.Clone(a)
	vClone, err := gen.Aggregate(shared.Consumer(clone), rng)
	require.NoError(t, err)
	vA, err := gen.Aggregate(shared.Consumer(a), rng)
	require.NoError(t, err)

	nClone, _ := vClone.AsNumber()
	nA, _ := vA.AsNumber()
	gotClone, _ := nClone.Int64()
	gotA, _ := nA.Int64()
	assert.Equal(t, gotA, gotClone, "clone replays the same unconsumed entry a would see next")
}
