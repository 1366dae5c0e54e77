package gen_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halvard-io/synthgen/gen"
)

func TestSeriesIncrementing_AdvancesByFixedDuration(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	factory := gen.NewSeriesIncrementing(time.RFC3339, start, time.Hour)

	want := []time.Time{start, start.Add(time.Hour), start.Add(2 * time.Hour)}
	for _, w := range want {
		g, err := factory()
		require.NoError(t, err)
		v, err := gen.Aggregate(g, rng)
		require.NoError(t, err)
		got, _, ok := v.AsDateTime()
		require.True(t, ok)
		assert.True(t, got.Equal(w), "got %s want %s", got, w)
	}
}

func TestSeriesPoisson_StrictlyIncreasingAfterFirst(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	factory := gen.NewSeriesPoisson(time.RFC3339, start, 1.0)

	var prev time.Time
	for i := 0; i < 10; i++ {
		g, err := factory()
		require.NoError(t, err)
		v, err := gen.Aggregate(g, rng)
		require.NoError(t, err)
		got, _, _ := v.AsDateTime()
		if i > 0 {
			assert.True(t, got.After(prev), "timestamp %s did not advance past %s", got, prev)
		}
		prev = got
	}
}

func TestSeriesCyclical_StaysMonotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	factory := gen.NewSeriesCyclical(time.RFC3339, start, 24*time.Hour, 0.01, 1.0)

	var prev time.Time
	for i := 0; i < 20; i++ {
		g, err := factory()
		require.NoError(t, err)
		v, err := gen.Aggregate(g, rng)
		require.NoError(t, err)
		got, _, _ := v.AsDateTime()
		if i > 0 {
			assert.True(t, !got.Before(prev), "timestamp %s went backwards from %s", got, prev)
		}
		prev = got
	}
}

func TestSeriesZip_AlwaysEmitsGloballySmallestNext(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	startA := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	startB := time.Date(2024, 1, 1, 0, 30, 0, 0, time.UTC)
	fa := gen.NewSeriesIncrementing(time.RFC3339, startA, time.Hour)
	fb := gen.NewSeriesIncrementing(time.RFC3339, startB, time.Hour)
	zip := gen.NewSeriesZip([]func() (gen.ValueGen, error){fa, fb})

	var prev time.Time
	for i := 0; i < 8; i++ {
		g, err := zip()
		require.NoError(t, err)
		v, err := gen.Aggregate(g, rng)
		require.NoError(t, err)
		got, _, _ := v.AsDateTime()
		if i > 0 {
			assert.True(t, !got.Before(prev), "zip merge produced out-of-order timestamp %s after %s", got, prev)
		}
		prev = got
	}
}
