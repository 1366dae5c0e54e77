package gen

import (
	"math/rand"

	"github.com/halvard-io/synthgen/value"
)

// Weighted is one (value, weight) candidate of a categorical leaf. Order
// matters: ties on equal cumulative weight are broken by picking the first
// candidate in declaration order, so every categorical constructor below
// takes a slice, never a map.
type Weighted[T any] struct {
	Value  T
	Weight float64
}

// Bernoulli draws true with probability p, false otherwise.
func Bernoulli(p float64) ValueGen {
	return Leaf(func(rng *rand.Rand) (value.Value, error) {
		return value.Bool(rng.Float64() < p), nil
	})
}

// CategoricalBool draws from a finite weighted list of the two bool
// values.
func CategoricalBool(entries []Weighted[bool]) ValueGen {
	return Leaf(func(rng *rand.Rand) (value.Value, error) {
		total := TotalWeight(entries, func(w Weighted[bool]) float64 { return w.Weight })
		idx := pickWeighted(entries, func(w Weighted[bool]) float64 { return w.Weight }, rng.Float64()*total)
		return value.Bool(entries[idx].Value), nil
	})
}
