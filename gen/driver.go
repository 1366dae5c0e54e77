package gen

import (
	"fmt"
	"math/rand"

	"github.com/halvard-io/synthgen/value"
)

// DriveToComplete drives g to its first Complete step and returns the
// terminal result, discarding any intermediate yields. This is the
// complete-style driver helper: run to the terminal result.
func DriveToComplete[Y, R any](g Generator[Y, R], rng *rand.Rand) (R, error) {
	for {
		step, err := g.Next(rng)
		if err != nil {
			var zero R
			return zero, err
		}
		if !step.IsYielded() {
			return step.Return(), nil
		}
	}
}

// Aggregate drives a token-yielding generator, feeding every yielded token
// into a [value.Aggregator], and returns the reconstructed outermost
// [value.Value] as soon as the aggregator observes a well-formed, closed
// stream. It does not
// wait for g's own terminal Return: a Chain-composed object generator's
// last meaningful step is the EndObject token, and nothing downstream of
// aggregation needs the Return the Chain eventually also produces.
func Aggregate(g ValueGen, rng *rand.Rand) (value.Value, error) {
	agg := value.NewAggregator()
	for {
		step, err := g.Next(rng)
		if err != nil {
			return value.Value{}, err
		}
		if !step.IsYielded() {
			if r := step.Return(); r.IsErr() {
				return value.Value{}, r.Err
			}
			return value.Value{}, fmt.Errorf("gen: generator completed before its token stream closed a well-formed value")
		}
		tok := step.Yield()
		if err, ok := tok.AsError(); ok {
			return value.Value{}, err
		}
		v, done, err := agg.Push(tok)
		if err != nil {
			return value.Value{}, err
		}
		if done {
			return v, nil
		}
	}
}
