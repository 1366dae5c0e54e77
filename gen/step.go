package gen

import (
	"math/rand"

	"github.com/halvard-io/synthgen/value"
)

// Step is the closed, two-case outcome of one [Generator.Next] call: either
// an intermediate Yield of type Y, or a terminal Return of type R. Step is a
// value type; its zero value is never meaningful on its own — construct one
// with [Yielded] or [Complete].
type Step[Y, R any] struct {
	yielded bool
	y       Y
	r       R
}

// Yielded builds a Step carrying an intermediate yield.
func Yielded[Y, R any](y Y) Step[Y, R] {
	return Step[Y, R]{yielded: true, y: y}
}

// Complete builds a Step carrying a terminal result.
func Complete[Y, R any](r R) Step[Y, R] {
	return Step[Y, R]{r: r}
}

// IsYielded reports whether this Step carries an intermediate yield rather
// than a terminal result.
func (s Step[Y, R]) IsYielded() bool { return s.yielded }

// Yield returns the wrapped yield value. Only meaningful when IsYielded().
func (s Step[Y, R]) Yield() Y { return s.y }

// Return returns the wrapped terminal result. Only meaningful when
// !IsYielded().
func (s Step[Y, R]) Return() R { return s.r }

// Generator is the uniform stepped-execution interface every value producer
// in this engine implements: advance by one step, producing either an
// intermediate yield or a terminal result. Next's own error return is
// reserved for programmer-error conditions (a malformed combinator wiring);
// expected schema-driven failure travels inside R via [Result], per the
// fallible-generator convention.
type Generator[Y, R any] interface {
	Next(rng *rand.Rand) (Step[Y, R], error)
}

// Result is the fallible generator's terminal payload: a value alongside an
// error. Combinators over Result-returning generators propagate the first
// non-nil Err and halt (AndThenTry, Repeat, Chain, Seq).
type Result[T any] struct {
	Value T
	Err   error
}

// Ok wraps a successful value as a Result.
func Ok[T any](v T) Result[T] { return Result[T]{Value: v} }

// Err wraps a failure as a Result.
func Err[T any](err error) Result[T] { return Result[T]{Err: err} }

// IsErr reports whether r carries a non-nil error.
func (r Result[T]) IsErr() bool { return r.Err != nil }

// ValueGen is the concrete generator shape every leaf and combinator in
// this package produces: a token-yielding, [value.Value]-returning,
// fallible generator. The compiler (package compile) composes graphs
// exclusively out of ValueGen values.
type ValueGen = Generator[value.Token, Result[value.Value]]
