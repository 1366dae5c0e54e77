// Package gen implements the generator algebra: a uniform stepped-execution
// interface for stateful, seeded value producers, the combinators that
// compose them, and the driver helpers ([DriveToComplete], [Aggregate]) that run a
// generator to a result.
//
// Every concrete generator in this engine is instantiated at
// Generator[value.Token, Result[value.Value]] — aliased as [ValueGen] — so
// that leaves, combinators, and the compiler can be composed uniformly
// regardless of the shape of content they produce. A generator is not
// required to be restartable: a driver consumes it until a Complete step
// is observed, then discards it.
package gen
