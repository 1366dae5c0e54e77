package gen

import (
	"math/rand"

	"github.com/halvard-io/synthgen/value"
)

// oneShot backs every ValueGen that produces its entire value in a single
// logical step: emit one Primitive token carrying the computed value, then
// complete with that same value. Leaves and the value-transforming
// combinators (Map, AndThen's eventual result, Unique, Shared's per-consumer
// view) are all built on this; only the two recursive containers (Chain,
// Seq) need genuine multi-token streaming, since they are the only content
// kinds whose children may themselves be structured.
type oneShot struct {
	compute func(rng *rand.Rand) (value.Value, error)
	stage   int
	val     value.Value
	err     error
}

func newOneShot(compute func(*rand.Rand) (value.Value, error)) *oneShot {
	return &oneShot{compute: compute}
}

func (o *oneShot) Next(rng *rand.Rand) (Step[value.Token, Result[value.Value]], error) {
	switch o.stage {
	case 0:
		o.val, o.err = o.compute(rng)
		o.stage = 1
		if o.err != nil {
			return Yielded[value.Token, Result[value.Value]](value.SpecialError(o.err)), nil
		}
		return Yielded[value.Token, Result[value.Value]](value.Primitive(o.val)), nil
	default:
		o.stage = 2
		if o.err != nil {
			return Complete[value.Token, Result[value.Value]](Err[value.Value](o.err)), nil
		}
		return Complete[value.Token, Result[value.Value]](Ok(o.val)), nil
	}
}

// Leaf builds a ValueGen from a single seeded computation. Every leaf
// generator in this package is built on Leaf.
func Leaf(compute func(rng *rand.Rand) (value.Value, error)) ValueGen {
	return newOneShot(compute)
}

// Const yields v unconditionally: the one-shot combinator behind
// BoolConstant, NumberConstant, StringConstant, and UUIDMode.
func Const(v value.Value) ValueGen {
	return newOneShot(func(*rand.Rand) (value.Value, error) { return v, nil })
}

// Map drives inner to a complete value and transforms it with f, collapsing
// inner's own token stream into the single transformed value (valid: a
// [value.Value] may itself carry an Array or Object, so collapsing loses no
// structure an aggregator can observe). Used by Truncated, Sliced, Format,
// and Serialized, each of which is a pure function of an already-generated
// string value.
func Map(inner ValueGen, f func(value.Value) (value.Value, error)) ValueGen {
	return newOneShot(func(rng *rand.Rand) (value.Value, error) {
		v, err := Aggregate(inner, rng)
		if err != nil {
			return value.Value{}, err
		}
		return f(v)
	})
}

// andThen is the backing for [AndThenTry]: drive a to completion, build b
// from a's result, then forward b's steps (tokens and terminal result)
// verbatim. Used by the compiler to wire an Array's length generator to a
// length-many Seq of its element content.
type andThen struct {
	a      ValueGen
	build  func(value.Value) (ValueGen, error)
	b      ValueGen
	failed error
}

// AndThenTry composes a sequential dependency: a is driven to completion,
// its result passed to build, and the resulting generator driven in turn.
// Propagates the first error from either stage and halts.
func AndThenTry(a ValueGen, build func(value.Value) (ValueGen, error)) ValueGen {
	return &andThen{a: a, build: build}
}

// AndThen is AndThenTry for a builder that cannot itself fail.
func AndThen(a ValueGen, build func(value.Value) ValueGen) ValueGen {
	return AndThenTry(a, func(v value.Value) (ValueGen, error) { return build(v), nil })
}

func (c *andThen) Next(rng *rand.Rand) (Step[value.Token, Result[value.Value]], error) {
	if c.failed != nil {
		return Complete[value.Token, Result[value.Value]](Err[value.Value](c.failed)), nil
	}
	if c.b == nil {
		v, err := Aggregate(c.a, rng)
		if err != nil {
			c.failed = err
			return Yielded[value.Token, Result[value.Value]](value.SpecialError(err)), nil
		}
		b, err := c.build(v)
		if err != nil {
			c.failed = err
			return Yielded[value.Token, Result[value.Value]](value.SpecialError(err)), nil
		}
		c.b = b
	}
	return c.b.Next(rng)
}

// Repeat drives n successively-built inner generators to completion and
// completes with the collected results as an array value, without the
// BeginArray/EndArray bracketing [Seq] adds. Used where a caller needs n
// runs of a generator as one value rather than as array tokens.
func Repeat(n int, build func(i int) (ValueGen, error)) ValueGen {
	return newOneShot(func(rng *rand.Rand) (value.Value, error) {
		results := make([]value.Value, 0, n)
		for i := 0; i < n; i++ {
			g, err := build(i)
			if err != nil {
				return value.Value{}, err
			}
			v, err := Aggregate(g, rng)
			if err != nil {
				return value.Value{}, err
			}
			results = append(results, v)
		}
		return value.Array(results), nil
	})
}

// Seq builds the bracketed array combinator: BeginArray, then n
// successively-built element generators with their tokens forwarded
// verbatim, then EndArray. build(i) constructs the i'th element's
// generator fresh — content generators are not assumed restartable, so
// every repetition gets its own instance.
func Seq(n int, build func(i int) (ValueGen, error)) ValueGen {
	return &seqGen{n: n, build: build}
}

type seqGen struct {
	n     int
	build func(i int) (ValueGen, error)
	idx   int
	cur   ValueGen
	phase int // 0=need-begin 1=elements 2=need-end 3=done
	err   error
}

func (s *seqGen) Next(rng *rand.Rand) (Step[value.Token, Result[value.Value]], error) {
	if s.err != nil {
		return Complete[value.Token, Result[value.Value]](Err[value.Value](s.err)), nil
	}
	switch s.phase {
	case 0:
		s.phase = 1
		if s.idx >= s.n {
			s.phase = 2
		}
		return Yielded[value.Token, Result[value.Value]](value.BeginArray()), nil
	case 1:
		return s.stepElement(rng)
	case 2:
		s.phase = 3
		return Yielded[value.Token, Result[value.Value]](value.EndArray()), nil
	default:
		return Complete[value.Token, Result[value.Value]](Ok(value.Value{})), nil
	}
}

func (s *seqGen) stepElement(rng *rand.Rand) (Step[value.Token, Result[value.Value]], error) {
	if s.cur == nil {
		g, err := s.build(s.idx)
		if err != nil {
			s.err = err
			return Yielded[value.Token, Result[value.Value]](value.SpecialError(err)), nil
		}
		s.cur = g
	}
	step, err := s.cur.Next(rng)
	if err != nil {
		return Step[value.Token, Result[value.Value]]{}, err
	}
	if step.IsYielded() {
		return step, nil
	}
	if r := step.Return(); r.IsErr() {
		s.err = r.Err
		return Yielded[value.Token, Result[value.Value]](value.SpecialError(r.Err)), nil
	}
	s.cur = nil
	s.idx++
	if s.idx >= s.n {
		s.phase = 2
	}
	return s.Next(rng)
}

// ObjectField describes one field slot compiled into a Chain object
// generator. An Optional field is present with probability P (1/2 when
// unset); when
// absent, neither its key nor its value is emitted — the field is
// genuinely missing from the aggregated object, not present with a null
// value.
type ObjectField struct {
	Name     string
	Build    func() (ValueGen, error)
	Optional bool
	P        float64

	// Hidden fields are driven to completion so their state (counters,
	// shared-handle broadcasts) advances, but emit neither key nor value
	// into the object's token stream.
	Hidden bool
}

// Chain builds the bracketed object combinator: BeginObject, then for each
// present field a FieldKey token followed by that field's forwarded token
// stream, in declaration order, then EndObject.
func Chain(fields []ObjectField) ValueGen {
	return &chainGen{fields: fields}
}

type chainGen struct {
	fields        []ObjectField
	idx           int
	phase         int // 0=need-begin 1=fields 2=need-end 3=done
	cur           ValueGen
	curKeyEmitted bool
	err           error
}

func (c *chainGen) Next(rng *rand.Rand) (Step[value.Token, Result[value.Value]], error) {
	if c.err != nil {
		return Complete[value.Token, Result[value.Value]](Err[value.Value](c.err)), nil
	}
	switch c.phase {
	case 0:
		c.phase = 1
		return Yielded[value.Token, Result[value.Value]](value.BeginObject()), nil
	case 1:
		return c.stepField(rng)
	case 2:
		c.phase = 3
		return Yielded[value.Token, Result[value.Value]](value.EndObject()), nil
	default:
		return Complete[value.Token, Result[value.Value]](Ok(value.Value{})), nil
	}
}

func (c *chainGen) stepField(rng *rand.Rand) (Step[value.Token, Result[value.Value]], error) {
	for c.idx < len(c.fields) {
		f := c.fields[c.idx]
		if c.cur == nil && !c.curKeyEmitted {
			if f.Hidden {
				g, err := f.Build()
				if err == nil {
					_, err = Aggregate(g, rng)
				}
				if err != nil {
					c.err = err
					return Yielded[value.Token, Result[value.Value]](value.SpecialError(err)), nil
				}
				c.idx++
				continue
			}
			if f.Optional {
				p := f.P
				if p == 0 {
					p = 0.5
				}
				if rng.Float64() >= p {
					c.idx++
					continue
				}
			}
			g, err := f.Build()
			if err != nil {
				c.err = err
				return Yielded[value.Token, Result[value.Value]](value.SpecialError(err)), nil
			}
			c.cur = g
			c.curKeyEmitted = true
			return Yielded[value.Token, Result[value.Value]](value.FieldKey(f.Name)), nil
		}
		step, err := c.cur.Next(rng)
		if err != nil {
			return Step[value.Token, Result[value.Value]]{}, err
		}
		if step.IsYielded() {
			return step, nil
		}
		if r := step.Return(); r.IsErr() {
			c.err = r.Err
			return Yielded[value.Token, Result[value.Value]](value.SpecialError(r.Err)), nil
		}
		c.cur = nil
		c.curKeyEmitted = false
		c.idx++
	}
	c.phase = 2
	return c.Next(rng)
}

// Variant is one weighted alternative of a OneOf combinator.
type Variant struct {
	Weight float64
	Build  func() (ValueGen, error)
}

// OneOf samples one variant (weighted, linear-scan inverse-CDF, ties
// broken by declaration order) on the first Next call, then forwards that
// variant's steps verbatim for the remainder of this run.
func OneOf(variants []Variant, r float64) ValueGen {
	return &oneOfGen{variants: variants, r: r}
}

type oneOfGen struct {
	variants []Variant
	r        float64
	chosen   ValueGen
	err      error
}

func (o *oneOfGen) Next(rng *rand.Rand) (Step[value.Token, Result[value.Value]], error) {
	if o.err != nil {
		return Complete[value.Token, Result[value.Value]](Err[value.Value](o.err)), nil
	}
	if o.chosen == nil {
		idx := pickWeighted(o.variants, func(v Variant) float64 { return v.Weight }, o.r)
		g, err := o.variants[idx].Build()
		if err != nil {
			o.err = err
			return Yielded[value.Token, Result[value.Value]](value.SpecialError(err)), nil
		}
		o.chosen = g
	}
	return o.chosen.Next(rng)
}

// Concatenate forwards a's steps entirely, then b's, returning a's
// Complete result if it errors and otherwise b's. Callers that need the
// joined scalar value of two one-shot generators should use Map over the
// pair's individually-aggregated values instead: a top-level Aggregate on
// a bare Concatenate of two Primitive-yielding generators only ever
// observes a's token, since the aggregator closes as soon as its stack
// returns to empty.
func Concatenate(a, b ValueGen) ValueGen {
	return &concatGen{a: a, b: b}
}

type concatGen struct {
	a, b ValueGen
	onB  bool
}

func (c *concatGen) Next(rng *rand.Rand) (Step[value.Token, Result[value.Value]], error) {
	if !c.onB {
		step, err := c.a.Next(rng)
		if err != nil {
			return Step[value.Token, Result[value.Value]]{}, err
		}
		if step.IsYielded() {
			return step, nil
		}
		if r := step.Return(); r.IsErr() {
			return Complete[value.Token, Result[value.Value]](r), nil
		}
		c.onB = true
	}
	return c.b.Next(rng)
}
