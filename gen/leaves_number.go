package gen

import (
	"math"
	"math/big"
	"math/rand"

	"github.com/halvard-io/synthgen/diag"
	"github.com/halvard-io/synthgen/value"
)

// NumberRange draws a value in [low, high) at increments of step:
// low + floor(U(0,high-low)/step)*step, reconstructed in variant's native
// representation.
func NumberRange(variant value.NumberVariant, low, high, step value.Number) ValueGen {
	return Leaf(func(rng *rand.Rand) (value.Value, error) {
		lo, hi, st := low.AsFloat64(), high.AsFloat64(), step.AsFloat64()
		u := rng.Float64() * (hi - lo)
		n := math.Floor(u / st)
		sampled := lo + n*st
		return value.Num(reconstructNumber(variant, sampled)), nil
	})
}

// CategoricalNumber draws from a finite weighted list of Numbers.
func CategoricalNumber(entries []Weighted[value.Number]) ValueGen {
	return Leaf(func(rng *rand.Rand) (value.Value, error) {
		total := TotalWeight(entries, func(w Weighted[value.Number]) float64 { return w.Weight })
		idx := pickWeighted(entries, func(w Weighted[value.Number]) float64 { return w.Weight }, rng.Float64()*total)
		return value.Num(entries[idx].Value), nil
	})
}

// NewIncrementing returns a factory producing one fresh advance per call:
// start, start+step, start+2*step, .... State (the running counter) lives
// in the closure and persists across calls, which is what lets an
// Incrementing field keep counting across sampling rounds rather than
// resetting to start each round. Exceeding the variant's representable
// range fails with a Fatal Unspecified diagnostic: overflow is fatal
// rather than silently wrapping.
func NewIncrementing(start, step value.Number) func() (ValueGen, error) {
	state := &incrementingState{current: start, step: step}
	return func() (ValueGen, error) {
		return Leaf(func(*rand.Rand) (value.Value, error) {
			return state.advance()
		}), nil
	}
}

type incrementingState struct {
	current value.Number
	step    value.Number
	started bool
}

func (s *incrementingState) advance() (value.Value, error) {
	if !s.started {
		s.started = true
		return value.Num(s.current), nil
	}
	next, overflowed := addNumber(s.current, s.step)
	if overflowed {
		return value.Value{}, diag.Unspecifiedf(
			"incrementing counter overflowed %s; try a larger numeric type", s.current.Variant())
	}
	s.current = next
	return value.Num(next), nil
}

func reconstructNumber(variant value.NumberVariant, f float64) value.Number {
	switch {
	case variant.IsFloat():
		return value.NewFloat(variant, f)
	case variant.Is128():
		bi, _ := big.NewFloat(f).Int(nil)
		return value.NewBigInt(variant, bi)
	case variant.IsSigned():
		return value.NewInt(variant, int64(math.Round(f)))
	default:
		return value.NewUint(variant, uint64(math.Round(f)))
	}
}

// addNumber adds a and b (which must share a variant) with overflow
// detection for integer variants; float addition never reports overflow.
func addNumber(a, b value.Number) (value.Number, bool) {
	v := a.Variant()
	if v.IsFloat() {
		af, _ := a.Float64()
		bf, _ := b.Float64()
		return value.NewFloat(v, af+bf), false
	}
	sum := new(big.Int).Add(numberToBig(a), numberToBig(b))
	if !fitsVariant(v, sum) {
		return value.Number{}, true
	}
	return bigToNumber(v, sum), false
}

func numberToBig(n value.Number) *big.Int {
	if bi, ok := n.BigInt(); ok {
		return bi
	}
	if i, ok := n.Int64(); ok {
		return big.NewInt(i)
	}
	if u, ok := n.Uint64(); ok {
		return new(big.Int).SetUint64(u)
	}
	return big.NewInt(0)
}

func bigToNumber(v value.NumberVariant, bi *big.Int) value.Number {
	switch {
	case v.Is128():
		return value.NewBigInt(v, bi)
	case v.IsSigned():
		return value.NewInt(v, bi.Int64())
	default:
		return value.NewUint(v, bi.Uint64())
	}
}

func fitsVariant(v value.NumberVariant, bi *big.Int) bool {
	lo, hi := variantBounds(v)
	if lo == nil {
		return true
	}
	return bi.Cmp(lo) >= 0 && bi.Cmp(hi) <= 0
}

func variantBounds(v value.NumberVariant) (lo, hi *big.Int) {
	switch v {
	case value.I8:
		return big.NewInt(-128), big.NewInt(127)
	case value.I16:
		return big.NewInt(-32768), big.NewInt(32767)
	case value.I32:
		return big.NewInt(math.MinInt32), big.NewInt(math.MaxInt32)
	case value.I64:
		return big.NewInt(math.MinInt64), big.NewInt(math.MaxInt64)
	case value.I128:
		hi := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
		lo := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
		return lo, hi
	case value.U8:
		return big.NewInt(0), big.NewInt(255)
	case value.U16:
		return big.NewInt(0), big.NewInt(65535)
	case value.U32:
		return big.NewInt(0), new(big.Int).SetUint64(math.MaxUint32)
	case value.U64:
		return big.NewInt(0), new(big.Int).SetUint64(math.MaxUint64)
	case value.U128:
		return big.NewInt(0), new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	default:
		return nil, nil
	}
}
