package gen

import (
	"github.com/halvard-io/synthgen/diag"
	"github.com/halvard-io/synthgen/value"
)

// ToSize coerces a generated length value (conventionally a Number) into a
// non-negative int, as the Array content kind's compiled length generator
// must. Non-Number or negative values are a
// Compilation error: the content model's invariants should have
// been enforced before a generator graph could produce one, so reaching
// this path means the length generator itself is misconfigured.
func ToSize(v value.Value) (int, error) {
	num, ok := v.AsNumber()
	if !ok {
		return 0, diag.Compilationf("array length generator produced a non-number value of kind %q", v.Kind())
	}
	if i, ok := num.Int64(); ok {
		if i < 0 {
			return 0, diag.Compilationf("array length generator produced a negative length %d", i)
		}
		return int(i), nil
	}
	if u, ok := num.Uint64(); ok {
		return int(u), nil
	}
	if f, ok := num.Float64(); ok {
		if f < 0 {
			return 0, diag.Compilationf("array length generator produced a negative length %v", f)
		}
		return int(f), nil
	}
	if big, ok := num.BigInt(); ok {
		if !big.IsUint64() {
			return 0, diag.Compilationf("array length generator produced an out-of-range length %s", big.String())
		}
		return int(big.Uint64()), nil
	}
	return 0, diag.Compilationf("array length generator produced an unrepresentable length")
}
