package value

import (
	"fmt"
	"math/big"
)

// NumberVariant tags the width and signedness of a [Number]. Arithmetic
// never silently widens across variants: combining two Numbers of
// different variants is a programmer error the caller must resolve
// explicitly.
type NumberVariant uint8

const (
	I8 NumberVariant = iota
	I16
	I32
	I64
	I128
	U8
	U16
	U32
	U64
	U128
	F32
	F64
)

// String returns the variant's lower-case wire name, e.g. "i64", "u128".
func (v NumberVariant) String() string {
	switch v {
	case I8:
		return "i8"
	case I16:
		return "i16"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case I128:
		return "i128"
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	case U64:
		return "u64"
	case U128:
		return "u128"
	case F32:
		return "f32"
	case F64:
		return "f64"
	default:
		return fmt.Sprintf("NumberVariant(%d)", v)
	}
}

// IsFloat reports whether the variant is a floating-point variant.
func (v NumberVariant) IsFloat() bool { return v == F32 || v == F64 }

// IsSigned reports whether the variant is a signed integer variant.
func (v NumberVariant) IsSigned() bool {
	switch v {
	case I8, I16, I32, I64, I128:
		return true
	default:
		return false
	}
}

// Is128 reports whether the variant needs big.Int-backed storage. i128 and
// u128 do not fit in an int64/uint64; Number stores them as *big.Int and
// narrows to 64 bits only at JSON projection time; the YAML projection
// writes the full decimal value. The JSON narrowing is a deliberate, lossy
// boundary of the wire format.
func (v NumberVariant) Is128() bool { return v == I128 || v == U128 }

// Number is an immutable, variant-tagged numeric value.
//
// Exactly one of the internal fields is meaningful, selected by variant:
// i128/u128 numbers carry a *big.Int in big; float variants carry f; every
// other integer variant is stored widened into i (signed) or u (unsigned).
type Number struct {
	variant NumberVariant
	i       int64
	u       uint64
	f       float64
	big     *big.Int
}

// NewInt constructs a signed integer Number of the given variant. variant
// must be one of I8, I16, I32, I64, I128; passing any other variant panics,
// since this constructor exists to keep call sites from silently producing
// a Number whose fields disagree with its own tag.
func NewInt(variant NumberVariant, v int64) Number {
	switch variant {
	case I8, I16, I32, I64:
		return Number{variant: variant, i: v}
	case I128:
		return Number{variant: variant, big: big.NewInt(v)}
	default:
		panic("value.NewInt: variant " + variant.String() + " is not a signed integer variant")
	}
}

// NewUint constructs an unsigned integer Number of the given variant.
// variant must be one of U8, U16, U32, U64, U128.
func NewUint(variant NumberVariant, v uint64) Number {
	switch variant {
	case U8, U16, U32, U64:
		return Number{variant: variant, u: v}
	case U128:
		return Number{variant: variant, big: new(big.Int).SetUint64(v)}
	default:
		panic("value.NewUint: variant " + variant.String() + " is not an unsigned integer variant")
	}
}

// NewBigInt constructs an I128 or U128 Number directly from a *big.Int.
// The big.Int is cloned; callers may freely mutate the original afterward.
func NewBigInt(variant NumberVariant, v *big.Int) Number {
	if variant != I128 && variant != U128 {
		panic("value.NewBigInt: variant " + variant.String() + " is not a 128-bit variant")
	}
	return Number{variant: variant, big: new(big.Int).Set(v)}
}

// NewFloat constructs a floating-point Number of the given variant.
// variant must be F32 or F64.
func NewFloat(variant NumberVariant, v float64) Number {
	if !variant.IsFloat() {
		panic("value.NewFloat: variant " + variant.String() + " is not a float variant")
	}
	return Number{variant: variant, f: v}
}

// Variant returns the Number's tagged variant.
func (n Number) Variant() NumberVariant { return n.variant }

// Int64 returns the Number as an int64, true if it holds a signed integer
// variant narrower than 128 bits.
func (n Number) Int64() (int64, bool) {
	switch n.variant {
	case I8, I16, I32, I64:
		return n.i, true
	default:
		return 0, false
	}
}

// Uint64 returns the Number as a uint64, true if it holds an unsigned
// integer variant narrower than 128 bits.
func (n Number) Uint64() (uint64, bool) {
	switch n.variant {
	case U8, U16, U32, U64:
		return n.u, true
	default:
		return 0, false
	}
}

// BigInt returns the Number's *big.Int backing, true if the variant is
// I128 or U128. The returned pointer is owned by the caller.
func (n Number) BigInt() (*big.Int, bool) {
	if !n.variant.Is128() {
		return nil, false
	}
	return new(big.Int).Set(n.big), true
}

// Float64 returns the Number as a float64, true if it holds a float
// variant.
func (n Number) Float64() (float64, bool) {
	if !n.variant.IsFloat() {
		return 0, false
	}
	return n.f, true
}

// AsFloat64 returns the Number widened to float64 regardless of variant,
// for ordering and comparison purposes where exact precision is not
// required (range-bound checks, weight math). Uniqueness hashing does not
// go through this widening.
func (n Number) AsFloat64() float64 {
	switch {
	case n.variant.IsFloat():
		return n.f
	case n.variant.Is128():
		f, _ := new(big.Float).SetInt(n.big).Float64()
		return f
	case n.variant.IsSigned():
		return float64(n.i)
	default:
		return float64(n.u)
	}
}

// String renders the Number's value without its variant tag, e.g. "42" or
// "3.5".
func (n Number) String() string {
	switch {
	case n.variant.IsFloat():
		return trimFloat(n.f)
	case n.variant.Is128():
		return n.big.String()
	case n.variant.IsSigned():
		return fmt.Sprintf("%d", n.i)
	default:
		return fmt.Sprintf("%d", n.u)
	}
}

func trimFloat(f float64) string {
	return fmt.Sprintf("%g", f)
}
