package content

import (
	"github.com/halvard-io/synthgen/diag"
	"github.com/halvard-io/synthgen/value"
)

// NumberMode selects how a Number content node's value is chosen.
type NumberMode interface {
	numberMode()
}

// Range draws a value in [Low, High) at increments of Step: Low, High, and
// Step must share Number's Variant; Low < High and Step > 0.
type Range struct {
	Low, High, Step value.Number
}

func (Range) numberMode() {}

// NewRange validates low < high and step > 0 (compared via AsFloat64,
// since a Range spans a single numeric variant and its bounds are always
// narrow enough to compare safely that way) and returns a Range mode.
func NewRange(low, high, step value.Number) (Range, error) {
	if low.Variant() != high.Variant() || low.Variant() != step.Variant() {
		return Range{}, diag.BadRequestf("range bounds must share one numeric variant, got %s/%s/%s",
			low.Variant(), high.Variant(), step.Variant())
	}
	if !(low.AsFloat64() < high.AsFloat64()) {
		return Range{}, diag.BadRequestf("range requires low < high, got low=%s high=%s", low, high)
	}
	if !(step.AsFloat64() > 0) {
		return Range{}, diag.BadRequestf("range requires step > 0, got step=%s", step)
	}
	return Range{Low: low, High: high, Step: step}, nil
}

// NumberConstant always yields the same Number.
type NumberConstant struct {
	Value value.Number
}

func (NumberConstant) numberMode() {}

// NewNumberConstant returns a NumberConstant mode.
func NewNumberConstant(v value.Number) NumberConstant { return NumberConstant{Value: v} }

// NumberCategoricalEntry is one (value, weight) pair in a NumberCategorical
// mode. A slice (rather than a map) preserves the insertion order the
// tie-break rule depends on.
type NumberCategoricalEntry struct {
	Value  value.Number
	Weight float64
}

// NumberCategorical draws from a finite weighted list of Numbers, with
// ties on equal cumulative weight broken by picking the first candidate in
// insertion order.
type NumberCategorical struct {
	Entries []NumberCategoricalEntry
}

func (NumberCategorical) numberMode() {}

// NewNumberCategorical validates entries is non-empty with positive total
// weight.
func NewNumberCategorical(entries []NumberCategoricalEntry) (NumberCategorical, error) {
	var total float64
	for _, e := range entries {
		total += e.Weight
	}
	if err := validateWeights(len(entries), total); err != nil {
		return NumberCategorical{}, err
	}
	return NumberCategorical{Entries: entries}, nil
}

// Incrementing yields Start, Start+Step, Start+2*Step, ... and fails with
// an Unspecified("overflow") diag.Issue when the variant's range is
// exceeded (see gen.NewIncrementing); overflow is fatal rather than
// wrapping.
type Incrementing struct {
	Start, Step value.Number
}

func (Incrementing) numberMode() {}

// NewIncrementing validates Start and Step share one numeric variant.
func NewIncrementing(start, step value.Number) (Incrementing, error) {
	if start.Variant() != step.Variant() {
		return Incrementing{}, diag.BadRequestf("incrementing start/step must share one numeric variant, got %s/%s",
			start.Variant(), step.Variant())
	}
	return Incrementing{Start: start, Step: step}, nil
}

// Number is the content node producing Number values of one fixed
// NumberVariant, parameterized by a NumberMode.
type Number struct {
	Variant value.NumberVariant
	Mode    NumberMode
}

// NewNumber wraps mode as a Number content node of the given variant.
func NewNumber(variant value.NumberVariant, mode NumberMode) Number {
	return Number{Variant: variant, Mode: mode}
}

func (Number) Kind() Kind { return KindNumber }

func (n Number) Accepts(v value.Value) bool {
	num, ok := v.AsNumber()
	return ok && num.Variant() == n.Variant
}

func (Number) content() {}
