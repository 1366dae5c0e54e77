package content

import (
	"github.com/halvard-io/synthgen/diag"
	"github.com/halvard-io/synthgen/value"
)

// BoolMode selects how a Bool content node's value is chosen: a weighted
// coin flip, a fixed constant, or a finite weighted map of the two bool
// values. It is a closed sum, mirroring Content itself.
type BoolMode interface {
	boolMode()
}

// Frequency draws true with probability P, false otherwise. P must be in
// [0, 1]; use [NewFrequency] to construct one, which validates this.
type Frequency struct {
	P float64
}

func (Frequency) boolMode() {}

// NewFrequency validates p and returns a Frequency mode, or a BadRequest
// diag.Issue if p is outside [0, 1].
func NewFrequency(p float64) (Frequency, error) {
	if p < 0 || p > 1 {
		return Frequency{}, diag.BadRequestf("bool frequency %v is outside [0, 1]", p)
	}
	return Frequency{P: p}, nil
}

// BoolConstant always yields the same bool value.
type BoolConstant struct {
	Value bool
}

func (BoolConstant) boolMode() {}

// NewBoolConstant returns a BoolConstant mode.
func NewBoolConstant(v bool) BoolConstant { return BoolConstant{Value: v} }

// BoolCategorical draws from a finite weighted map of true/false.
type BoolCategorical struct {
	Weights map[bool]float64
}

func (BoolCategorical) boolMode() {}

// NewBoolCategorical validates that weights is non-empty with positive
// total weight and returns a BoolCategorical mode.
func NewBoolCategorical(weights map[bool]float64) (BoolCategorical, error) {
	if err := validateWeights(len(weights), totalWeight(weights)); err != nil {
		return BoolCategorical{}, err
	}
	return BoolCategorical{Weights: weights}, nil
}

func totalWeight(weights map[bool]float64) float64 {
	var total float64
	for _, w := range weights {
		total += w
	}
	return total
}

func validateWeights(count int, total float64) error {
	if count == 0 {
		return diag.BadRequestf("categorical content must have at least one candidate")
	}
	if total <= 0 {
		return diag.BadRequestf("categorical content must have a positive total weight, got %v", total)
	}
	return nil
}

// Bool is the content node producing bool values, parameterized by a
// BoolMode.
type Bool struct {
	Mode BoolMode
}

// NewBool wraps mode as a Bool content node.
func NewBool(mode BoolMode) Bool { return Bool{Mode: mode} }

func (Bool) Kind() Kind { return KindBool }

func (Bool) Accepts(v value.Value) bool {
	_, ok := v.AsBool()
	return ok
}

func (Bool) content() {}
