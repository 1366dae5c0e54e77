package content

import "github.com/halvard-io/synthgen/value"

// Variant is one weighted alternative of a OneOf node.
type Variant struct {
	Weight  float64
	Content Content
}

// OneOf is the content node that picks one of Variants per record,
// weighted by Weight, ties broken by declaration order. IntoNullable
// builds a OneOf to represent "nullable T".
type OneOf struct {
	Variants []Variant
}

// NewOneOf builds a OneOf node from variants without validating them; see
// [OneOf.Validate].
func NewOneOf(variants ...Variant) OneOf {
	return OneOf{Variants: variants}
}

// Validate reports a BadRequest diag.Issue if o has no variants or a
// non-positive total weight. Unlike the other content constructors, OneOf
// construction itself does not validate eagerly: IntoNullable and the
// codec both build OneOf values incrementally, so validation is exposed
// separately and invoked by the compiler before a OneOf is compiled.
func (o OneOf) Validate() error {
	var total float64
	for _, v := range o.Variants {
		total += v.Weight
	}
	return validateWeights(len(o.Variants), total)
}

func (OneOf) Kind() Kind { return KindOneOf }

func (o OneOf) Accepts(v value.Value) bool {
	for _, variant := range o.Variants {
		if variant.Content.Accepts(v) {
			return true
		}
	}
	return false
}

func (OneOf) content() {}
