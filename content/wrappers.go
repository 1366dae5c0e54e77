package content

import (
	"github.com/halvard-io/synthgen/address"
	"github.com/halvard-io/synthgen/value"
)

// Null is the content node that always produces the null value.
type Null struct{}

// NewNull returns a Null content node.
func NewNull() Null { return Null{} }

func (Null) Kind() Kind                 { return KindNull }
func (Null) Accepts(v value.Value) bool { return v.IsNull() }
func (Null) content()                   {}

// Hidden wraps an inner node whose generated value is computed (and, for
// SameAs purposes, registered) but omitted from the aggregated output.
type Hidden struct {
	Inner Content
}

// NewHidden wraps inner as a Hidden node.
func NewHidden(inner Content) Hidden { return Hidden{Inner: inner} }

func (Hidden) Kind() Kind                   { return KindHidden }
func (h Hidden) Accepts(v value.Value) bool { return h.Inner.Accepts(v) }
func (Hidden) content()                     {}

// SameAs is a back-reference to a previously generated value at ref within
// the same namespace. The compiler resolves ref against its shared-handle
// registry; SameAs itself carries no opinion about what kind of value it
// will produce, so Accepts is permissive and returns true for every value,
// Null included.
type SameAs struct {
	Ref address.FieldRef
}

// NewSameAs builds a SameAs node targeting ref.
func NewSameAs(ref address.FieldRef) SameAs { return SameAs{Ref: ref} }

func (SameAs) Kind() Kind               { return KindSameAs }
func (SameAs) Accepts(value.Value) bool { return true }
func (SameAs) content()                 {}

// IsNullable reports whether c is already a OneOf containing a Null
// variant (the shape [IntoNullable] produces).
func IsNullable(c Content) bool {
	oneOf, ok := c.(OneOf)
	if !ok {
		return false
	}
	for _, v := range oneOf.Variants {
		if _, isNull := v.Content.(Null); isNull {
			return true
		}
	}
	return false
}

// IntoNullable wraps c into OneOf{[c(w=1), Null(w=1)]} unless c is already
// nullable, in which case it is returned unchanged.
func IntoNullable(c Content) Content {
	if IsNullable(c) {
		return c
	}
	return NewOneOf(
		Variant{Weight: 1, Content: c},
		Variant{Weight: 1, Content: NewNull()},
	)
}
