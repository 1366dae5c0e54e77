package content

import "github.com/halvard-io/synthgen/value"

// Array is the content node producing array values: each element is
// generated from Elem, and the array's length is itself generated from
// Length (conventionally a Number node), letting length vary per record.
type Array struct {
	Length Content
	Elem   Content
}

// NewArray builds an Array node.
func NewArray(length, elem Content) Array {
	return Array{Length: length, Elem: elem}
}

func (Array) Kind() Kind { return KindArray }

func (a Array) Accepts(v value.Value) bool {
	arr, ok := v.AsArray()
	if !ok {
		return false
	}
	for _, elem := range arr {
		if !a.Elem.Accepts(elem) {
			return false
		}
	}
	return true
}

func (Array) content() {}
