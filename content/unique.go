package content

import (
	"github.com/halvard-io/synthgen/diag"
	"github.com/halvard-io/synthgen/value"
)

// UniqueAlgorithm selects how Unique tracks values it has already
// yielded.
type UniqueAlgorithm string

const (
	// UniqueExactSet tracks every yielded value exactly (a hash set, or a
	// roaring bitmap when Inner yields integral Numbers), guaranteeing no
	// duplicate is ever produced but costing memory proportional to the
	// number of records generated.
	UniqueExactSet UniqueAlgorithm = "exact_set"

	// UniqueBloom tracks yielded values in a probabilistic Bloom filter,
	// trading a small false-positive "treat as duplicate and resample"
	// rate for bounded memory use.
	UniqueBloom UniqueAlgorithm = "bloom"
)

// Unique wraps Inner so that every generated value is distinct within a
// single sampling run, using Algorithm to decide how duplicates are
// detected.
type Unique struct {
	Inner     Content
	Algorithm UniqueAlgorithm
}

// NewUnique validates algorithm is one of the defined UniqueAlgorithm
// values and builds a Unique node.
func NewUnique(inner Content, algorithm UniqueAlgorithm) (Unique, error) {
	switch algorithm {
	case UniqueExactSet, UniqueBloom:
	default:
		return Unique{}, diag.BadRequestf("unknown unique algorithm %q", algorithm)
	}
	return Unique{Inner: inner, Algorithm: algorithm}, nil
}

func (Unique) Kind() Kind { return KindUnique }

func (u Unique) Accepts(v value.Value) bool { return u.Inner.Accepts(v) }

func (Unique) content() {}
