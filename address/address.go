package address

import (
	"cmp"
	"slices"
	"strings"
)

// Address is an immutable, totally ordered path of string segments. The
// zero value is the empty (root) address.
type Address struct {
	segments []string
}

// Root returns the empty Address.
func Root() Address { return Address{} }

// New builds an Address from segments in order, left to right.
func New(segments ...string) Address {
	return Address{segments: slices.Clone(segments)}
}

// Within returns a new Address with segment pushed to the front, i.e. it
// becomes the ancestor of a.
func (a Address) Within(segment string) Address {
	next := make([]string, 0, len(a.segments)+1)
	next = append(next, segment)
	next = append(next, a.segments...)
	return Address{segments: next}
}

// At returns a new Address with segment pushed to the back, i.e. a
// descends one level further. Used by the compiler when stepping into an
// object field, array keyword, or OneOf variant index.
func (a Address) At(segment string) Address {
	next := make([]string, len(a.segments), len(a.segments)+1)
	copy(next, a.segments)
	next = append(next, segment)
	return Address{segments: next}
}

// PopFront returns the Address with its first segment removed, and that
// segment. Calling PopFront on the root Address returns ("", a) unchanged.
func (a Address) PopFront() (string, Address) {
	if len(a.segments) == 0 {
		return "", a
	}
	return a.segments[0], Address{segments: slices.Clone(a.segments[1:])}
}

// PopBack returns the Address with its last segment removed, and that
// segment. Calling PopBack on the root Address returns ("", a) unchanged.
func (a Address) PopBack() (Address, string) {
	if len(a.segments) == 0 {
		return a, ""
	}
	last := len(a.segments) - 1
	return Address{segments: slices.Clone(a.segments[:last])}, a.segments[last]
}

// Segments returns a's segments. The returned slice is a defensive copy.
func (a Address) Segments() []string { return slices.Clone(a.segments) }

// Len returns the number of segments.
func (a Address) Len() int { return len(a.segments) }

// IsRoot reports whether a is the empty Address.
func (a Address) IsRoot() bool { return len(a.segments) == 0 }

// StartsWith reports whether prefix is a (possibly equal) prefix of a.
func (a Address) StartsWith(prefix Address) bool {
	if len(prefix.segments) > len(a.segments) {
		return false
	}
	for i, seg := range prefix.segments {
		if a.segments[i] != seg {
			return false
		}
	}
	return true
}

// CommonRoot returns the longest Address that is a prefix of both a and b.
func (a Address) CommonRoot(b Address) Address {
	n := min(len(a.segments), len(b.segments))
	i := 0
	for i < n && a.segments[i] == b.segments[i] {
		i++
	}
	return Address{segments: slices.Clone(a.segments[:i])}
}

// AsLocalTo returns a's segments relative to prefix, i.e. the suffix of a
// remaining after removing prefix. Panics if prefix is not a prefix of a;
// callers should check [Address.StartsWith] first. The round-trip law
// holds: prefix.Concat(a.AsLocalTo(prefix)) == a.
func (a Address) AsLocalTo(prefix Address) Address {
	if !a.StartsWith(prefix) {
		panic("address: AsLocalTo: prefix is not a prefix of a")
	}
	return Address{segments: slices.Clone(a.segments[len(prefix.segments):])}
}

// AsIn is the dual of AsLocalTo: reattaches a (treated as a relative path)
// onto base, equivalent to base.Concat(a).
func (a Address) AsIn(base Address) Address {
	return base.Concat(a)
}

// Concat returns a followed by b's segments.
func (a Address) Concat(b Address) Address {
	next := make([]string, 0, len(a.segments)+len(b.segments))
	next = append(next, a.segments...)
	next = append(next, b.segments...)
	return Address{segments: next}
}

// Compare implements a total lexicographic order over Address, segment by
// segment, with a shorter prefix ordering before a longer Address that
// extends it.
func (a Address) Compare(b Address) int {
	n := min(len(a.segments), len(b.segments))
	for i := 0; i < n; i++ {
		if c := cmp.Compare(a.segments[i], b.segments[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a.segments), len(b.segments))
}

// Key returns a string uniquely identifying a, suitable as a map key.
// Registries and diagnostics index by this plain string rather than by
// Address itself.
func (a Address) Key() string {
	return strings.Join(a.segments, "\x00")
}

// String renders a as dot-joined segments, e.g. "users.id".
func (a Address) String() string {
	return strings.Join(a.segments, ".")
}
