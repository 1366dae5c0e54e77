package address

import (
	"fmt"
	"strings"
)

// ArrayContent and ArrayLength are the reserved FieldRef segments used to
// step into an Array content node's element content and length sub-nodes
// respectively.
const (
	ArrayContent = "content"
	ArrayLength  = "length"
)

// FieldRef is an Address whose first segment names a collection and whose
// remaining segments descend through object fields, the reserved
// "content"/"length" array keywords, and numeric OneOf variant indices.
// FieldRef is the canonical form a SameAs content node uses to identify
// its target.
type FieldRef struct {
	addr Address
}

// NewFieldRef wraps an already-built Address as a FieldRef. It does not
// validate segment syntax; use [ParseFieldRef] when parsing user-supplied
// dotted-path text.
func NewFieldRef(addr Address) FieldRef { return FieldRef{addr: addr} }

// ParseFieldRef parses the dotted-path wire syntax "collection.field.sub"
// into a FieldRef. An empty string, or one with an empty segment, is
// rejected with an error; the parser does not otherwise validate segments
// as identifiers, since numeric OneOf variant indices ("0", "1", ...) are
// themselves valid segments indistinguishable from field names without
// namespace context.
func ParseFieldRef(s string) (FieldRef, error) {
	if s == "" {
		return FieldRef{}, fmt.Errorf("address: empty FieldRef")
	}
	segments := strings.Split(s, ".")
	for _, seg := range segments {
		if seg == "" {
			return FieldRef{}, fmt.Errorf("address: FieldRef %q has an empty segment", s)
		}
	}
	return FieldRef{addr: New(segments...)}, nil
}

// Collection returns the FieldRef's first segment, the collection name.
func (f FieldRef) Collection() string {
	if f.addr.IsRoot() {
		return ""
	}
	return f.addr.Segments()[0]
}

// Descent returns the segments after the collection name: the path through
// object fields, array keywords, and OneOf variant indices.
func (f FieldRef) Descent() []string {
	segs := f.addr.Segments()
	if len(segs) == 0 {
		return nil
	}
	return segs[1:]
}

// Address returns the FieldRef's full underlying Address.
func (f FieldRef) Address() Address { return f.addr }

// String renders the FieldRef using the dotted-path wire syntax.
func (f FieldRef) String() string { return f.addr.String() }
