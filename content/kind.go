package content

import "github.com/halvard-io/synthgen/value"

// Kind is the stable label naming a Content variant, used in diagnostics
// and in the on-disk "type" discriminator (codec package).
type Kind string

const (
	KindNull       Kind = "null"
	KindBool       Kind = "bool"
	KindNumber     Kind = "number"
	KindString     Kind = "string"
	KindArray      Kind = "array"
	KindObject     Kind = "object"
	KindOneOf      Kind = "one_of"
	KindUnique     Kind = "unique"
	KindHidden     Kind = "hidden"
	KindSameAs     Kind = "same_as"
	KindSeries     Kind = "series"
	KindDatasource Kind = "datasource"
)

// Content is the recursive tagged schema node type. Every variant exposes
// its Kind and an Accepts predicate; construction is closed to this
// package's New* functions via the unexported content() marker method.
type Content interface {
	// Kind returns the stable kind label for this node.
	Kind() Kind

	// Accepts reports whether v is a value this node's compiled generator
	// could plausibly have produced. Array accepts arrays whose every
	// element is accepted by its element content; Object accepts objects
	// where every present field is accepted by its declared content,
	// permitting the field to be absent only when optional; OneOf accepts
	// if any variant accepts.
	Accepts(v value.Value) bool

	content()
}
