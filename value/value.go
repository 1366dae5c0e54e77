package value

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Kind identifies which variant a [Value] holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindDateTime
	KindUUID
	KindArray
	KindObject
)

// String returns the kind's stable label, used in diagnostics and in the
// content model's own Kind() strings.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindDateTime:
		return "date-time"
	case KindUUID:
		return "uuid"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Value is an immutable tagged union of the runtime values the generator
// algebra produces: null, bool, number, string, date-time, uuid, array, or
// object. Exactly one accessor is meaningful for a given Kind(); the others
// return their zero value and ok=false.
type Value struct {
	kind     Kind
	b        bool
	n        Number
	s        string
	t        time.Time
	tFormat  string
	u        uuid.UUID
	arr      []Value
	obj      *Object
}

// Null returns the null Value.
func Null() Value { return Value{kind: KindNull} }

// Bool constructs a bool Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Num constructs a number Value.
func Num(n Number) Value { return Value{kind: KindNumber, n: n} }

// Str constructs a string Value.
func Str(s string) Value { return Value{kind: KindString, s: s} }

// DateTime constructs a date-time Value carrying its declared display
// format, used verbatim on JSON/YAML projection.
func DateTime(t time.Time, format string) Value {
	return Value{kind: KindDateTime, t: t, tFormat: format}
}

// UUIDValue constructs a uuid Value.
func UUIDValue(id uuid.UUID) Value { return Value{kind: KindUUID, u: id} }

// Array constructs an array Value. elems is cloned defensively.
func Array(elems []Value) Value {
	return Value{kind: KindArray, arr: slices.Clone(elems)}
}

// ObjectValue constructs an object Value from an already-built [Object].
func ObjectValue(o *Object) Value { return Value{kind: KindObject, obj: o} }

// Kind returns the Value's tagged kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null Value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns v's bool payload, true if Kind() == KindBool.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsNumber returns v's Number payload, true if Kind() == KindNumber.
func (v Value) AsNumber() (Number, bool) { return v.n, v.kind == KindNumber }

// AsString returns v's string payload, true if Kind() == KindString.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsDateTime returns v's time and display format, true if Kind() ==
// KindDateTime.
func (v Value) AsDateTime() (time.Time, string, bool) {
	return v.t, v.tFormat, v.kind == KindDateTime
}

// AsUUID returns v's uuid payload, true if Kind() == KindUUID.
func (v Value) AsUUID() (uuid.UUID, bool) { return v.u, v.kind == KindUUID }

// AsArray returns a defensive copy of v's elements, true if Kind() ==
// KindArray.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return slices.Clone(v.arr), true
}

// AsObject returns v's Object payload, true if Kind() == KindObject.
func (v Value) AsObject() (*Object, bool) { return v.obj, v.kind == KindObject }

// String renders a human-readable form of v, used in diagnostics, never in
// the wire projection (see codec for that).
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindNumber:
		return v.n.String()
	case KindString:
		return fmt.Sprintf("%q", v.s)
	case KindDateTime:
		return v.t.Format(v.tFormat)
	case KindUUID:
		return v.u.String()
	case KindArray:
		return fmt.Sprintf("array[%d]", len(v.arr))
	case KindObject:
		return fmt.Sprintf("object{%d fields}", v.obj.Len())
	default:
		return "<invalid value>"
	}
}

// Object is an ordered mapping from field name to Value. Insertion order is
// preserved in Fields(); a distinct lexicographic order is produced on
// demand by codecs at serialization time; storage order and wire order
// are distinct guarantees.
type Object struct {
	names []string
	index map[string]int
	vals  []Value
}

// NewObject builds an Object from fields in the given order. Later entries
// with a duplicate name overwrite earlier ones but keep the earlier
// position, matching ordinary map-literal semantics.
func NewObject(fields ...Field) *Object {
	o := &Object{index: make(map[string]int, len(fields))}
	for _, f := range fields {
		o.Set(f.Name, f.Value)
	}
	return o
}

// Field is a single name/value pair used to build an [Object].
type Field struct {
	Name  string
	Value Value
}

// Set inserts or overwrites a field, preserving first-seen position for
// repeated names.
func (o *Object) Set(name string, v Value) {
	if i, ok := o.index[name]; ok {
		o.vals[i] = v
		return
	}
	o.index[name] = len(o.names)
	o.names = append(o.names, name)
	o.vals = append(o.vals, v)
}

// Get returns the value stored under name, true if present.
func (o *Object) Get(name string) (Value, bool) {
	i, ok := o.index[name]
	if !ok {
		return Value{}, false
	}
	return o.vals[i], true
}

// Len returns the number of fields.
func (o *Object) Len() int { return len(o.names) }

// Names returns field names in insertion order. The returned slice is a
// defensive copy.
func (o *Object) Names() []string { return slices.Clone(o.names) }

// Fields calls fn for each field in insertion order.
func (o *Object) Fields(fn func(name string, v Value)) {
	for i, name := range o.names {
		fn(name, o.vals[i])
	}
}

// SortedNames returns field names in lexicographic order, the order codecs
// use for serialization.
func (o *Object) SortedNames() []string {
	names := slices.Clone(o.names)
	slices.Sort(names)
	return names
}
