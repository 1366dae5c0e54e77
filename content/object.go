package content

import "github.com/halvard-io/synthgen/value"

// FieldContent is one declared field of an Object node: its content and
// whether it may be absent from the generated object entirely (distinct
// from being present and null).
type FieldContent struct {
	Content  Content
	Optional bool
}

// Object is the content node producing object values, declared as an
// ordered set of named fields. Field iteration order (Names) is the
// declaration order; wire serialization instead uses the value package's
// lexicographic SortedNames.
type Object struct {
	names  []string
	fields map[string]FieldContent
}

// NewObject builds an Object node from fields, preserving the order names
// are given in.
func NewObject(names []string, fields map[string]FieldContent) Object {
	ordered := make([]string, len(names))
	copy(ordered, names)
	byName := make(map[string]FieldContent, len(fields))
	for _, n := range names {
		byName[n] = fields[n]
	}
	return Object{names: ordered, fields: byName}
}

// Names returns field names in declaration order.
func (o Object) Names() []string {
	out := make([]string, len(o.names))
	copy(out, o.names)
	return out
}

// Field returns the declared content for name, and whether name is a
// declared field at all.
func (o Object) Field(name string) (FieldContent, bool) {
	f, ok := o.fields[name]
	return f, ok
}

// Len returns the number of declared fields.
func (o Object) Len() int { return len(o.names) }

// withField returns a copy of o with name's FieldContent replaced (or, if
// name is not yet declared, appended after the existing fields). The
// receiver is not mutated.
func (o Object) withField(name string, field FieldContent) Object {
	names := make([]string, len(o.names), len(o.names)+1)
	copy(names, o.names)
	byName := make(map[string]FieldContent, len(o.fields)+1)
	for k, v := range o.fields {
		byName[k] = v
	}
	if _, exists := byName[name]; !exists {
		names = append(names, name)
	}
	byName[name] = field
	return Object{names: names, fields: byName}
}

func (Object) Kind() Kind { return KindObject }

func (o Object) Accepts(v value.Value) bool {
	obj, ok := v.AsObject()
	if !ok {
		return false
	}
	for _, name := range o.names {
		field := o.fields[name]
		fv, present := obj.Get(name)
		if !present {
			if !field.Optional {
				return false
			}
			continue
		}
		if !field.Content.Accepts(fv) {
			return false
		}
	}
	return true
}

func (Object) content() {}
