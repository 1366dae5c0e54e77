package content

import (
	"github.com/halvard-io/synthgen/address"
	"github.com/halvard-io/synthgen/diag"
	"github.com/halvard-io/synthgen/internal/ident"
	"github.com/halvard-io/synthgen/value"
)

// FromValue infers the narrowest Content node that accepts v: constants
// for leaves, an element-merged Array for arrays, a required-field Object
// for objects. FromValue never fails; every Value kind has a canonical
// content shape.
func FromValue(v value.Value) Content {
	switch v.Kind() {
	case value.KindNull:
		return NewNull()
	case value.KindBool:
		b, _ := v.AsBool()
		return NewBool(NewBoolConstant(b))
	case value.KindNumber:
		n, _ := v.AsNumber()
		return NewNumber(n.Variant(), NewNumberConstant(n))
	case value.KindString:
		s, _ := v.AsString()
		return NewString(NewStringConstant(s))
	case value.KindDateTime:
		t, format, _ := v.AsDateTime()
		dt, _ := NewDateTime(format, t, t)
		return NewString(dt)
	case value.KindUUID:
		return NewString(NewUUIDMode())
	case value.KindArray:
		elems, _ := v.AsArray()
		var elem Content = NewNull()
		if len(elems) > 0 {
			elem = FromValue(elems[0])
			for _, e := range elems[1:] {
				merged, err := OptionalMergeStrategy{}.Merge(elem, e)
				if err == nil {
					elem = merged
				}
			}
		}
		length := NewNumber(value.U64, NewNumberConstant(value.NewUint(value.U64, uint64(len(elems)))))
		return NewArray(length, elem)
	case value.KindObject:
		obj, _ := v.AsObject()
		names := obj.Names()
		fields := make(map[string]FieldContent, len(names))
		obj.Fields(func(name string, fv value.Value) {
			fields[name] = FieldContent{Content: FromValue(fv)}
		})
		return NewObject(names, fields)
	default:
		return NewNull()
	}
}

// MergeStrategy folds an example Value into an existing Content node,
// returning the (possibly widened or replaced) node. Strategies never
// mutate the input content; the returned tree shares untouched subtrees
// with it.
type MergeStrategy interface {
	Merge(c Content, v value.Value) (Content, error)
}

// OptionalMergeStrategy is the permissive strategy used when learning a
// schema from a stream of example records: on kind mismatch it widens to a
// OneOf containing both shapes, a field missing from an example becomes
// optional, a field present in an example but not yet declared is added as
// optional, and array elements union-merge into the element content.
//
// Merging a value v into FromValue(v) is a no-op.
type OptionalMergeStrategy struct{}

func (s OptionalMergeStrategy) Merge(c Content, v value.Value) (Content, error) {
	if v.IsNull() {
		if _, isNull := c.(Null); isNull {
			return c, nil
		}
		return IntoNullable(c), nil
	}
	switch node := c.(type) {
	case Null:
		return IntoNullable(FromValue(v)), nil
	case OneOf:
		for i, variant := range node.Variants {
			if variant.Content.Accepts(v) {
				merged, err := s.Merge(variant.Content, v)
				if err != nil {
					return nil, err
				}
				variants := make([]Variant, len(node.Variants))
				copy(variants, node.Variants)
				variants[i] = Variant{Weight: variant.Weight, Content: merged}
				return OneOf{Variants: variants}, nil
			}
		}
		return OneOf{Variants: append(append([]Variant(nil), node.Variants...),
			Variant{Weight: 1, Content: FromValue(v)})}, nil
	case Unique:
		merged, err := s.Merge(node.Inner, v)
		if err != nil {
			return nil, err
		}
		return Unique{Inner: merged, Algorithm: node.Algorithm}, nil
	case Hidden:
		merged, err := s.Merge(node.Inner, v)
		if err != nil {
			return nil, err
		}
		return Hidden{Inner: merged}, nil
	case Object:
		obj, ok := v.AsObject()
		if !ok {
			return widenToOneOf(c, v), nil
		}
		return s.mergeObject(node, obj)
	case Array:
		elems, ok := v.AsArray()
		if !ok {
			return widenToOneOf(c, v), nil
		}
		elem := node.Elem
		for i, e := range elems {
			merged, err := s.Merge(elem, e)
			if err != nil {
				return nil, wrapAtIndex(err, i)
			}
			elem = merged
		}
		return Array{Length: node.Length, Elem: elem}, nil
	case Bool:
		b, ok := v.AsBool()
		if !ok {
			return widenToOneOf(c, v), nil
		}
		return Bool{Mode: widenBoolMode(node.Mode, b)}, nil
	case Number:
		n, ok := v.AsNumber()
		if !ok || n.Variant() != node.Variant {
			return widenToOneOf(c, v), nil
		}
		return Number{Variant: node.Variant, Mode: widenNumberMode(node.Mode, n)}, nil
	case String:
		if !node.Accepts(v) {
			return widenToOneOf(c, v), nil
		}
		if s, ok := v.AsString(); ok {
			return String{Mode: widenStringMode(node.Mode, s)}, nil
		}
		return c, nil
	default:
		// SameAs, Series, Datasource: accepted examples leave the node as
		// declared; there is nothing narrower to learn from a single value.
		if c.Accepts(v) {
			return c, nil
		}
		return widenToOneOf(c, v), nil
	}
}

func (s OptionalMergeStrategy) mergeObject(node Object, obj *value.Object) (Content, error) {
	out := node
	// Declared fields absent from the example become optional; present
	// fields merge recursively.
	for _, name := range node.Names() {
		field, _ := node.Field(name)
		fv, present := obj.Get(name)
		if !present {
			if !field.Optional {
				out = out.withField(name, FieldContent{Content: field.Content, Optional: true})
			}
			continue
		}
		merged, err := s.Merge(field.Content, fv)
		if err != nil {
			return nil, wrapAtField(err, name)
		}
		out = out.withField(name, FieldContent{Content: merged, Optional: field.Optional})
	}
	// Fields the example carries but the content does not yet declare are
	// added as optional, since earlier examples got by without them.
	obj.Fields(func(name string, fv value.Value) {
		if _, declared := node.Field(name); declared {
			return
		}
		out = out.withField(name, FieldContent{Content: FromValue(fv), Optional: true})
	})
	return out, nil
}

// ValueMergeStrategy is the bounded-recursion strategy behind try_update:
// Depth limits how far the merge descends before replacing outright, and
// Replace short-circuits arrays to replacement instead of union-merging
// their elements.
type ValueMergeStrategy struct {
	Depth   int
	Replace bool
}

func (s ValueMergeStrategy) Merge(c Content, v value.Value) (Content, error) {
	if s.Depth <= 0 {
		return FromValue(v), nil
	}
	switch node := c.(type) {
	case Object:
		obj, ok := v.AsObject()
		if !ok {
			return FromValue(v), nil
		}
		out := node
		var mergeErr error
		obj.Fields(func(name string, fv value.Value) {
			if mergeErr != nil {
				return
			}
			field, declared := node.Field(name)
			if !declared {
				issue := diag.Inferencef("cannot update undeclared field %q", name)
				if hint := closestName(name, node.Names()); hint != "" {
					issue = issue.WithHint(hint)
				}
				mergeErr = issue
				return
			}
			merged, err := ValueMergeStrategy{Depth: s.Depth - 1, Replace: s.Replace}.Merge(field.Content, fv)
			if err != nil {
				mergeErr = wrapAtField(err, name)
				return
			}
			out = out.withField(name, FieldContent{Content: merged, Optional: field.Optional})
		})
		if mergeErr != nil {
			return nil, mergeErr
		}
		return out, nil
	case Array:
		elems, ok := v.AsArray()
		if !ok || s.Replace {
			return FromValue(v), nil
		}
		elem := node.Elem
		inner := ValueMergeStrategy{Depth: s.Depth - 1, Replace: s.Replace}
		for i, e := range elems {
			merged, err := inner.Merge(elem, e)
			if err != nil {
				return nil, wrapAtIndex(err, i)
			}
			elem = merged
		}
		return Array{Length: node.Length, Elem: elem}, nil
	default:
		return FromValue(v), nil
	}
}

// widenToOneOf joins an existing node and a value of an unreconcilable
// kind into a two-variant OneOf.
func widenToOneOf(c Content, v value.Value) Content {
	return NewOneOf(
		Variant{Weight: 1, Content: c},
		Variant{Weight: 1, Content: FromValue(v)},
	)
}

func widenBoolMode(mode BoolMode, b bool) BoolMode {
	switch m := mode.(type) {
	case BoolConstant:
		if m.Value == b {
			return m
		}
		weights := map[bool]float64{m.Value: 1, b: 1}
		widened, _ := NewBoolCategorical(weights)
		return widened
	case BoolCategorical:
		if _, known := m.Weights[b]; known {
			return m
		}
		weights := make(map[bool]float64, 2)
		for k, w := range m.Weights {
			weights[k] = w
		}
		weights[b] = 1
		return BoolCategorical{Weights: weights}
	default:
		return mode
	}
}

func widenNumberMode(mode NumberMode, n value.Number) NumberMode {
	switch m := mode.(type) {
	case NumberConstant:
		if m.Value.String() == n.String() {
			return m
		}
		return NumberCategorical{Entries: []NumberCategoricalEntry{
			{Value: m.Value, Weight: 1},
			{Value: n, Weight: 1},
		}}
	case NumberCategorical:
		for _, e := range m.Entries {
			if e.Value.String() == n.String() {
				return m
			}
		}
		entries := make([]NumberCategoricalEntry, len(m.Entries), len(m.Entries)+1)
		copy(entries, m.Entries)
		return NumberCategorical{Entries: append(entries, NumberCategoricalEntry{Value: n, Weight: 1})}
	default:
		return mode
	}
}

func widenStringMode(mode StringMode, s string) StringMode {
	switch m := mode.(type) {
	case StringConstant:
		if m.Value == s {
			return m
		}
		return StringCategorical{Entries: []StringCategoricalEntry{
			{Value: m.Value, Weight: 1},
			{Value: s, Weight: 1},
		}}
	case StringCategorical:
		for _, e := range m.Entries {
			if e.Value == s {
				return m
			}
		}
		entries := make([]StringCategoricalEntry, len(m.Entries), len(m.Entries)+1)
		copy(entries, m.Entries)
		return StringCategorical{Entries: append(entries, StringCategoricalEntry{Value: s, Weight: 1})}
	default:
		return mode
	}
}

func wrapAtField(err error, name string) error {
	if issue, ok := err.(diag.Issue); ok {
		path := name
		if p := issue.Path(); p != "" {
			path = name + "." + p
		}
		return issue.WithPath(path)
	}
	return err
}

func wrapAtIndex(err error, _ int) error {
	return wrapAtField(err, address.ArrayContent)
}

func closestName(name string, candidates []string) string {
	return ident.Closest(name, candidates)
}
