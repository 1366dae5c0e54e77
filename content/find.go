package content

import (
	"strconv"

	"github.com/halvard-io/synthgen/address"
	"github.com/halvard-io/synthgen/diag"
	"github.com/halvard-io/synthgen/internal/ident"
)

// Find descends path through c and returns the node it names. Descent
// steps through objects by field name, through arrays via the reserved
// "content" and "length" segments, and through OneOf nodes by numeric
// variant index. Unique and Hidden wrappers are transparent: they pass the
// segment through to their inner node without consuming it.
//
// A miss returns a NotFound diag.Issue carrying the closest sibling name
// as a hint.
func Find(c Content, path []string) (Content, error) {
	if len(path) == 0 {
		return c, nil
	}
	seg, rest := path[0], path[1:]
	switch node := c.(type) {
	case Object:
		field, ok := node.Field(seg)
		if !ok {
			return nil, notFoundAt(seg, node.Names())
		}
		return Find(field.Content, rest)
	case Array:
		switch seg {
		case address.ArrayContent:
			return Find(node.Elem, rest)
		case address.ArrayLength:
			return Find(node.Length, rest)
		default:
			return nil, notFoundAt(seg, []string{address.ArrayContent, address.ArrayLength})
		}
	case OneOf:
		idx, err := strconv.Atoi(seg)
		if err != nil || idx < 0 || idx >= len(node.Variants) {
			return nil, diag.NotFoundf("one_of has no variant %q (it has %d variants)", seg, len(node.Variants))
		}
		return Find(node.Variants[idx].Content, rest)
	case Unique:
		return Find(node.Inner, path)
	case Hidden:
		return Find(node.Inner, path)
	default:
		return nil, diag.NotFoundf("cannot descend into %q content via segment %q", c.Kind(), seg)
	}
}

// Update descends path through c exactly as [Find] does, applies fn to the
// node path names, and returns a copy of c with that node replaced. c
// itself is never mutated: content nodes are value types, so the rebuilt
// spine shares unmodified subtrees with the original.
func Update(c Content, path []string, fn func(Content) (Content, error)) (Content, error) {
	if len(path) == 0 {
		return fn(c)
	}
	seg, rest := path[0], path[1:]
	switch node := c.(type) {
	case Object:
		field, ok := node.Field(seg)
		if !ok {
			return nil, notFoundAt(seg, node.Names())
		}
		updated, err := Update(field.Content, rest, fn)
		if err != nil {
			return nil, err
		}
		return node.withField(seg, FieldContent{Content: updated, Optional: field.Optional}), nil
	case Array:
		switch seg {
		case address.ArrayContent:
			updated, err := Update(node.Elem, rest, fn)
			if err != nil {
				return nil, err
			}
			return Array{Length: node.Length, Elem: updated}, nil
		case address.ArrayLength:
			updated, err := Update(node.Length, rest, fn)
			if err != nil {
				return nil, err
			}
			return Array{Length: updated, Elem: node.Elem}, nil
		default:
			return nil, notFoundAt(seg, []string{address.ArrayContent, address.ArrayLength})
		}
	case OneOf:
		idx, err := strconv.Atoi(seg)
		if err != nil || idx < 0 || idx >= len(node.Variants) {
			return nil, diag.NotFoundf("one_of has no variant %q (it has %d variants)", seg, len(node.Variants))
		}
		updated, err := Update(node.Variants[idx].Content, rest, fn)
		if err != nil {
			return nil, err
		}
		variants := make([]Variant, len(node.Variants))
		copy(variants, node.Variants)
		variants[idx] = Variant{Weight: variants[idx].Weight, Content: updated}
		return OneOf{Variants: variants}, nil
	case Unique:
		updated, err := Update(node.Inner, path, fn)
		if err != nil {
			return nil, err
		}
		return Unique{Inner: updated, Algorithm: node.Algorithm}, nil
	case Hidden:
		updated, err := Update(node.Inner, path, fn)
		if err != nil {
			return nil, err
		}
		return Hidden{Inner: updated}, nil
	default:
		return nil, diag.NotFoundf("cannot descend into %q content via segment %q", c.Kind(), seg)
	}
}

// UpdateField descends to the object that declares the final path segment
// as a field and applies fn to that field's FieldContent, returning the
// rebuilt tree. Used by optionalise, which toggles a flag that lives on
// the enclosing object rather than on the field's own content node.
func UpdateField(c Content, path []string, fn func(FieldContent) (FieldContent, error)) (Content, error) {
	if len(path) == 0 {
		return nil, diag.Optionalisef("path names no field")
	}
	parentPath, fieldName := path[:len(path)-1], path[len(path)-1]
	return Update(c, parentPath, func(parent Content) (Content, error) {
		obj, ok := parent.(Object)
		if !ok {
			return nil, diag.Optionalisef("target %q is not a field of an object (enclosing kind is %q)", fieldName, parent.Kind())
		}
		field, ok := obj.Field(fieldName)
		if !ok {
			return nil, notFoundAt(fieldName, obj.Names())
		}
		updated, err := fn(field)
		if err != nil {
			return nil, err
		}
		return obj.withField(fieldName, updated), nil
	})
}

func notFoundAt(seg string, siblings []string) diag.Issue {
	issue := diag.NotFoundf("no field or keyword %q here", seg)
	if hint := ident.Closest(seg, siblings); hint != "" {
		issue = issue.WithHint(hint)
	}
	return issue
}
