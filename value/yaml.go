package value

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ToYAMLNode projects v into a *yaml.Node tree so the caller controls
// encoder options (indentation, line width) via yaml.Encoder directly.
// Object fields are emitted in lexicographic order, matching the JSON
// projection's serialization-order guarantee.
func ToYAMLNode(v Value) (*yaml.Node, error) {
	switch v.kind {
	case KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case KindBool:
		b, _ := v.AsBool()
		val := "false"
		if b {
			val = "true"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: val}, nil
	case KindNumber:
		n, _ := v.AsNumber()
		tag := "!!int"
		if n.variant.IsFloat() {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: n.String()}, nil
	case KindString:
		s, _ := v.AsString()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}, nil
	case KindDateTime:
		t, format, _ := v.AsDateTime()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t.Format(format)}, nil
	case KindUUID:
		u, _ := v.AsUUID()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: u.String()}, nil
	case KindArray:
		elems, _ := v.AsArray()
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range elems {
			child, err := ToYAMLNode(e)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	case KindObject:
		obj, _ := v.AsObject()
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, name := range obj.SortedNames() {
			fv, _ := obj.Get(name)
			child, err := ToYAMLNode(fv)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}, child)
		}
		return node, nil
	default:
		return nil, fmt.Errorf("value: cannot project Kind(%d) to YAML", v.kind)
	}
}

// MarshalYAML renders v as YAML bytes.
func MarshalYAML(v Value) ([]byte, error) {
	node, err := ToYAMLNode(v)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(node)
}

// FromYAMLNode converts a decoded *yaml.Node into a Value using the same
// untyped-literal rules as [FromJSON]: no schema-aware inference of
// DateTime/UUID from string scalars.
func FromYAMLNode(node *yaml.Node) (Value, error) {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return Value{}, fmt.Errorf("value: decode YAML node: %w", err)
	}
	return fromYAMLAny(raw)
}

func fromYAMLAny(raw any) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(v), nil
	case string:
		return Str(v), nil
	case int:
		return Num(NewInt(I64, int64(v))), nil
	case int64:
		return Num(NewInt(I64, v)), nil
	case uint64:
		return Num(NewUint(U64, v)), nil
	case float64:
		return Num(NewFloat(F64, v)), nil
	case []any:
		elems := make([]Value, len(v))
		for i, e := range v {
			elem, err := fromYAMLAny(e)
			if err != nil {
				return Value{}, err
			}
			elems[i] = elem
		}
		return Array(elems), nil
	case map[string]any:
		obj := NewObject()
		for _, name := range sortedKeys(v) {
			elem, err := fromYAMLAny(v[name])
			if err != nil {
				return Value{}, err
			}
			obj.Set(name, elem)
		}
		return ObjectValue(obj), nil
	default:
		return Value{}, fmt.Errorf("value: unsupported decoded YAML type %T", raw)
	}
}
