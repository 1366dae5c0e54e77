package schematree

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Obj is the object node of a codec's generic tree: a string-keyed map
// that remembers declaration order. Collection order and object field
// order are semantic (they fix compile order, and with it which SameAs
// references resolve), so codecs must not round schema objects through a
// plain Go map.
type Obj struct {
	keys []string
	vals map[string]any
}

// NewObj returns an empty Obj.
func NewObj() *Obj {
	return &Obj{vals: make(map[string]any)}
}

// Set inserts or overwrites a key, preserving first-seen position.
func (o *Obj) Set(key string, v any) {
	if _, exists := o.vals[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

// Get returns the value stored under key, true if present.
func (o *Obj) Get(key string) (any, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Keys returns keys in declaration order. The returned slice is shared;
// callers must not mutate it.
func (o *Obj) Keys() []string { return o.keys }

// Len returns the number of keys.
func (o *Obj) Len() int { return len(o.keys) }

// MarshalJSON writes the object with its keys in declaration order.
func (o *Obj) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(o.vals[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML writes the object as a mapping with its keys in declaration
// order.
func (o *Obj) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range o.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: key}
		valNode := &yaml.Node{}
		if err := valNode.Encode(o.vals[key]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}
