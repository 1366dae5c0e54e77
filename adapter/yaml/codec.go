package yaml

import (
	"context"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/halvard-io/synthgen/adapter/internal/schematree"
	"github.com/halvard-io/synthgen/diag"
	"github.com/halvard-io/synthgen/internal/source"
	"github.com/halvard-io/synthgen/internal/trace"
	"github.com/halvard-io/synthgen/location"
	"github.com/halvard-io/synthgen/namespace"
)

// Codec reads and writes the YAML rendering of the on-disk schema form.
// The tagged-object grammar is identical to the JSON codec's; only the
// surface syntax differs.
//
// Codec is safe for concurrent use after construction.
type Codec struct {
	registry *source.Registry
	logger   *slog.Logger
}

// Option configures a Codec.
type Option func(*Codec)

// WithSourceRegistry registers every decoded source's bytes; YAML syntax
// errors already carry line numbers, so the registry here mainly serves
// later diagnostic rendering of the source text.
func WithSourceRegistry(registry *source.Registry) Option {
	return func(c *Codec) { c.registry = registry }
}

// WithLogger attaches a structured logger; decode/encode operations are
// traced at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Codec) { c.logger = logger }
}

// New returns a YAML Codec.
func New(opts ...Option) *Codec {
	c := &Codec{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Decode parses data — a YAML mapping from collection names to
// tagged-object content trees — into a Namespace.
func (c *Codec) Decode(ctx context.Context, sourceID location.SourceID, data []byte) (*namespace.Namespace, error) {
	op := trace.Begin(ctx, c.logger, "synthgen.codec.decode",
		slog.String("source", sourceID.String()),
		slog.Int("bytes", len(data)))

	if c.registry != nil {
		if err := c.registry.Register(sourceID, data); err != nil {
			op.End(err)
			return nil, diag.Serializationf("registering source %q: %v", sourceID, err)
		}
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		issue := diag.Serializationf("%s: %v", sourceID, err)
		op.End(issue)
		return nil, issue
	}

	raw, err := fromNode(&doc)
	if err != nil {
		issue := diag.Serializationf("%s: %v", sourceID, err)
		op.End(issue)
		return nil, issue
	}
	root, ok := raw.(*schematree.Obj)
	if !ok {
		if raw == nil {
			root = schematree.NewObj()
		} else {
			issue := diag.Serializationf("%s: schema root must be a mapping", sourceID)
			op.End(issue)
			return nil, issue
		}
	}

	ns, err := schematree.Decode(root)
	op.End(err)
	return ns, err
}

// Encode renders ns in the YAML on-disk form.
func (c *Codec) Encode(ctx context.Context, ns *namespace.Namespace) ([]byte, error) {
	op := trace.Begin(ctx, c.logger, "synthgen.codec.encode",
		slog.Int("collections", ns.Len()))

	tree, err := schematree.Encode(ns)
	if err != nil {
		op.End(err)
		return nil, err
	}
	out, err := yaml.Marshal(tree)
	if err != nil {
		err = diag.Serializationf("encoding schema: %v", err)
	}
	op.End(err)
	return out, err
}

// fromNode walks a decoded yaml.Node into the generic schema tree,
// preserving mapping key order — declaration order is semantic for
// collections and object fields, which is why this does not round through
// a plain Go map.
func fromNode(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return fromNode(node.Content[0])
	case yaml.MappingNode:
		obj := schematree.NewObj()
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valNode := node.Content[i], node.Content[i+1]
			var key string
			if err := keyNode.Decode(&key); err != nil {
				return nil, fmt.Errorf("line %d: mapping key must be a string: %w", keyNode.Line, err)
			}
			v, err := fromNode(valNode)
			if err != nil {
				return nil, err
			}
			obj.Set(key, v)
		}
		return obj, nil
	case yaml.SequenceNode:
		list := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			v, err := fromNode(child)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	case yaml.ScalarNode:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return v, nil
	case yaml.AliasNode:
		return fromNode(node.Alias)
	default:
		return nil, nil
	}
}
