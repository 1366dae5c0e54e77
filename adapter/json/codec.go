package json

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/tidwall/jsonc"

	"github.com/halvard-io/synthgen/adapter/internal/schematree"
	"github.com/halvard-io/synthgen/diag"
	"github.com/halvard-io/synthgen/internal/source"
	"github.com/halvard-io/synthgen/internal/trace"
	"github.com/halvard-io/synthgen/location"
	"github.com/halvard-io/synthgen/namespace"
)

// Codec reads and writes the JSON on-disk schema form.
//
// By default input is preprocessed with tidwall/jsonc, so schema files may
// carry // and /* */ comments and trailing commas; the preprocessing is
// offset-preserving, which keeps syntax-error positions accurate against
// the original bytes.
//
// Codec is safe for concurrent use after construction.
type Codec struct {
	registry *source.Registry
	strict   bool
	logger   *slog.Logger
}

// Option configures a Codec.
type Option func(*Codec)

// WithStrictJSON disables jsonc preprocessing: comments and trailing
// commas become parse errors.
func WithStrictJSON() Option {
	return func(c *Codec) { c.strict = true }
}

// WithSourceRegistry registers every decoded source's bytes so syntax
// errors can be reported as line:column positions.
func WithSourceRegistry(registry *source.Registry) Option {
	return func(c *Codec) { c.registry = registry }
}

// WithLogger attaches a structured logger; decode/encode operations are
// traced at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Codec) { c.logger = logger }
}

// New returns a JSON Codec.
func New(opts ...Option) *Codec {
	c := &Codec{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Decode parses data — a JSON object mapping collection names to
// tagged-object content trees — into a Namespace. sourceID names the
// origin of data in diagnostics.
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

	parsed := data
	if !c.strict {
		parsed = jsonc.ToJSON(bytes.Clone(data))
	}

	dec := json.NewDecoder(bytes.NewReader(parsed))
	dec.UseNumber()
	raw, err := parseTree(dec)
	if err != nil {
		issue := c.syntaxIssue(sourceID, err)
		op.End(issue)
		return nil, issue
	}
	root, ok := raw.(*schematree.Obj)
	if !ok {
		issue := diag.Serializationf("%s: schema root must be a JSON object", sourceID)
		op.End(issue)
		return nil, issue
	}

	ns, err := schematree.Decode(root)
	op.End(err)
	return ns, err
}

// parseTree consumes one JSON value from dec into the generic schema tree,
// preserving object key order — declaration order is semantic for
// collections and object fields, and a plain map would lose it.
func parseTree(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return parseValue(dec, tok)
}

func parseValue(dec *json.Decoder, tok json.Token) (any, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := schematree.NewObj()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, _ := keyTok.(string)
				valTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				v, err := parseValue(dec, valTok)
				if err != nil {
					return nil, err
				}
				obj.Set(key, v)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return obj, nil
		case '[':
			var list []any
			for dec.More() {
				valTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				v, err := parseValue(dec, valTok)
				if err != nil {
					return nil, err
				}
				list = append(list, v)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			if list == nil {
				list = []any{}
			}
			return list, nil
		default:
			return nil, diag.Serializationf("unexpected delimiter %q", t)
		}
	default:
		return tok, nil
	}
}

// Encode renders ns in the JSON on-disk form, two-space indented, with
// collections and fields in declaration order.
func (c *Codec) Encode(ctx context.Context, ns *namespace.Namespace) ([]byte, error) {
	op := trace.Begin(ctx, c.logger, "synthgen.codec.encode",
		slog.Int("collections", ns.Len()))

	tree, err := schematree.Encode(ns)
	if err != nil {
		op.End(err)
		return nil, err
	}
	out, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		err = diag.Serializationf("encoding schema: %v", err)
	}
	op.End(err)
	return out, err
}

// syntaxIssue converts a json decode error into a Serialization issue,
// translating the error's byte offset into a line:column position when a
// source registry is attached.
func (c *Codec) syntaxIssue(sourceID location.SourceID, err error) diag.Issue {
	var offset int64 = -1
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case errors.As(err, &typeErr):
		offset = typeErr.Offset
	}
	if offset >= 0 && c.registry != nil {
		pos := c.registry.PositionAt(sourceID, int(offset))
		if pos.IsKnown() {
			return diag.Serializationf("%s:%s: %v", sourceID, pos, err)
		}
	}
	return diag.Serializationf("%s: %v", sourceID, err)
}
