package schematree

import (
	"sort"
	"strconv"

	"github.com/halvard-io/synthgen/adapter/internal/typetag"
	"github.com/halvard-io/synthgen/content"
	"github.com/halvard-io/synthgen/diag"
	"github.com/halvard-io/synthgen/namespace"
	"github.com/halvard-io/synthgen/value"
)

// Encode projects a Namespace back into the generic tagged-object tree the
// codecs serialize, preserving collection and field declaration order.
// Encode is the inverse of [Decode] up to representation defaults: a
// decoded-then-encoded schema carries every field explicitly (e.g. a
// defaulted step of 1 is written out).
func Encode(ns *namespace.Namespace) (*Obj, error) {
	out := NewObj()
	for _, name := range ns.Names() {
		c, err := ns.Get(name)
		if err != nil {
			return nil, err
		}
		node, err := EncodeNode(c)
		if err != nil {
			return nil, err
		}
		out.Set(name, node)
	}
	return out, nil
}

// EncodeNode projects one content node into its tagged-object form.
func EncodeNode(c content.Content) (*Obj, error) {
	out := NewObj()
	out.Set(typetag.Field, string(c.Kind()))
	switch node := c.(type) {
	case content.Null:
		return out, nil
	case content.Bool:
		return encodeBool(out, node)
	case content.Number:
		return encodeNumber(out, node)
	case content.String:
		return encodeString(out, node)
	case content.Array:
		length, err := EncodeNode(node.Length)
		if err != nil {
			return nil, err
		}
		elem, err := EncodeNode(node.Elem)
		if err != nil {
			return nil, err
		}
		out.Set("length", length)
		out.Set("content", elem)
		return out, nil
	case content.Object:
		fields := NewObj()
		for _, name := range node.Names() {
			fc, _ := node.Field(name)
			child, err := EncodeNode(fc.Content)
			if err != nil {
				return nil, err
			}
			if fc.Optional {
				child.Set("optional", true)
			}
			fields.Set(name, child)
		}
		out.Set("fields", fields)
		return out, nil
	case content.OneOf:
		variants := make([]any, 0, len(node.Variants))
		for _, v := range node.Variants {
			child, err := EncodeNode(v.Content)
			if err != nil {
				return nil, err
			}
			if v.Weight != 1 {
				child.Set("weight", v.Weight)
			}
			variants = append(variants, child)
		}
		out.Set("variants", variants)
		return out, nil
	case content.Unique:
		inner, err := EncodeNode(node.Inner)
		if err != nil {
			return nil, err
		}
		out.Set("algorithm", string(node.Algorithm))
		out.Set("content", inner)
		return out, nil
	case content.Hidden:
		inner, err := EncodeNode(node.Inner)
		if err != nil {
			return nil, err
		}
		out.Set("content", inner)
		return out, nil
	case content.SameAs:
		out.Set("ref", node.Ref.String())
		return out, nil
	case content.Series:
		return encodeSeries(out, node)
	case content.Datasource:
		out.Set("uri", node.URI)
		if node.Cycle {
			out.Set("cycle", true)
		}
		return out, nil
	default:
		return nil, diag.Serializationf("cannot encode content kind %q", c.Kind())
	}
}

func encodeBool(out *Obj, node content.Bool) (*Obj, error) {
	switch mode := node.Mode.(type) {
	case content.BoolConstant:
		out.Set("constant", mode.Value)
	case content.Frequency:
		out.Set("frequency", mode.P)
	case content.BoolCategorical:
		weights := NewObj()
		// false-then-true matches the compiler's candidate order.
		for _, b := range []bool{false, true} {
			if w, ok := mode.Weights[b]; ok {
				weights.Set(strconv.FormatBool(b), w)
			}
		}
		out.Set("categorical", weights)
	default:
		return nil, diag.Serializationf("cannot encode bool mode %T", node.Mode)
	}
	return out, nil
}

func encodeNumber(out *Obj, node content.Number) (*Obj, error) {
	out.Set("subtype", node.Variant.String())
	switch mode := node.Mode.(type) {
	case content.NumberConstant:
		out.Set("constant", encodeNumberLiteral(mode.Value))
	case content.Range:
		r := NewObj()
		r.Set("low", encodeNumberLiteral(mode.Low))
		r.Set("high", encodeNumberLiteral(mode.High))
		r.Set("step", encodeNumberLiteral(mode.Step))
		out.Set("range", r)
	case content.NumberCategorical:
		entries := make([]any, len(mode.Entries))
		for i, e := range mode.Entries {
			entry := NewObj()
			entry.Set("value", encodeNumberLiteral(e.Value))
			entry.Set("weight", e.Weight)
			entries[i] = entry
		}
		out.Set("categorical", entries)
	case content.Incrementing:
		inc := NewObj()
		inc.Set("start", encodeNumberLiteral(mode.Start))
		inc.Set("step", encodeNumberLiteral(mode.Step))
		out.Set("incrementing", inc)
	default:
		return nil, diag.Serializationf("cannot encode number mode %T", node.Mode)
	}
	return out, nil
}

// encodeNumberLiteral writes 128-bit numbers as decimal strings, since
// their range exceeds what a JSON number can round-trip, and everything
// else as a native scalar.
func encodeNumberLiteral(n value.Number) any {
	if n.Variant().Is128() {
		bi, _ := n.BigInt()
		return bi.String()
	}
	if n.Variant().IsFloat() {
		f, _ := n.Float64()
		return f
	}
	if n.Variant().IsSigned() {
		i, _ := n.Int64()
		return i
	}
	u, _ := n.Uint64()
	return u
}

func encodeString(out *Obj, node content.String) (*Obj, error) {
	switch mode := node.Mode.(type) {
	case content.Regex:
		out.Set("pattern", mode.Pattern)
	case content.Faker:
		faker := NewObj()
		faker.Set("generator", mode.Name)
		if len(mode.Args) > 0 {
			args := NewObj()
			for _, k := range sortedStrings(mode.Args) {
				args.Set(k, mode.Args[k])
			}
			faker.Set("args", args)
		}
		out.Set("faker", faker)
	case content.StringCategorical:
		entries := make([]any, len(mode.Entries))
		for i, e := range mode.Entries {
			entry := NewObj()
			entry.Set("value", e.Value)
			entry.Set("weight", e.Weight)
			entries[i] = entry
		}
		out.Set("categorical", entries)
	case content.DateTime:
		dt := NewObj()
		dt.Set("format", mode.Format)
		dt.Set("low", mode.Low.Format(mode.Format))
		dt.Set("high", mode.High.Format(mode.Format))
		out.Set("date_time", dt)
	case content.UUIDMode:
		out.Set("uuid", true)
	case content.StringConstant:
		out.Set("constant", mode.Value)
	case content.Truncated:
		inner, err := EncodeNode(mode.Inner)
		if err != nil {
			return nil, err
		}
		t := NewObj()
		t.Set("len", mode.Len)
		t.Set("content", inner)
		out.Set("truncated", t)
	case content.Sliced:
		inner, err := EncodeNode(mode.Inner)
		if err != nil {
			return nil, err
		}
		s := NewObj()
		s.Set("slice", mode.Expr)
		s.Set("content", inner)
		out.Set("sliced", s)
	case content.Serialized:
		inner, err := EncodeNode(mode.Inner)
		if err != nil {
			return nil, err
		}
		s := NewObj()
		s.Set("encoding", mode.Encoding)
		s.Set("content", inner)
		out.Set("serialized", s)
	case content.Format:
		format := NewObj()
		format.Set("template", mode.Template)
		if len(mode.Named) > 0 {
			named := NewObj()
			for _, name := range sortedContentKeys(mode.Named) {
				enc, err := EncodeNode(mode.Named[name])
				if err != nil {
					return nil, err
				}
				named.Set(name, enc)
			}
			format.Set("arguments", named)
		}
		if len(mode.Positional) > 0 {
			positional := make([]any, len(mode.Positional))
			for i, child := range mode.Positional {
				enc, err := EncodeNode(child)
				if err != nil {
					return nil, err
				}
				positional[i] = enc
			}
			format.Set("positional", positional)
		}
		out.Set("format", format)
	default:
		return nil, diag.Serializationf("cannot encode string mode %T", node.Mode)
	}
	return out, nil
}

func encodeSeries(out *Obj, node content.Series) (*Obj, error) {
	out.Set("format", node.Format)
	switch variant := node.Variant.(type) {
	case content.SeriesIncrementing:
		inc := NewObj()
		inc.Set("start", variant.Start.Format(node.Format))
		inc.Set("duration", variant.Duration.String())
		out.Set("incrementing", inc)
	case content.SeriesPoisson:
		p := NewObj()
		p.Set("start", variant.Start.Format(node.Format))
		p.Set("rate", variant.Rate)
		out.Set("poisson", p)
	case content.SeriesCyclical:
		c := NewObj()
		c.Set("start", variant.Start.Format(node.Format))
		c.Set("period", variant.Period.String())
		c.Set("min_rate", variant.MinRate)
		c.Set("max_rate", variant.MaxRate)
		out.Set("cyclical", c)
	case content.SeriesZip:
		children := make([]any, len(variant.Children))
		for i, child := range variant.Children {
			enc, err := EncodeNode(child)
			if err != nil {
				return nil, err
			}
			children[i] = enc
		}
		zip := NewObj()
		zip.Set("children", children)
		out.Set("zip", zip)
	default:
		return nil, diag.Serializationf("cannot encode series variant %T", node.Variant)
	}
	return out, nil
}

func sortedStrings(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedContentKeys(m map[string]content.Content) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
