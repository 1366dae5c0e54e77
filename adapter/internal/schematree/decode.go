package schematree

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/halvard-io/synthgen/adapter/internal/typetag"
	"github.com/halvard-io/synthgen/address"
	"github.com/halvard-io/synthgen/content"
	"github.com/halvard-io/synthgen/diag"
	"github.com/halvard-io/synthgen/internal/ident"
	"github.com/halvard-io/synthgen/namespace"
	"github.com/halvard-io/synthgen/value"
)

// DefaultDateTimeFormat is the reference-time layout assumed when a
// date_time or series node does not declare one.
const DefaultDateTimeFormat = time.RFC3339

// Decode builds a Namespace from the generic tree a codec produced: *Obj
// at every object level, []any for lists, json.Number (or a native Go
// numeric type, for the YAML codec) for numbers. The top level maps each
// collection name to its root node, in declaration order — order is
// semantic, since it fixes compile order.
func Decode(raw *Obj) (*namespace.Namespace, error) {
	ns := namespace.New()
	for _, name := range raw.Keys() {
		node, _, err := decodeNode(must(raw.Get(name)), []string{name})
		if err != nil {
			return nil, err
		}
		if err := ns.Put(name, node); err != nil {
			return nil, err
		}
	}
	return ns, nil
}

// DecodeNode builds a single content node from a codec's generic tree,
// rejecting node-level "optional"/"weight" markers that only make sense in
// an enclosing object or one_of.
func DecodeNode(raw any) (content.Content, error) {
	node, meta, err := decodeNode(raw, nil)
	if err != nil {
		return nil, err
	}
	if meta.optional || meta.hasWeight {
		return nil, diag.Serializationf("optional/weight markers require an enclosing object or one_of")
	}
	return node, nil
}

// nodeMeta carries the position-dependent markers a node may declare for
// its container: "optional" for object fields, "weight" for one_of
// variants.
type nodeMeta struct {
	optional  bool
	weight    float64
	hasWeight bool
}

func decodeNode(raw any, path []string) (content.Content, nodeMeta, error) {
	obj, ok := raw.(*Obj)
	if !ok {
		return nil, nodeMeta{}, errAt(path, "schema node must be an object, got %T", raw)
	}
	tagRaw, _ := obj.Get(typetag.Field)
	tag, _ := tagRaw.(string)
	kind, err := typetag.Validate(tag)
	if err != nil {
		return nil, nodeMeta{}, errAt(path, "%v", err)
	}

	meta := nodeMeta{}
	if opt, present := obj.Get("optional"); present {
		b, ok := opt.(bool)
		if !ok {
			return nil, nodeMeta{}, errAt(path, `"optional" must be a boolean`)
		}
		meta.optional = b
	}
	if w, present := obj.Get("weight"); present {
		f, err := toFloat(w)
		if err != nil {
			return nil, nodeMeta{}, errAt(path, `"weight": %v`, err)
		}
		meta.weight = f
		meta.hasWeight = true
	}

	d := &nodeDecoder{obj: obj, path: path}
	var node content.Content
	switch kind {
	case content.KindNull:
		node, err = d.null()
	case content.KindBool:
		node, err = d.bool()
	case content.KindNumber:
		node, err = d.number()
	case content.KindString:
		node, err = d.string()
	case content.KindArray:
		node, err = d.array()
	case content.KindObject:
		node, err = d.object()
	case content.KindOneOf:
		node, err = d.oneOf()
	case content.KindUnique:
		node, err = d.unique()
	case content.KindHidden:
		node, err = d.hidden()
	case content.KindSameAs:
		node, err = d.sameAs()
	case content.KindSeries:
		node, err = d.series()
	case content.KindDatasource:
		node, err = d.datasource()
	}
	if err != nil {
		return nil, nodeMeta{}, err
	}
	if err := d.denyUnknown(); err != nil {
		return nil, nodeMeta{}, err
	}
	return node, meta, nil
}

// nodeDecoder reads variant-specific fields off one schema object,
// remembering which keys it consumed so everything else can be rejected.
type nodeDecoder struct {
	obj  *Obj
	path []string
	used []string
}

func (d *nodeDecoder) take(key string) (any, bool) {
	d.used = append(d.used, key)
	return d.obj.Get(key)
}

// denyUnknown rejects keys no decoder consumed, suggesting the closest
// consumed-or-standard key for typos.
func (d *nodeDecoder) denyUnknown() error {
	allowed := map[string]bool{typetag.Field: true, "optional": true, "weight": true}
	for _, k := range d.used {
		allowed[k] = true
	}
	for _, key := range d.obj.Keys() {
		if allowed[key] {
			continue
		}
		candidates := make([]string, 0, len(allowed))
		for k := range allowed {
			candidates = append(candidates, k)
		}
		if hint := ident.Closest(key, candidates); hint != "" {
			return errAt(d.path, "unknown field %q (did you mean %q?)", key, hint)
		}
		return errAt(d.path, "unknown field %q", key)
	}
	return nil
}

func (d *nodeDecoder) null() (content.Content, error) {
	return content.NewNull(), nil
}

func (d *nodeDecoder) bool() (content.Content, error) {
	if raw, ok := d.take("constant"); ok {
		b, isBool := raw.(bool)
		if !isBool {
			return nil, errAt(d.path, `bool "constant" must be true or false`)
		}
		return content.NewBool(content.NewBoolConstant(b)), nil
	}
	if raw, ok := d.take("frequency"); ok {
		p, err := toFloat(raw)
		if err != nil {
			return nil, errAt(d.path, `bool "frequency": %v`, err)
		}
		mode, err := content.NewFrequency(p)
		if err != nil {
			return nil, errAt(d.path, "%v", err)
		}
		return content.NewBool(mode), nil
	}
	if raw, ok := d.take("categorical"); ok {
		m, isObj := raw.(*Obj)
		if !isObj {
			return nil, errAt(d.path, `bool "categorical" must map "true"/"false" to weights`)
		}
		weights := make(map[bool]float64, 2)
		for _, key := range m.Keys() {
			b, err := strconv.ParseBool(key)
			if err != nil {
				return nil, errAt(d.path, `bool "categorical" key %q is not "true" or "false"`, key)
			}
			w, err := toFloat(must(m.Get(key)))
			if err != nil {
				return nil, errAt(d.path, `bool "categorical" weight for %q: %v`, key, err)
			}
			weights[b] = w
		}
		mode, err := content.NewBoolCategorical(weights)
		if err != nil {
			return nil, errAt(d.path, "%v", err)
		}
		return content.NewBool(mode), nil
	}
	return nil, errAt(d.path, `bool node needs one of "constant", "frequency", "categorical"`)
}

func (d *nodeDecoder) number() (content.Content, error) {
	subtypeRaw, ok := d.take("subtype")
	if !ok {
		return nil, errAt(d.path, `number node needs a "subtype"`)
	}
	subtype, isString := subtypeRaw.(string)
	if !isString {
		return nil, errAt(d.path, `number "subtype" must be a string`)
	}
	variant, err := parseVariant(subtype)
	if err != nil {
		return nil, errAt(d.path, "%v", err)
	}

	if raw, ok := d.take("constant"); ok {
		n, err := toNumber(variant, raw)
		if err != nil {
			return nil, errAt(d.path, `number "constant": %v`, err)
		}
		return content.NewNumber(variant, content.NewNumberConstant(n)), nil
	}
	if raw, ok := d.take("range"); ok {
		m, isObj := raw.(*Obj)
		if !isObj {
			return nil, errAt(d.path, `number "range" must be an object with "low", "high", "step"`)
		}
		low, err := requiredNumber(m, "low", variant, d.path)
		if err != nil {
			return nil, err
		}
		high, err := requiredNumber(m, "high", variant, d.path)
		if err != nil {
			return nil, err
		}
		step, err := optionalNumber(m, "step", variant, defaultStep(variant), d.path)
		if err != nil {
			return nil, err
		}
		mode, err := content.NewRange(low, high, step)
		if err != nil {
			return nil, errAt(d.path, "%v", err)
		}
		return content.NewNumber(variant, mode), nil
	}
	if raw, ok := d.take("categorical"); ok {
		list, isList := raw.([]any)
		if !isList {
			return nil, errAt(d.path, `number "categorical" must be a list of {"value", "weight"} entries`)
		}
		entries := make([]content.NumberCategoricalEntry, 0, len(list))
		for i, e := range list {
			m, isObj := e.(*Obj)
			if !isObj {
				return nil, errAt(d.path, `number "categorical" entry %d must be an object`, i)
			}
			rawValue, _ := m.Get("value")
			n, err := toNumber(variant, rawValue)
			if err != nil {
				return nil, errAt(d.path, `number "categorical" entry %d: %v`, i, err)
			}
			w := 1.0
			if rawWeight, present := m.Get("weight"); present {
				w, err = toFloat(rawWeight)
				if err != nil {
					return nil, errAt(d.path, `number "categorical" entry %d weight: %v`, i, err)
				}
			}
			entries = append(entries, content.NumberCategoricalEntry{Value: n, Weight: w})
		}
		mode, err := content.NewNumberCategorical(entries)
		if err != nil {
			return nil, errAt(d.path, "%v", err)
		}
		return content.NewNumber(variant, mode), nil
	}
	if raw, ok := d.take("incrementing"); ok {
		m, isObj := raw.(*Obj)
		if !isObj {
			return nil, errAt(d.path, `number "incrementing" must be an object with "start", "step"`)
		}
		zero, _ := fromInt64(variant, 0)
		start, err := optionalNumber(m, "start", variant, zero, d.path)
		if err != nil {
			return nil, err
		}
		step, err := optionalNumber(m, "step", variant, defaultStep(variant), d.path)
		if err != nil {
			return nil, err
		}
		mode, err := content.NewIncrementing(start, step)
		if err != nil {
			return nil, errAt(d.path, "%v", err)
		}
		return content.NewNumber(variant, mode), nil
	}
	return nil, errAt(d.path, `number node needs one of "constant", "range", "categorical", "incrementing"`)
}

func (d *nodeDecoder) string() (content.Content, error) {
	if raw, ok := d.take("pattern"); ok {
		pattern, isString := raw.(string)
		if !isString {
			return nil, errAt(d.path, `string "pattern" must be a string`)
		}
		mode, err := content.NewRegex(pattern)
		if err != nil {
			return nil, errAt(d.path, "%v", err)
		}
		return content.NewString(mode), nil
	}
	if raw, ok := d.take("faker"); ok {
		m, isObj := raw.(*Obj)
		if !isObj {
			return nil, errAt(d.path, `string "faker" must be an object with "generator" and optional "args"`)
		}
		nameRaw, _ := m.Get("generator")
		name, _ := nameRaw.(string)
		args := map[string]string{}
		if rawArgs, present := m.Get("args"); present {
			argObj, isObj := rawArgs.(*Obj)
			if !isObj {
				return nil, errAt(d.path, `faker "args" must be an object of strings`)
			}
			for _, k := range argObj.Keys() {
				v, _ := argObj.Get(k)
				s, isString := v.(string)
				if !isString {
					s = fmt.Sprint(v)
				}
				args[k] = s
			}
		}
		mode, err := content.NewFaker(name, args)
		if err != nil {
			return nil, errAt(d.path, "%v", err)
		}
		return content.NewString(mode), nil
	}
	if raw, ok := d.take("categorical"); ok {
		list, isList := raw.([]any)
		if !isList {
			return nil, errAt(d.path, `string "categorical" must be a list of {"value", "weight"} entries`)
		}
		entries := make([]content.StringCategoricalEntry, 0, len(list))
		for i, e := range list {
			switch entry := e.(type) {
			case string:
				entries = append(entries, content.StringCategoricalEntry{Value: entry, Weight: 1})
			case *Obj:
				rawValue, _ := entry.Get("value")
				s, isString := rawValue.(string)
				if !isString {
					return nil, errAt(d.path, `string "categorical" entry %d needs a string "value"`, i)
				}
				w := 1.0
				if rawWeight, present := entry.Get("weight"); present {
					var err error
					w, err = toFloat(rawWeight)
					if err != nil {
						return nil, errAt(d.path, `string "categorical" entry %d weight: %v`, i, err)
					}
				}
				entries = append(entries, content.StringCategoricalEntry{Value: s, Weight: w})
			default:
				return nil, errAt(d.path, `string "categorical" entry %d must be a string or an object`, i)
			}
		}
		mode, err := content.NewStringCategorical(entries)
		if err != nil {
			return nil, errAt(d.path, "%v", err)
		}
		return content.NewString(mode), nil
	}
	if raw, ok := d.take("date_time"); ok {
		m, isObj := raw.(*Obj)
		if !isObj {
			return nil, errAt(d.path, `string "date_time" must be an object with "format", "low", "high"`)
		}
		format := DefaultDateTimeFormat
		if f, present := m.Get("format"); present {
			s, isString := f.(string)
			if !isString {
				return nil, errAt(d.path, `date_time "format" must be a string`)
			}
			format = s
		}
		low, err := takeTime(m, "low", format, time.Unix(0, 0).UTC(), d.path)
		if err != nil {
			return nil, err
		}
		high, err := takeTime(m, "high", format, low.AddDate(10, 0, 0), d.path)
		if err != nil {
			return nil, err
		}
		mode, err := content.NewDateTime(format, low, high)
		if err != nil {
			return nil, errAt(d.path, "%v", err)
		}
		return content.NewString(mode), nil
	}
	if raw, ok := d.take("uuid"); ok {
		if enabled, isBool := raw.(bool); !isBool || !enabled {
			return nil, errAt(d.path, `string "uuid" must be true when present`)
		}
		return content.NewString(content.NewUUIDMode()), nil
	}
	if raw, ok := d.take("constant"); ok {
		s, isString := raw.(string)
		if !isString {
			return nil, errAt(d.path, `string "constant" must be a string`)
		}
		return content.NewString(content.NewStringConstant(s)), nil
	}
	if raw, ok := d.take("truncated"); ok {
		m, isObj := raw.(*Obj)
		if !isObj {
			return nil, errAt(d.path, `string "truncated" must be an object with "len" and "content"`)
		}
		rawLen, _ := m.Get("len")
		length, err := toFloat(rawLen)
		if err != nil {
			return nil, errAt(d.path, `truncated "len": %v`, err)
		}
		rawInner, _ := m.Get("content")
		inner, err := decodeChild(rawInner, append(d.path, "truncated"))
		if err != nil {
			return nil, err
		}
		mode, err := content.NewTruncated(int(length), inner)
		if err != nil {
			return nil, errAt(d.path, "%v", err)
		}
		return content.NewString(mode), nil
	}
	if raw, ok := d.take("sliced"); ok {
		m, isObj := raw.(*Obj)
		if !isObj {
			return nil, errAt(d.path, `string "sliced" must be an object with "slice" and "content"`)
		}
		rawExpr, _ := m.Get("slice")
		expr, _ := rawExpr.(string)
		rawInner, _ := m.Get("content")
		inner, err := decodeChild(rawInner, append(d.path, "sliced"))
		if err != nil {
			return nil, err
		}
		mode, err := content.NewSliced(inner, expr)
		if err != nil {
			return nil, errAt(d.path, "%v", err)
		}
		return content.NewString(mode), nil
	}
	if raw, ok := d.take("serialized"); ok {
		m, isObj := raw.(*Obj)
		if !isObj {
			return nil, errAt(d.path, `string "serialized" must be an object with "encoding" and "content"`)
		}
		encoding := "json"
		if e, present := m.Get("encoding"); present {
			s, isString := e.(string)
			if !isString {
				return nil, errAt(d.path, `serialized "encoding" must be a string`)
			}
			encoding = s
		}
		rawInner, _ := m.Get("content")
		inner, err := decodeChild(rawInner, append(d.path, "serialized"))
		if err != nil {
			return nil, err
		}
		mode, err := content.NewSerialized(inner, encoding)
		if err != nil {
			return nil, errAt(d.path, "%v", err)
		}
		return content.NewString(mode), nil
	}
	if raw, ok := d.take("format"); ok {
		m, isObj := raw.(*Obj)
		if !isObj {
			return nil, errAt(d.path, `string "format" must be an object with "template" and arguments`)
		}
		rawTemplate, _ := m.Get("template")
		template, _ := rawTemplate.(string)
		named := map[string]content.Content{}
		if rawNamed, present := m.Get("arguments"); present {
			argObj, isObj := rawNamed.(*Obj)
			if !isObj {
				return nil, errAt(d.path, `format "arguments" must be an object of nodes`)
			}
			for _, name := range argObj.Keys() {
				child, err := decodeChild(must(argObj.Get(name)), append(d.path, "format", name))
				if err != nil {
					return nil, err
				}
				named[name] = child
			}
		}
		var positional []content.Content
		if rawPos, present := m.Get("positional"); present {
			list, isList := rawPos.([]any)
			if !isList {
				return nil, errAt(d.path, `format "positional" must be a list of nodes`)
			}
			for i, e := range list {
				child, err := decodeChild(e, append(d.path, "format", strconv.Itoa(i)))
				if err != nil {
					return nil, err
				}
				positional = append(positional, child)
			}
		}
		return content.NewString(content.NewFormat(template, named, positional)), nil
	}
	return nil, errAt(d.path, `string node needs one of "pattern", "faker", "categorical", "date_time", "uuid", "constant", "truncated", "sliced", "serialized", "format"`)
}

func (d *nodeDecoder) array() (content.Content, error) {
	rawLength, ok := d.take("length")
	if !ok {
		return nil, errAt(d.path, `array node needs a "length"`)
	}
	length, err := decodeChild(rawLength, append(d.path, address.ArrayLength))
	if err != nil {
		return nil, err
	}
	rawElem, ok := d.take("content")
	if !ok {
		return nil, errAt(d.path, `array node needs a "content"`)
	}
	elem, err := decodeChild(rawElem, append(d.path, address.ArrayContent))
	if err != nil {
		return nil, err
	}
	return content.NewArray(length, elem), nil
}

func (d *nodeDecoder) object() (content.Content, error) {
	rawFields, ok := d.take("fields")
	if !ok {
		return nil, errAt(d.path, `object node needs a "fields" map`)
	}
	m, isObj := rawFields.(*Obj)
	if !isObj {
		return nil, errAt(d.path, `object "fields" must map field names to nodes`)
	}
	names := m.Keys()
	fields := make(map[string]content.FieldContent, len(names))
	for _, name := range names {
		if !ident.ValidName(name) {
			return nil, errAt(d.path, "field name %q does not match %s", name, ident.NamePattern)
		}
		child, meta, err := decodeNode(must(m.Get(name)), append(d.path, name))
		if err != nil {
			return nil, err
		}
		fields[name] = content.FieldContent{Content: child, Optional: meta.optional}
	}
	return content.NewObject(names, fields), nil
}

func (d *nodeDecoder) oneOf() (content.Content, error) {
	rawVariants, ok := d.take("variants")
	if !ok {
		return nil, errAt(d.path, `one_of node needs a "variants" list`)
	}
	list, isList := rawVariants.([]any)
	if !isList {
		return nil, errAt(d.path, `one_of "variants" must be a list of nodes`)
	}
	variants := make([]content.Variant, 0, len(list))
	for i, e := range list {
		child, meta, err := decodeNode(e, append(d.path, strconv.Itoa(i)))
		if err != nil {
			return nil, err
		}
		weight := 1.0
		if meta.hasWeight {
			weight = meta.weight
		}
		variants = append(variants, content.Variant{Weight: weight, Content: child})
	}
	oneOf := content.NewOneOf(variants...)
	if err := oneOf.Validate(); err != nil {
		return nil, errAt(d.path, "%v", err)
	}
	return oneOf, nil
}

func (d *nodeDecoder) unique() (content.Content, error) {
	algorithm := content.UniqueExactSet
	if raw, ok := d.take("algorithm"); ok {
		s, isString := raw.(string)
		if !isString {
			return nil, errAt(d.path, `unique "algorithm" must be a string`)
		}
		algorithm = content.UniqueAlgorithm(s)
	}
	rawInner, ok := d.take("content")
	if !ok {
		return nil, errAt(d.path, `unique node needs a "content"`)
	}
	inner, err := decodeChild(rawInner, append(d.path, "content"))
	if err != nil {
		return nil, err
	}
	node, err := content.NewUnique(inner, algorithm)
	if err != nil {
		return nil, errAt(d.path, "%v", err)
	}
	return node, nil
}

func (d *nodeDecoder) hidden() (content.Content, error) {
	rawInner, ok := d.take("content")
	if !ok {
		return nil, errAt(d.path, `hidden node needs a "content"`)
	}
	inner, err := decodeChild(rawInner, append(d.path, "content"))
	if err != nil {
		return nil, err
	}
	return content.NewHidden(inner), nil
}

func (d *nodeDecoder) sameAs() (content.Content, error) {
	rawRef, ok := d.take("ref")
	if !ok {
		return nil, errAt(d.path, `same_as node needs a "ref"`)
	}
	s, isString := rawRef.(string)
	if !isString {
		return nil, errAt(d.path, `same_as "ref" must be a dotted-path string`)
	}
	ref, err := address.ParseFieldRef(s)
	if err != nil {
		return nil, errAt(d.path, "%v", err)
	}
	return content.NewSameAs(ref), nil
}

func (d *nodeDecoder) series() (content.Content, error) {
	format := DefaultDateTimeFormat
	if raw, ok := d.take("format"); ok {
		s, isString := raw.(string)
		if !isString {
			return nil, errAt(d.path, `series "format" must be a string`)
		}
		format = s
	}
	if raw, ok := d.take("incrementing"); ok {
		m, isObj := raw.(*Obj)
		if !isObj {
			return nil, errAt(d.path, `series "incrementing" must be an object with "start", "duration"`)
		}
		start, err := takeTime(m, "start", format, time.Unix(0, 0).UTC(), d.path)
		if err != nil {
			return nil, err
		}
		duration, err := takeDuration(m, "duration", d.path)
		if err != nil {
			return nil, err
		}
		variant, err := content.NewSeriesIncrementing(start, duration)
		if err != nil {
			return nil, errAt(d.path, "%v", err)
		}
		return content.NewSeries(format, variant), nil
	}
	if raw, ok := d.take("poisson"); ok {
		m, isObj := raw.(*Obj)
		if !isObj {
			return nil, errAt(d.path, `series "poisson" must be an object with "start", "rate"`)
		}
		start, err := takeTime(m, "start", format, time.Unix(0, 0).UTC(), d.path)
		if err != nil {
			return nil, err
		}
		rawRate, _ := m.Get("rate")
		rate, err := toFloat(rawRate)
		if err != nil {
			return nil, errAt(d.path, `poisson "rate": %v`, err)
		}
		variant, err := content.NewSeriesPoisson(start, rate)
		if err != nil {
			return nil, errAt(d.path, "%v", err)
		}
		return content.NewSeries(format, variant), nil
	}
	if raw, ok := d.take("cyclical"); ok {
		m, isObj := raw.(*Obj)
		if !isObj {
			return nil, errAt(d.path, `series "cyclical" must be an object with "start", "period", "min_rate", "max_rate"`)
		}
		start, err := takeTime(m, "start", format, time.Unix(0, 0).UTC(), d.path)
		if err != nil {
			return nil, err
		}
		period, err := takeDuration(m, "period", d.path)
		if err != nil {
			return nil, err
		}
		rawMin, _ := m.Get("min_rate")
		minRate, err := toFloat(rawMin)
		if err != nil {
			return nil, errAt(d.path, `cyclical "min_rate": %v`, err)
		}
		rawMax, _ := m.Get("max_rate")
		maxRate, err := toFloat(rawMax)
		if err != nil {
			return nil, errAt(d.path, `cyclical "max_rate": %v`, err)
		}
		variant, err := content.NewSeriesCyclical(start, period, minRate, maxRate)
		if err != nil {
			return nil, errAt(d.path, "%v", err)
		}
		return content.NewSeries(format, variant), nil
	}
	if raw, ok := d.take("zip"); ok {
		m, isObj := raw.(*Obj)
		if !isObj {
			return nil, errAt(d.path, `series "zip" must be an object with "children"`)
		}
		rawChildren, _ := m.Get("children")
		list, isList := rawChildren.([]any)
		if !isList {
			return nil, errAt(d.path, `zip "children" must be a list of series nodes`)
		}
		children := make([]content.Content, 0, len(list))
		for i, e := range list {
			child, err := decodeChild(e, append(d.path, strconv.Itoa(i)))
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		variant, err := content.NewSeriesZip(children)
		if err != nil {
			return nil, errAt(d.path, "%v", err)
		}
		return content.NewSeries(format, variant), nil
	}
	return nil, errAt(d.path, `series node needs one of "incrementing", "poisson", "cyclical", "zip"`)
}

func (d *nodeDecoder) datasource() (content.Content, error) {
	rawURI, ok := d.take("uri")
	if !ok {
		return nil, errAt(d.path, `datasource node needs a "uri"`)
	}
	uri, isString := rawURI.(string)
	if !isString {
		return nil, errAt(d.path, `datasource "uri" must be a string`)
	}
	cycle := false
	if raw, ok := d.take("cycle"); ok {
		b, isBool := raw.(bool)
		if !isBool {
			return nil, errAt(d.path, `datasource "cycle" must be a boolean`)
		}
		cycle = b
	}
	node, err := content.NewDatasource(uri, cycle)
	if err != nil {
		return nil, errAt(d.path, "%v", err)
	}
	return node, nil
}

func decodeChild(raw any, path []string) (content.Content, error) {
	node, _, err := decodeNode(raw, path)
	return node, err
}

// --- literal conversion helpers ---

func parseVariant(subtype string) (value.NumberVariant, error) {
	switch subtype {
	case "i8":
		return value.I8, nil
	case "i16":
		return value.I16, nil
	case "i32":
		return value.I32, nil
	case "i64":
		return value.I64, nil
	case "i128":
		return value.I128, nil
	case "u8":
		return value.U8, nil
	case "u16":
		return value.U16, nil
	case "u32":
		return value.U32, nil
	case "u64":
		return value.U64, nil
	case "u128":
		return value.U128, nil
	case "f32":
		return value.F32, nil
	case "f64":
		return value.F64, nil
	default:
		return 0, fmt.Errorf("unknown number subtype %q", subtype)
	}
}

func defaultStep(variant value.NumberVariant) value.Number {
	step, _ := fromInt64(variant, 1)
	return step
}

// toNumber converts a codec scalar into a Number of the given variant.
// 128-bit subtypes additionally accept decimal strings, since their range
// exceeds what JSON numbers round-trip.
func toNumber(variant value.NumberVariant, raw any) (value.Number, error) {
	if variant.Is128() {
		if s, ok := raw.(string); ok {
			bi, ok := new(big.Int).SetString(s, 10)
			if !ok {
				return value.Number{}, fmt.Errorf("%q is not a decimal integer", s)
			}
			return value.NewBigInt(variant, bi), nil
		}
	}
	switch n := raw.(type) {
	case json.Number:
		if variant.IsFloat() {
			f, err := n.Float64()
			if err != nil {
				return value.Number{}, err
			}
			return value.NewFloat(variant, f), nil
		}
		if variant.Is128() {
			bi, ok := new(big.Int).SetString(n.String(), 10)
			if !ok {
				return value.Number{}, fmt.Errorf("%q is not an integer", n.String())
			}
			return value.NewBigInt(variant, bi), nil
		}
		if variant.IsSigned() {
			i, err := n.Int64()
			if err != nil {
				return value.Number{}, err
			}
			return value.NewInt(variant, i), nil
		}
		u, err := strconv.ParseUint(n.String(), 10, 64)
		if err != nil {
			return value.Number{}, err
		}
		return value.NewUint(variant, u), nil
	case int:
		return fromInt64(variant, int64(n))
	case int64:
		return fromInt64(variant, n)
	case uint64:
		if variant.IsFloat() {
			return value.NewFloat(variant, float64(n)), nil
		}
		if variant.Is128() {
			return value.NewBigInt(variant, new(big.Int).SetUint64(n)), nil
		}
		if variant.IsSigned() {
			return value.NewInt(variant, int64(n)), nil
		}
		return value.NewUint(variant, n), nil
	case float64:
		if variant.IsFloat() {
			return value.NewFloat(variant, n), nil
		}
		if n != float64(int64(n)) {
			return value.Number{}, fmt.Errorf("%v is not an integer", n)
		}
		return fromInt64(variant, int64(n))
	default:
		return value.Number{}, fmt.Errorf("expected a number, got %T", raw)
	}
}

func fromInt64(variant value.NumberVariant, i int64) (value.Number, error) {
	switch {
	case variant.IsFloat():
		return value.NewFloat(variant, float64(i)), nil
	case variant.Is128():
		return value.NewBigInt(variant, big.NewInt(i)), nil
	case variant.IsSigned():
		return value.NewInt(variant, i), nil
	default:
		if i < 0 {
			return value.Number{}, fmt.Errorf("%d is negative for unsigned subtype", i)
		}
		return value.NewUint(variant, uint64(i)), nil
	}
}

func requiredNumber(m *Obj, key string, variant value.NumberVariant, path []string) (value.Number, error) {
	raw, ok := m.Get(key)
	if !ok {
		return value.Number{}, errAt(path, "missing %q", key)
	}
	n, err := toNumber(variant, raw)
	if err != nil {
		return value.Number{}, errAt(path, "%q: %v", key, err)
	}
	return n, nil
}

func optionalNumber(m *Obj, key string, variant value.NumberVariant, fallback value.Number, path []string) (value.Number, error) {
	raw, ok := m.Get(key)
	if !ok {
		return fallback, nil
	}
	n, err := toNumber(variant, raw)
	if err != nil {
		return value.Number{}, errAt(path, "%q: %v", key, err)
	}
	return n, nil
}

func takeTime(m *Obj, key, format string, fallback time.Time, path []string) (time.Time, error) {
	raw, ok := m.Get(key)
	if !ok {
		return fallback, nil
	}
	s, isString := raw.(string)
	if !isString {
		return time.Time{}, errAt(path, "%q must be a date-time string", key)
	}
	t, err := time.Parse(format, s)
	if err != nil {
		return time.Time{}, errAt(path, "%q: %v", key, err)
	}
	return t, nil
}

func takeDuration(m *Obj, key string, path []string) (time.Duration, error) {
	raw, ok := m.Get(key)
	if !ok {
		return 0, errAt(path, "missing %q", key)
	}
	s, isString := raw.(string)
	if !isString {
		return 0, errAt(path, "%q must be a duration string like \"1h30m\"", key)
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errAt(path, "%q: %v", key, err)
	}
	return d, nil
}

func errAt(path []string, format string, args ...any) error {
	issue := diag.Serializationf(format, args...)
	if len(path) > 0 {
		issue = issue.WithPath(strings.Join(path, "."))
	}
	return issue
}

// must discards the presence flag for keys the caller just enumerated.
func must(v any, _ bool) any { return v }

func toFloat(raw any) (float64, error) {
	switch n := raw.(type) {
	case json.Number:
		return n.Float64()
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case nil:
		return 0, fmt.Errorf("missing number")
	default:
		return 0, fmt.Errorf("expected a number, got %T", raw)
	}
}
