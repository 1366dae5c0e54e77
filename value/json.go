package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// ToJSON projects v into a tree of map[string]any/[]any/primitives suitable
// for [encoding/json.Marshal]. Objects become map[string]any, which Go's
// encoding/json marshals with lexicographically sorted keys — exactly the
// serialization-order guarantee the wire format promises, independent of
// Object's own insertion-order storage.
//
// i128/u128 numbers are narrowed to int64/uint64; values outside that range
// lose precision on the JSON boundary. This narrowing is a documented,
// deliberate limitation of the wire format, not a bug.
func ToJSON(v Value) (any, error) {
	switch v.kind {
	case KindNull:
		return nil, nil
	case KindBool:
		b, _ := v.AsBool()
		return b, nil
	case KindNumber:
		n, _ := v.AsNumber()
		return numberToJSON(n), nil
	case KindString:
		s, _ := v.AsString()
		return s, nil
	case KindDateTime:
		t, format, _ := v.AsDateTime()
		return t.Format(format), nil
	case KindUUID:
		u, _ := v.AsUUID()
		return u.String(), nil
	case KindArray:
		elems, _ := v.AsArray()
		out := make([]any, len(elems))
		for i, e := range elems {
			proj, err := ToJSON(e)
			if err != nil {
				return nil, err
			}
			out[i] = proj
		}
		return out, nil
	case KindObject:
		obj, _ := v.AsObject()
		out := make(map[string]any, obj.Len())
		var projErr error
		obj.Fields(func(name string, fv Value) {
			if projErr != nil {
				return
			}
			proj, err := ToJSON(fv)
			if err != nil {
				projErr = err
				return
			}
			out[name] = proj
		})
		if projErr != nil {
			return nil, projErr
		}
		return out, nil
	default:
		return nil, fmt.Errorf("value: cannot project Kind(%d) to JSON", v.kind)
	}
}

func numberToJSON(n Number) any {
	switch {
	case n.variant.IsFloat():
		f, _ := n.Float64()
		return f
	case n.variant.Is128():
		big, _ := n.BigInt()
		if n.variant.IsSigned() {
			return big.Int64()
		}
		return big.Uint64()
	case n.variant.IsSigned():
		i, _ := n.Int64()
		return i
	default:
		u, _ := n.Uint64()
		return u
	}
}

// MarshalJSON renders v as JSON bytes via [ToJSON].
func MarshalJSON(v Value) ([]byte, error) {
	proj, err := ToJSON(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(proj)
}

// FromJSON converts raw decoded JSON (as produced by a json.Decoder with
// UseNumber enabled, or plain nil/bool/string/[]any/map[string]any/
// json.Number) into a Value. Integral json.Number values become an I64
// Number; non-integral values become F64. There is no schema context here,
// so DateTime and UUID strings are never inferred — callers that know a
// field is typed DateTime or UUID should parse the resulting string Value
// themselves (see content.Content.Accepts for where that knowledge lives).
func FromJSON(raw any) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(v), nil
	case string:
		return Str(v), nil
	case json.Number:
		return jsonNumberToValue(v)
	case float64:
		return Num(NewFloat(F64, v)), nil
	case []any:
		elems := make([]Value, len(v))
		for i, e := range v {
			elem, err := FromJSON(e)
			if err != nil {
				return Value{}, err
			}
			elems[i] = elem
		}
		return Array(elems), nil
	case map[string]any:
		obj := NewObject()
		for _, name := range sortedKeys(v) {
			elem, err := FromJSON(v[name])
			if err != nil {
				return Value{}, err
			}
			obj.Set(name, elem)
		}
		return ObjectValue(obj), nil
	default:
		return Value{}, fmt.Errorf("value: unsupported decoded JSON type %T", raw)
	}
}

func jsonNumberToValue(n json.Number) (Value, error) {
	if i, err := n.Int64(); err == nil {
		return Num(NewInt(I64, i)), nil
	}
	f, err := n.Float64()
	if err != nil {
		return Value{}, fmt.Errorf("value: %q is neither a valid integer nor float: %w", n, err)
	}
	return Num(NewFloat(F64, f)), nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DecodeJSONValue parses data as a single JSON value, preserving integer
// precision via json.Number, and projects it into a Value.
func DecodeJSONValue(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Value{}, fmt.Errorf("value: decode JSON: %w", err)
	}
	return FromJSON(raw)
}

// ParseUUID is a small convenience wrapper kept alongside the JSON
// projection helpers, since Datasource rows and Constant string literals
// both need to materialize a uuid.UUID from its hyphenated text form.
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}
