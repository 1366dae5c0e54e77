package gen

import (
	"math/rand"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/lucasjones/reggen"

	"github.com/halvard-io/synthgen/diag"
	"github.com/halvard-io/synthgen/internal/fakername"
	"github.com/halvard-io/synthgen/value"
)

// regexRepeatLimit bounds how many times an unbounded regex repeat
// operator (*, +, {n,}) expands when reggen samples a string; reggen has
// no notion of a seed-proportional bound, so this is a fixed ceiling.
const regexRepeatLimit = 12

// Regex samples a string from pattern's language using
// github.com/lucasjones/reggen, seeded from the generator's own *rand.Rand
// so output is reproducible from the top-level seed.
func Regex(pattern string) ValueGen {
	return Leaf(func(rng *rand.Rand) (value.Value, error) {
		g, err := reggen.NewGenerator(pattern)
		if err != nil {
			return value.Value{}, diag.BadRequestf("regex content: %v", err)
		}
		// reggen owns its RNG; reseeding from the engine's stream keeps
		// output a pure function of the top-level seed.
		g.SetSeed(rng.Int63())
		return value.Str(g.Generate(regexRepeatLimit)), nil
	})
}

// Faker delegates to a named github.com/brianvoe/gofakeit/v6 generator,
// reseeded per draw from the engine's own RNG stream so output is
// reproducible from the top-level seed.
func Faker(name string, args map[string]string) ValueGen {
	return Leaf(func(rng *rand.Rand) (value.Value, error) {
		fn, ok := fakername.Lookup(name)
		if !ok {
			return value.Value{}, diag.BadRequestf("faker content: %v", fakername.ErrUnknown(name))
		}
		f := gofakeit.New(rng.Int63())
		s, err := fn(f, args)
		if err != nil {
			return value.Value{}, diag.BadRequestf("faker content %q: %v", name, err)
		}
		return value.Str(s), nil
	})
}

// CategoricalString draws from a finite weighted list of strings.
func CategoricalString(entries []Weighted[string]) ValueGen {
	return Leaf(func(rng *rand.Rand) (value.Value, error) {
		total := TotalWeight(entries, func(w Weighted[string]) float64 { return w.Weight })
		idx := pickWeighted(entries, func(w Weighted[string]) float64 { return w.Weight }, rng.Float64()*total)
		return value.Str(entries[idx].Value), nil
	})
}

// DateTimeRange samples a uniform instant in the closed range [low, high]
// and formats it with format.
func DateTimeRange(format string, low, high time.Time) ValueGen {
	return Leaf(func(rng *rand.Rand) (value.Value, error) {
		span := high.Sub(low)
		if span <= 0 {
			return value.DateTime(low, format), nil
		}
		offset := time.Duration(rng.Int63n(int64(span) + 1))
		return value.DateTime(low.Add(offset), format), nil
	})
}

// UUID draws 128 random bits seeded from rng and formats them in
// hyphenated canonical form.
func UUID() ValueGen {
	return Leaf(func(rng *rand.Rand) (value.Value, error) {
		var bytes [16]byte
		if _, err := rng.Read(bytes[:]); err != nil {
			return value.Value{}, err
		}
		// RFC 4122 version 4 / variant bits.
		bytes[6] = (bytes[6] & 0x0f) | 0x40
		bytes[8] = (bytes[8] & 0x3f) | 0x80
		id, err := value.ParseUUID(formatHex(bytes))
		if err != nil {
			return value.Value{}, err
		}
		return value.UUIDValue(id), nil
	})
}

// Truncated clips inner's aggregated string to at most length runes.
func Truncated(inner ValueGen, length int) ValueGen {
	return Map(inner, func(v value.Value) (value.Value, error) {
		s, ok := v.AsString()
		if !ok {
			return value.Value{}, diag.Compilationf("truncated content requires a string-producing inner generator")
		}
		runes := []rune(s)
		if length < len(runes) {
			runes = runes[:length]
		}
		return value.Str(string(runes)), nil
	})
}

// Sliced applies the already-validated "a:b" slice expression to inner's
// aggregated string; missing bounds default to 0 and len(runes).
func Sliced(inner ValueGen, lowIdx, highIdx int, hasLow, hasHigh bool) ValueGen {
	return Map(inner, func(v value.Value) (value.Value, error) {
		s, ok := v.AsString()
		if !ok {
			return value.Value{}, diag.Compilationf("sliced content requires a string-producing inner generator")
		}
		runes := []rune(s)
		lo, hi := 0, len(runes)
		if hasLow {
			lo = lowIdx
		}
		if hasHigh {
			hi = highIdx
		}
		if lo < 0 {
			lo = 0
		}
		if hi > len(runes) {
			hi = len(runes)
		}
		if lo > hi {
			lo = hi
		}
		return value.Str(string(runes[lo:hi])), nil
	})
}

// Serialized runs inner to completion and re-emits its aggregated value as
// JSON text, via the same value.MarshalJSON projection the codec package
// uses for on-disk output.
func Serialized(inner ValueGen) ValueGen {
	return Map(inner, func(v value.Value) (value.Value, error) {
		raw, err := value.MarshalJSON(v)
		if err != nil {
			return value.Value{}, diag.Serializationf("serialized content: %v", err)
		}
		return value.Str(string(raw)), nil
	})
}

// FormatArg is one substitution source for Format: Name is empty for a
// positional "{}" placeholder, or the placeholder name for "{name}".
type FormatArg struct {
	Name  string
	Build func() (ValueGen, error)
}

// Format substitutes template's "{}" (consumed left to right from
// positional) and "{name}" (looked up in named) placeholders with each
// arg generator's aggregated value: a string is inserted as-is, any other
// value as value.Value's own String method renders it. Each arg is driven to
// completion with the same rng the template leaf receives, so output stays
// reproducible from the top-level seed.
func Format(template string, args []FormatArg) ValueGen {
	return Leaf(func(rng *rand.Rand) (value.Value, error) {
		named := map[string]func() (ValueGen, error){}
		var positional []func() (ValueGen, error)
		for _, a := range args {
			if a.Name == "" {
				positional = append(positional, a.Build)
			} else {
				named[a.Name] = a.Build
			}
		}

		var out strings.Builder
		posIdx := 0
		i := 0
		for i < len(template) {
			ch := template[i]
			if ch != '{' {
				out.WriteByte(ch)
				i++
				continue
			}
			end := strings.IndexByte(template[i:], '}')
			if end < 0 {
				return value.Value{}, diag.Compilationf("format template %q has an unterminated placeholder", template)
			}
			name := template[i+1 : i+end]
			i += end + 1

			var build func() (ValueGen, error)
			if name == "" {
				if posIdx >= len(positional) {
					return value.Value{}, diag.Compilationf("format template %q has more positional placeholders than arguments", template)
				}
				build = positional[posIdx]
				posIdx++
			} else {
				var ok bool
				build, ok = named[name]
				if !ok {
					return value.Value{}, diag.Compilationf("format template %q references unknown placeholder %q", template, name)
				}
			}
			g, err := build()
			if err != nil {
				return value.Value{}, err
			}
			v, err := Aggregate(g, rng)
			if err != nil {
				return value.Value{}, err
			}
			out.WriteString(formatValue(v))
		}
		return value.Str(out.String()), nil
	})
}

// formatValue renders a substituted value as template text: strings go in
// raw, everything else uses the value's diagnostic rendering.
func formatValue(v value.Value) string {
	if s, ok := v.AsString(); ok {
		return s
	}
	return v.String()
}

func formatHex(b [16]byte) string {
	const hexDigits = "0123456789abcdef"
	var out [36]byte
	pos := 0
	dashAfter := map[int]bool{4: true, 6: true, 8: true, 10: true}
	for i, by := range b {
		if dashAfter[i] {
			out[pos] = '-'
			pos++
		}
		out[pos] = hexDigits[by>>4]
		out[pos+1] = hexDigits[by&0x0f]
		pos += 2
	}
	return string(out[:])
}
