package gen

import (
	"math/rand"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/text/unicode/norm"

	"github.com/halvard-io/synthgen/diag"
	"github.com/halvard-io/synthgen/location"
	"github.com/halvard-io/synthgen/value"
)

// LoadDatasource resolves path (which may contain doublestar glob
// metacharacters, e.g. "data/*.json") against the filesystem and reads
// every matched file as a JSON array of values, concatenated in matched
// order. A literal path with no glob metacharacters matches
// itself, so this subsumes the base "json:<path>" form.
//
// The pattern is NFC-normalized before globbing and every match is
// canonicalized through [location.NewCanonicalPath], so a schema written
// on a filesystem that stores NFD filenames (macOS), or one reaching a
// file through a symlink, names the same source as a schema that spells
// the path directly — and the same file matched twice (once directly, once
// through a link) is read once.
func LoadDatasource(path string) ([]value.Value, error) {
	matches, err := doublestar.FilepathGlob(norm.NFC.String(path))
	if err != nil {
		return nil, diag.BadRequestf("datasource path %q is not a valid glob: %v", path, err)
	}
	if len(matches) == 0 {
		return nil, diag.NotFoundf("datasource path %q matched no files", path)
	}
	seen := make(map[string]bool, len(matches))
	var out []value.Value
	for _, m := range matches {
		canonical, err := location.NewCanonicalPath(m)
		if err != nil {
			return nil, diag.BadRequestf("datasource file %q: %v", m, err)
		}
		if seen[canonical.String()] {
			continue
		}
		seen[canonical.String()] = true
		raw, err := os.ReadFile(canonical.String())
		if err != nil {
			return nil, diag.NotFoundf("datasource file %q: %v", canonical, err)
		}
		v, err := value.DecodeJSONValue(raw)
		if err != nil {
			return nil, diag.Serializationf("datasource file %q: %v", canonical, err)
		}
		elems, ok := v.AsArray()
		if !ok {
			return nil, diag.Compilationf("datasource file %q must contain a JSON array, got kind %q", canonical, v.Kind())
		}
		out = append(out, elems...)
	}
	return out, nil
}

// Datasource returns a factory cycling through values in order. With
// cycle false, exhausting values fails generation with a Fatal
// Unspecified diagnostic rather than silently stalling; with cycle true
// the sequence wraps back to the first value.
func Datasource(values []value.Value, cycle bool) func() (ValueGen, error) {
	state := &datasourceState{values: values, cycle: cycle}
	return func() (ValueGen, error) {
		return Leaf(func(*rand.Rand) (value.Value, error) {
			return state.next()
		}), nil
	}
}

type datasourceState struct {
	values []value.Value
	idx    int
	cycle  bool
}

func (s *datasourceState) next() (value.Value, error) {
	if len(s.values) == 0 {
		return value.Value{}, diag.Unspecifiedf("datasource has no values to draw from")
	}
	if s.idx >= len(s.values) {
		if !s.cycle {
			return value.Value{}, diag.Unspecifiedf("datasource exhausted after %d values", len(s.values))
		}
		s.idx = 0
	}
	v := s.values[s.idx]
	s.idx++
	return v, nil
}
