// Package fakername maps the schema-facing faker generator names
// (e.g. "person.first_name") onto github.com/brianvoe/gofakeit/v6
// Faker methods. gofakeit's own lookup table is keyed by its internal
// struct-tag names and is not stable API surface to depend on directly, so
// this package owns a small, explicit name table instead.
package fakername

import (
	"fmt"
	"sort"
	"strings"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/halvard-io/synthgen/internal/ident"
)

// Func generates one string value from a seeded Faker, honoring args for
// generators that take parameters (e.g. "lorem.sentence" reads "words").
type Func func(f *gofakeit.Faker, args map[string]string) (string, error)

var registry = map[string]Func{
	"person.first_name": func(f *gofakeit.Faker, _ map[string]string) (string, error) { return f.FirstName(), nil },
	"person.last_name":  func(f *gofakeit.Faker, _ map[string]string) (string, error) { return f.LastName(), nil },
	"person.name":       func(f *gofakeit.Faker, _ map[string]string) (string, error) { return f.Name(), nil },
	"person.job_title":  func(f *gofakeit.Faker, _ map[string]string) (string, error) { return f.JobTitle(), nil },

	"internet.email":    func(f *gofakeit.Faker, _ map[string]string) (string, error) { return f.Email(), nil },
	"internet.username": func(f *gofakeit.Faker, _ map[string]string) (string, error) { return f.Username(), nil },
	"internet.domain":   func(f *gofakeit.Faker, _ map[string]string) (string, error) { return f.DomainName(), nil },
	"internet.url":      func(f *gofakeit.Faker, _ map[string]string) (string, error) { return f.URL(), nil },
	"internet.ipv4":     func(f *gofakeit.Faker, _ map[string]string) (string, error) { return f.IPv4Address(), nil },

	"phone.number": func(f *gofakeit.Faker, _ map[string]string) (string, error) { return f.Phone(), nil },

	"company.name":   func(f *gofakeit.Faker, _ map[string]string) (string, error) { return f.Company(), nil },
	"company.suffix": func(f *gofakeit.Faker, _ map[string]string) (string, error) { return f.CompanySuffix(), nil },

	"address.city":    func(f *gofakeit.Faker, _ map[string]string) (string, error) { return f.City(), nil },
	"address.state":   func(f *gofakeit.Faker, _ map[string]string) (string, error) { return f.State(), nil },
	"address.street":  func(f *gofakeit.Faker, _ map[string]string) (string, error) { return f.Street(), nil },
	"address.zip":     func(f *gofakeit.Faker, _ map[string]string) (string, error) { return f.Zip(), nil },
	"address.country": func(f *gofakeit.Faker, _ map[string]string) (string, error) { return f.Country(), nil },

	"lorem.word":     func(f *gofakeit.Faker, _ map[string]string) (string, error) { return f.Word(), nil },
	"lorem.sentence": func(f *gofakeit.Faker, args map[string]string) (string, error) { return f.Sentence(wordCount(args)), nil },
	"lorem.paragraph": func(f *gofakeit.Faker, _ map[string]string) (string, error) {
		return f.Paragraph(3, 5, 10, " "), nil
	},

	"color.name": func(f *gofakeit.Faker, _ map[string]string) (string, error) { return f.Color(), nil },

	"identifier.uuid": func(f *gofakeit.Faker, _ map[string]string) (string, error) { return f.UUID(), nil },
}

func wordCount(args map[string]string) int {
	if args == nil {
		return 6
	}
	if _, ok := args["words"]; ok {
		// args values are free-form strings from the schema; a malformed
		// count falls back to the default rather than failing generation.
		n := 0
		for _, r := range args["words"] {
			if r < '0' || r > '9' {
				return 6
			}
			n = n*10 + int(r-'0')
		}
		if n > 0 {
			return n
		}
	}
	return 6
}

// Lookup returns the Func registered for name, or false if name is not a
// recognized faker generator. Each dot-separated segment is normalized to
// lower_snake_case first, so "Person.FirstName" and "person.first-name"
// resolve to the same generator.
func Lookup(name string) (Func, bool) {
	segments := strings.Split(name, ".")
	for i, seg := range segments {
		segments[i] = ident.ToLowerSnake(seg)
	}
	fn, ok := registry[strings.Join(segments, ".")]
	return fn, ok
}

// Names returns every registered generator name, sorted, for diagnostics
// (closest-name suggestions when a schema names an unknown faker).
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ErrUnknown formats the standard "unknown faker generator" message that
// the Faker generator reports when Lookup misses.
func ErrUnknown(name string) error {
	return fmt.Errorf("fakername: unknown faker generator %q", name)
}
