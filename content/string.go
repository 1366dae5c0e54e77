package content

import (
	"regexp"
	"regexp/syntax"
	"time"

	"github.com/halvard-io/synthgen/diag"
	"github.com/halvard-io/synthgen/value"
)

// StringMode selects how a String content node's value is produced.
type StringMode interface {
	stringMode()
}

// Regex draws a string matching Pattern, compiled at construction time so
// a malformed pattern fails fast with a BadRequest rather than at compile
// or sample time.
type Regex struct {
	Pattern string
}

func (Regex) stringMode() {}

// NewRegex validates that pattern compiles and returns a Regex mode.
func NewRegex(pattern string) (Regex, error) {
	if _, err := syntax.Parse(pattern, syntax.Perl); err != nil {
		return Regex{}, diag.BadRequestf("invalid regex pattern %q: %v", pattern, err)
	}
	return Regex{Pattern: pattern}, nil
}

// Faker delegates to a named external faker generator (see gen.Faker),
// e.g. Name "person.first_name" with Args supplying generator-specific
// keyword parameters.
type Faker struct {
	Name string
	Args map[string]string
}

func (Faker) stringMode() {}

// NewFaker validates name is non-empty and returns a Faker mode.
func NewFaker(name string, args map[string]string) (Faker, error) {
	if name == "" {
		return Faker{}, diag.BadRequestf("faker content requires a non-empty generator name")
	}
	return Faker{Name: name, Args: args}, nil
}

// StringCategoricalEntry is one (value, weight) pair; order matters for
// tie-break, hence a slice rather than a map.
type StringCategoricalEntry struct {
	Value  string
	Weight float64
}

// StringCategorical draws from a finite weighted list of strings.
type StringCategorical struct {
	Entries []StringCategoricalEntry
}

func (StringCategorical) stringMode() {}

// NewStringCategorical validates entries is non-empty with positive total
// weight.
func NewStringCategorical(entries []StringCategoricalEntry) (StringCategorical, error) {
	var total float64
	for _, e := range entries {
		total += e.Weight
	}
	if err := validateWeights(len(entries), total); err != nil {
		return StringCategorical{}, err
	}
	return StringCategorical{Entries: entries}, nil
}

// DateTime samples a uniform instant in [Low, High] and formats it with
// Format (a time.Layout-style reference-time template).
type DateTime struct {
	Format    string
	Low, High time.Time
}

func (DateTime) stringMode() {}

// NewDateTime validates Low <= High.
func NewDateTime(format string, low, high time.Time) (DateTime, error) {
	if high.Before(low) {
		return DateTime{}, diag.BadRequestf("date-time content requires low <= high, got low=%s high=%s", low, high)
	}
	return DateTime{Format: format, Low: low, High: high}, nil
}

// UUIDMode draws 128 random bits and formats them in hyphenated canonical
// form.
type UUIDMode struct{}

func (UUIDMode) stringMode() {}

// NewUUIDMode returns a UUIDMode.
func NewUUIDMode() UUIDMode { return UUIDMode{} }

// StringConstant always yields the same string.
type StringConstant struct {
	Value string
}

func (StringConstant) stringMode() {}

// NewStringConstant returns a StringConstant mode.
func NewStringConstant(v string) StringConstant { return StringConstant{Value: v} }

// Truncated clips Inner's generated string to at most Len runes: s[:min(len(s), Len)].
type Truncated struct {
	Len   int
	Inner Content
}

func (Truncated) stringMode() {}

// NewTruncated validates len is non-negative and inner is a String node.
func NewTruncated(length int, inner Content) (Truncated, error) {
	if length < 0 {
		return Truncated{}, diag.BadRequestf("truncated content requires a non-negative length, got %d", length)
	}
	if err := requireStringProducer(inner); err != nil {
		return Truncated{}, err
	}
	return Truncated{Len: length, Inner: inner}, nil
}

// sliceExprPattern matches the only slicing syntax Sliced supports: an
// optional start, a colon, an optional end. Negative indices and strides
// are rejected.
var sliceExprPattern = regexp.MustCompile(`^([0-9]+)?:([0-9]+)?$`)

// Sliced applies a Python-like "a:b" slice expression to Inner's generated
// string; missing bounds default to 0 and len(s).
type Sliced struct {
	Inner Content
	Expr  string
}

func (Sliced) stringMode() {}

// NewSliced validates expr matches the supported "a:b" form and inner is a
// String node.
func NewSliced(inner Content, expr string) (Sliced, error) {
	if !sliceExprPattern.MatchString(expr) {
		return Sliced{}, diag.BadRequestf("sliced expression %q is not of the form ([0-9]+)?:([0-9]+)?", expr)
	}
	if err := requireStringProducer(inner); err != nil {
		return Sliced{}, err
	}
	return Sliced{Inner: inner, Expr: expr}, nil
}

// Serialized serializes Inner's aggregated value through the value→JSON
// projection (value.ToJSON) and yields the resulting JSON text.
type Serialized struct {
	Inner    Content
	Encoding string
}

func (Serialized) stringMode() {}

// NewSerialized validates encoding is a supported scheme ("json" is the
// only one the value projection currently defines).
func NewSerialized(inner Content, encoding string) (Serialized, error) {
	if encoding != "json" {
		return Serialized{}, diag.BadRequestf("serialized content encoding %q is not supported (only \"json\")", encoding)
	}
	return Serialized{Inner: inner, Encoding: encoding}, nil
}

// FormatArg is a named or positional substitution source for Format: a
// nested Content node whose generated (string-producing) value fills one
// "{}" or "{name}" placeholder.
type FormatArg struct {
	Name    string // empty for a positional arg
	Content Content
}

// Format substitutes Template's "{}" (positional) and "{name}" (named)
// placeholders with the generated values of Positional and Named; a
// placeholder with no matching arg fails at compile time.
type Format struct {
	Template   string
	Named      map[string]Content
	Positional []Content
}

func (Format) stringMode() {}

// NewFormat returns a Format mode. Placeholder/argument matching is
// validated by the compiler, which is the component that actually parses
// Template's placeholders (see compile package), not here.
func NewFormat(template string, named map[string]Content, positional []Content) Format {
	return Format{Template: template, Named: named, Positional: positional}
}

func requireStringProducer(c Content) error {
	if _, ok := c.(String); !ok {
		return diag.BadRequestf("expected a string-producing content node, got kind %q", c.Kind())
	}
	return nil
}

// String is the content node producing string values, parameterized by a
// StringMode.
type String struct {
	Mode StringMode
}

// NewString wraps mode as a String content node.
func NewString(mode StringMode) String { return String{Mode: mode} }

func (String) Kind() Kind { return KindString }

// Accepts is mode-aware: the DateTime and UUID modes yield date-time and
// uuid values respectively, not plain strings, so acceptance follows the
// mode rather than the node's nominal kind.
func (s String) Accepts(v value.Value) bool {
	switch s.Mode.(type) {
	case DateTime:
		_, _, ok := v.AsDateTime()
		return ok
	case UUIDMode:
		_, ok := v.AsUUID()
		return ok
	default:
		_, ok := v.AsString()
		return ok
	}
}

func (String) content() {}
