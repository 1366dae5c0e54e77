package compile

import (
	"context"
	"log/slog"
	"math/rand"
	"slices"
	"strconv"
	"strings"

	"github.com/halvard-io/synthgen/address"
	"github.com/halvard-io/synthgen/content"
	"github.com/halvard-io/synthgen/diag"
	"github.com/halvard-io/synthgen/gen"
	"github.com/halvard-io/synthgen/internal/ident"
	"github.com/halvard-io/synthgen/internal/trace"
	"github.com/halvard-io/synthgen/namespace"
	"github.com/halvard-io/synthgen/value"
)

// factory builds one fresh, single-use generator per record for the node
// it was compiled from. Persistent per-node state (incrementing counters,
// uniqueness backings, shared-handle queues, series clocks) lives in the
// closure, not in the returned generator, so state survives across uses
// and across sampling rounds.
type factory func() (gen.ValueGen, error)

// Graph is the compiled, executable mirror of a namespace: a factory for
// the root object generator whose aggregated value is an object mapping
// each collection name to one round's array of records. Hidden collections
// are driven but reported by IsHidden so the sampler can omit
// them from output.
type Graph struct {
	newRoot     factory
	collections []string
	hidden      map[string]bool
}

// NewRound returns a fresh single-round generator over the whole
// namespace. Round-persistent state is shared between the generators
// NewRound hands out; two Graphs compiled from the same namespace are
// fully independent.
func (g *Graph) NewRound() (gen.ValueGen, error) { return g.newRoot() }

// Collections returns collection names in compile order.
func (g *Graph) Collections() []string {
	out := make([]string, len(g.collections))
	copy(out, g.collections)
	return out
}

// IsHidden reports whether the named collection is generated but omitted
// from sampler output.
func (g *Graph) IsHidden(name string) bool { return g.hidden[name] }

// Compiler walks content trees and emits generator factories, maintaining
// the scope address that mirrors the current path and the registry of
// shared handles that realizes SameAs back-references.
type Compiler struct {
	logger   *slog.Logger
	registry map[string]*handle
	order    []string // registry insertion order, for suggestion text
}

type handle struct {
	shared *gen.Shared
	addr   address.Address
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger attaches a structured logger; compile operations are traced
// at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) { c.logger = logger }
}

// New returns a Compiler with an empty shared-handle registry. A Compiler
// is single-use: Namespace consumes it.
func New(opts ...Option) *Compiler {
	c := &Compiler{registry: make(map[string]*handle)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Namespace compiles every collection of ns, in insertion order, into one
// Graph. Every SameAs reference must target a node compiled earlier in
// that order; a miss is a Compilation error carrying the closest
// registered address as a hint.
func (c *Compiler) Namespace(ctx context.Context, ns *namespace.Namespace) (*Graph, error) {
	op := trace.Begin(ctx, c.logger, "synthgen.compile.namespace",
		slog.Int("collections", ns.Len()))

	names := ns.Names()
	fields := make([]gen.ObjectField, 0, len(names))
	hidden := make(map[string]bool)
	for _, name := range names {
		root, err := ns.Get(name)
		if err != nil {
			op.End(err)
			return nil, err
		}
		if _, isHidden := root.(content.Hidden); isHidden {
			hidden[name] = true
		}
		f, err := c.build(ctx, address.New(name), root)
		if err != nil {
			op.End(err)
			return nil, err
		}
		fields = append(fields, gen.ObjectField{Name: name, Build: f})
	}

	graph := &Graph{
		newRoot: func() (gen.ValueGen, error) {
			return gen.Chain(fields), nil
		},
		collections: names,
		hidden:      hidden,
	}
	op.End(nil)
	return graph, nil
}

// build compiles one content node at the given scope address and registers
// the result in the shared-handle registry, so any later SameAs can join
// the node's value sequence.
func (c *Compiler) build(ctx context.Context, at address.Address, node content.Content) (factory, error) {
	op := trace.Begin(ctx, c.logger, "synthgen.compile.build",
		slog.String("at", at.String()),
		slog.String("kind", string(node.Kind())))
	f, err := c.buildNode(ctx, at, node)
	op.End(err)
	if err != nil {
		if issue, ok := err.(diag.Issue); ok && issue.Path() == "" {
			return nil, issue.WithPath(at.String())
		}
		return nil, err
	}
	return c.register(at, f), nil
}

// register wraps f in a Shared handle keyed by at, with the node's own
// in-place use as the handle's first consumer. Downstream SameAs nodes
// join as additional consumers and observe the same causal sequence.
func (c *Compiler) register(at address.Address, f factory) factory {
	shared := gen.NewShared(f)
	primary := shared.Register()
	c.registry[at.Key()] = &handle{shared: shared, addr: at}
	c.order = append(c.order, at.String())
	return func() (gen.ValueGen, error) {
		return shared.Consumer(primary), nil
	}
}

func (c *Compiler) buildNode(ctx context.Context, at address.Address, node content.Content) (factory, error) {
	switch n := node.(type) {
	case content.Null:
		return perUse(func() gen.ValueGen { return gen.Const(value.Null()) }), nil
	case content.Bool:
		return c.buildBool(n)
	case content.Number:
		return c.buildNumber(n)
	case content.String:
		return c.buildString(ctx, at, n)
	case content.Array:
		return c.buildArray(ctx, at, n)
	case content.Object:
		return c.buildObject(ctx, at, n)
	case content.OneOf:
		return c.buildOneOf(ctx, at, n)
	case content.Unique:
		return c.buildUnique(ctx, at, n)
	case content.Hidden:
		// At a non-field position a Hidden node compiles to its inner
		// node; omission is the enclosing object's (or the sampler's)
		// concern, since only they know what "output" means here.
		return c.buildNode(ctx, at, n.Inner)
	case content.SameAs:
		return c.buildSameAs(n)
	case content.Series:
		return c.buildSeries(ctx, at, n)
	case content.Datasource:
		values, err := gen.LoadDatasource(n.Path())
		if err != nil {
			return nil, err
		}
		return gen.Datasource(values, n.Cycle), nil
	default:
		return nil, diag.Compilationf("unknown content kind %q", node.Kind())
	}
}

func (c *Compiler) buildBool(n content.Bool) (factory, error) {
	switch mode := n.Mode.(type) {
	case content.Frequency:
		return perUse(func() gen.ValueGen { return gen.Bernoulli(mode.P) }), nil
	case content.BoolConstant:
		return perUse(func() gen.ValueGen { return gen.Const(value.Bool(mode.Value)) }), nil
	case content.BoolCategorical:
		// A map's iteration order would break determinism; candidates are
		// laid out false-then-true.
		var entries []gen.Weighted[bool]
		for _, candidate := range []bool{false, true} {
			if w, ok := mode.Weights[candidate]; ok && w > 0 {
				entries = append(entries, gen.Weighted[bool]{Value: candidate, Weight: w})
			}
		}
		if len(entries) == 0 {
			return nil, diag.BadRequestf("bool categorical has no positive-weight candidates")
		}
		return perUse(func() gen.ValueGen { return gen.CategoricalBool(entries) }), nil
	default:
		return nil, diag.Compilationf("unknown bool mode %T", n.Mode)
	}
}

func (c *Compiler) buildNumber(n content.Number) (factory, error) {
	switch mode := n.Mode.(type) {
	case content.Range:
		return perUse(func() gen.ValueGen {
			return gen.NumberRange(n.Variant, mode.Low, mode.High, mode.Step)
		}), nil
	case content.NumberConstant:
		return perUse(func() gen.ValueGen { return gen.Const(value.Num(mode.Value)) }), nil
	case content.NumberCategorical:
		entries := make([]gen.Weighted[value.Number], len(mode.Entries))
		for i, e := range mode.Entries {
			entries[i] = gen.Weighted[value.Number]{Value: e.Value, Weight: e.Weight}
		}
		return perUse(func() gen.ValueGen { return gen.CategoricalNumber(entries) }), nil
	case content.Incrementing:
		return gen.NewIncrementing(mode.Start, mode.Step), nil
	default:
		return nil, diag.Compilationf("unknown number mode %T", n.Mode)
	}
}

func (c *Compiler) buildString(ctx context.Context, at address.Address, n content.String) (factory, error) {
	switch mode := n.Mode.(type) {
	case content.Regex:
		return perUse(func() gen.ValueGen { return gen.Regex(mode.Pattern) }), nil
	case content.Faker:
		return perUse(func() gen.ValueGen { return gen.Faker(mode.Name, mode.Args) }), nil
	case content.StringCategorical:
		entries := make([]gen.Weighted[string], len(mode.Entries))
		for i, e := range mode.Entries {
			entries[i] = gen.Weighted[string]{Value: e.Value, Weight: e.Weight}
		}
		return perUse(func() gen.ValueGen { return gen.CategoricalString(entries) }), nil
	case content.DateTime:
		return perUse(func() gen.ValueGen {
			return gen.DateTimeRange(mode.Format, mode.Low, mode.High)
		}), nil
	case content.UUIDMode:
		return perUse(gen.UUID), nil
	case content.StringConstant:
		return perUse(func() gen.ValueGen { return gen.Const(value.Str(mode.Value)) }), nil
	case content.Truncated:
		inner, err := c.build(ctx, at.At("inner"), mode.Inner)
		if err != nil {
			return nil, err
		}
		return func() (gen.ValueGen, error) {
			g, err := inner()
			if err != nil {
				return nil, err
			}
			return gen.Truncated(g, mode.Len), nil
		}, nil
	case content.Sliced:
		lo, hi, hasLo, hasHi, err := parseSliceExpr(mode.Expr)
		if err != nil {
			return nil, err
		}
		inner, err := c.build(ctx, at.At("inner"), mode.Inner)
		if err != nil {
			return nil, err
		}
		return func() (gen.ValueGen, error) {
			g, err := inner()
			if err != nil {
				return nil, err
			}
			return gen.Sliced(g, lo, hi, hasLo, hasHi), nil
		}, nil
	case content.Serialized:
		inner, err := c.build(ctx, at.At("inner"), mode.Inner)
		if err != nil {
			return nil, err
		}
		return func() (gen.ValueGen, error) {
			g, err := inner()
			if err != nil {
				return nil, err
			}
			return gen.Serialized(g), nil
		}, nil
	case content.Format:
		args := make([]gen.FormatArg, 0, len(mode.Positional)+len(mode.Named))
		for i, p := range mode.Positional {
			f, err := c.build(ctx, at.At(strconv.Itoa(i)), p)
			if err != nil {
				return nil, err
			}
			args = append(args, gen.FormatArg{Build: f})
		}
		// Named args are compiled in sorted-name order so the registry's
		// compile order is stable across runs.
		for _, name := range sortedNames(mode.Named) {
			f, err := c.build(ctx, at.At(name), mode.Named[name])
			if err != nil {
				return nil, err
			}
			args = append(args, gen.FormatArg{Name: name, Build: f})
		}
		if err := checkFormatTemplate(mode.Template, args); err != nil {
			return nil, err
		}
		return perUse(func() gen.ValueGen { return gen.Format(mode.Template, args) }), nil
	default:
		return nil, diag.Compilationf("unknown string mode %T", n.Mode)
	}
}

func (c *Compiler) buildArray(ctx context.Context, at address.Address, n content.Array) (factory, error) {
	length, err := c.build(ctx, at.At(address.ArrayLength), n.Length)
	if err != nil {
		return nil, err
	}
	elem, err := c.build(ctx, at.At(address.ArrayContent), n.Elem)
	if err != nil {
		return nil, err
	}
	return func() (gen.ValueGen, error) {
		lengthGen, err := length()
		if err != nil {
			return nil, err
		}
		return gen.AndThenTry(lengthGen, func(v value.Value) (gen.ValueGen, error) {
			size, err := gen.ToSize(v)
			if err != nil {
				return nil, err
			}
			return gen.Seq(size, func(int) (gen.ValueGen, error) { return elem() }), nil
		}), nil
	}, nil
}

func (c *Compiler) buildObject(ctx context.Context, at address.Address, n content.Object) (factory, error) {
	fields := make([]gen.ObjectField, 0, n.Len())
	for _, name := range n.Names() {
		fc, _ := n.Field(name)
		inner := fc.Content
		hidden := false
		if h, isHidden := inner.(content.Hidden); isHidden {
			hidden = true
			inner = h.Inner
		}
		f, err := c.build(ctx, at.At(name), inner)
		if err != nil {
			return nil, err
		}
		field := gen.ObjectField{Name: name, Build: f, Hidden: hidden}
		if fc.Optional {
			field.Optional = true
			field.P = 0.5
		}
		fields = append(fields, field)
	}
	return func() (gen.ValueGen, error) {
		return gen.Chain(fields), nil
	}, nil
}

func (c *Compiler) buildOneOf(ctx context.Context, at address.Address, n content.OneOf) (factory, error) {
	if err := n.Validate(); err != nil {
		return nil, err
	}
	variants := make([]gen.Variant, len(n.Variants))
	for i, v := range n.Variants {
		f, err := c.build(ctx, at.At(strconv.Itoa(i)), v.Content)
		if err != nil {
			return nil, err
		}
		variants[i] = gen.Variant{Weight: v.Weight, Build: f}
	}
	total := gen.TotalWeight(variants, func(v gen.Variant) float64 { return v.Weight })
	// The variant draw happens on first use, not at compile, so each
	// record can land on a different alternative.
	return perUse(func() gen.ValueGen {
		return gen.Leaf(func(rng *rand.Rand) (value.Value, error) {
			g := gen.OneOf(variants, rng.Float64()*total)
			return gen.Aggregate(g, rng)
		})
	}), nil
}

func (c *Compiler) buildUnique(ctx context.Context, at address.Address, n content.Unique) (factory, error) {
	inner, err := c.build(ctx, at, n.Inner)
	if err != nil {
		return nil, err
	}
	var backing gen.UniqueBacking
	switch n.Algorithm {
	case content.UniqueExactSet:
		backing = gen.NewExactSetBacking()
	case content.UniqueBloom:
		backing, err = gen.NewBloomBacking(bloomMaxElements, bloomFalsePositiveRate)
		if err != nil {
			return nil, err
		}
	default:
		return nil, diag.BadRequestf("unknown unique algorithm %q", n.Algorithm)
	}
	return perUse(func() gen.ValueGen { return gen.Unique(inner, backing) }), nil
}

// Bloom sizing: bounded memory at a duplicate-skip rate low enough that a
// schema would need millions of records before a silent skip is likely.
const (
	bloomMaxElements       = 1 << 22
	bloomFalsePositiveRate = 1e-6
)

func (c *Compiler) buildSameAs(n content.SameAs) (factory, error) {
	key := n.Ref.Address().Key()
	h, ok := c.registry[key]
	if !ok {
		issue := diag.Compilationf("reference target %q is not a previously compiled node", n.Ref)
		if hint := ident.Closest(n.Ref.String(), c.order); hint != "" {
			issue = issue.WithHint(hint)
		}
		return nil, issue
	}
	consumer := h.shared.Register()
	return func() (gen.ValueGen, error) {
		return h.shared.Consumer(consumer), nil
	}, nil
}

func (c *Compiler) buildSeries(ctx context.Context, at address.Address, n content.Series) (factory, error) {
	switch variant := n.Variant.(type) {
	case content.SeriesIncrementing:
		return gen.NewSeriesIncrementing(n.Format, variant.Start, variant.Duration), nil
	case content.SeriesPoisson:
		return gen.NewSeriesPoisson(n.Format, variant.Start, variant.Rate), nil
	case content.SeriesCyclical:
		return gen.NewSeriesCyclical(n.Format, variant.Start, variant.Period, variant.MinRate, variant.MaxRate), nil
	case content.SeriesZip:
		children := make([]func() (gen.ValueGen, error), len(variant.Children))
		for i, child := range variant.Children {
			series, ok := child.(content.Series)
			if !ok {
				return nil, diag.Compilationf("zip series child %d is not a series node", i)
			}
			f, err := c.buildSeries(ctx, at.At(strconv.Itoa(i)), series)
			if err != nil {
				return nil, err
			}
			children[i] = f
		}
		return gen.NewSeriesZip(children), nil
	default:
		return nil, diag.Compilationf("unknown series variant %T", n.Variant)
	}
}

// perUse lifts a stateless constructor into a factory.
func perUse(build func() gen.ValueGen) factory {
	return func() (gen.ValueGen, error) { return build(), nil }
}

// parseSliceExpr splits an already-validated "a:b" expression into its
// optional bounds.
func parseSliceExpr(expr string) (lo, hi int, hasLo, hasHi bool, err error) {
	loStr, hiStr, found := strings.Cut(expr, ":")
	if !found {
		return 0, 0, false, false, diag.BadRequestf("sliced expression %q is missing its colon", expr)
	}
	if loStr != "" {
		lo, err = strconv.Atoi(loStr)
		if err != nil {
			return 0, 0, false, false, diag.BadRequestf("sliced expression %q has a malformed start index", expr)
		}
		hasLo = true
	}
	if hiStr != "" {
		hi, err = strconv.Atoi(hiStr)
		if err != nil {
			return 0, 0, false, false, diag.BadRequestf("sliced expression %q has a malformed end index", expr)
		}
		hasHi = true
	}
	return lo, hi, hasLo, hasHi, nil
}

// checkFormatTemplate verifies every placeholder in template has a
// matching argument, so a missing key fails at compile rather than
// mid-sample.
func checkFormatTemplate(template string, args []gen.FormatArg) error {
	named := make(map[string]bool)
	positional := 0
	for _, a := range args {
		if a.Name == "" {
			positional++
		} else {
			named[a.Name] = true
		}
	}
	used := 0
	for i := 0; i < len(template); {
		if template[i] != '{' {
			i++
			continue
		}
		end := -1
		for j := i + 1; j < len(template); j++ {
			if template[j] == '}' {
				end = j
				break
			}
		}
		if end < 0 {
			return diag.BadRequestf("format template %q has an unterminated placeholder", template)
		}
		name := template[i+1 : end]
		if name == "" {
			used++
			if used > positional {
				return diag.BadRequestf("format template %q has more positional placeholders than arguments", template)
			}
		} else if !named[name] {
			return diag.BadRequestf("format template %q references unknown argument %q", template, name)
		}
		i = end + 1
	}
	return nil
}

func sortedNames(m map[string]content.Content) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
