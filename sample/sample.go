package sample

import (
	"context"
	"log/slog"
	"math/rand"

	"github.com/halvard-io/synthgen/compile"
	"github.com/halvard-io/synthgen/diag"
	"github.com/halvard-io/synthgen/gen"
	"github.com/halvard-io/synthgen/internal/trace"
	"github.com/halvard-io/synthgen/namespace"
	"github.com/halvard-io/synthgen/value"
)

// Request selects what to sample: a whole namespace or one collection,
// how many records the target needs, and the seed that (together with the
// schema) fully determines the output.
type Request struct {
	// Collection optionally names one collection; when empty, every
	// non-hidden collection is sampled to Count records.
	Collection string
	// Count is the target number of records per sampled collection.
	Count int
	// Seed feeds the single deterministic RNG threaded through every
	// generator step of this run.
	Seed int64
}

// Result holds the sampled records per collection, in collection compile
// order, plus any warnings the run accumulated (livelock break,
// uniqueness exhaustion).
type Result struct {
	names    []string
	single   bool
	records  map[string][]value.Value
	warnings diag.Result
}

// Collections returns the sampled collection names in compile order. For
// a single-collection request it has exactly one entry.
func (r *Result) Collections() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Records returns the sampled records for name, in generation order.
func (r *Result) Records(name string) []value.Value {
	return r.records[name]
}

// Warnings returns diagnostics the run survived.
func (r *Result) Warnings() diag.Result { return r.warnings }

// Value assembles the result as a single value: an array of records for a
// single-collection request, otherwise an object mapping each collection
// name to its array.
func (r *Result) Value() value.Value {
	if r.single {
		return value.Array(r.records[r.names[0]])
	}
	obj := value.NewObject()
	for _, name := range r.names {
		obj.Set(name, value.Array(r.records[name]))
	}
	return value.ObjectValue(obj)
}

// Sampler drives a compiled graph in rounds until the requested number of
// records exists.
type Sampler struct {
	logger *slog.Logger
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithLogger attaches a structured logger; the run's start and end and any
// stall warnings are logged through it.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sampler) { s.logger = logger }
}

// New returns a Sampler.
func New(opts ...Option) *Sampler {
	s := &Sampler{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Namespace compiles ns and samples it per req. This is the whole-engine
// entry point: schema in, records out.
func (s *Sampler) Namespace(ctx context.Context, ns *namespace.Namespace, req Request) (*Result, error) {
	graph, err := compile.New(compile.WithLogger(s.logger)).Namespace(ctx, ns)
	if err != nil {
		return nil, err
	}
	return s.Graph(ctx, graph, req)
}

// Graph samples an already-compiled graph per req.
//
// Each round completes one namespace-level aggregation and appends every
// collection's new records. The run stops when the target collection (or,
// with no target, every non-hidden collection) holds at least req.Count
// records, or when a round contributes nothing new — the livelock break —
// or when the graph's uniqueness state is exhausted; the latter two leave
// a warning in the result rather than failing the run.
func (s *Sampler) Graph(ctx context.Context, graph *compile.Graph, req Request) (*Result, error) {
	op := trace.Begin(ctx, s.logger, "synthgen.sample.run",
		slog.String("collection", req.Collection),
		slog.Int("count", req.Count),
		slog.Int64("seed", req.Seed))

	targets, err := s.targets(graph, req)
	if err != nil {
		op.End(err)
		return nil, err
	}

	rng := rand.New(rand.NewSource(req.Seed))
	collector := diag.NewCollectorUnlimited()
	records := make(map[string][]value.Value, len(targets))

	for !done(records, targets, req.Count) {
		grew, err := s.round(ctx, graph, rng, targets, records)
		if err != nil {
			if issue, ok := err.(diag.Issue); ok && issue.Kind() == diag.Conflict {
				collector.Collect(warnStalled(issue))
				trace.Warn(ctx, s.logger, "sampling stalled: uniqueness exhausted",
					slog.String("detail", issue.SafeMessage()))
				break
			}
			op.End(err)
			return nil, err
		}
		if !grew {
			collector.Collect(warnStalled(diag.Unspecifiedf("a sampling round produced no new records")))
			trace.Warn(ctx, s.logger, "sampling stalled: round produced no new records")
			break
		}
	}

	for name := range records {
		if len(records[name]) > req.Count {
			records[name] = records[name][:req.Count]
		}
	}

	result := &Result{
		names:    targets,
		single:   req.Collection != "",
		records:  records,
		warnings: collector.Result(),
	}
	op.End(nil, slog.Int("collections", len(targets)))
	return result, nil
}

// targets resolves which collections this run reports.
func (s *Sampler) targets(graph *compile.Graph, req Request) ([]string, error) {
	all := graph.Collections()
	if req.Collection == "" {
		visible := make([]string, 0, len(all))
		for _, name := range all {
			if !graph.IsHidden(name) {
				visible = append(visible, name)
			}
		}
		return visible, nil
	}
	for _, name := range all {
		if name == req.Collection {
			return []string{name}, nil
		}
	}
	return nil, diag.NotFoundf("no collection named %q in the compiled graph", req.Collection)
}

// round drives one namespace-level aggregation and appends each target
// collection's new records, reporting whether anything grew.
func (s *Sampler) round(ctx context.Context, graph *compile.Graph, rng *rand.Rand, targets []string, records map[string][]value.Value) (bool, error) {
	root, err := graph.NewRound()
	if err != nil {
		return false, err
	}
	v, err := gen.Aggregate(root, rng)
	if err != nil {
		return false, err
	}
	obj, ok := v.AsObject()
	if !ok {
		return false, diag.Compilationf("a sampling round aggregated to kind %q, not an object of collections", v.Kind())
	}
	grew := false
	for _, name := range targets {
		cv, present := obj.Get(name)
		if !present {
			continue
		}
		items, isArray := cv.AsArray()
		if !isArray {
			// A collection whose root is not an array contributes its one
			// value per round.
			items = []value.Value{cv}
		}
		if len(items) > 0 {
			records[name] = append(records[name], items...)
			grew = true
		}
	}
	return grew, nil
}

func done(records map[string][]value.Value, targets []string, count int) bool {
	for _, name := range targets {
		if len(records[name]) < count {
			return false
		}
	}
	return true
}

func warnStalled(cause diag.Issue) diag.Issue {
	return diag.New(diag.Unspecified, diag.Warning, diag.Release,
		"sampling stopped before reaching its target count").WithCause(cause)
}
