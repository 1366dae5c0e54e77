// Package synthgen is a deterministic synthetic data engine: given a
// declarative schema describing a namespace of collections, it produces a
// seeded, reproducible stream of records that satisfy the schema.
//
// # Architecture Overview
//
// The module is organized into tiers with strict dependency ordering:
//
//	Foundation tier (no internal dependencies):
//	  - value: Runtime values, numbers, tokens, and token aggregation
//	  - diag: Structured diagnostics with a closed kind taxonomy
//	  - location: Source positions for codec diagnostics
//	  - address: Path addressing into content trees (Address, FieldRef)
//
//	Core library tier:
//	  - content: The recursive tagged schema node type, inference, merge
//	  - namespace: The collection map and its mutation surface
//	  - gen: The generator algebra — stepped execution, combinators, leaves
//	  - compile: Content tree → generator graph, SameAs resolution
//	  - sample: The round-driven sampling driver
//
//	Adapter tier:
//	  - adapter/json: JSON schema codec (JSONC-tolerant)
//	  - adapter/yaml: YAML schema codec
//
// # Entry Points
//
// Decoding and sampling a schema:
//
//	import (
//	    schemajson "github.com/halvard-io/synthgen/adapter/json"
//	    "github.com/halvard-io/synthgen/location"
//	    "github.com/halvard-io/synthgen/sample"
//	)
//
//	ns, err := schemajson.New().Decode(ctx, location.MustNewSourceID("schema.json"), data)
//	if err != nil {
//	    // malformed schema
//	}
//	result, err := sample.New().Namespace(ctx, ns, sample.Request{Count: 100, Seed: 42})
//
// Learning a schema from example records:
//
//	import (
//	    "github.com/halvard-io/synthgen/content"
//	    "github.com/halvard-io/synthgen/namespace"
//	)
//
//	ns := namespace.New()
//	for _, example := range examples {
//	    if err := ns.TryMerge(content.OptionalMergeStrategy{}, "users", example); err != nil {
//	        // irreconcilable example
//	    }
//	}
//
// A seed plus the schema fully determines the output: two runs with equal
// inputs produce byte-identical records.
package synthgen
