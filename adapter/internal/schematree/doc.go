// Package schematree converts between the generic any-typed tree a codec
// parses (order-preserving *Obj objects, []any lists, json.Number or native Go
// scalars) and the typed namespace/content model.
//
// Both the JSON and YAML codecs deserialize into the same generic shape
// first and delegate here, so the tagged-object grammar — "type"
// discriminators, variant-specific fields, deny-unknown-fields with typo
// suggestions, literal parsing for numbers, date-times, and durations —
// is defined exactly once.
package schematree
