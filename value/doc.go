// Package value defines the runtime value model produced by the generator
// algebra: [Value], a tagged union of null, bool, number, string, date-time,
// UUID, array, and object; [Number], a width-and-signedness tagged numeric
// variant; and [Token], the flat emission unit a [Kind]-tagged generator
// writes to before aggregation reassembles it into a Value.
//
// Every variant here is closed: construction goes through the New*
// constructors, fields are unexported, and Kind() identifies which variant
// a Value holds. Sum types over open interfaces, so that adding a new
// Value kind is a deliberate, whole-package change rather than an
// accidental one.
package value
