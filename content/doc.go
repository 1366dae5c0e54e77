// Package content implements [Content], the recursive tagged schema tree a
// namespace deserializes into: the type a collection declares, before the
// compiler turns it into a generator graph.
//
// Content is a closed sum type:
// an interface with an unexported marker method, one struct per kind, and
// all construction going through New* functions so a malformed Content
// value (e.g. a Range with low >= high) cannot be built without going
// through invariant checking first.
package content
