// Package compile turns a namespace of content trees into an executable
// generator graph.
//
// The compiler walks each collection in insertion order, mirroring its
// position in an address-valued scope, and emits a factory per node: the
// factory builds one single-use generator per record while persistent
// state (incrementing counters, uniqueness backings, series clocks,
// shared-handle queues) lives in the enclosing closure. Every compiled
// node is registered in a shared-handle registry keyed by its address, so
// a later SameAs node joins the referent's value sequence as an extra
// consumer; a reference to an address not yet registered — a forward or
// dangling reference — fails with a Compilation issue carrying the
// closest registered address as a hint.
package compile
