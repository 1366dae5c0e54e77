// Package location tracks where a piece of schema or content came from, for
// error messages and for provenance of values pulled from a filesystem
// datasource.
//
// Position and Span describe a point or range within a source's bytes.
// SourceID names the source itself — a schema file, an inline fixture, or a
// datasource file — without embedding the bytes. Registry bridges the two:
// given a SourceID and a byte offset, it recovers a line/column Position.
package location
