// Package source provides a schema source registry for content storage
// and position conversion.
//
// This package is the internal foundation for managing source content and
// computing byte offset / line-column conversions; rendering a diagnostic
// from a position belongs to the caller.
//
// # Responsibilities
//
//   - Store raw source bytes keyed by [location.SourceID]
//   - Precompute line-start byte offsets for efficient position lookup
//   - Convert byte offsets to [location.Position] (PositionAt)
//   - Enforce uniqueness of source identity keys
//
// # Newline and Column Handling
//
//   - \r\n (CRLF), \n (LF), and bare \r (CR) each count as one line break
//   - Columns count runes from line start, not bytes; tabs count as 1 rune
//   - Line and column numbers are 1-based
//
// # Lifecycle and Concurrency
//
// The registry is designed for a "register once, read many" lifecycle: a
// codec registers every schema source it decodes, and diagnostics read
// positions afterwards. Register and the read methods are all safe for
// concurrent use.
//
// # Identity and Uniqueness
//
// Registration with an existing SourceID and identical content is
// idempotent; different content under the same SourceID returns
// [*KeyCollisionError].
//
// # Usage
//
//	reg := source.NewRegistry()
//
//	// During decoding:
//	sourceID := location.MustNewSourceID("schema.json")
//	if err := reg.Register(sourceID, content); err != nil {
//	    // handle collision error
//	}
//
//	// During error reporting:
//	pos := reg.PositionAt(sourceID, byteOffset)
//	if pos.IsKnown() {
//	    // pos.Line, pos.Column are populated
//	}
package source
