package location

// PositionRegistry converts a byte offset within a registered source back
// into a line/column Position. Adapters (JSON decode errors, datasource
// reads) register source content once and then translate offsets captured
// during parsing into Positions for diagnostics.
type PositionRegistry interface {
	// PositionAt returns the Position at byteOffset within source, or a zero
	// Position if the source is not registered or the offset is out of range.
	PositionAt(source SourceID, byteOffset int) Position
}
