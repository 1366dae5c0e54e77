package location

import "fmt"

// Span is a half-open range [Start, End) in a source. The zero value means
// "no location"; check with IsZero.
type Span struct {
	Source SourceID
	Start  Position
	End    Position
}

// Point creates a single-point Span where Start == End.
func Point(source SourceID, line, column int) Span {
	pos := Position{Line: line, Column: column, Byte: -1}
	return Span{Source: source, Start: pos, End: pos}
}

// Range creates a Span from start to end. Panics if end is before start.
func Range(source SourceID, startLine, startCol, endLine, endCol int) Span {
	start := Position{Line: startLine, Column: startCol, Byte: -1}
	end := Position{Line: endLine, Column: endCol, Byte: -1}
	if end.Before(start) {
		panic(fmt.Sprintf("location.Range: end %v before start %v", end, start))
	}
	return Span{Source: source, Start: start, End: end}
}

// IsZero reports whether the span is the zero value.
func (s Span) IsZero() bool {
	return s.Source.IsZero() && s.Start.IsZero() && s.End.IsZero()
}

// IsPoint reports whether Start == End.
func (s Span) IsPoint() bool {
	return s.Start == s.End
}

// String renders "source:line:column" for the start of the span.
func (s Span) String() string {
	if s.IsZero() {
		return "<no location>"
	}
	return fmt.Sprintf("%s:%s", s.Source, s.Start)
}
