// Package source stores registered source content and translates byte
// offsets captured during codec decoding into line/column positions for
// diagnostics.
package source

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"
	"sync"
	"unicode/utf8"

	"github.com/halvard-io/synthgen/location"
)

// sourceEntry holds the content and precomputed line index for a source.
type sourceEntry struct {
	content []byte
	// lineOffsets[i] is the byte offset of the start of line i+1.
	lineOffsets []int
}

// Registry stores source content and implements [location.PositionRegistry].
//
// Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[location.SourceID]*sourceEntry
}

// KeyCollisionError indicates that a registration was attempted with a
// SourceID that already exists but with different content.
type KeyCollisionError struct {
	SourceID location.SourceID
}

func (e *KeyCollisionError) Error() string {
	return fmt.Sprintf("source key collision: different content registered for %q", e.SourceID.String())
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[location.SourceID]*sourceEntry)}
}

// Register stores content under sourceID.
//
// The content is defensively cloned. Re-registering the same sourceID with
// identical content is a no-op; registering different content under an
// existing sourceID returns *KeyCollisionError.
func (r *Registry) Register(sourceID location.SourceID, content []byte) error {
	cloned := slices.Clone(content)
	lineOffsets := computeLineOffsets(cloned)

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.entries[sourceID]; ok {
		if bytes.Equal(existing.content, cloned) {
			return nil
		}
		return &KeyCollisionError{SourceID: sourceID}
	}

	r.entries[sourceID] = &sourceEntry{content: cloned, lineOffsets: lineOffsets}
	return nil
}

// ContentBySource returns a copy of the content registered for sourceID.
func (r *Registry) ContentBySource(sourceID location.SourceID) ([]byte, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[sourceID]
	if !ok {
		return nil, false
	}
	return slices.Clone(entry.content), true
}

// Content returns the content for span.Source. It implements the content
// lookup side of diagnostic rendering.
func (r *Registry) Content(span location.Span) ([]byte, bool) {
	return r.ContentBySource(span.Source)
}

// PositionAt converts a byte offset within source into a Position.
//
// Returns a zero Position if source is not registered or byteOffset is out
// of range. byteOffset == len(content) is valid and yields an EOF position.
func (r *Registry) PositionAt(source location.SourceID, byteOffset int) location.Position {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[source]
	if !ok {
		return location.UnknownPosition()
	}
	if byteOffset < 0 || byteOffset > len(entry.content) {
		return location.UnknownPosition()
	}

	line := findLine(entry.lineOffsets, byteOffset)
	lineStart := entry.lineOffsets[line-1]
	column := runeColumn(entry.content, lineStart, byteOffset)

	return location.Position{Line: line, Column: column, Byte: byteOffset}
}

// Keys returns all registered source identifiers, sorted by String().
func (r *Registry) Keys() []location.SourceID {
	r.mu.RLock()
	keys := make([]location.SourceID, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	r.mu.RUnlock()

	slices.SortFunc(keys, func(a, b location.SourceID) int {
		return cmp.Compare(a.String(), b.String())
	})
	return keys
}

// Has reports whether sourceID is registered.
func (r *Registry) Has(sourceID location.SourceID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[sourceID]
	return ok
}

// Len returns the number of registered sources.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Clear removes all registered sources.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[location.SourceID]*sourceEntry)
}

// computeLineOffsets precomputes the byte offset of each line start.
// lineOffsets[0] is always 0. \r\n is treated as a single line break.
func computeLineOffsets(content []byte) []int {
	offsets := []int{0}
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '\n':
			offsets = append(offsets, i+1)
		case '\r':
			if i+1 < len(content) && content[i+1] == '\n' {
				offsets = append(offsets, i+2)
				i++
			} else {
				offsets = append(offsets, i+1)
			}
		}
	}
	return offsets
}

// findLine returns the 1-based line number containing byteOffset.
func findLine(lineOffsets []int, byteOffset int) int {
	lo, hi := 0, len(lineOffsets)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if lineOffsets[mid] <= byteOffset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1
}

// runeColumn returns the 1-based column at byteOffset given the byte offset
// of the start of its line. Diagnostic positions are not a hot path, so a
// linear rune scan per lookup is preferred over maintaining a rune index.
func runeColumn(content []byte, lineStart, byteOffset int) int {
	column := 1
	for i := lineStart; i < byteOffset; {
		_, size := utf8.DecodeRune(content[i:])
		i += size
		column++
	}
	return column
}
