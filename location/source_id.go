package location

import "errors"

// ErrEmptySourceID is returned when a synthetic source ID is empty.
var ErrEmptySourceID = errors.New("location: source ID cannot be empty")

// SourceID identifies a source uniquely within a run: a schema file, an
// inline fixture, or a datasource file consumed by a Datasource generator.
//
// SourceID is a value type with an unexported field and is safe as a map key.
type SourceID struct {
	name string
}

// NewSourceID creates a SourceID from a path or a synthetic identifier
// (e.g. "inline:fixture", "json:data/users.json#3").
func NewSourceID(identifier string) (SourceID, error) {
	if identifier == "" {
		return SourceID{}, ErrEmptySourceID
	}
	return SourceID{name: identifier}, nil
}

// MustNewSourceID is like NewSourceID but panics on error. Use only with
// known-good literals.
func MustNewSourceID(identifier string) SourceID {
	id, err := NewSourceID(identifier)
	if err != nil {
		panic("location.MustNewSourceID: " + err.Error())
	}
	return id
}

// String returns the source identifier.
func (s SourceID) String() string {
	return s.name
}

// IsZero reports whether this is the zero-value (invalid) SourceID.
func (s SourceID) IsZero() bool {
	return s.name == ""
}
