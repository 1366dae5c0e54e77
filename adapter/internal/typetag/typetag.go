// Package typetag validates the "type" discriminator carried by every
// node of the on-disk schema form.
//
// Discriminator values are the closed set of content kind labels in
// lower_snake_case. This package owns only the tag-level check — shape
// validation of the variant-specific fields belongs to the tree builder —
// so both the JSON and YAML codecs share one source of truth for what a
// legal tag looks like and which suggestion a typo earns.
package typetag

import (
	"github.com/halvard-io/synthgen/content"
	"github.com/halvard-io/synthgen/internal/ident"
)

// Field is the discriminator key every schema node must carry.
const Field = "type"

// kinds is the closed set of legal discriminator values.
var kinds = map[string]content.Kind{
	string(content.KindNull):       content.KindNull,
	string(content.KindBool):       content.KindBool,
	string(content.KindNumber):     content.KindNumber,
	string(content.KindString):     content.KindString,
	string(content.KindArray):      content.KindArray,
	string(content.KindObject):     content.KindObject,
	string(content.KindOneOf):      content.KindOneOf,
	string(content.KindUnique):     content.KindUnique,
	string(content.KindHidden):     content.KindHidden,
	string(content.KindSameAs):     content.KindSameAs,
	string(content.KindSeries):     content.KindSeries,
	string(content.KindDatasource): content.KindDatasource,
}

// Error is a tag validation failure. Tag holds the offending value and
// Hint the closest legal kind, when one is near enough to suggest.
type Error struct {
	Tag  string
	Hint string
}

func (e *Error) Error() string {
	if e.Tag == "" {
		return "schema node is missing its \"type\" discriminator"
	}
	if e.Hint != "" {
		return "unknown content kind " + quote(e.Tag) + " (did you mean " + quote(e.Hint) + "?)"
	}
	return "unknown content kind " + quote(e.Tag)
}

// Validate resolves tag to a content kind, or returns *Error carrying the
// closest legal kind as a hint.
func Validate(tag string) (content.Kind, error) {
	if tag == "" {
		return "", &Error{}
	}
	if kind, ok := kinds[tag]; ok {
		return kind, nil
	}
	names := make([]string, 0, len(kinds))
	for name := range kinds {
		names = append(names, name)
	}
	return "", &Error{Tag: tag, Hint: ident.Closest(tag, names)}
}

func quote(s string) string { return `"` + s + `"` }
