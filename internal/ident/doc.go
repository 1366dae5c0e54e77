// Package ident validates and normalizes the identifiers that name
// collections, object fields, and faker generators.
//
// # Internal Package
//
// Three concerns live here:
//
//   - ValidName: the closed character set a collection or field name may
//     use (letters, digits, hyphen, underscore; non-empty).
//   - ToLowerSnake: rune-aware tokenization to lower_snake_case, so the
//     faker registry accepts spelling variants of the same generator name.
//   - Closest: an edit-distance suggestion over normalized names, feeding
//     the "did you mean" hints attached to NotFound diagnostics.
package ident
