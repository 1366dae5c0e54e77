// Package address implements [Address], an ordered path of string
// segments used to scope the compiler's walk of a content tree, and
// [FieldRef], the canonical form a SameAs back-reference uses to name its
// target.
//
// Address is modeled as an immutable fluent builder: every
// mutating-looking method returns a
// new value, so a compiler can fork its current scope into two branches
// (e.g. two fields of the same object) without either branch observing the
// other's pushes.
package address
