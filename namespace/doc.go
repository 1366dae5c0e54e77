// Package namespace holds the top-level mapping from collection name to
// content tree and the mutation surface over it: Put/Delete, merge-driven
// schema learning (TryMerge, TryUpdate), and optionality toggling
// (Optionalise).
//
// A Namespace is what the codec decodes from disk and what the compile
// package turns into an executable generator graph. All mutation is
// copy-on-write at the content level: a failed merge or update leaves the
// namespace exactly as it was.
package namespace
