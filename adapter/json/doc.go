// Package json implements the JSON schema codec.
//
// A schema file is a JSON object mapping collection names to tagged-object
// content trees. Every node carries a "type" discriminator naming its
// content kind in snake_case; variant-specific fields live on the same
// object, and unknown fields are rejected with a closest-key suggestion.
// Optional object fields carry "optional": true; one_of variants carry a
// "weight" (default 1). 128-bit number literals are written as decimal
// strings.
//
// Input is preprocessed with tidwall/jsonc by default, so schema files may
// carry comments and trailing commas; WithStrictJSON turns that off. With
// a source registry attached, syntax errors are reported with line:column
// positions against the original bytes.
package json
