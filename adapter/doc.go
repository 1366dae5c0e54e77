// Package adapter holds the format-specific schema codecs. Each codec
// subpackage handles one on-disk rendering of the same tagged-object
// grammar and may carry its own external dependencies.
//
// # Architectural Boundary
//
// Codecs live at the outermost tier of the module. This design provides:
//
//   - Dependency hygiene via import granularity: consumers who import only
//     content, namespace, and sample do not transitively depend on
//     tidwall/jsonc or gopkg.in/yaml.v3. Codec dependencies are pulled
//     only when adapter/json or adapter/yaml is imported.
//
//   - A clear library/consumer boundary: a codec imports the core the same
//     way a downstream store or daemon would.
//
//   - An extensibility signal: adapter/json and adapter/yaml show the
//     pattern an adapter/myformat would follow.
//
// # Dependency Direction
//
// Codecs depend on library packages; library packages never depend on
// codecs:
//
//	adapter/json  ──imports──▶  namespace, content
//	adapter/json  ──imports──▶  diag
//	adapter/json  ──imports──▶  location (source positions for diagnostics)
//
// # Subpackages
//
//   - [json]: JSON codec with JSONC tolerance and positioned syntax errors
//   - [yaml]: YAML codec over the identical grammar
package adapter
