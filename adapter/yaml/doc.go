// Package yaml implements the YAML schema codec: the same tagged-object
// grammar as the JSON codec, parsed with gopkg.in/yaml.v3.
package yaml
