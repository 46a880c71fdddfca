// Package config loads and merges the geoguessr-stats service configuration
// from environment variables, command-line flags, and an optional JSON file.
//
// Sources are merged by a small builder ([GetStructuredConfig]) in priority
// order (env, then flags, then the JSON file referenced by either of the
// first two), with non-zero fields from earlier sources winning via
// dario.cat/mergo. The merged result is validated before use.
package config
