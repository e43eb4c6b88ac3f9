// Package config loads typed configuration structs from environment
// variables via caarlos0/env tags, with optional .env support for
// development. Parsed configs are cached per type so independent
// packages share one consistent view of the environment.
package config
