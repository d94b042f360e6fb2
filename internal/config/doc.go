// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional YAML file. It provides type-safe
// access to server, auth and generative-model settings while keeping
// configuration details separate from business logic.
package config
