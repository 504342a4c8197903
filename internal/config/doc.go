// Package config handles configuration loading, parsing, and validation
// from defaults, an optional config.yaml, a .env file and SCRY_-prefixed
// environment variables. It provides type-safe access to the settings the
// stores, services and surfaces need.
package config
