// Package config loads, normalizes, and validates bookreel's TOML
// configuration. Defaults mirror the embedded sample_config.toml; a missing
// config file is not an error.
package config
