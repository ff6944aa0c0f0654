// Package config loads, normalizes, and validates mergehelper configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and centralizes every knob the CLI needs:
// the game root directory, output naming policy, retention mode, and the
// binmerge tool location and timeouts.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical policy values, and clear validation errors.
package config
