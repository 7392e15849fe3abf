// Package config loads, normalizes, and validates Lectern's TOML
// configuration file.
package config
