// Package config loads diarsrt.toml, applies defaults and validates the
// result before the CLI merges in command-line flags.
package config
