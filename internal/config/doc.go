// Package config loads, validates, and normalizes subweave's TOML
// configuration.
//
// Configuration resolution order: explicit --config flag, then
// ~/.config/subweave/config.toml, then ./subweave.toml. Missing files fall
// back to built-in defaults; a present file only overrides the keys it sets.
package config
