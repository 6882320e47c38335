// Package config resolves runtime settings.
//
// Settings are layered, later sources winning:
//
//  1. Default()
//  2. a config file, YAML (.yaml, .yml) or CUE (.cue)
//  3. a .env file
//  4. the process environment
//  5. command-line flags (applied by the caller)
//
// The merged result is checked against the embedded CUE schema by Validate.
package config
