// Package commands holds the mmv commands as library functions. Each
// subpackage takes an Options struct and returns a result struct; the CLI
// in cmd/mmv only parses flags and renders results.
package commands
