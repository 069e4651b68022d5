// Package config loads mmv's configuration.
//
// Layers are applied in order, later ones winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user file, $XDG_CONFIG_HOME/mmv/config.toml or --config
//  3. the workspace file, <workspace>/.mmv.toml
//  4. MMV_* environment variables (MMV_EXECUTE_REFLINK -> execute.reflink)
//  5. command-line overrides
package config
