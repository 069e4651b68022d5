// Package paths provides centralized path handling for mmv.
//
// It resolves the workspace directory a command operates on and the XDG
// locations mmv uses for its own files.
//
// # Environment Variables
//
//   - MMV_SOURCE: workspace directory when -s/--source is not given
//   - MMV_CONFIG_DIR: override the config directory (default: $XDG_CONFIG_HOME/mmv)
//   - MMV_STATE_DIR: override the state directory (default: $XDG_STATE_HOME/mmv)
//
// # Layout
//
//   - Config: $XDG_CONFIG_HOME/mmv/config.toml (user configuration)
//   - State:  $XDG_STATE_HOME/mmv/mmv.log (log file)
//   - Workspace: <source>/.mmv.toml (per-workspace configuration)
package paths
