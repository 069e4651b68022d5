// Package testutil provides utilities for testing mmv components.
//
// Key components:
//   - TestEnvironment: a workspace and a destination root on either an
//     in-memory or a temp-dir filesystem, cleaned up with the test
//   - Sidecar helpers to write and read .mmv.sources and .mmv.targets
//     directly, bypassing the changeset package
//
// Usage guidelines:
//   - Most tests should use EnvMemoryOnly for speed and isolation
//   - Use EnvIsolated only where real filesystem behavior matters
//     (permissions, symlinks, clones)
//   - All test data should be defined inline, not in external files
package testutil
