package executor

import (
	"time"

	"github.com/arthur-debert/mmv/pkg/changeset"
)

// Result represents the outcome of one change set entry
type Result struct {
	// Source is the entry key, relative to the workspace
	Source string

	// Action that was applied
	Action changeset.Action

	// SourcePath and TargetPath are the absolute paths involved.
	// TargetPath is empty unless Action is a Move.
	SourcePath string
	TargetPath string

	// Success indicates whether the entry completed successfully
	Success bool

	// Error contains any error that occurred during execution
	Error error

	// Message provides additional information about the result
	Message string

	// Skipped is set for ignored entries, entries already in place and
	// every entry of a dry run
	Skipped bool

	// Cloned reports whether a copy-on-write clone was used
	Cloned bool

	// Duration is how long the entry took
	Duration time.Duration
}
