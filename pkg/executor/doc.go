// Package executor applies a clean change set to disk.
//
// Entries run in path order. A Move creates the destination's parent
// directories, duplicates the source (copy-on-write clone when the
// filesystem allows, byte copy otherwise) and only then removes the
// source. A Delete removes the source. Ignore entries are reported as
// skipped. Execution stops at the first failure; files already handled
// stay where they are.
//
// The staged strategy copies every Move before removing anything, so a
// failed copy leaves every source in place.
package executor
