// Package filesystem provides the filesystem implementations mmv runs on.
//
// NewOS operates on the real disk: sidecar writes go through
// natefinch/atomic and file copies try a copy-on-write clone (FICLONE on
// Linux) before falling back to a byte copy. NewAferoFS wraps any afero.Fs,
// which the tests use with an in-memory filesystem.
package filesystem
