package filesystem

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
)

// FS is the filesystem surface used by the workspace, the scanner and the
// executor.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	Open(name string) (io.ReadCloser, error)
	ReadFile(name string) ([]byte, error)

	// WriteFile replaces name with data. Readers never observe a
	// partially written file.
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// CopyFile duplicates src to dst, creating or truncating dst. The
	// returned bool reports whether a copy-on-write clone was used.
	CopyFile(src, dst string, mode CloneMode) (bool, error)

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	Walk(root string, fn filepath.WalkFunc) error

	Remove(name string) error
}

// ErrCloneUnsupported is returned when a copy-on-write clone was required
// but the filesystem cannot provide one.
var ErrCloneUnsupported = errors.New("copy-on-write clone not supported")

// CloneMode selects how CopyFile duplicates file contents.
type CloneMode int

const (
	// CloneAuto tries a clone and falls back to a byte copy
	CloneAuto CloneMode = iota
	// CloneAlways fails when a clone is not possible
	CloneAlways
	// CloneNever always copies bytes
	CloneNever
)

func (m CloneMode) String() string {
	switch m {
	case CloneAuto:
		return "auto"
	case CloneAlways:
		return "always"
	case CloneNever:
		return "never"
	default:
		return fmt.Sprintf("CloneMode(%d)", int(m))
	}
}

// ParseCloneMode parses the names accepted by --reflink and the
// execute.reflink setting.
func ParseCloneMode(s string) (CloneMode, error) {
	switch s {
	case "", "auto":
		return CloneAuto, nil
	case "always":
		return CloneAlways, nil
	case "never":
		return CloneNever, nil
	default:
		return CloneAuto, fmt.Errorf("unknown reflink mode %q (want auto, always or never)", s)
	}
}
