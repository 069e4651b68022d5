package changeset

import (
	"path/filepath"

	"github.com/arthur-debert/mmv/pkg/errors"
	"github.com/arthur-debert/mmv/pkg/filesystem"
)

// Sidecar file names. Every name starting with SidecarPrefix is excluded
// from tree scans.
const (
	SidecarPrefix = ".mmv"
	SourcesFile   = ".mmv.sources"
	TargetsFile   = ".mmv.targets"
)

// Workspace is a directory plus its two sidecar files. It holds no state
// of its own and is passed by value.
type Workspace struct {
	dir string
	fs  filesystem.FS
}

// At references dir without checking that it is initialized.
func At(fsys filesystem.FS, dir string) Workspace {
	return Workspace{dir: dir, fs: fsys}
}

// Open returns the workspace at dir if both sidecars exist as regular
// files, and an ErrNotInitialized error otherwise.
func Open(fsys filesystem.FS, dir string) (Workspace, error) {
	ws := At(fsys, dir)
	if !ws.IsInitialized() {
		return Workspace{}, errors.New(errors.ErrNotInitialized, "Not initialized - use mmv init to do so").
			WithDetail("dir", dir)
	}
	return ws, nil
}

func (w Workspace) Dir() string { return w.dir }

func (w Workspace) FS() filesystem.FS { return w.fs }

func (w Workspace) SourcesPath() string {
	return filepath.Join(w.dir, SourcesFile)
}

func (w Workspace) TargetsPath() string {
	return filepath.Join(w.dir, TargetsFile)
}

// IsInitialized reports whether both sidecars are regular files.
func (w Workspace) IsInitialized() bool {
	return w.isRegular(w.SourcesPath()) && w.isRegular(w.TargetsPath())
}

func (w Workspace) isRegular(path string) bool {
	info, err := w.fs.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Import reads the sidecars back. See Load.
func (w Workspace) Import() (*Import, error) {
	return Load(w)
}
