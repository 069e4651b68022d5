package filesystem

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"github.com/spf13/afero"
)

// osFS implements FS using the OS filesystem
type osFS struct {
	walker afero.Fs
}

// NewOS creates a new OS filesystem implementation
func NewOS() FS {
	return &osFS{walker: afero.NewOsFs()}
}

func (o *osFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (o *osFS) Lstat(name string) (fs.FileInfo, error) {
	return os.Lstat(name)
}

func (o *osFS) Open(name string) (io.ReadCloser, error) {
	return os.Open(name)
}

func (o *osFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// WriteFile writes through a temp file in the same directory and renames
// it over name. An existing file keeps its mode; a new one gets perm.
func (o *osFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	_, statErr := os.Stat(name)
	if err := atomic.WriteFile(name, bytes.NewReader(data)); err != nil {
		return err
	}
	if os.IsNotExist(statErr) {
		return os.Chmod(name, perm)
	}
	return nil
}

func (o *osFS) CopyFile(src, dst string, mode CloneMode) (bool, error) {
	in, err := os.Open(src)
	if err != nil {
		return false, err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return false, err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return false, err
	}

	if mode != CloneNever {
		cloneErr := cloneFile(out, in)
		if cloneErr == nil {
			return true, out.Close()
		}
		if mode == CloneAlways {
			_ = out.Close()
			_ = os.Remove(dst)
			return false, fmt.Errorf("%w: %v", ErrCloneUnsupported, cloneErr)
		}
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return false, err
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		return false, err
	}
	return false, out.Close()
}

func (o *osFS) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Walk visits root in lexical order without following symlinks.
func (o *osFS) Walk(root string, fn filepath.WalkFunc) error {
	return afero.Walk(o.walker, root, fn)
}

func (o *osFS) Remove(name string) error {
	return os.Remove(name)
}
