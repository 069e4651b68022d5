//go:build linux

package filesystem

import (
	"os"

	"golang.org/x/sys/unix"
)

// cloneFile shares src's extents with dst via FICLONE. It fails on
// filesystems without reflink support (ext4, tmpfs) and across devices.
func cloneFile(dst, src *os.File) error {
	return unix.IoctlFileClone(int(dst.Fd()), int(src.Fd()))
}
