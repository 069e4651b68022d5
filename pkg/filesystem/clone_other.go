//go:build !linux

package filesystem

import "os"

func cloneFile(dst, src *os.File) error {
	return ErrCloneUnsupported
}
