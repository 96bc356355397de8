//go:build unix

package filesystem

import (
	"io/fs"

	"golang.org/x/sys/unix"
)

// accessWritable asks the kernel whether the effective user may write to
// path, which accounts for ACLs and read-only mounts that mode bits miss.
func accessWritable(path string) error {
	if err := unix.Access(path, unix.W_OK); err != nil {
		return &fs.PathError{Op: "access", Path: path, Err: err}
	}
	return nil
}
