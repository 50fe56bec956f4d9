//go:build linux || darwin

package hostenv

import (
	"golang.org/x/sys/unix"

	"github.com/gizzahub/lpmcore/errs"
)

// TCFlush discards unread input on fd. On Linux and macOS this issues
// TCFLSH/TCIFLUSH, the same ioctl the POSIX tcflush(3) call wraps;
// golang.org/x/sys/unix exposes it directly without cgo.
func TCFlush(fd uintptr) error {
	if err := unix.IoctlSetInt(int(fd), unix.TCFLSH, unix.TCIFLUSH); err != nil {
		return &errs.PathError{Op: "tcflush", Path: "fd", Err: err}
	}
	return nil
}
