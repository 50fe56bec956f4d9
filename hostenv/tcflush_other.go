//go:build !linux && !darwin

package hostenv

// TCFlush is a no-op on platforms without a POSIX tcflush equivalent
// wired up here (lists tcflush as best-effort terminal housekeeping,
// not a correctness-critical operation).
func TCFlush(fd uintptr) error {
	return nil
}
