package fsutil

import (
	"os"

	"github.com/gofrs/flock"

	"github.com/gizzahub/lpmcore/errs"
)

// Lock acquires an advisory exclusive lock on path and runs body while the
// lock is held. It first attempts a non-blocking lock; if that would
// block and onWait is non-nil, onWait is invoked once before retrying with
// a blocking acquisition. The lock is always released, and the file
// descriptor always closed, before Lock returns, on every exit path
// (including a panic propagating out of body would leave the deferred
// unlock to run — body itself is expected to return rather than panic).
//
// For a directory path, the lock file is a literal lock living alongside
// the directory's contents ("<path>/.lock"), since flock requires a
// regular file descriptor to lock and a directory inode isn't always
// lockable through this library's backend.
func Lock(path string, body func(path string) error, onErr func(error), onWait func()) error {
	lockPath := path
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		lockPath = path + "/.lock"
		lf, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDONLY, 0o644)
		if err != nil {
			err = &errs.LockError{Path: path, Err: err}
			if onErr != nil {
				onErr(err)
			}
			return err
		}
		lf.Close()
	}

	fl := flock.New(lockPath)
	defer fl.Close()

	locked, err := fl.TryLock()
	if err != nil {
		err = &errs.LockError{Path: path, Err: err}
		if onErr != nil {
			onErr(err)
		}
		return err
	}

	if !locked {
		if onWait != nil {
			onWait()
		}
		if err := fl.Lock(); err != nil {
			err = &errs.LockError{Path: path, Err: err}
			if onErr != nil {
				onErr(err)
			}
			return err
		}
	}

	defer fl.Unlock()

	if err := body(path); err != nil {
		if onErr != nil {
			onErr(err)
		}
		return err
	}

	return nil
}
