// Package errs defines the typed error taxonomy shared by every lpmcore
// component. Each type wraps an underlying cause; PathError renders the
// "can't <op> <path>: <cause>" style the host surface documents for
// platform I/O, and the other types render their own prefix. Each
// supports errors.Is/errors.As through an Is method on each concrete
// error type.
package errs

import "fmt"

// PathError reports a failure at the platform filesystem boundary: open,
// read, write, seek, close, mkdir, rmdir, chmod, symlink, and friends.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("can't %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

func (e *PathError) Is(target error) bool {
	_, ok := target.(*PathError)
	return ok
}

// ArchiveError reports a malformed archive, an unknown format, a path that
// exceeds the platform path limit, or a failure creating the parent
// directory of an extracted entry.
type ArchiveError struct {
	Source string
	Reason string
	Err    error
}

func (e *ArchiveError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("error extracting archive %s: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("error extracting archive %s: %s", e.Source, e.Reason)
}

func (e *ArchiveError) Unwrap() error { return e.Err }

func (e *ArchiveError) Is(target error) bool {
	_, ok := target.(*ArchiveError)
	return ok
}

// HTTPError reports a connect failure, DNS resolution failure, short write,
// header buffer overflow, non-2xx response, malformed chunk length, or
// premature EOF from the HTTP(S) GET state machine.
type HTTPError struct {
	Stage  string // "connect", "handshake", "send", "header", "body"
	Reason string
	Err    error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("http %s: %s: %v", e.Stage, e.Reason, e.Err)
	}
	return fmt.Sprintf("http %s: %s", e.Stage, e.Reason)
}

func (e *HTTPError) Unwrap() error { return e.Err }

func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// GitError reports an open/init/remote/fetch/reset/lookup failure from the
// git worker, carrying the underlying diagnostic (from go-git in place of
// libgit2's last-error message).
type GitError struct {
	Op   string
	Path string
	Err  error
}

func (e *GitError) Error() string {
	return fmt.Sprintf("git %s failed for %s: %v", e.Op, e.Path, e.Err)
}

func (e *GitError) Unwrap() error { return e.Err }

func (e *GitError) Is(target error) bool {
	_, ok := target.(*GitError)
	return ok
}

// TLSError reports a TLS configuration, handshake, or verification failure.
type TLSError struct {
	Reason string
	Err    error
}

func (e *TLSError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tls: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("tls: %s", e.Reason)
}

func (e *TLSError) Unwrap() error { return e.Err }

func (e *TLSError) Is(target error) bool {
	_, ok := target.(*TLSError)
	return ok
}

// LockError reports a failure acquiring or operating under an advisory
// file lock, including a body failure propagated from the caller.
type LockError struct {
	Path string
	Err  error
}

func (e *LockError) Error() string {
	return fmt.Sprintf("lock %s: %v", e.Path, e.Err)
}

func (e *LockError) Unwrap() error { return e.Err }

func (e *LockError) Is(target error) bool {
	_, ok := target.(*LockError)
	return ok
}
