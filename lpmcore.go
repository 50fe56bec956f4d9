// Package lpmcore is the native core of an editor package manager: a
// single host-callable surface bundling a platform filesystem, a
// streaming hasher, an archive extractor, a git worker, a hand-rolled
// HTTP(S) GET client, and a cooperative task pool. A business-logic
// layer (a CLI, a plugin runtime, anything) is expected to sit on top of
// Registry and never reach into the subpackages directly: one surface,
// no side doors, expressed here as a struct of bound methods.
package lpmcore

import (
	"context"
	"os"
	"time"

	"github.com/gizzahub/lpmcore/archive"
	"github.com/gizzahub/lpmcore/fsutil"
	"github.com/gizzahub/lpmcore/gitwork"
	"github.com/gizzahub/lpmcore/hashutil"
	"github.com/gizzahub/lpmcore/hostenv"
	"github.com/gizzahub/lpmcore/httpfetch"
)

// Registry aggregates every host-callable entry point plus the
// read-only Globals. Its zero value is not usable; construct one with
// New.
type Registry struct {
	Globals *hostenv.Globals
	Logger  Logger
}

// New builds a Registry with Globals populated from the running process
// (argv, platform/arch detection, TTY check) and an optional config
// overlay applied on top.
func New(argv []string, overlay *hostenv.Overlay) *Registry {
	g := hostenv.New(argv)
	g.Apply(overlay)
	return &Registry{Globals: g, Logger: NopLogger{}}
}

// Ls lists path's entries, excluding "." and "..".
func (r *Registry) Ls(path string) ([]string, error) { return fsutil.List(path) }

// Stat reports path's lstat-semantics metadata, or (nil, nil) if it does
// not exist.
func (r *Registry) Stat(path string) (*fsutil.Info, error) { return fsutil.Stat(path) }

// Mkdir creates path and any missing parents.
func (r *Registry) Mkdir(path string) error { return fsutil.Mkdir(path) }

// Rmdir recursively removes path.
func (r *Registry) Rmdir(path string) error { return fsutil.RemoveDir(path) }

// Hash returns the 64-hex SHA-256 digest of data (kind "string") or of
// the file at data (kind "file").
func (r *Registry) Hash(data string, kind string) (string, error) {
	if kind == "file" {
		return hashutil.HashFile(data)
	}
	return hashutil.HashBytes([]byte(data)), nil
}

// Tcflush discards pending terminal input on fd.
func (r *Registry) Tcflush(fd uintptr) error { return hostenv.TCFlush(fd) }

// Tcwidth reports fd's terminal column width.
func (r *Registry) Tcwidth(fd uintptr) (int, error) { return hostenv.TCWidth(fd) }

// Symlink creates linkpath pointing at target.
func (r *Registry) Symlink(target, linkpath string) error { return fsutil.Symlink(target, linkpath) }

// Chmod changes path's mode bits.
func (r *Registry) Chmod(path string, mode os.FileMode) error { return fsutil.Chmod(path, mode) }

// Init creates (or reopens) a git working tree at path with "origin"
// pointed at url.
func (r *Registry) Init(ctx context.Context, path, url string) error {
	return gitwork.Init(ctx, path, url)
}

// Fetch downloads refspec from path's origin remote and returns the
// remote's default branch.
func (r *Registry) Fetch(ctx context.Context, path string, opts gitwork.FetchOptions) (string, error) {
	return gitwork.Fetch(ctx, path, opts)
}

// Reset resets path's working tree to commitRef under the given strategy.
func (r *Registry) Reset(ctx context.Context, path, commitRef string, mode gitwork.ResetMode) error {
	return gitwork.Reset(ctx, path, commitRef, mode)
}

// Revparse resolves ref (defaulting to "HEAD") to its 40-hex object ID.
func (r *Registry) Revparse(ctx context.Context, path string, ref string) (string, error) {
	if ref == "" {
		ref = "HEAD"
	}
	return gitwork.Revparse(ctx, path, ref)
}

// Get performs one HTTP(S) GET and returns its body and headers, or a
// redirect Location if the response was a 3xx.
func (r *Registry) Get(ctx context.Context, req httpfetch.Request) (*httpfetch.Result, error) {
	return httpfetch.Get(ctx, req)
}

// Extract unpacks src (zip/tar/tar.gz/tar.xz, by filename) into dst.
func (r *Registry) Extract(ctx context.Context, src, dst string) error {
	return archive.Extract(ctx, src, dst)
}

// Trace toggles stderr diagnostics for both the git worker and the HTTP
// client.
func (r *Registry) Trace(on bool) {
	gitwork.SetTrace(on)
	httpfetch.SetTrace(on)
}

// Certs configures the process-wide TLS trust store used by subsequent
// Get calls.
func (r *Registry) Certs(kind httpfetch.CertKind, path string) error {
	return httpfetch.Certs(kind, path)
}

// Chdir changes the process's working directory.
func (r *Registry) Chdir(path string) error { return fsutil.Chdir(path) }

// Pwd returns the process's current working directory.
func (r *Registry) Pwd() (string, error) { return fsutil.Getwd() }

// Flock runs body while holding an advisory lock on path.
func (r *Registry) Flock(path string, body func(path string) error, onErr func(error), onWait func()) error {
	return fsutil.Lock(path, body, onErr, onWait)
}

// processStart anchors Time; time.Since on it reads the monotonic clock.
var processStart = time.Now()

// Time returns a monotonic seconds reading. Callers should only compare
// two Time results, never treat the value as wall-clock time.
func (r *Registry) Time() float64 {
	return time.Since(processStart).Seconds()
}

// Setenv sets a process environment variable, affecting subsequently
// created git/HTTP contexts only.
func (r *Registry) Setenv(key, value string) error { return hostenv.SetEnv(key, value) }
