// Package fsutil implements the Platform Filesystem component: path
// listing, directory creation/removal, lstat-semantics stat, symlink
// creation, chmod, process working-directory manipulation, and advisory
// locking. Paths are UTF-8 in and out; on non-Windows platforms the
// standard library already speaks UTF-8 natively, so no conversion layer is
// needed there, but every error still carries the path and the platform
// error text.
package fsutil

import (
	"os"
	"path/filepath"
	"time"

	"github.com/gizzahub/lpmcore/errs"
)

// EntryType classifies what Stat found at a path.
type EntryType int

const (
	TypeNil EntryType = iota
	TypeFile
	TypeDir
)

// Info is the result of Stat: a snapshot of a path's metadata. For a
// symlink leaf, Modified and Symlink describe the link itself, while
// Size, Mode and Type describe its resolved target when it resolves.
type Info struct {
	AbsPath  string
	Path     string
	Modified time.Time
	Size     int64
	Mode     os.FileMode
	Type     EntryType
	// Symlink holds the link target when Path's leaf is itself a
	// symlink, and is empty otherwise.
	Symlink string
}

// List returns the ordered child names of path, excluding "." and "..".
func List(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, &errs.PathError{Op: "list", Path: path, Err: err}
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if name == "." || name == ".." {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// Mkdir creates path and any missing parents, as if by mkdir -p. Existing
// directories in the prefix are tolerated.
func Mkdir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return &errs.PathError{Op: "mkdir", Path: path, Err: err}
	}
	return nil
}

// RemoveDir removes path and its contents.
func RemoveDir(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return &errs.PathError{Op: "rmdir", Path: path, Err: err}
	}
	return nil
}

// Stat reports metadata about path, looking at the leaf with lstat first:
// a dangling symlink is reported as a symlink rather than an error. When
// a symlink leaf resolves, Stat follows it and Info.Size, Info.Mode and
// Info.Type reflect the target rather than the link itself.
func Stat(path string) (*Info, error) {
	lst, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &errs.PathError{Op: "stat", Path: path, Err: err}
	}

	abs, err := Realpath(path)
	if err != nil {
		abs = path
	}

	info := &Info{
		AbsPath:  abs,
		Path:     path,
		Modified: lst.ModTime(),
		Size:     lst.Size(),
		Mode:     lst.Mode(),
	}

	if lst.Mode()&os.ModeSymlink != 0 {
		target, err := os.Readlink(path)
		if err != nil {
			return nil, &errs.PathError{Op: "readlink", Path: path, Err: err}
		}
		info.Symlink = target

		followed, err := os.Stat(path)
		switch {
		case err == nil:
			info.Size = followed.Size()
			info.Mode = followed.Mode()
			if followed.IsDir() {
				info.Type = TypeDir
			} else {
				info.Type = TypeFile
			}
		default:
			info.Type = TypeNil
		}
		return info, nil
	}

	if lst.IsDir() {
		info.Type = TypeDir
	} else {
		info.Type = TypeFile
	}
	return info, nil
}

// Symlink creates a symbolic link at linkpath pointing at target.
func Symlink(target, linkpath string) error {
	if err := os.Symlink(target, linkpath); err != nil {
		return &errs.PathError{Op: "symlink", Path: linkpath, Err: err}
	}
	return nil
}

// Chmod changes path's permission bits.
func Chmod(path string, mode os.FileMode) error {
	if err := os.Chmod(path, mode); err != nil {
		return &errs.PathError{Op: "chmod", Path: path, Err: err}
	}
	return nil
}

// Chdir changes the process's current working directory.
func Chdir(path string) error {
	if err := os.Chdir(path); err != nil {
		return &errs.PathError{Op: "chdir", Path: path, Err: err}
	}
	return nil
}

// Getwd returns the process's current working directory.
func Getwd() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", &errs.PathError{Op: "pwd", Path: ".", Err: err}
	}
	return wd, nil
}

// Realpath resolves the directory prefix of path to a canonical absolute
// path, retaining the leaf name literally even when the leaf itself is a
// symlink (so Stat can report both the link and its target).
func Realpath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &errs.PathError{Op: "realpath", Path: path, Err: err}
	}

	dir, leaf := filepath.Split(abs)
	resolvedDir, err := filepath.EvalSymlinks(filepath.Clean(dir))
	if err != nil {
		// The directory prefix may not exist yet (e.g. stat on a path
		// about to be created); fall back to the cleaned absolute path.
		return abs, nil
	}

	return filepath.Join(resolvedDir, leaf), nil
}
