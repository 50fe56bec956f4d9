// Package gitwork implements a git worker: init, fetch (with progress),
// reset, and revparse. It is built on go-git, a pure-Go implementation of
// the git protocol and object model, rather than cgo bindings to libgit2:
// go-git gives the same four operations — init, fetch, reset, resolve —
// without a C toolchain dependency, and its Fetch/Clone accept a sideband
// progress sink that a caller can sample on every tick.
package gitwork

import (
	// registers the "file" transport so Init/Fetch can address a local
	// working path or bare repository without an explicit file:// scheme,
	// the same way the git CLI treats a bare path as a local remote.
	_ "github.com/go-git/go-git/v5/plumbing/transport/file"
)

// ResetMode mirrors git's three reset strategies.
type ResetMode int

const (
	ResetSoft ResetMode = iota
	ResetMixed
	ResetHard
)

func (m ResetMode) String() string {
	switch m {
	case ResetSoft:
		return "soft"
	case ResetMixed:
		return "mixed"
	case ResetHard:
		return "hard"
	default:
		return "unknown"
	}
}

// Progress is the seven-field snapshot delivered to a Fetch callback on
// every tick.
type Progress struct {
	ReceivedBytes   int64
	TotalObjects    int
	IndexedObjects  int
	ReceivedObjects int
	LocalObjects    int
	TotalDeltas     int
	IndexedDeltas   int
	// Done is true on the final, post-completion callback invocation.
	Done bool
}

// ProgressFunc receives a Progress snapshot. It must return quickly: Fetch
// calls it synchronously from the network read loop, on whatever
// goroutine runs Fetch. Fetch starts no worker goroutine of its own and
// keeps no shared snapshot for another goroutine to sample; a caller that
// runs Fetch on a pool goroutine hands snapshots over itself.
type ProgressFunc func(Progress)

// FetchOptions configures Fetch.
type FetchOptions struct {
	// Refspec selects what to fetch; empty means all remote refs.
	Refspec string
	// FullDepth disables the default shallow (depth=1) fetch.
	FullDepth bool
	// Progress receives snapshots as the fetch proceeds, and one final
	// Done=true snapshot at completion (success or failure).
	Progress ProgressFunc
}
