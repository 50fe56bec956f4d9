package hostenv

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// DefaultStoreRoot is where a host embedding this module keeps its
// content-addressed package store absent an explicit override, derived
// from the XDG base directory spec the way a well-behaved Linux/macOS
// tool is expected to rather than hard-coding "~/.lpm".
func DefaultStoreRoot() string {
	return filepath.Join(xdg.DataHome, "lpmcore", "store")
}

// DefaultProfileDir is where per-profile state (active repo checkouts,
// cached releases) lives absent an override.
func DefaultProfileDir() string {
	return filepath.Join(xdg.StateHome, "lpmcore")
}
