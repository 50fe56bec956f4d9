// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package lpmcore

import (
	"fmt"
	"runtime"
)

// Version information for the lpmcore module itself (distinct from
// hostenv.Globals.Version, which a host reads through the registry and
// which comes from hostenv's own build-time variable, "dev" by default).
// These values can be overridden at build time via -ldflags.
//
// Example:
//
//	go build -ldflags "-X github.com/gizzahub/lpmcore.GitCommit=$(git rev-parse HEAD)"
var (
	// Version is the current module version following semantic versioning.
	Version = "0.1.0"

	// GitCommit is the git commit SHA of the build.
	GitCommit = "unknown"

	// BuildDate is the date when the binary was built.
	BuildDate = "unknown"
)

// VersionInfo returns version, commit, build date, and Go toolchain
// version as a map, for a host to surface in its own --version output.
func VersionInfo() map[string]string {
	return map[string]string{
		"version":   Version,
		"gitCommit": GitCommit,
		"buildDate": BuildDate,
		"goVersion": runtime.Version(),
	}
}

// VersionString returns a single formatted line combining all of the above.
func VersionString() string {
	return fmt.Sprintf("lpmcore v%s (commit: %s, built: %s)", Version, GitCommit, BuildDate)
}
