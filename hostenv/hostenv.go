// Package hostenv builds the read-only host globals and the handful of
// environment-level entry points that sit outside the filesystem, hash,
// archive, git, and HTTP surfaces: SetEnv, TCWidth, TCFlush, and the
// optional YAML config overlay, exposed as a VERSION/PLATFORM/ARCH/...
// table a host can read once and trust for the life of the process.
package hostenv

import (
	"os"
	"runtime"

	"github.com/mattn/go-isatty"
)

// Globals mirrors read-only host globals, set once at New() and never
// mutated afterward except by Apply with a config overlay.
type Globals struct {
	Version           string
	Platform          string
	Arch              string
	DefaultArch       string
	PathSep           string
	SysTmpDir         string
	ExeFile           string
	TTY               bool
	DefaultRepoURL    string
	DefaultReleaseURL string
	NoNetwork         bool
	NoGit             bool
	RunFromGUI        bool
	Argv              []string
}

// version is overridden at build time via -ldflags.
var version = "dev"

// New populates Globals from the running process: platform/arch
// detection, the executable's absolute path, TTY detection on stdout, and
// argv. NO_NETWORK, NO_GIT, and LPM_RUN_FROM_GUI are read directly from
// the process environment.
func New(argv []string) *Globals {
	exe, err := os.Executable()
	if err != nil {
		exe = ""
	}

	return &Globals{
		Version:           version,
		Platform:          platformName(),
		Arch:              archName(),
		DefaultArch:       archName(),
		PathSep:           string(os.PathSeparator),
		SysTmpDir:         os.TempDir(),
		ExeFile:           exe,
		TTY:               isatty.IsTerminal(os.Stdout.Fd()),
		DefaultRepoURL:    "https://raw.githubusercontent.com/lpmcore/registry/master/manifest.json",
		DefaultReleaseURL: "https://github.com/%r/releases/latest/download/%r.tar.gz",
		NoNetwork:         os.Getenv("NO_NETWORK") != "",
		NoGit:             os.Getenv("NO_GIT") != "",
		RunFromGUI:        os.Getenv("LPM_RUN_FROM_GUI") != "",
		Argv:              argv,
	}
}

func platformName() string {
	switch runtime.GOOS {
	case "windows", "linux", "darwin", "android":
		return runtime.GOOS
	default:
		return runtime.GOOS
	}
}

// archName renders ARCH as "<processor>-<platform>", translating Go's
// GOARCH vocabulary to conventional processor names.
func archName() string {
	proc := "unknown"
	switch runtime.GOARCH {
	case "386":
		proc = "x86"
	case "amd64":
		proc = "x86_64"
	case "arm64":
		proc = "aarch64"
	case "arm":
		proc = "arm"
	case "riscv":
		proc = "riscv32"
	case "riscv64":
		proc = "riscv64"
	}
	return proc + "-" + platformName()
}
