package gitwork

import (
	"fmt"
	"os"
	"sync/atomic"
)

var traceEnabled atomic.Bool

// SetTrace toggles diagnostic output to stderr for git operations; the
// process writes to stderr only when trace is enabled. It is independent
// of httpfetch.SetTrace: git and TLS tracing use two separate toggles,
// not one shared logger level.
func SetTrace(on bool) {
	traceEnabled.Store(on)
}

func tracef(format string, args ...interface{}) {
	if traceEnabled.Load() {
		fmt.Fprintf(os.Stderr, "gitwork: "+format+"\n", args...)
	}
}
