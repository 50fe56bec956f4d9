package httpfetch

import (
	"fmt"
	"os"
	"sync/atomic"
)

var traceEnabled atomic.Bool

// SetTrace toggles TLS/wire diagnostic output to stderr. Independent of
// gitwork.SetTrace: each package owns its own trace toggle rather than
// sharing one logger level.
func SetTrace(on bool) {
	traceEnabled.Store(on)
}

func tracef(format string, args ...interface{}) {
	if traceEnabled.Load() {
		fmt.Fprintf(os.Stderr, "httpfetch: "+format+"\n", args...)
	}
}
