package gitwork

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// progressSink adapts go-git's sideband progress writer (raw text lines
// such as "Receiving objects: 45% (9/20), 1.2 MiB | 800 KiB/s") into the
// structured Progress snapshot specifies. go-git, like real git,
// forwards the server's human-readable progress text verbatim rather than
// structured counters, so recovering the seven fields means pattern
// matching the same handful of line shapes `git fetch` itself prints.
type progressSink struct {
	mu     sync.Mutex
	buf    strings.Builder
	latest Progress
	onTick ProgressFunc
}

var (
	reCounting    = regexp.MustCompile(`Counting objects:\s+\d+%\s+\((\d+)/(\d+)\)`)
	reCompressing = regexp.MustCompile(`Compressing objects:\s+\d+%\s+\((\d+)/(\d+)\)`)
	reReceiving   = regexp.MustCompile(`Receiving objects:\s+\d+%\s+\((\d+)/(\d+)\)(?:,\s+([\d.]+)\s*(KiB|MiB|GiB|B))?`)
	reResolving   = regexp.MustCompile(`Resolving deltas:\s+\d+%\s+\((\d+)/(\d+)\)`)
)

func (p *progressSink) Write(b []byte) (int, error) {
	p.mu.Lock()
	p.buf.Write(b)
	text := p.buf.String()
	p.mu.Unlock()

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Split(scanLinesAndCarriageReturns)
	for scanner.Scan() {
		p.parseLine(scanner.Text())
	}

	p.mu.Lock()
	p.buf.Reset()
	p.mu.Unlock()

	return len(b), nil
}

// scanLinesAndCarriageReturns splits on '\n' or '\r', since git's progress
// protocol uses '\r' to redraw the same terminal line for each update.
func scanLinesAndCarriageReturns(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	for i, b := range data {
		if b == '\n' || b == '\r' {
			return i + 1, data[:i], nil
		}
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

func (p *progressSink) parseLine(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if m := reCounting.FindStringSubmatch(line); m != nil {
		p.latest.IndexedObjects = atoi(m[1])
		p.latest.TotalObjects = atoi(m[2])
	}
	if m := reCompressing.FindStringSubmatch(line); m != nil {
		p.latest.TotalDeltas = atoi(m[2])
	}
	if m := reReceiving.FindStringSubmatch(line); m != nil {
		p.latest.ReceivedObjects = atoi(m[1])
		p.latest.TotalObjects = atoi(m[2])
		if len(m) > 3 && m[3] != "" {
			p.latest.ReceivedBytes = sizeToBytes(m[3], m[4])
		}
	}
	if m := reResolving.FindStringSubmatch(line); m != nil {
		p.latest.IndexedDeltas = atoi(m[1])
		p.latest.TotalDeltas = atoi(m[2])
	}

	if p.onTick != nil {
		p.onTick(p.latest)
	}
}

func (p *progressSink) snapshot() Progress {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.latest
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func sizeToBytes(value, unit string) int64 {
	f, _ := strconv.ParseFloat(value, 64)
	switch unit {
	case "KiB":
		f *= 1024
	case "MiB":
		f *= 1024 * 1024
	case "GiB":
		f *= 1024 * 1024 * 1024
	}
	return int64(f)
}

var _ io.Writer = (*progressSink)(nil)
