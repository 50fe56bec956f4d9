package httpfetch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gizzahub/lpmcore/errs"
)

// parsedHeader is what parseHeader extracts from the response preamble:
// everything up to and including the blank line that terminates it.
type parsedHeader struct {
	status  int
	reason  string
	headers map[string][]string
	// consumed is the byte offset of the first body byte in the buffer
	// parseHeader was given.
	consumed int
}

// parseHeader scans buf for the "\r\n\r\n" header terminator and, if
// found, parses the status line and header fields. It returns ok=false
// (no error) when the terminator has not yet arrived, so the caller can
// read more and try again — this is Get's RECV_HEADER step, split out
// as a pure function so buffer-boundary behaviors are directly
// unit-testable against synthetic byte slices.
func parseHeader(buf []byte) (parsedHeader, bool, error) {
	idx := indexHeaderEnd(buf)
	if idx < 0 {
		return parsedHeader{}, false, nil
	}

	lines := strings.Split(string(buf[:idx]), "\r\n")
	if len(lines) == 0 || lines[0] == "" {
		return parsedHeader{}, false, &errs.HTTPError{Stage: "header", Reason: "empty status line"}
	}

	status, reason, err := parseStatusLine(lines[0])
	if err != nil {
		return parsedHeader{}, false, err
	}

	headers := make(map[string][]string)
	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		sep := strings.IndexByte(line, ':')
		if sep < 0 {
			continue
		}
		key := strings.TrimSpace(line[:sep])
		val := strings.TrimSpace(line[sep+1:])
		canon := strings.ToLower(key)
		headers[canon] = append(headers[canon], val)
	}

	return parsedHeader{
		status:   status,
		reason:   reason,
		headers:  headers,
		consumed: idx + 4, // skip the trailing "\r\n\r\n"
	}, true, nil
}

// indexHeaderEnd returns the index of the first byte of "\r\n\r\n" in buf,
// or -1 if not present.
func indexHeaderEnd(buf []byte) int {
	const term = "\r\n\r\n"
	return strings.Index(string(buf), term)
}

func parseStatusLine(line string) (int, string, error) {
	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 2 || !strings.HasPrefix(parts[0], "HTTP/") {
		return 0, "", &errs.HTTPError{Stage: "header", Reason: "malformed status line: " + line}
	}
	code, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, "", &errs.HTTPError{Stage: "header", Reason: "malformed status code: " + parts[1], Err: err}
	}
	reason := ""
	if len(parts) == 3 {
		reason = parts[2]
	}
	return code, reason, nil
}

func headerValue(headers map[string][]string, key string) string {
	vals := headers[strings.ToLower(key)]
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}

func isChunked(headers map[string][]string) bool {
	return strings.EqualFold(headerValue(headers, "Transfer-Encoding"), "chunked")
}

// parseContentLength returns (length, true) when Content-Length is present
// and well-formed, (0, false) otherwise.
func parseContentLength(headers map[string][]string) (int64, bool) {
	v := headerValue(headers, "Content-Length")
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func statusErr(status int) error {
	return &errs.HTTPError{Stage: "header", Reason: fmt.Sprintf("received non 200-response: %d", status)}
}
