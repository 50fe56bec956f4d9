package httpfetch

import (
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/gizzahub/lpmcore/errs"
)

// bodyReader pulls the leftover header-trailing bytes first, then reads
// fresh bytes from conn under the same 5 s receive timeout RECV_HEADER
// uses, matching "TCP receive timeout = 5s. TLS read timeout = 5s."
type bodyReader struct {
	conn    net.Conn
	pending []byte
}

func (r *bodyReader) fill(min int) ([]byte, error) {
	for len(r.pending) < min {
		chunk := make([]byte, 4096)
		_ = r.conn.SetReadDeadline(time.Now().Add(recvTimeout))
		n, err := r.conn.Read(chunk)
		if n > 0 {
			r.pending = append(r.pending, chunk[:n]...)
		}
		if err != nil {
			return r.pending, err
		}
	}
	return r.pending, nil
}

func (r *bodyReader) consume(n int) {
	r.pending = r.pending[n:]
}

// streamBody executes the RECV_BODY loop: chunked transfer decoding,
// Content-Length-bounded reads, or read-until-EOF when neither is
// present, writing each flush to sink and reporting progress before it,
// until the body completes or a read fails.
func streamBody(conn net.Conn, leftover []byte, hdr parsedHeader, sink io.Writer, progress ProgressFunc) (int64, error) {
	r := &bodyReader{conn: conn, pending: append([]byte(nil), leftover...)}
	chunked := isChunked(hdr.headers)
	contentLength, haveLength := parseContentLength(hdr.headers)

	var total int64
	var clPtr *int64
	if haveLength {
		clPtr = &contentLength
	}

	if chunked {
		return total, streamChunked(r, sink, progress, &total)
	}
	return total, streamFixedOrEOF(r, sink, progress, &total, contentLength, haveLength, clPtr)
}

func streamChunked(r *bodyReader, sink io.Writer, progress ProgressFunc, total *int64) error {
	for {
		size, consumed, ok, err := readChunkSize(r)
		if err != nil {
			return err
		}
		if !ok {
			return &errs.HTTPError{Stage: "body", Reason: "connection closed mid chunk-size"}
		}
		r.consume(consumed)

		if size == 0 {
			// trailing CRLF after the zero-length terminator chunk.
			if _, err := r.fill(2); err != nil && err != io.EOF {
				return &errs.HTTPError{Stage: "body", Reason: "read chunk trailer", Err: err}
			}
			return nil
		}

		written := int64(0)
		for written < size {
			data, err := r.fill(1)
			if len(data) == 0 && err != nil {
				return &errs.HTTPError{Stage: "body", Reason: "premature EOF in chunk body", Err: err}
			}
			take := size - written
			if int64(len(data)) < take {
				take = int64(len(data))
			}
			*total += take
			if progress != nil {
				progress(*total, nil, false)
			}
			if _, werr := sink.Write(data[:take]); werr != nil {
				return &errs.HTTPError{Stage: "body", Reason: "write sink", Err: werr}
			}
			r.consume(int(take))
			written += take
		}

		// consume the chunk's trailing CRLF.
		if _, err := r.fill(2); err != nil && err != io.EOF {
			return &errs.HTTPError{Stage: "body", Reason: "read chunk delimiter", Err: err}
		}
		r.consume(2)
	}
}

func readChunkSize(r *bodyReader) (int64, int, bool, error) {
	for {
		size, consumed, ok, err := nextChunkSize(r.pending)
		if err != nil {
			return 0, 0, false, err
		}
		if ok {
			return size, consumed, true, nil
		}
		_, readErr := r.fill(len(r.pending) + 1)
		if readErr != nil {
			if readErr == io.EOF {
				return 0, 0, false, nil
			}
			return 0, 0, false, &errs.HTTPError{Stage: "body", Reason: "read chunk size", Err: readErr}
		}
	}
}

func streamFixedOrEOF(r *bodyReader, sink io.Writer, progress ProgressFunc, total *int64, contentLength int64, haveLength bool, clPtr *int64) error {
	for {
		if haveLength && *total >= contentLength {
			return nil
		}

		data, err := r.fill(1)
		if len(data) == 0 {
			if err == io.EOF {
				if haveLength && *total < contentLength {
					return &errs.HTTPError{Stage: "body", Reason: "premature EOF before content-length reached", Err: err}
				}
				// EOF-terminated body (no length known, or TLS close
				// without close_notify, documented decision):
				// treat as a clean completion.
				return nil
			}
			return &errs.HTTPError{Stage: "body", Reason: "read body", Err: err}
		}

		take := int64(len(data))
		if haveLength {
			remaining := contentLength - *total
			if take > remaining {
				take = remaining
			}
		}

		*total += take
		if progress != nil {
			progress(*total, clPtr, false)
		}
		if _, werr := sink.Write(data[:take]); werr != nil {
			return &errs.HTTPError{Stage: "body", Reason: "write sink", Err: werr}
		}
		r.consume(int(take))
	}
}

// nextChunkSize scans buf for a chunk-size line ("<hex>\r\n", chunk
// extensions after a ';' ignored) starting at offset 0. It returns
// ok=false (no error) when the line hasn't fully arrived yet, so the
// caller can read more. Split out from the RECV_BODY read loop for
// direct unit testing against synthetic buffers.
func nextChunkSize(buf []byte) (size int64, consumed int, ok bool, err error) {
	idx := strings.Index(string(buf), "\r\n")
	if idx < 0 {
		return 0, 0, false, nil
	}

	line := string(buf[:idx])
	if sep := strings.IndexByte(line, ';'); sep >= 0 {
		line = line[:sep]
	}
	line = strings.TrimSpace(line)

	n, parseErr := strconv.ParseInt(line, 16, 64)
	if parseErr != nil || n < 0 {
		return 0, 0, false, &errs.HTTPError{Stage: "body", Reason: "malformed chunk length: " + line, Err: parseErr}
	}

	return n, idx + 2, true, nil
}
