package httpfetch

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"github.com/gizzahub/lpmcore/errs"
)

const recvTimeout = 5 * time.Second

// Get drives one HTTP(S) GET to completion: connect (or TLS handshake),
// send the request line, parse the response header, and stream the body
// to Request.SinkPath (if set) or an in-memory accumulator.
//
// A 3xx response is not an error: Get returns (&Result{Location:
// ...}, nil), leaving redirect policy entirely to the caller — the host layer
// decides whether and where to follow. Every other non-200 status is an
// *errs.HTTPError.
//
// Whether Get is called from the host's own blocking goroutine or from a
// goroutine spawned to run one of several concurrent fetches, the code
// path below is identical: Go's runtime scheduler multiplexes both cases
// the same way, so there is no separate non-blocking branch to maintain
// here; see sched.Kind.
func Get(ctx context.Context, req Request) (*Result, error) {
	tracef("connecting to %s://%s:%d%s", req.Scheme, req.Host, req.Port, req.Target)
	conn, err := dial(ctx, req.Scheme, req.Host, req.Port)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if err := sendRequest(conn, req.Host, req.Target); err != nil {
		return nil, err
	}

	buf := make([]byte, 0, bufSize)
	buf, err = readUntilHeaderEnd(conn, buf)
	if err != nil {
		return nil, err
	}

	hdr, _, err := parseHeader(buf)
	if err != nil {
		return nil, err
	}

	tracef("response status %d", hdr.status)

	if hdr.status >= 300 && hdr.status < 400 {
		return &Result{Location: headerValue(hdr.headers, "Location")}, nil
	}
	if hdr.status != 200 {
		return nil, statusErr(hdr.status)
	}

	sink, finish, err := openSink(req.SinkPath)
	if err != nil {
		return nil, err
	}

	total, err := streamBody(conn, buf[hdr.consumed:], hdr, sink, req.Progress)
	if err != nil {
		finish(false)
		return nil, err
	}

	body, err := finish(true)
	if err != nil {
		return nil, err
	}

	if req.Progress != nil {
		var cl *int64
		if n, ok := parseContentLength(hdr.headers); ok {
			cl = &n
		}
		req.Progress(total, cl, true)
	}

	return &Result{Body: body, Headers: hdr.headers}, nil
}

func dial(ctx context.Context, scheme, host string, port int) (net.Conn, error) {
	addr := fmt.Sprintf("%s:%d", host, port)
	dialer := &net.Dialer{Timeout: recvTimeout}

	switch scheme {
	case "https":
		conn, err := tls.DialWithDialer(dialer, "tcp", addr, activeTLSConfig(host))
		if err != nil {
			return nil, &errs.HTTPError{Stage: "handshake", Reason: "tls dial " + addr, Err: err}
		}
		return conn, nil
	case "http":
		conn, err := dialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			return nil, &errs.HTTPError{Stage: "connect", Reason: "dial " + addr, Err: err}
		}
		return conn, nil
	default:
		return nil, &errs.HTTPError{Stage: "connect", Reason: "unknown scheme " + scheme}
	}
}

func sendRequest(conn net.Conn, host, target string) error {
	req := fmt.Sprintf("GET %s HTTP/1.1\r\nHost: %s\r\nConnection: close\r\n\r\n", target, host)
	_ = conn.SetWriteDeadline(time.Now().Add(recvTimeout))
	n, err := conn.Write([]byte(req))
	if err != nil {
		return &errs.HTTPError{Stage: "send", Reason: "write request", Err: err}
	}
	if n != len(req) {
		return &errs.HTTPError{Stage: "send", Reason: "short write"}
	}
	return nil
}

// readUntilHeaderEnd reads from conn into buf until "\r\n\r\n" appears or
// the 8 KiB buffer fills without one. This is the RECV_HEADER stage.
func readUntilHeaderEnd(conn net.Conn, buf []byte) ([]byte, error) {
	chunk := make([]byte, 512)
	for {
		if idx := indexHeaderEnd(buf); idx >= 0 {
			return buf, nil
		}
		if len(buf) >= bufSize {
			return nil, &errs.HTTPError{Stage: "header", Reason: "response header buffer length exceeded"}
		}
		_ = conn.SetReadDeadline(time.Now().Add(recvTimeout))
		n, err := conn.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
		}
		if err != nil {
			if err == io.EOF {
				return nil, &errs.HTTPError{Stage: "header", Reason: "connection closed before headers completed", Err: err}
			}
			return nil, &errs.HTTPError{Stage: "header", Reason: "read response header", Err: err}
		}
	}
}

type sinkFinisher func(success bool) ([]byte, error)

// openSink opens path for writing if given, otherwise prepares an
// in-memory byte accumulator.
func openSink(path string) (io.Writer, sinkFinisher, error) {
	if path == "" {
		buf := &bytes.Buffer{}
		return buf, func(success bool) ([]byte, error) {
			if !success {
				return nil, nil
			}
			return buf.Bytes(), nil
		}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, &errs.PathError{Op: "open", Path: path, Err: err}
	}
	return f, func(success bool) ([]byte, error) {
		closeErr := f.Close()
		if !success {
			return nil, nil
		}
		if closeErr != nil {
			return nil, &errs.PathError{Op: "close", Path: path, Err: closeErr}
		}
		return nil, nil
	}, nil
}
