package httpfetch_test

import (
	"context"
	"net"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gizzahub/lpmcore/errs"
	"github.com/gizzahub/lpmcore/httpfetch"
)

// serveOnce starts a listener that writes raw, accepting exactly one
// connection and writing response verbatim (ignoring the request),
// letting tests exercise the wire parser against exact byte sequences
// instead of net/http server behavior.
func serveOnce(t *testing.T, response string) (host string, port int) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		defer ln.Close()

		buf := make([]byte, 4096)
		_, _ = conn.Read(buf) // drain the request line
		_, _ = conn.Write([]byte(response))
	}()

	addr := ln.Addr().(*net.TCPAddr)
	return "127.0.0.1", addr.Port
}

func TestGetFixedLengthBody(t *testing.T) {
	host, port := serveOnce(t, "HTTP/1.1 200 OK\r\nContent-Length: 5\r\n\r\nhello")

	var lastTotal int64
	result, err := httpfetch.Get(context.Background(), httpfetch.Request{
		Scheme: "http", Host: host, Port: port, Target: "/",
		Progress: func(downloaded int64, contentLength *int64, done bool) {
			lastTotal = downloaded
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "hello", string(result.Body))
	assert.EqualValues(t, 5, lastTotal)
}

func TestGetZeroLengthBody(t *testing.T) {
	host, port := serveOnce(t, "HTTP/1.1 200 OK\r\nContent-Length: 0\r\n\r\n")

	result, err := httpfetch.Get(context.Background(), httpfetch.Request{
		Scheme: "http", Host: host, Port: port, Target: "/",
	})
	require.NoError(t, err)
	assert.Equal(t, "", string(result.Body))
}

func TestGetChunkedSingleZeroChunk(t *testing.T) {
	host, port := serveOnce(t, "HTTP/1.1 200 OK\r\nTransfer-Encoding: chunked\r\n\r\n0\r\n\r\n")

	result, err := httpfetch.Get(context.Background(), httpfetch.Request{
		Scheme: "http", Host: host, Port: port, Target: "/",
	})
	require.NoError(t, err)
	assert.Equal(t, "", string(result.Body))
}

func TestGetChunkedMultipleChunks(t *testing.T) {
	host, port := serveOnce(t, "HTTP/1.1 200 OK\r\nTransfer-Encoding: chunked\r\n\r\n4\r\nWiki\r\n5\r\npedia\r\n0\r\n\r\n")

	result, err := httpfetch.Get(context.Background(), httpfetch.Request{
		Scheme: "http", Host: host, Port: port, Target: "/",
	})
	require.NoError(t, err)
	assert.Equal(t, "Wikipedia", string(result.Body))
}

func TestGetRedirectReturnsLocationNotError(t *testing.T) {
	host, port := serveOnce(t, "HTTP/1.1 302 Found\r\nLocation: /new\r\n\r\n")

	result, err := httpfetch.Get(context.Background(), httpfetch.Request{
		Scheme: "http", Host: host, Port: port, Target: "/moved",
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "/new", result.Location)
	assert.Nil(t, result.Body)
}

func TestGetNon200StatusIsError(t *testing.T) {
	host, port := serveOnce(t, "HTTP/1.1 500 Internal Server Error\r\nContent-Length: 0\r\n\r\n")

	_, err := httpfetch.Get(context.Background(), httpfetch.Request{
		Scheme: "http", Host: host, Port: port, Target: "/",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, &errs.HTTPError{})
	assert.Contains(t, err.Error(), "500")
}

func TestGetHeaderBufferOverflowFails(t *testing.T) {
	huge := "HTTP/1.1 200 OK\r\n" + strings.Repeat("X-Pad: "+strconv.Itoa(1)+"\r\n", 2000)
	host, port := serveOnce(t, huge)

	_, err := httpfetch.Get(context.Background(), httpfetch.Request{
		Scheme: "http", Host: host, Port: port, Target: "/",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "buffer length exceeded")
}

func TestGetToSinkFile(t *testing.T) {
	host, port := serveOnce(t, "HTTP/1.1 200 OK\r\nContent-Length: 5\r\n\r\nhello")

	dir := t.TempDir()
	sink := dir + "/out.bin"

	result, err := httpfetch.Get(context.Background(), httpfetch.Request{
		Scheme: "http", Host: host, Port: port, Target: "/", SinkPath: sink,
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Nil(t, result.Body)

	content, err := os.ReadFile(sink)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
}
