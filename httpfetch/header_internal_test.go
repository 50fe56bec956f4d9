package httpfetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeaderWaitsForTerminator(t *testing.T) {
	_, ok, err := parseHeader([]byte("HTTP/1.1 200 OK\r\nContent-Length: 5\r\n"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParseHeaderParsesStatusAndFields(t *testing.T) {
	raw := "HTTP/1.1 200 OK\r\nContent-Length: 5\r\nX-Foo: bar\r\n\r\nhello"
	hdr, ok, err := parseHeader([]byte(raw))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 200, hdr.status)
	assert.Equal(t, "bar", headerValue(hdr.headers, "x-foo"))
	n, present := parseContentLength(hdr.headers)
	assert.True(t, present)
	assert.EqualValues(t, 5, n)
	assert.Equal(t, "hello", raw[hdr.consumed:])
}

func TestParseHeaderDetectsChunkedCaseInsensitive(t *testing.T) {
	hdr, ok, err := parseHeader([]byte("HTTP/1.1 200 OK\r\nTransfer-Encoding: CHUNKED\r\n\r\n"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, isChunked(hdr.headers))
}

func TestParseHeaderRejectsMalformedStatusLine(t *testing.T) {
	_, _, err := parseHeader([]byte("not a status line\r\n\r\n"))
	assert.Error(t, err)
}

func TestParse3xxLocation(t *testing.T) {
	hdr, ok, err := parseHeader([]byte("HTTP/1.1 302 Found\r\nLocation: /new\r\n\r\n"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 302, hdr.status)
	assert.Equal(t, "/new", headerValue(hdr.headers, "Location"))
}

func TestNextChunkSizeParsesHexAndIgnoresExtensions(t *testing.T) {
	size, consumed, ok, err := nextChunkSize([]byte("1a;ext=1\r\nrest"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.EqualValues(t, 0x1a, size)
	assert.Equal(t, "1a;ext=1\r\n", string([]byte("1a;ext=1\r\nrest")[:consumed]))
}

func TestNextChunkSizeZeroTerminatesBody(t *testing.T) {
	size, _, ok, err := nextChunkSize([]byte("0\r\n\r\n"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.EqualValues(t, 0, size)
}

func TestNextChunkSizeWaitsForFullLine(t *testing.T) {
	_, _, ok, err := nextChunkSize([]byte("1a"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNextChunkSizeRejectsMalformedHex(t *testing.T) {
	_, _, _, err := nextChunkSize([]byte("zz\r\n"))
	assert.Error(t, err)
}
