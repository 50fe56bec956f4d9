package archive_test

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"

	"github.com/gizzahub/lpmcore/archive"
)

type tarFile struct {
	name string
	mode int64
	body string
}

type tarLink struct {
	name   string
	target string
}

func buildTar(t *testing.T, files []tarFile, links []tarLink) []byte {
	t.Helper()
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)

	for _, f := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     f.name,
			Mode:     f.mode,
			Size:     int64(len(f.body)),
			Typeflag: tar.TypeReg,
		}))
		_, err := tw.Write([]byte(f.body))
		require.NoError(t, err)
	}
	for _, l := range links {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     l.name,
			Linkname: l.target,
			Typeflag: tar.TypeSymlink,
		}))
	}

	require.NoError(t, tw.Close())
	return buf.Bytes()
}

func TestExtractTarGzPreservesModeAndSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink permissions vary on windows CI")
	}

	tarBytes := buildTar(t,
		[]tarFile{{name: "a/b.txt", mode: 0o644, body: "data"}},
		[]tarLink{{name: "a/link", target: "b.txt"}},
	)

	dir := t.TempDir()
	src := filepath.Join(dir, "fixture.tar.gz")
	out, err := os.Create(src)
	require.NoError(t, err)
	gz := gzip.NewWriter(out)
	_, err = gz.Write(tarBytes)
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, out.Close())

	dst := filepath.Join(dir, "out")
	require.NoError(t, archive.Extract(context.Background(), src, dst))

	content, err := os.ReadFile(filepath.Join(dst, "a", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(content))

	info, err := os.Lstat(filepath.Join(dst, "a", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	linkInfo, err := os.Lstat(filepath.Join(dst, "a", "link"))
	require.NoError(t, err)
	assert.True(t, linkInfo.Mode()&os.ModeSymlink != 0)

	target, err := os.Readlink(filepath.Join(dst, "a", "link"))
	require.NoError(t, err)
	assert.Equal(t, "b.txt", target)

	// the intermediate .tar file is removed on success
	_, err = os.Stat(filepath.Join(dir, "fixture.tar"))
	assert.True(t, os.IsNotExist(err))
}

func TestExtractPlainTar(t *testing.T) {
	tarBytes := buildTar(t, []tarFile{{name: "x.txt", mode: 0o600, body: "hi"}}, nil)

	dir := t.TempDir()
	src := filepath.Join(dir, "plain.tar")
	require.NoError(t, os.WriteFile(src, tarBytes, 0o644))

	dst := filepath.Join(dir, "out")
	require.NoError(t, archive.Extract(context.Background(), src, dst))

	content, err := os.ReadFile(filepath.Join(dst, "x.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hi", string(content))
}

func TestExtractZipHonorsEntries(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "fixture.zip")

	f, err := os.Create(src)
	require.NoError(t, err)
	zw := zip.NewWriter(f)

	w, err := zw.Create("nested/file.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("zipped"))
	require.NoError(t, err)

	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	dst := filepath.Join(dir, "out")
	require.NoError(t, archive.Extract(context.Background(), src, dst))

	content, err := os.ReadFile(filepath.Join(dst, "nested", "file.txt"))
	require.NoError(t, err)
	assert.Equal(t, "zipped", string(content))
}

func TestExtractXzConcatenatedStreams(t *testing.T) {
	tarA := buildTar(t, []tarFile{{name: "a.txt", mode: 0o644, body: "AAAA"}}, nil)

	dir := t.TempDir()
	src := filepath.Join(dir, "fixture.tar.xz")
	out, err := os.Create(src)
	require.NoError(t, err)

	// Split the tar across two independent xz streams written back to back.
	half := len(tarA) / 2
	for _, part := range [][]byte{tarA[:half], tarA[half:]} {
		xw, err := xz.NewWriter(out)
		require.NoError(t, err)
		_, err = xw.Write(part)
		require.NoError(t, err)
		require.NoError(t, xw.Close())
	}
	require.NoError(t, out.Close())

	dst := filepath.Join(dir, "out")
	require.NoError(t, archive.Extract(context.Background(), src, dst))

	content, err := os.ReadFile(filepath.Join(dst, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "AAAA", string(content))
}

func TestExtractUnknownFormatFails(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "mystery.bin")
	require.NoError(t, os.WriteFile(src, []byte("nope"), 0o644))

	err := archive.Extract(context.Background(), src, filepath.Join(dir, "out"))
	require.Error(t, err)
}
