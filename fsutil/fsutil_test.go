package fsutil_test

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gizzahub/lpmcore/fsutil"
)

func TestListExcludesDotEntries(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	names, err := fsutil.List(dir)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"a.txt", "sub"}, names)
	for _, n := range names {
		assert.NotEqual(t, ".", n)
		assert.NotEqual(t, "..", n)
	}
}

func TestMkdirCreatesIntermediateDirs(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a", "b", "c")
	require.NoError(t, fsutil.Mkdir(target))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStatReportsSymlinkAndFollowedType(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink permissions vary on windows CI")
	}
	dir := t.TempDir()
	target := filepath.Join(dir, "target.txt")
	require.NoError(t, os.WriteFile(target, []byte("hello"), 0o644))

	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(target, link))

	info, err := fsutil.Stat(link)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, target, info.Symlink)
	assert.Equal(t, fsutil.TypeFile, info.Type)
	assert.EqualValues(t, len("hello"), info.Size)
}

func TestStatMissingReturnsNilNoError(t *testing.T) {
	info, err := fsutil.Stat(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestChdirGetwdRoundTrip(t *testing.T) {
	orig, err := fsutil.Getwd()
	require.NoError(t, err)
	defer func() { _ = fsutil.Chdir(orig) }()

	dir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)

	require.NoError(t, fsutil.Chdir(dir))
	got, err := fsutil.Getwd()
	require.NoError(t, err)
	assert.Equal(t, resolved, got)
}

func TestLockSerializesAccessAndFiresOnWaitOnce(t *testing.T) {
	dir := t.TempDir()
	lockTarget := filepath.Join(dir, "store")
	require.NoError(t, os.Mkdir(lockTarget, 0o755))

	var running int32
	var maxConcurrent int32
	var waitCalls int32

	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(2)

	run := func() {
		defer wg.Done()
		<-start
		err := fsutil.Lock(lockTarget, func(path string) error {
			n := atomic.AddInt32(&running, 1)
			if n > atomic.LoadInt32(&maxConcurrent) {
				atomic.StoreInt32(&maxConcurrent, n)
			}
			time.Sleep(50 * time.Millisecond)
			atomic.AddInt32(&running, -1)
			return nil
		}, nil, func() {
			atomic.AddInt32(&waitCalls, 1)
		})
		assert.NoError(t, err)
	}

	go run()
	go run()
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), maxConcurrent)
	assert.Equal(t, int32(1), atomic.LoadInt32(&waitCalls))
}

func TestLockPropagatesBodyError(t *testing.T) {
	dir := t.TempDir()
	sentinel := assert.AnError

	err := fsutil.Lock(filepath.Join(dir, "f"), func(path string) error {
		return sentinel
	}, nil, nil)

	assert.ErrorIs(t, err, sentinel)
}
