package gitwork_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	"github.com/gizzahub/lpmcore/gitwork"
)

// newUpstream creates a plain (non-bare) repository with a single commit on
// branch "master" and returns its path, which Init/Fetch below address
// directly as a local remote via the go-git "file" transport.
func newUpstream(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	file := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(file, []byte("hello\n"), 0o644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("README.md")
	require.NoError(t, err)

	_, err = wt.Commit("initial commit", &git.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "tester@example.com", When: fixedTime},
	})
	require.NoError(t, err)

	return dir
}

var fixedTime = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestInitCreatesRepoAndRemote(t *testing.T) {
	upstream := newUpstream(t)
	dst := t.TempDir()

	ctx := context.Background()
	require.NoError(t, gitwork.Init(ctx, dst, upstream))

	repo, err := git.PlainOpen(dst)
	require.NoError(t, err)

	remote, err := repo.Remote("origin")
	require.NoError(t, err)
	require.Equal(t, []string{upstream}, remote.Config().URLs)
}

func TestInitIsIdempotentAndUpdatesURL(t *testing.T) {
	upstream := newUpstream(t)
	other := newUpstream(t)
	dst := t.TempDir()
	ctx := context.Background()

	require.NoError(t, gitwork.Init(ctx, dst, upstream))
	require.NoError(t, gitwork.Init(ctx, dst, upstream))
	require.NoError(t, gitwork.Init(ctx, dst, other))

	repo, err := git.PlainOpen(dst)
	require.NoError(t, err)
	remote, err := repo.Remote("origin")
	require.NoError(t, err)
	require.Equal(t, []string{other}, remote.Config().URLs)
}

func TestFetchReturnsDefaultBranchAndReportsProgress(t *testing.T) {
	upstream := newUpstream(t)
	dst := t.TempDir()
	ctx := context.Background()

	require.NoError(t, gitwork.Init(ctx, dst, upstream))

	var ticks []gitwork.Progress
	branch, err := gitwork.Fetch(ctx, dst, gitwork.FetchOptions{
		FullDepth: true,
		Progress: func(p gitwork.Progress) {
			ticks = append(ticks, p)
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, branch)

	require.NotEmpty(t, ticks)
	require.True(t, ticks[len(ticks)-1].Done)
}

func TestRevparseResolvesHeadAndShortHash(t *testing.T) {
	upstream := newUpstream(t)
	dst := t.TempDir()
	ctx := context.Background()

	require.NoError(t, gitwork.Init(ctx, dst, upstream))
	_, err := gitwork.Fetch(ctx, dst, gitwork.FetchOptions{FullDepth: true})
	require.NoError(t, err)

	upstreamRepo, err := git.PlainOpen(upstream)
	require.NoError(t, err)
	head, err := upstreamRepo.Head()
	require.NoError(t, err)

	resolved, err := gitwork.Revparse(ctx, dst, head.Hash().String())
	require.NoError(t, err)
	require.Equal(t, head.Hash().String(), resolved)

	resolvedShort, err := gitwork.Revparse(ctx, dst, head.Hash().String()[:10])
	require.NoError(t, err)
	require.Equal(t, head.Hash().String(), resolvedShort)
}

func TestResetHardDiscardsWorkingTreeChanges(t *testing.T) {
	upstream := newUpstream(t)
	dst := t.TempDir()
	ctx := context.Background()

	require.NoError(t, gitwork.Init(ctx, dst, upstream))
	_, err := gitwork.Fetch(ctx, dst, gitwork.FetchOptions{FullDepth: true})
	require.NoError(t, err)

	upstreamRepo, err := git.PlainOpen(upstream)
	require.NoError(t, err)
	head, err := upstreamRepo.Head()
	require.NoError(t, err)

	repo, err := git.PlainOpen(dst)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, wt.Reset(&git.ResetOptions{Commit: head.Hash(), Mode: git.HardReset}))

	scratch := filepath.Join(dst, "README.md")
	require.NoError(t, os.WriteFile(scratch, []byte("dirty\n"), 0o644))

	require.NoError(t, gitwork.Reset(ctx, dst, head.Hash().String(), gitwork.ResetHard))

	content, err := os.ReadFile(scratch)
	require.NoError(t, err)
	require.Equal(t, "hello\n", string(content))
}
