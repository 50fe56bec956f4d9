package gitwork

import (
	"context"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/gizzahub/lpmcore/errs"
)

// gitResetMode maps ResetMode to go-git's ResetMode, which uses the same
// three-way soft/mixed/hard vocabulary as the command-line tool.
func (m ResetMode) gitResetMode() git.ResetMode {
	switch m {
	case ResetSoft:
		return git.SoftReset
	case ResetHard:
		return git.HardReset
	default:
		return git.MixedReset
	}
}

// Reset resolves commitRef (full hex, unique abbreviated hex, or a symbolic
// ref) and resets the working tree's HEAD to it with the given strategy.
// Hard reset also discards any uncommitted change to a tracked file; soft
// leaves the working tree and index untouched.
func Reset(ctx context.Context, path, commitRef string, mode ResetMode) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	repo, err := git.PlainOpen(path)
	if err != nil {
		return &errs.GitError{Op: "reset", Path: path, Err: err}
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(commitRef))
	if err != nil {
		return &errs.GitError{Op: "reset", Path: path, Err: err}
	}

	wt, err := repo.Worktree()
	if err != nil {
		return &errs.GitError{Op: "reset", Path: path, Err: err}
	}

	if err := wt.Reset(&git.ResetOptions{Commit: *hash, Mode: mode.gitResetMode()}); err != nil {
		return &errs.GitError{Op: "reset", Path: path, Err: err}
	}

	return nil
}
