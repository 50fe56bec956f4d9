package gitwork

import (
	"context"
	"errors"
	"io"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/gizzahub/lpmcore/errs"
)

// Fetch downloads refspec from the repository's "origin" remote and
// returns its default branch. It calls opts.Progress synchronously, on
// whatever goroutine Fetch itself runs on: run from sched.MainTask that
// goroutine is the caller's own, so Progress is a direct call; run from a
// sched.Task it is the task's worker goroutine, and it is the caller's
// responsibility to publish each snapshot through a synchronized holder
// such as sched.Future rather than touch shared state directly from inside
// the callback.
//
// The returned defaultBranch is the remote's HEAD symbolic ref target, the
// same value `git remote show origin` reports as "HEAD branch".
func Fetch(ctx context.Context, path string, opts FetchOptions) (string, error) {
	tracef("fetch %s refspec=%q fullDepth=%v", path, opts.Refspec, opts.FullDepth)

	repo, err := git.PlainOpen(path)
	if err != nil {
		if opts.Progress != nil {
			opts.Progress(Progress{Done: true})
		}
		return "", &errs.GitError{Op: "fetch", Path: path, Err: err}
	}

	refspec := config.RefSpec(opts.Refspec)
	if opts.Refspec == "" {
		refspec = config.RefSpec("+refs/heads/*:refs/remotes/origin/*")
	}

	depth := 1
	if opts.FullDepth {
		depth = 0
	}

	var sink io.Writer
	var sb *progressSink
	if opts.Progress != nil {
		sb = &progressSink{onTick: opts.Progress}
		sink = sb
	}

	fetchErr := repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: originRemote,
		RefSpecs:   []config.RefSpec{refspec},
		Depth:      depth,
		Progress:   sink,
		Tags:       git.AllTags,
	})

	if sb != nil {
		final := sb.snapshot()
		final.Done = true
		opts.Progress(final)
	}

	if fetchErr != nil && !errors.Is(fetchErr, git.NoErrAlreadyUpToDate) {
		return "", &errs.GitError{Op: "fetch", Path: path, Err: fetchErr}
	}

	branch, err := defaultBranch(repo)
	if err != nil {
		return "", &errs.GitError{Op: "fetch", Path: path, Err: err}
	}

	return branch, nil
}

// defaultBranch reads the remote's advertised HEAD symbolic ref, falling
// back to the local repository's own HEAD when the remote didn't advertise
// one (common for fetches against a local bare repository in tests).
func defaultBranch(repo *git.Repository) (string, error) {
	remote, err := repo.Remote(originRemote)
	if err == nil {
		refs, err := remote.List(&git.ListOptions{})
		if err == nil {
			for _, ref := range refs {
				if ref.Name() == plumbing.HEAD && ref.Type() == plumbing.SymbolicReference {
					return ref.Target().Short(), nil
				}
			}
		}
	}

	head, err := repo.Head()
	if err != nil {
		return "", err
	}
	return head.Name().Short(), nil
}
