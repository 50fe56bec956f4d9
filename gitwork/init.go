package gitwork

import (
	"context"
	"errors"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"

	"github.com/gizzahub/lpmcore/errs"
)

// originRemote is the only remote name gitwork ever creates or reads; the
// worker never needs to address more than one remote per working tree.
const originRemote = "origin"

// Init creates a non-bare repository at path (mkdir-if-absent) and points
// its "origin" remote at url. Calling Init again on an already-initialized
// path with the same url is a no-op; calling it with a different url
// replaces the remote, the same way `git remote set-url` would.
func Init(ctx context.Context, path, url string) error {
	repo, err := git.PlainInitWithOptions(path, &git.PlainInitOptions{
		InitOptions: git.InitOptions{DefaultBranch: "refs/heads/master"},
		Bare:        false,
	})
	if errors.Is(err, git.ErrRepositoryAlreadyExists) {
		repo, err = git.PlainOpen(path)
	}
	if err != nil {
		return &errs.GitError{Op: "init", Path: path, Err: err}
	}

	existing, err := repo.Remote(originRemote)
	switch {
	case errors.Is(err, git.ErrRemoteNotFound):
		_, err = repo.CreateRemote(&config.RemoteConfig{Name: originRemote, URLs: []string{url}})
		if err != nil {
			return &errs.GitError{Op: "init", Path: path, Err: err}
		}
	case err != nil:
		return &errs.GitError{Op: "init", Path: path, Err: err}
	case len(existing.Config().URLs) == 0 || existing.Config().URLs[0] != url:
		if err := repo.DeleteRemote(originRemote); err != nil {
			return &errs.GitError{Op: "init", Path: path, Err: err}
		}
		if _, err := repo.CreateRemote(&config.RemoteConfig{Name: originRemote, URLs: []string{url}}); err != nil {
			return &errs.GitError{Op: "init", Path: path, Err: err}
		}
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
