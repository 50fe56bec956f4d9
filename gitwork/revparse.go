package gitwork

import (
	"context"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/gizzahub/lpmcore/errs"
)

// Revparse resolves ref (a branch name, tag name, short or full hex object
// ID, or a symbolic name like HEAD) to its full 40-character hex object
// ID. Resolution order follows git's own: an exact full hex ID
// short-circuits, otherwise go-git's ResolveRevision tries HEAD,
// refs/heads/<ref>, refs/tags/<ref>, refs/remotes/<ref>, and finally a
// unique abbreviated object ID, in that order.
func Revparse(ctx context.Context, path string, ref string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	repo, err := git.PlainOpen(path)
	if err != nil {
		return "", &errs.GitError{Op: "revparse", Path: path, Err: err}
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return "", &errs.GitError{Op: "revparse", Path: path, Err: err}
	}

	return hash.String(), nil
}
