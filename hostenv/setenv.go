package hostenv

import (
	"os"

	"github.com/gizzahub/lpmcore/errs"
)

// SetEnv sets a process environment variable. It is a thin os.Setenv
// wrapper with no extra validation.
func SetEnv(key, value string) error {
	if err := os.Setenv(key, value); err != nil {
		return &errs.PathError{Op: "setenv", Path: key, Err: err}
	}
	return nil
}
