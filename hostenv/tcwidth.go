package hostenv

import (
	"golang.org/x/term"

	"github.com/gizzahub/lpmcore/errs"
)

// TCWidth reports the terminal column width of fd. golang.org/x/term.GetSize
// wraps the platform TIOCGWINSZ/GetConsoleScreenBufferInfo calls directly.
func TCWidth(fd uintptr) (int, error) {
	width, _, err := term.GetSize(int(fd))
	if err != nil {
		return 0, &errs.PathError{Op: "tcwidth", Path: "fd", Err: err}
	}
	return width, nil
}
