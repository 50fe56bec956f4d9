package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/gizzahub/lpmcore/fsutil"
)

var lockCmd = &cobra.Command{
	Use:   "lock <path> -- <command> [args...]",
	Short: "Hold an advisory lock on path while running command",
	Long: `Acquires an advisory exclusive lock on path (creating a .lock file
inside the directory for a directory path) and runs the given command while the lock is
held, printing a notice if a concurrent holder forces it to wait.`,
	Args:               cobra.MinimumNArgs(2),
	DisableFlagParsing: true,
	RunE:               runLock,
}

func init() {
	rootCmd.AddCommand(lockCmd)
}

func runLock(cmd *cobra.Command, args []string) error {
	path := args[0]
	rest := args[1:]
	if len(rest) > 0 && rest[0] == "--" {
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return fmt.Errorf("lock requires a command to run under the lock")
	}

	return fsutil.Lock(path, func(string) error {
		c := exec.Command(rest[0], rest[1:]...)
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		c.Stdin = os.Stdin
		return c.Run()
	}, nil, func() {
		if !quiet {
			fmt.Fprintf(os.Stderr, "waiting for lock on %s...\n", path)
		}
	})
}
