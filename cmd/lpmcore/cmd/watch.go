package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gizzahub/lpmcore/fsutil"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <path> [paths...]",
	Short: "Watch store directories for changes until interrupted",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 250*time.Millisecond, "coalesce bursts of events on the same path within this window")
}

func runWatch(cmd *cobra.Command, args []string) error {
	w, err := fsutil.Watch(args, watchDebounce)
	if err != nil {
		return err
	}
	defer w.Close()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	if !quiet {
		fmt.Println("watching for changes, press Ctrl+C to stop...")
	}

	for {
		select {
		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			fmt.Printf("%s %s %s\n", ev.Time.Format(time.RFC3339), ev.Op, ev.Path)
		case err, ok := <-w.Errors():
			if !ok {
				continue
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		case <-sig:
			return nil
		}
	}
}
