package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gizzahub/lpmcore/gitwork"
	"github.com/gizzahub/lpmcore/pkg/tui"
	"github.com/gizzahub/lpmcore/sched"
)

var gitCmd = &cobra.Command{
	Use:   "git",
	Short: "Git worker operations: init, fetch, reset, revparse",
}

var gitInitCmd = &cobra.Command{
	Use:   "init <path> <url>",
	Short: "Create a working tree at path with origin pointed at url",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return gitwork.Init(context.Background(), args[0], args[1])
	},
}

var (
	gitFetchRefspec   string
	gitFetchFullDepth bool
	gitFetchJobs      int
)

var gitFetchCmd = &cobra.Command{
	Use:   "fetch <path>...",
	Short: "Fetch from origin, reporting progress, and print each default branch",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runGitFetch,
}

func runGitFetch(cmd *cobra.Command, args []string) error {
	opts := gitwork.FetchOptions{Refspec: gitFetchRefspec, FullDepth: gitFetchFullDepth}

	if len(args) > 1 {
		return runGitFetchPool(args, opts)
	}

	if !quiet && globals.TTY {
		ticks := make(chan tui.Tick, 8)
		program := tui.NewProgressModel("git fetch "+args[0], ticks)
		done := make(chan struct{})
		go func() {
			defer close(done)
			runProgressProgram(program)
		}()

		opts.Progress = func(p gitwork.Progress) {
			total := p.TotalObjects
			ticks <- tui.Tick{
				Stage:   stageForGitProgress(p),
				Current: int64(p.ReceivedObjects),
				Total:   int64(total),
				Done:    p.Done,
			}
		}
		branch, err := gitwork.Fetch(context.Background(), args[0], opts)
		close(ticks)
		<-done
		if err != nil {
			return err
		}
		fmt.Println(branch)
		return nil
	}

	branch, err := gitwork.Fetch(context.Background(), args[0], opts)
	if err != nil {
		return err
	}
	fmt.Println(branch)
	return nil
}

type gitFetchResult struct {
	path   string
	branch string
	err    error
}

// runGitFetchPool drives one gitwork.Fetch per path concurrently through a
// sched.Pool bounded by --jobs. Each job runs under sched.Task, not
// sched.MainTask, so its Progress callback cannot touch the terminal
// directly; instead it Publishes into its own sched.Future and the main
// goroutine periodically Peeks every future to render a status line,
// the pattern gitwork.Fetch's own doc comment describes for Task callers.
func runGitFetchPool(paths []string, opts gitwork.FetchOptions) error {
	pool := sched.NewPool(context.Background(), gitFetchJobs)
	futures := make([]*sched.Future[gitwork.Progress], len(paths))
	results := make([]gitFetchResult, len(paths))

	for i, path := range paths {
		i, path := i, path
		future := &sched.Future[gitwork.Progress]{}
		futures[i] = future

		jobOpts := opts
		jobOpts.Progress = func(p gitwork.Progress) {
			future.Publish(p)
			if p.Done {
				future.Resolve(p)
			}
		}

		pool.Go(func(ctx context.Context) error {
			branch, err := gitwork.Fetch(ctx, path, jobOpts)
			future.Resolve(gitwork.Progress{Done: true})
			results[i] = gitFetchResult{path: path, branch: branch, err: err}
			return err
		})
	}

	poolErr := make(chan error, 1)
	go func() { poolErr <- pool.Wait() }()

	if !quiet && globals.TTY {
		ticker := time.NewTicker(300 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				printGitFetchPoolStatus(paths, futures)
			case err := <-poolErr:
				printGitFetchPoolStatus(paths, futures)
				return summarizeGitFetchPool(results, err)
			}
		}
	}

	err := <-poolErr
	return summarizeGitFetchPool(results, err)
}

func printGitFetchPoolStatus(paths []string, futures []*sched.Future[gitwork.Progress]) {
	for i, path := range paths {
		p := futures[i].Peek()
		state := "fetching"
		if p.Done {
			state = "done"
		}
		fmt.Printf("\r%s: %s (%d/%d objects)\033[K\n", path, state, p.ReceivedObjects, p.TotalObjects)
	}
	fmt.Printf("\033[%dA", len(paths))
}

func summarizeGitFetchPool(results []gitFetchResult, poolErr error) error {
	fmt.Print("\033[0K")
	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.path, r.err))
			continue
		}
		fmt.Printf("%s\t%s\n", r.path, r.branch)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return poolErr
}

func stageForGitProgress(p gitwork.Progress) tui.Stage {
	switch {
	case p.Done:
		return tui.StageDone
	case p.IndexedDeltas > 0:
		return tui.StageResolving
	case p.ReceivedObjects > 0:
		return tui.StageReceiving
	case p.TotalObjects > 0:
		return tui.StageCounting
	default:
		return tui.StageConnecting
	}
}

var (
	gitResetMode string
)

var gitResetCmd = &cobra.Command{
	Use:   "reset <path> <commit-ref>",
	Short: "Reset path's working tree to commit-ref (soft|mixed|hard)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := parseResetMode(gitResetMode)
		if err != nil {
			return err
		}
		return gitwork.Reset(context.Background(), args[0], args[1], mode)
	},
}

func parseResetMode(s string) (gitwork.ResetMode, error) {
	switch s {
	case "", "mixed":
		return gitwork.ResetMixed, nil
	case "soft":
		return gitwork.ResetSoft, nil
	case "hard":
		return gitwork.ResetHard, nil
	default:
		return 0, fmt.Errorf("invalid reset mode %q (want soft|mixed|hard)", s)
	}
}

var gitRevparseCmd = &cobra.Command{
	Use:   "revparse <path> [ref]",
	Short: "Resolve ref (default HEAD) to its 40-hex commit id",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref := "HEAD"
		if len(args) == 2 {
			ref = args[1]
		}
		id, err := gitwork.Revparse(context.Background(), args[0], ref)
		if err != nil {
			return err
		}
		fmt.Println(id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(gitCmd)
	gitCmd.AddCommand(gitInitCmd, gitFetchCmd, gitResetCmd, gitRevparseCmd)

	gitFetchCmd.Flags().StringVar(&gitFetchRefspec, "refspec", "", "refspec to fetch (empty = all remote refs)")
	gitFetchCmd.Flags().BoolVar(&gitFetchFullDepth, "full", false, "disable the default shallow (depth=1) fetch")
	gitFetchCmd.Flags().IntVarP(&gitFetchJobs, "jobs", "j", 4, "max concurrent fetches when multiple paths are given")

	gitResetCmd.Flags().StringVar(&gitResetMode, "mode", "mixed", "reset mode: soft, mixed, or hard")
}
