package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gizzahub/lpmcore/pkg/tui"
)

// runProgressProgram drives a tui.ProgressModel to completion on the
// current terminal. Errors starting the Bubble Tea program are reported
// but never abort the underlying fetch, which is already running
// concurrently on its own goroutine.
func runProgressProgram(model tui.ProgressModel) {
	if _, err := tea.NewProgram(model).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "progress display error: %v\n", err)
	}
}
