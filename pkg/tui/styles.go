// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package tui

import "github.com/charmbracelet/lipgloss"

var (
	// HeaderStyle renders the title line above a progress bar.
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	// UnhealthyStyle renders an error line when a fetch or download fails.
	UnhealthyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	// SubtleStyle renders the footer hint and stage/elapsed-time line.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)
