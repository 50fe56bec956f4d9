// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Stage names a phase of a single fetch operation (git's
// "Counting/Receiving/Resolving" phases, or a plain HTTP download).
// gitwork.Progress and httpfetch.ProgressFunc report counters only; the
// caller picks the Stage from them.
type Stage string

const (
	StageConnecting Stage = "connecting"
	StageCounting   Stage = "counting objects"
	StageReceiving  Stage = "receiving objects"
	StageResolving  Stage = "resolving deltas"
	StageDownload   Stage = "downloading"
	StageDone       Stage = "done"
)

// Tick carries one progress snapshot into the model, sent by whichever
// caller is driving gitwork.Fetch or httpfetch.Get. The host feeds this
// over a channel rather than calling tea.Program.Send concurrently from
// the progress callback itself, keeping Bubble Tea's single-goroutine
// Update contract intact even though the progress callback runs on the
// fetch's goroutine rather than the program's.
type Tick struct {
	Stage     Stage
	Current   int64
	Total     int64 // 0 means unknown (unbounded body or deltaless fetch)
	Done      bool
	Err       error
}

// ProgressModel renders a single fetch or download's progress as a
// header line, a percentage bar (or a plain byte counter when the total
// is unknown), and a footer hint.
type ProgressModel struct {
	title   string
	ticks   <-chan Tick
	last    Tick
	started time.Time
	width   int
	quit    bool
}

// NewProgressModel builds a model that reads Ticks from ch until one
// arrives with Done or Err set, or the user presses q/ctrl-c.
func NewProgressModel(title string, ch <-chan Tick) ProgressModel {
	return ProgressModel{title: title, ticks: ch, started: time.Now()}
}

func (m ProgressModel) Init() tea.Cmd {
	return m.waitForTick()
}

func (m ProgressModel) waitForTick() tea.Cmd {
	return func() tea.Msg {
		t, ok := <-m.ticks
		if !ok {
			return Tick{Stage: StageDone, Done: true}
		}
		return t
	}
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quit = true
			return m, tea.Quit
		}
		return m, nil
	case Tick:
		m.last = msg
		if msg.Done || msg.Err != nil {
			m.quit = true
			return m, tea.Quit
		}
		return m, m.waitForTick()
	}
	return m, nil
}

func (m ProgressModel) View() string {
	if m.width == 0 {
		m.width = 72
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(m.title))
	b.WriteString("\n\n")

	if m.last.Err != nil {
		b.WriteString(UnhealthyStyle.Render("error: " + m.last.Err.Error()))
		b.WriteString("\n")
	} else {
		b.WriteString(renderBar(m.last, m.width-2))
		b.WriteString("\n")
		b.WriteString(SubtleStyle.Render(fmt.Sprintf("%s (%s elapsed)", stageLabel(m.last), time.Since(m.started).Round(time.Second))))
		b.WriteString("\n")
	}

	if !m.quit {
		b.WriteString("\n")
		b.WriteString(SubtleStyle.Render("q to cancel"))
	}
	return b.String()
}

func stageLabel(t Tick) string {
	if t.Stage == "" {
		return string(StageConnecting)
	}
	return string(t.Stage)
}

// renderBar draws a fixed-width progress bar when Total is known, or a
// plain byte counter when it isn't (an unbounded HTTP body, or a git fetch
// stage that never reports a total).
func renderBar(t Tick, width int) string {
	if t.Total <= 0 {
		return fmt.Sprintf("%d bytes", t.Current)
	}
	if width < 10 {
		width = 10
	}
	frac := float64(t.Current) / float64(t.Total)
	if frac > 1 {
		frac = 1
	}
	filled := int(frac * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %3.0f%% (%d/%d)", bar, frac*100, t.Current, t.Total)
}
