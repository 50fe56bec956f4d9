// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package tui provides a Bubble Tea progress display for a single git
// fetch or HTTP download, plus the lipgloss styles it renders with.
package tui
