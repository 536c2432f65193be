// Package tui provides a live terminal dashboard for a wrapped child
// process.
//
// The TUI uses Bubble Tea for the application framework and Lipgloss
// for styling. It displays:
// - Child state (pid, uptime, exit summary)
// - Capture counters (lines, bytes, forced flushes)
// - Line statistics quantiles
// - A tail of recently captured lines
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors based on a modern dark theme
var (
	colorPrimary   = lipgloss.Color("#7C3AED") // Purple
	colorSecondary = lipgloss.Color("#06B6D4") // Cyan

	colorSuccess = lipgloss.Color("#10B981") // Green
	colorWarning = lipgloss.Color("#F59E0B") // Amber
	colorError   = lipgloss.Color("#EF4444") // Red

	colorText      = lipgloss.Color("#E5E7EB") // Light gray
	colorTextMuted = lipgloss.Color("#9CA3AF") // Medium gray
	colorTextDim   = lipgloss.Color("#6B7280") // Dark gray
	colorBorder    = lipgloss.Color("#374151") // Border gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorPrimary).
			Bold(true).
			Padding(0, 1).
			MarginBottom(1)

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(colorSecondary).
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(colorBorder).
				MarginTop(1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted).
			MarginTop(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted).
			Width(18)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	valueGoodStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	valueWarnStyle = lipgloss.NewStyle().
			Foreground(colorWarning).
			Bold(true)

	valueBadStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	tagStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	tailLineStyle = lipgloss.NewStyle().
			Foreground(colorText)

	tailDimStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)
)

// statusStyle picks a value style for a child state string.
func statusStyle(running bool, result int) lipgloss.Style {
	switch {
	case running:
		return valueGoodStyle
	case result == 0:
		return valueGoodStyle
	case result < 0:
		return valueBadStyle
	default:
		return valueWarnStyle
	}
}
