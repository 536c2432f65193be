package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// render builds the full dashboard.
func (m Model) render() string {
	var sections []string

	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderChild())
	sections = append(sections, m.renderCounters())
	sections = append(sections, m.renderLineStats())
	sections = append(sections, m.renderTail())
	sections = append(sections, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	header := fmt.Sprintf(" logwrap │ %s │ Elapsed: %s ",
		m.command, formatDuration(m.Elapsed()))
	return headerStyle.Render(header)
}

func (m Model) renderChild() string {
	var rows []string
	rows = append(rows, sectionHeaderStyle.Render("Child"))

	state := "waiting"
	if m.childRunning {
		state = fmt.Sprintf("running (pid %d)", m.childPid)
	} else if m.childPid != 0 {
		state = fmt.Sprintf("exited (result %d)", m.childResult)
	}
	rows = append(rows, labelStyle.Render("State")+
		statusStyle(m.childRunning, m.childResult).Render(state))

	if m.childSummary != "" {
		rows = append(rows, labelStyle.Render("Summary")+
			valueWarnStyle.Render(m.childSummary))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderCounters() string {
	var rows []string
	rows = append(rows, sectionHeaderStyle.Render("Capture"))

	if m.snapshot == nil {
		rows = append(rows, tailDimStyle.Render("gathering..."))
		return lipgloss.JoinVertical(lipgloss.Left, rows...)
	}

	rows = append(rows,
		labelStyle.Render("Lines")+valueStyle.Render(formatNumber(m.snapshot.Lines)),
		labelStyle.Render("Bytes")+valueStyle.Render(formatBytes(m.snapshot.Bytes)),
	)

	flushStyle := valueStyle
	if m.snapshot.ForcedFlushes > 0 {
		flushStyle = valueWarnStyle
	}
	rows = append(rows,
		labelStyle.Render("Forced flushes")+flushStyle.Render(formatNumber(m.snapshot.ForcedFlushes)))

	if m.rateSource != nil {
		rows = append(rows,
			labelStyle.Render("Rate 1s/10s")+valueStyle.Render(
				fmt.Sprintf("%.1f / %.1f lines/s", m.rates.Lines1s, m.rates.Lines10s)),
			labelStyle.Render("Throughput")+valueStyle.Render(
				fmt.Sprintf("%s/s", formatBytes(uint64(m.rates.Bytes10s)))),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderLineStats() string {
	var rows []string
	rows = append(rows, sectionHeaderStyle.Render("Line Stats"))

	s := m.statsSummary
	if s.Lines == 0 {
		rows = append(rows, tailDimStyle.Render("no lines yet"))
		return lipgloss.JoinVertical(lipgloss.Left, rows...)
	}

	rows = append(rows,
		labelStyle.Render("Length p50/p95/p99")+valueStyle.Render(
			fmt.Sprintf("%.0f / %.0f / %.0f B", s.LineLenP50, s.LineLenP95, s.LineLenP99)),
		labelStyle.Render("Length min/avg/max")+valueStyle.Render(
			fmt.Sprintf("%d / %.1f / %d B", s.MinLineLen, s.AvgLineLen, s.MaxLineLen)),
	)
	if s.GapP50 > 0 || s.GapP95 > 0 {
		rows = append(rows,
			labelStyle.Render("Gap p50/p95")+valueStyle.Render(
				fmt.Sprintf("%s / %s", s.GapP50.Round(gapPrecision(s.GapP50)), s.GapP95.Round(gapPrecision(s.GapP95)))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderTail() string {
	var rows []string
	rows = append(rows, sectionHeaderStyle.Render("Tail"))

	visible := m.tailWindow()
	if len(visible) == 0 {
		rows = append(rows, tailDimStyle.Render("(no output)"))
		return lipgloss.JoinVertical(lipgloss.Left, rows...)
	}

	for _, entry := range visible {
		line := entry.line
		if max := m.width - len(entry.tag) - 4; max > 8 && len(line) > max {
			line = line[:max-3] + "..."
		}
		style := tailLineStyle
		if entry.forced {
			style = valueWarnStyle
		}
		rows = append(rows, tagStyle.Render(entry.tag+": ")+style.Render(line))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// tailWindow returns the lines that fit under the fixed sections.
func (m Model) tailWindow() []tailEntry {
	// Header, child, counters, stats and footer take roughly 14 rows.
	avail := m.height - 14
	if avail < 3 {
		avail = 3
	}
	if len(m.tail) <= avail {
		return m.tail
	}
	return m.tail[len(m.tail)-avail:]
}

func (m Model) renderFooter() string {
	parts := []string{"q: quit"}
	if m.metricsAddr != "" {
		parts = append(parts, "metrics: http://"+m.metricsAddr+"/metrics")
	}
	return footerStyle.Render(" " + strings.Join(parts, " │ ") + " ")
}

func gapPrecision(d time.Duration) time.Duration {
	switch {
	case d >= time.Second:
		return 10 * time.Millisecond
	case d >= time.Millisecond:
		return 10 * time.Microsecond
	default:
		return 100 * time.Nanosecond
	}
}
