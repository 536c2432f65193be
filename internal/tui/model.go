package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/carbonfish/logwrap/internal/metrics"
	"github.com/carbonfish/logwrap/internal/stats"
	"github.com/carbonfish/logwrap/internal/timeseries"
)

// tailCapacity bounds the recent-lines ring.
const tailCapacity = 256

// TickMsg is sent periodically to update the display.
type TickMsg time.Time

// LineMsg carries one captured line.
type LineMsg struct {
	Tag    string
	Line   string
	Forced bool
}

// ChildStartedMsg reports that the child is up.
type ChildStartedMsg struct {
	Pid int
}

// ChildExitedMsg reports the reaped child's result.
type ChildExitedMsg struct {
	Result  int
	Summary string // empty for a clean exit
}

// QuitMsg signals the TUI should exit.
type QuitMsg struct{}

// CounterSource provides capture counters.
type CounterSource interface {
	Snapshot() (*metrics.Snapshot, error)
}

// StatsSource provides line statistics.
type StatsSource interface {
	Summarize() stats.Summary
}

// RateSource provides rolling output rates.
type RateSource interface {
	GetStats() timeseries.RateStats
}

// Config holds TUI configuration.
type Config struct {
	Command       string
	MetricsAddr   string
	CounterSource CounterSource
	StatsSource   StatsSource
	RateSource    RateSource
}

// Model represents the TUI state.
type Model struct {
	command     string
	metricsAddr string

	counterSource CounterSource
	statsSource   StatsSource
	rateSource    RateSource

	snapshot     *metrics.Snapshot
	statsSummary stats.Summary
	rates        timeseries.RateStats

	childPid     int
	childRunning bool
	childResult  int
	childSummary string

	tail []tailEntry

	startTime  time.Time
	lastUpdate time.Time

	width  int
	height int

	quitting bool
}

type tailEntry struct {
	tag    string
	line   string
	forced bool
}

// New creates a new TUI model.
func New(cfg Config) Model {
	return Model{
		command:       cfg.Command,
		metricsAddr:   cfg.MetricsAddr,
		counterSource: cfg.CounterSource,
		statsSource:   cfg.StatsSource,
		rateSource:    cfg.RateSource,
		startTime:     time.Now(),
		lastUpdate:    time.Now(),
		width:         80,
		height:        24,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		if m.counterSource != nil {
			if snap, err := m.counterSource.Snapshot(); err == nil {
				m.snapshot = snap
			}
		}
		if m.statsSource != nil {
			m.statsSummary = m.statsSource.Summarize()
		}
		if m.rateSource != nil {
			m.rates = m.rateSource.GetStats()
		}
		m.lastUpdate = time.Now()
		return m, tickCmd()

	case LineMsg:
		m.tail = append(m.tail, tailEntry{tag: msg.Tag, line: msg.Line, forced: msg.Forced})
		if len(m.tail) > tailCapacity {
			m.tail = m.tail[len(m.tail)-tailCapacity:]
		}
		return m, nil

	case ChildStartedMsg:
		m.childPid = msg.Pid
		m.childRunning = true
		return m, nil

	case ChildExitedMsg:
		m.childRunning = false
		m.childResult = msg.Result
		m.childSummary = msg.Summary
		return m, nil

	case QuitMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.render()
}

// tickCmd returns a command that sends a tick after 500ms.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Elapsed returns the time since the wrapper started.
func (m Model) Elapsed() time.Duration {
	return time.Since(m.startTime)
}

// TailLen returns the number of buffered tail lines.
func (m Model) TailLen() int {
	return len(m.tail)
}

// SendLine sends a captured line to the TUI.
func SendLine(p *tea.Program, tag, line string, forced bool) {
	if p != nil {
		p.Send(LineMsg{Tag: tag, Line: line, Forced: forced})
	}
}

// SendChildStarted reports the child pid to the TUI.
func SendChildStarted(p *tea.Program, pid int) {
	if p != nil {
		p.Send(ChildStartedMsg{Pid: pid})
	}
}

// SendChildExited reports the child's result to the TUI.
func SendChildExited(p *tea.Program, result int, summary string) {
	if p != nil {
		p.Send(ChildExitedMsg{Result: result, Summary: summary})
	}
}

// SendQuit sends a quit message to the TUI.
func SendQuit(p *tea.Program) {
	if p != nil {
		p.Send(QuitMsg{})
	}
}

// formatDuration formats a duration as HH:MM:SS.
func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// formatNumber formats a number with K/M suffixes.
func formatNumber(n uint64) string {
	if n >= 1_000_000 {
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	}
	if n >= 1_000 {
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	}
	return fmt.Sprintf("%d", n)
}

// formatBytes formats bytes with KB/MB/GB suffixes.
func formatBytes(n uint64) string {
	if n >= 1_000_000_000 {
		return fmt.Sprintf("%.2f GB", float64(n)/1_000_000_000)
	}
	if n >= 1_000_000 {
		return fmt.Sprintf("%.2f MB", float64(n)/1_000_000)
	}
	if n >= 1_000 {
		return fmt.Sprintf("%.2f KB", float64(n)/1_000)
	}
	return fmt.Sprintf("%d B", n)
}
