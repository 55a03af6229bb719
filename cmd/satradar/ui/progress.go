package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"satradar/internal/scan"
)

// ProgressMsg carries one live runner snapshot into the sweep display.
type ProgressMsg scan.Progress

// DoneMsg ends the sweep display with the merged totals.
type DoneMsg struct {
	Totals scan.Totals
	Err    error
}

// recentHitLines bounds the rolling hit log under the counters.
const recentHitLines = 5

// SweepModel renders a live satellite sweep: spinner, progress bar,
// counters and the most recent hits.
type SweepModel struct {
	spinner  spinner.Model
	progress progress.Model
	styles   Styles

	width int

	total      int
	completed  int
	satellites int
	twins      int
	lastBase   string
	recent     []string

	start   time.Time
	done    bool
	aborted bool
	err     error
	totals  scan.Totals
}

// NewSweepModel sizes the display for a sweep over total bases.
func NewSweepModel(total int) SweepModel {
	styles := DefaultStyles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	return SweepModel{
		spinner:  sp,
		progress: progress.New(progress.WithDefaultGradient()),
		styles:   styles,
		width:    80,
		total:    total,
		start:    time.Now(),
	}
}

// Aborted reports whether the user quit before the sweep finished.
func (m SweepModel) Aborted() bool {
	return m.aborted
}

// Init starts the spinner.
func (m SweepModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages.
func (m SweepModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			w := msg.Width - 8
			if w < 10 {
				w = 10
			}
			m.progress.Width = w
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.aborted = true
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ProgressMsg:
		m.completed = msg.Completed
		m.satellites = msg.Satellites
		m.twins = msg.Twins
		if msg.Base != nil {
			m.lastBase = msg.Base.String()
		}
		if msg.Hit != nil {
			line := fmt.Sprintf("n = %s  k = %d", m.lastBase, msg.Hit.K)
			if msg.Hit.Twin {
				line = m.styles.TwinHit.Render(line + "  TWIN (P, P-2)")
			} else {
				line = m.styles.Hit.Render(line)
			}
			m.recent = append(m.recent, line)
			if len(m.recent) > recentHitLines {
				m.recent = m.recent[len(m.recent)-recentHitLines:]
			}
		}
		return m, nil

	case DoneMsg:
		m.done = true
		m.totals = msg.Totals
		m.err = msg.Err
		return m, tea.Quit
	}

	return m, nil
}

// View renders the sweep display.
func (m SweepModel) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Header.Render(" SATELLITE RADAR ") + "\n\n")

	ratio := 0.0
	if m.total > 0 {
		ratio = float64(m.completed) / float64(m.total)
	}

	if m.done {
		status := m.styles.Success.Render("sweep complete")
		if m.err != nil {
			status = m.styles.Error.Render(fmt.Sprintf("sweep failed: %v", m.err))
		}
		sb.WriteString(status + "\n\n")
	} else {
		base := m.lastBase
		if base == "" {
			base = "…"
		}
		sb.WriteString(fmt.Sprintf("%s sweeping n = %s\n\n",
			m.spinner.View(), m.styles.Value.Render(base)))
	}

	sb.WriteString(m.progress.ViewAs(ratio) + "\n\n")

	rate := 0.0
	if mins := time.Since(m.start).Minutes(); mins > 0 {
		rate = float64(m.completed) / mins
	}
	counters := fmt.Sprintf("Stars %d/%d   Satellites %d   Twins %d   %.1f stars/min",
		m.completed, m.total, m.satellites, m.twins, rate)
	sb.WriteString(m.styles.Value.Render(counters) + "\n")

	if len(m.recent) > 0 {
		sb.WriteString("\n" + m.styles.Label.Render("Recent satellites:") + "\n")
		for _, line := range m.recent {
			sb.WriteString("  " + line + "\n")
		}
	}

	if !m.done {
		sb.WriteString("\n" + m.styles.Muted.Render("q to abort") + "\n")
	}

	return sb.String()
}
