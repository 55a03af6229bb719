// Package report renders scan results and analysis summaries for the
// terminal: plain aligned-column text in the paper tooling's layout,
// optionally styled, plus a markdown form pretty-printed through glamour
// when stdout is a terminal.
package report

import (
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Palette shared with the paper's figures.
var (
	ColorObserved = lipgloss.Color("#3498db") // blue
	ColorModel    = lipgloss.Color("#e74c3c") // red
	ColorCramer   = lipgloss.Color("#27ae60") // green
	ColorRatio    = lipgloss.Color("#9b59b6") // purple
	ColorTwin     = lipgloss.Color("#ffd700") // gold
)

// Styles holds the terminal styles for report output.
type Styles struct {
	Banner  lipgloss.Style
	Section lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Hit     lipgloss.Style
	Twin    lipgloss.Style
	Good    lipgloss.Style
	Bad     lipgloss.Style
}

// DefaultStyles returns the radar report styling.
func DefaultStyles() Styles {
	return Styles{
		Banner:  lipgloss.NewStyle().Bold(true).Foreground(ColorObserved),
		Section: lipgloss.NewStyle().Bold(true),
		Label:   lipgloss.NewStyle().Faint(true),
		Value:   lipgloss.NewStyle().Foreground(ColorObserved),
		Hit:     lipgloss.NewStyle().Foreground(ColorCramer),
		Twin:    lipgloss.NewStyle().Bold(true).Foreground(ColorTwin),
		Good:    lipgloss.NewStyle().Foreground(ColorCramer),
		Bad:     lipgloss.NewStyle().Foreground(ColorModel),
	}
}

// Renderer produces the report surfaces.
type Renderer struct {
	styles Styles
	color  bool
}

// Option customizes a Renderer.
type Option func(*Renderer)

// WithColor forces colored output on or off regardless of TTY detection.
func WithColor(on bool) Option {
	return func(r *Renderer) { r.color = on }
}

// WithStyles overrides the default styles.
func WithStyles(s Styles) Option {
	return func(r *Renderer) { r.styles = s }
}

// New builds a Renderer, detecting terminal capability from stdout.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		styles: DefaultStyles(),
		color:  isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// style applies s when color is enabled, otherwise passes text through.
func (r *Renderer) style(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

// Markdown pretty-prints a markdown document through glamour when the
// renderer is colored; otherwise the raw markdown comes back unchanged.
func (r *Renderer) Markdown(md string) string {
	if !r.color {
		return md
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return md
	}
	out, err := tr.Render(md)
	if err != nil {
		return md
	}
	return out
}
