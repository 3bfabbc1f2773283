package styles

import (
	"github.com/allbin/ttynamed/internal/tui/colors"
	"github.com/charmbracelet/lipgloss"
)

// Theme holds the styles for one output. Styles are created from the
// renderer of that output, so colors are only emitted where supported.
type Theme struct {
	Title lipgloss.Style

	// Listing row styles
	KnownPresent      lipgloss.Style
	KnownAmbiguous    lipgloss.Style
	UnknownPresent    lipgloss.Style
	UnknownIncomplete lipgloss.Style
	KnownMissing      lipgloss.Style

	Header lipgloss.Style
	Border lipgloss.Style
	Cell   lipgloss.Style

	Input lipgloss.Style
	Error lipgloss.Style
	Help  lipgloss.Style
}

// NewTheme creates the styles for r
func NewTheme(r *lipgloss.Renderer) Theme {
	return Theme{
		Title: r.NewStyle().
			Bold(true).
			Foreground(colors.Mauve).
			Padding(0, 1),

		KnownPresent:      r.NewStyle().Foreground(colors.Green),
		KnownAmbiguous:    r.NewStyle().Foreground(colors.Peach).Bold(true),
		UnknownPresent:    r.NewStyle(),
		UnknownIncomplete: r.NewStyle().Foreground(colors.Yellow),
		KnownMissing:      r.NewStyle().Foreground(colors.Red),

		Header: r.NewStyle().
			Bold(true).
			Foreground(colors.Text).
			Padding(0, 1),
		Border: r.NewStyle().Foreground(colors.Surface2),
		Cell:   r.NewStyle().Padding(0, 1),

		Input: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.Surface2).
			Padding(0, 1),
		Error: r.NewStyle().
			Bold(true).
			Foreground(colors.Red),
		Help: r.NewStyle().Foreground(colors.Overlay0),
	}
}

// Status classifies a listing row
type Status int

const (
	StatusKnownPresent Status = iota
	StatusKnownAmbiguous
	StatusUnknownPresent
	StatusUnknownIncomplete
	StatusKnownMissing
)

// StatusStyle returns the style for rows of the given status
func (t Theme) StatusStyle(status Status) lipgloss.Style {
	switch status {
	case StatusKnownPresent:
		return t.KnownPresent
	case StatusKnownAmbiguous:
		return t.KnownAmbiguous
	case StatusUnknownIncomplete:
		return t.UnknownIncomplete
	case StatusKnownMissing:
		return t.KnownMissing
	default:
		return t.UnknownPresent
	}
}
