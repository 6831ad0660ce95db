package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Catppuccin Mocha.
var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Yellow   = lipgloss.Color("#f9e2af")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(0, 1)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Good  = lipgloss.NewStyle().Foreground(Green)
	Bad   = lipgloss.NewStyle().Foreground(Red)
	Big   = lipgloss.NewStyle().Foreground(Lavender).Bold(true)
)

var shelfColors = map[string]lipgloss.Color{
	"want_to_read": Subtext0,
	"reading":      Sapphire,
	"finished":     Green,
	"abandoned":    Red,
}

// Shelf renders a shelf name in its colour, with underscores as spaces.
func Shelf(shelf string) string {
	c, ok := shelfColors[shelf]
	if !ok {
		c = Text
	}
	return lipgloss.NewStyle().Foreground(c).Render(strings.ReplaceAll(shelf, "_", " "))
}

// Bar renders a horizontal gauge of width cells filled to fraction (clamped to [0,1]).
func Bar(fraction float64, width int) string {
	if width < 1 {
		return ""
	}
	fraction = max(0, min(fraction, 1))
	filled := int(fraction*float64(width) + 0.5)
	return lipgloss.NewStyle().Foreground(Green).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(Surface1).Render(strings.Repeat("░", width-filled))
}
