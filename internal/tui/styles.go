package tui

import (
	"github.com/charmbracelet/lipgloss"

	"factshare/internal/models"
)

// Palette mirrors the web stylesheet.
var (
	colorBackground = lipgloss.Color("#292524")
	colorCard       = lipgloss.Color("#44403c")
	colorMuted      = lipgloss.Color("#a8a29e")
	colorText       = lipgloss.Color("#fafaf9")
	colorDanger     = lipgloss.Color("#ef4444")
	colorAccent     = lipgloss.Color("#eab308")
	colorLink       = lipgloss.Color("#3b82f6")
)

type styles struct {
	Title     lipgloss.Style
	Hint      lipgloss.Style
	Form      lipgloss.Style
	Counter   lipgloss.Style
	Fact      lipgloss.Style
	Selected  lipgloss.Style
	Source    lipgloss.Style
	Disputed  lipgloss.Style
	Votes     lipgloss.Style
	Message   lipgloss.Style
	Status    lipgloss.Style
	Help      lipgloss.Style
	Spinner   lipgloss.Style
	Highlight lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Hint:      lipgloss.NewStyle().Foreground(colorMuted),
		Form:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorCard).Padding(0, 1),
		Counter:   lipgloss.NewStyle().Bold(true),
		Fact:      lipgloss.NewStyle().Foreground(colorText).PaddingLeft(2),
		Selected:  lipgloss.NewStyle().Foreground(colorText).Background(colorCard).PaddingLeft(2),
		Source:    lipgloss.NewStyle().Foreground(colorLink),
		Disputed:  lipgloss.NewStyle().Bold(true).Foreground(colorDanger),
		Votes:     lipgloss.NewStyle().Foreground(colorMuted),
		Message:   lipgloss.NewStyle().Bold(true).Foreground(colorMuted).MarginTop(1),
		Status:    lipgloss.NewStyle().Bold(true).Foreground(colorDanger),
		Help:      lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1),
		Spinner:   lipgloss.NewStyle().Foreground(colorAccent),
		Highlight: lipgloss.NewStyle().Underline(true).Bold(true),
	}
}

// badge renders name on its category color. "all" is black.
func badge(name string) lipgloss.Style {
	fg := colorText
	if models.CategoryColor(name) == models.FallbackColor {
		fg = colorBackground
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(models.CategoryColor(name))).
		Foreground(fg).
		Padding(0, 1)
}
