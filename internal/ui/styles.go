package ui

import (
	"github.com/charmbracelet/lipgloss"

	"truthlens/internal/presenter"
)

var (
	Muted  = lipgloss.Color("#7f8c8d")
	Border = lipgloss.Color("#bdc3c7")
	Brand  = lipgloss.Color("#6c5ce7")
)

// Styles holds the terminal styles
type Styles struct {
	Card      lipgloss.Style
	Title     lipgloss.Style
	Badge     lipgloss.Style
	Body      lipgloss.Style
	Muted     lipgloss.Style
	Section   lipgloss.Style
	Label     lipgloss.Style
	UserLine  lipgloss.Style
	BotLine   lipgloss.Style
	Option    lipgloss.Style
	Error     lipgloss.Style
	Highlight lipgloss.Style
}

// NewStyles creates the default style set.
func NewStyles() Styles {
	return Styles{
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2),

		Title: lipgloss.NewStyle().
			Bold(true),

		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Bold(true),

		Body: lipgloss.NewStyle(),

		Muted: lipgloss.NewStyle().
			Foreground(Muted),

		Section: lipgloss.NewStyle().
			Foreground(Brand).
			Bold(true).
			MarginTop(1),

		Label: lipgloss.NewStyle().
			Foreground(Muted).
			Width(22),

		UserLine: lipgloss.NewStyle().
			Foreground(Brand).
			Bold(true),

		BotLine: lipgloss.NewStyle().
			PaddingLeft(2).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(Brand),

		Option: lipgloss.NewStyle().
			Foreground(Muted).
			PaddingLeft(4),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0392b")).
			Bold(true),

		Highlight: lipgloss.NewStyle().
			Foreground(Brand),
	}
}

// TierColor is the accent colour for a result tier.
func TierColor(t presenter.Tier) lipgloss.Color {
	return lipgloss.Color(presenter.StyleFor(t).Accent)
}
