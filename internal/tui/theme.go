package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/rplmatch/internal/model"
)

// Theme defines the visual style for the review screen.
type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Selected lipgloss.Style
	Header   lipgloss.Style
	Muted    lipgloss.Style
	Border   lipgloss.Color
	Primary  lipgloss.Color
	Tiers    map[model.Tier]lipgloss.Style
}

// Default is the default theme.
var Default = Theme{
	Primary: lipgloss.Color("#5B8DEF"),
	Border:  lipgloss.Color("#404040"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")),
	Selected: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")).
		Background(lipgloss.Color("#5B8DEF")),
	Header: lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")),

	Tiers: map[model.Tier]lipgloss.Style{
		model.TierHigh:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ef4444")),
		model.TierMedium:  lipgloss.NewStyle().Foreground(lipgloss.Color("#f59e0b")),
		model.TierLow:     lipgloss.NewStyle().Foreground(lipgloss.Color("#3b82f6")),
		model.TierNoMatch: lipgloss.NewStyle().Foreground(lipgloss.Color("#737373")),
	},
}

// tier returns the style for a tier label.
func (t Theme) tier(tier model.Tier) lipgloss.Style {
	if s, ok := t.Tiers[tier]; ok {
		return s
	}
	return t.Muted
}
