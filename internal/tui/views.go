package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/rplmatch/internal/model"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.theme.Title.Render(m.config.Title),
		m.renderFilterBar(),
	}

	if len(m.visible) == 0 {
		sections = append(sections, m.theme.Muted.Render(m.emptyMessage()))
	} else {
		sections = append(sections, m.table.View())
	}

	if m.config.ShowHelp {
		sections = append(sections, m.help.View(m.keymap))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderFilterBar lists each tier with its count and marks the active filter.
func (m Model) renderFilterBar() string {
	active, filtered := m.Filter()

	parts := make([]string, 0, len(model.Tiers)+1)
	all := fmt.Sprintf("All %d", len(m.results))
	if !filtered {
		all = "[" + all + "]"
	}
	parts = append(parts, m.theme.Subtitle.Render(all))

	for _, tier := range model.Tiers {
		label := fmt.Sprintf("%s %d", tier, m.counts[tier])
		if filtered && tier == active {
			label = "[" + label + "]"
		}
		parts = append(parts, m.theme.tier(tier).Render(label))
	}

	return strings.Join(parts, "  ")
}

func (m Model) emptyMessage() string {
	if tier, ok := m.Filter(); ok {
		return fmt.Sprintf("No %s results. Press f to change the filter.", tier)
	}
	return "No results."
}
