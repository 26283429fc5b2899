package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/rplmatch/internal/model"
)

// allTiers is the filter position that shows every result.
const allTiers = -1

// chrome is the number of lines used around the table by the title,
// filter bar and help line.
const chrome = 6

// Model is the review screen state.
type Model struct {
	theme    Theme
	config   Config
	keymap   KeyMap
	help     help.Model
	table    table.Model
	counts   map[model.Tier]int
	results  []model.MatchResult
	visible  []model.MatchResult
	filter   int
	width    int
	height   int
	quitting bool
}

// newModel creates a review model over results.
func newModel(results []model.MatchResult, cfg Config) Model {
	t := table.New(
		table.WithColumns(columnsFor(cfg.Width)),
		table.WithFocused(true),
		table.WithHeight(max(cfg.Height-chrome, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(cfg.Theme.Border).
		BorderBottom(true).
		Bold(true)
	s.Selected = cfg.Theme.Selected
	t.SetStyles(s)

	counts := make(map[model.Tier]int, len(model.Tiers))
	for _, r := range results {
		counts[r.Tier]++
	}

	m := Model{
		theme:   cfg.Theme,
		config:  cfg,
		keymap:  DefaultKeyMap(),
		help:    help.New(),
		table:   t,
		counts:  counts,
		results: results,
		filter:  allTiers,
		width:   cfg.Width,
		height:  cfg.Height,
	}
	m.applyFilter()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit), key.Matches(msg, m.keymap.ForceQuit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Filter):
			m.cycleFilter()
			return m, nil
		case key.Matches(msg, m.keymap.ToggleHelp):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Filter returns the tier currently shown and whether a filter is active.
func (m Model) Filter() (model.Tier, bool) {
	if m.filter == allTiers {
		return "", false
	}
	return model.Tiers[m.filter], true
}

// Visible returns the results that pass the current filter.
func (m Model) Visible() []model.MatchResult {
	return m.visible
}

// cycleFilter advances all → High → Medium → Low → No Match → all.
func (m *Model) cycleFilter() {
	m.filter++
	if m.filter >= len(model.Tiers) {
		m.filter = allTiers
	}
	m.applyFilter()
}

func (m *Model) applyFilter() {
	tier, filtered := m.Filter()

	visible := make([]model.MatchResult, 0, len(m.results))
	for _, r := range m.results {
		if !filtered || r.Tier == tier {
			visible = append(visible, r)
		}
	}
	m.visible = visible

	rows := make([]table.Row, len(m.visible))
	for i, r := range m.visible {
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.SourceIndex+1),
			r.CustomerText,
			r.MatchedReferenceText,
			fmt.Sprintf("%.2f%%", r.SimilarityPercent),
			string(r.Tier),
		}
	}
	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

// handleResize adjusts the table when the terminal resizes.
func (m *Model) handleResize() {
	m.table.SetColumns(columnsFor(m.width))
	m.table.SetWidth(m.width)
	m.table.SetHeight(max(m.height-chrome, 3))
	m.help.Width = m.width
}

// columnsFor splits width between the two text columns.
func columnsFor(width int) []table.Column {
	const fixed = 6 + 12 + 10 + 10 // #, similarity, confidence and cell padding
	text := max((width-fixed)/2, 12)
	return []table.Column{
		{Title: "#", Width: 6},
		{Title: "Customer", Width: text},
		{Title: "Matched RPL", Width: text},
		{Title: "Similarity", Width: 12},
		{Title: "Confidence", Width: 10},
	}
}
