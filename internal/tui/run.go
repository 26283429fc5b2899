package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/rplmatch/internal/model"
)

// Review shows results in a full-screen table until the user quits or ctx
// is canceled. programOpts are passed to bubbletea, mainly for tests.
func Review(ctx context.Context, results []model.MatchResult, opts []Option, programOpts ...tea.ProgramOption) error {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	programOpts = append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	}, programOpts...)

	p := tea.NewProgram(newModel(results, cfg), programOpts...)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("review screen failed: %w", err)
	}
	return nil
}
