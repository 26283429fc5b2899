// Package service defines the interfaces shared between application layers.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/rplmatch/internal/model"
)

// Storage defines the contract for the run history persistence layer.
type Storage interface {
	SaveRun(ctx context.Context, run *model.Run, results []model.MatchResult) error
	GetRun(ctx context.Context, id string) (*model.Run, error)
	ListRuns(ctx context.Context, limit int) ([]model.Run, error)
	GetRunResults(ctx context.Context, id string) ([]model.MatchResult, error)
	DeleteRun(ctx context.Context, id string) error

	Migrate(ctx context.Context) error
	Close() error
}

// Summarizer produces a short natural-language data-quality note for a
// handful of match results. Implementations never fail: on any problem
// they return a fallback text instead.
type Summarizer interface {
	Summarize(ctx context.Context, samples []model.MatchResult) string
}

// ReportWriter publishes a tabular report somewhere outside the process.
type ReportWriter interface {
	Write(ctx context.Context, title string, header []string, rows [][]string) error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
