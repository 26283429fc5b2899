package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/rplmatch/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrNilParameter  = errors.New("parameter cannot be nil")
	ErrInvalidRun    = errors.New("invalid run")
	ErrInvalidResult = errors.New("invalid match result")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRun validates a run before it is written.
func validateRun(run *model.Run) error {
	if run == nil {
		return fmt.Errorf("%w: run", ErrNilParameter)
	}
	if strings.TrimSpace(run.CustomerField) == "" || strings.TrimSpace(run.ReferenceField) == "" {
		return fmt.Errorf("%w: customer and reference fields are required", ErrInvalidRun)
	}
	if run.RecordCount < 0 || run.CandidateCount < 0 {
		return fmt.Errorf("%w: counts cannot be negative", ErrInvalidRun)
	}
	if run.Duration < 0 {
		return fmt.Errorf("%w: duration cannot be negative", ErrInvalidRun)
	}
	return nil
}

// validateResults checks each result's tier, score range and index.
func validateResults(results []model.MatchResult) error {
	seen := make(map[int]struct{}, len(results))
	for i, r := range results {
		if !validTier(r.Tier) {
			return fmt.Errorf("%w at index %d: unknown tier %q", ErrInvalidResult, i, r.Tier)
		}
		if r.Similarity < 0 || r.Similarity > 1 {
			return fmt.Errorf("%w at index %d: similarity %v out of range", ErrInvalidResult, i, r.Similarity)
		}
		if r.SourceIndex < 0 {
			return fmt.Errorf("%w at index %d: negative source index", ErrInvalidResult, i)
		}
		if _, dup := seen[r.SourceIndex]; dup {
			return fmt.Errorf("%w at index %d: duplicate source index %d", ErrInvalidResult, i, r.SourceIndex)
		}
		seen[r.SourceIndex] = struct{}{}
	}
	return nil
}

func validTier(t model.Tier) bool {
	for _, known := range model.Tiers {
		if t == known {
			return true
		}
	}
	return false
}
