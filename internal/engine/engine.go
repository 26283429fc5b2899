// Package engine drives batch matching of customer records against a
// restricted party list.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/Veraticus/rplmatch/internal/fuzzy"
	"github.com/Veraticus/rplmatch/internal/model"
)

// Caller contract violations. A run that hits one of these fails immediately.
var (
	ErrNilSession      = errors.New("session is required")
	ErrSessionStarted  = errors.New("session has already been run")
	ErrInvalidSelector = errors.New("customer and reference fields are required")
	ErrUnknownField    = errors.New("field not present in any record")
)

// ProgressFunc receives the rounded percentage of records processed. It is
// called once per record, never concurrently, with non-decreasing values.
type ProgressFunc func(percent int)

// CheckpointFunc is invoked every Options.CheckpointInterval records with the
// number processed so far. Returning an error aborts the run.
type CheckpointFunc func(ctx context.Context, processed int) error

// Options configures a Matcher.
type Options struct {
	Checkpoint         CheckpointFunc
	Workers            int // Records evaluated concurrently; 1 keeps strict sequential order
	CheckpointInterval int // Records between Checkpoint calls
}

// DefaultOptions returns sequential matching with a checkpoint every 100 records.
func DefaultOptions() Options {
	return Options{
		Workers:            1,
		CheckpointInterval: 100,
	}
}

// Matcher runs sessions. It holds no per-run state and may run many
// sessions, one at a time or concurrently.
type Matcher struct {
	opts Options
}

// New creates a Matcher, filling unset options with defaults.
func New(opts Options) *Matcher {
	defaults := DefaultOptions()
	if opts.Workers <= 0 {
		opts.Workers = defaults.Workers
	}
	if opts.CheckpointInterval <= 0 {
		opts.CheckpointInterval = defaults.CheckpointInterval
	}
	return &Matcher{opts: opts}
}

// Match matches every record's customerField against the distinct values of
// referenceField and returns one result per record in input order.
func (m *Matcher) Match(ctx context.Context, records []model.Record, customerField, referenceField string, onProgress ProgressFunc) ([]model.MatchResult, error) {
	session := NewSession(records, model.FieldSelector{
		CustomerField:  customerField,
		ReferenceField: referenceField,
	})
	if err := m.Run(ctx, session, onProgress); err != nil {
		return nil, err
	}
	return session.Results, nil
}

// Run executes session. On success the session is Completed and holds the
// full result sequence; on any error it is Failed and holds no results.
func (m *Matcher) Run(ctx context.Context, session *Session, onProgress ProgressFunc) error {
	if session == nil {
		return ErrNilSession
	}
	if session.state != StateIdle {
		return ErrSessionStarted
	}

	session.start()

	if err := validateSelector(session.Records, session.Selector); err != nil {
		return session.fail(err)
	}

	refs := make([]string, len(session.Records))
	for i, rec := range session.Records {
		refs[i] = rec.Text(session.Selector.ReferenceField)
	}
	session.Candidates = fuzzy.NewCandidateSet(refs)

	slog.Info("Starting match run",
		"session_id", session.ID,
		"records", len(session.Records),
		"candidates", session.Candidates.Len(),
		"customer_field", session.Selector.CustomerField,
		"reference_field", session.Selector.ReferenceField,
		"workers", m.opts.Workers)

	if session.Candidates.Len() == 0 && len(session.Records) > 0 {
		slog.Warn("Reference field has no usable values, every record will be unmatched",
			"reference_field", session.Selector.ReferenceField)
	}

	var (
		results []model.MatchResult
		err     error
	)
	if m.opts.Workers > 1 && len(session.Records) > 1 {
		results, err = m.runParallel(ctx, session, onProgress)
	} else {
		results, err = m.runSequential(ctx, session, onProgress)
	}
	if err != nil {
		slog.Warn("Match run aborted", "session_id", session.ID, "error", err)
		return session.fail(err)
	}

	if len(results) == 0 {
		session.Progress = progressPercent(0, 0)
	}
	session.complete(results)

	slog.Info("Match run completed",
		"session_id", session.ID,
		"records", len(results),
		"duration", session.Duration())

	return nil
}

func (m *Matcher) runSequential(ctx context.Context, session *Session, onProgress ProgressFunc) ([]model.MatchResult, error) {
	total := len(session.Records)
	results := make([]model.MatchResult, total)
	sel := fuzzy.NewSelector(session.Candidates)

	for i, rec := range session.Records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results[i] = matchRecord(sel, rec, session.Selector, i)
		if err := m.advance(ctx, session, i+1, total, onProgress); err != nil {
			return nil, err
		}
	}

	return results, nil
}

// advance records that processed of total records are done, reports
// progress and runs the checkpoint when one is due.
func (m *Matcher) advance(ctx context.Context, session *Session, processed, total int, onProgress ProgressFunc) error {
	session.Progress = progressPercent(processed, total)
	if onProgress != nil {
		onProgress(session.Progress)
	}

	if processed%m.opts.CheckpointInterval != 0 {
		return nil
	}

	slog.Debug("match checkpoint",
		"session_id", session.ID,
		"processed", processed,
		"total", total)

	if m.opts.Checkpoint != nil {
		if err := m.opts.Checkpoint(ctx, processed); err != nil {
			return fmt.Errorf("checkpoint at record %d: %w", processed, err)
		}
	}
	return ctx.Err()
}

// matchRecord produces the result for a single record. Blank customer
// values are never matched.
func matchRecord(sel *fuzzy.Selector, rec model.Record, fields model.FieldSelector, index int) model.MatchResult {
	result := model.MatchResult{
		CustomerText:          strings.TrimSpace(rec.Text(fields.CustomerField)),
		OriginalReferenceText: rec.Text(fields.ReferenceField),
		MatchedReferenceText:  model.NoMatchText,
		Tier:                  model.TierNoMatch,
		SourceIndex:           index,
	}

	if result.CustomerText == "" {
		return result
	}

	match := sel.Best(result.CustomerText)
	if !match.Found {
		return result
	}

	result.MatchedReferenceText = match.Candidate
	result.Similarity = match.Similarity
	result.SimilarityPercent = model.Percent(match.Similarity)
	result.Tier = fuzzy.Classify(match.Similarity)

	return result
}

func validateSelector(records []model.Record, fields model.FieldSelector) error {
	if !fields.Validate() {
		return ErrInvalidSelector
	}
	if len(records) == 0 {
		return nil
	}

	for _, name := range []string{fields.CustomerField, fields.ReferenceField} {
		found := false
		for _, rec := range records {
			if rec.Has(name) {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
	}
	return nil
}

func progressPercent(processed, total int) int {
	if total == 0 {
		return 100
	}
	return int(math.Round(100 * float64(processed) / float64(total)))
}
