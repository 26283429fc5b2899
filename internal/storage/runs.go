package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/rplmatch/internal/common"
	"github.com/Veraticus/rplmatch/internal/model"
)

// ErrAmbiguousID is returned when a run ID prefix matches more than one run.
var ErrAmbiguousID = errors.New("run id prefix is ambiguous")

// SaveRun stores a run and its results atomically. A missing ID, creation
// time or tier tally is filled in on run before writing.
func (s *SQLiteStorage) SaveRun(ctx context.Context, run *model.Run, results []model.MatchResult) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRun(run); err != nil {
		return err
	}
	if err := validateResults(results); err != nil {
		return err
	}

	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	if run.TierCounts == nil {
		run.TierCounts = countTiers(results)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (
			id, source_file, customer_field, reference_field,
			record_count, candidate_count,
			high_count, medium_count, low_count, no_match_count,
			summary, duration_ms, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID, run.SourceFile, run.CustomerField, run.ReferenceField,
		run.RecordCount, run.CandidateCount,
		run.TierCounts[model.TierHigh], run.TierCounts[model.TierMedium],
		run.TierCounts[model.TierLow], run.TierCounts[model.TierNoMatch],
		run.Summary, run.Duration.Milliseconds(), run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO match_results (
			run_id, source_index, customer_text, original_reference_text,
			matched_reference_text, tier, similarity, similarity_percent
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range results {
		_, err = stmt.ExecContext(ctx,
			run.ID, r.SourceIndex, r.CustomerText, r.OriginalReferenceText,
			r.MatchedReferenceText, string(r.Tier), r.Similarity, r.SimilarityPercent,
		)
		if err != nil {
			return fmt.Errorf("failed to save result %d: %w", r.SourceIndex, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *SQLiteStorage) GetRun(ctx context.Context, id string) (*model.Run, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+runColumns+`
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// ResolveRunID expands a unique ID prefix into a full run ID.
func (s *SQLiteStorage) ResolveRunID(ctx context.Context, prefix string) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := validateString(prefix, "prefix"); err != nil {
		return "", err
	}

	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(prefix)
	rows, err := s.db.QueryContext(ctx, `
		SELECT id FROM runs WHERE id LIKE ? ESCAPE '\' LIMIT 2
	`, escaped+"%")
	if err != nil {
		return "", fmt.Errorf("failed to resolve run id: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("failed to scan run id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("error iterating run ids: %w", err)
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("run %s: %w", prefix, common.ErrNotFound)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrAmbiguousID, prefix)
	}
}

// ListRuns returns the most recent runs first. A limit of zero or less
// returns every run.
func (s *SQLiteStorage) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+runColumns+`
		FROM runs
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []model.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

// GetRunResults returns a run's results ordered by source index.
func (s *SQLiteStorage) GetRunResults(ctx context.Context, id string) ([]model.MatchResult, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	if err := s.runExists(ctx, s.db, id); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT source_index, customer_text, original_reference_text,
		       matched_reference_text, tier, similarity, similarity_percent
		FROM match_results
		WHERE run_id = ?
		ORDER BY source_index
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []model.MatchResult
	for rows.Next() {
		var (
			r    model.MatchResult
			tier string
		)
		if err := rows.Scan(
			&r.SourceIndex,
			&r.CustomerText,
			&r.OriginalReferenceText,
			&r.MatchedReferenceText,
			&tier,
			&r.Similarity,
			&r.SimilarityPercent,
		); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		r.Tier = model.Tier(tier)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating results: %w", err)
	}

	return results, nil
}

// DeleteRun removes a run and its results.
func (s *SQLiteStorage) DeleteRun(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM match_results WHERE run_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete results: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("run %s: %w", id, common.ErrNotFound)
	}

	return tx.Commit()
}

const runColumns = `id, source_file, customer_field, reference_field,
		       record_count, candidate_count,
		       high_count, medium_count, low_count, no_match_count,
		       summary, duration_ms, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*model.Run, error) {
	var (
		run                        model.Run
		high, medium, low, noMatch int
		durationMS                 int64
	)

	err := row.Scan(
		&run.ID,
		&run.SourceFile,
		&run.CustomerField,
		&run.ReferenceField,
		&run.RecordCount,
		&run.CandidateCount,
		&high,
		&medium,
		&low,
		&noMatch,
		&run.Summary,
		&durationMS,
		&run.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	run.Duration = time.Duration(durationMS) * time.Millisecond
	run.TierCounts = map[model.Tier]int{
		model.TierHigh:    high,
		model.TierMedium:  medium,
		model.TierLow:     low,
		model.TierNoMatch: noMatch,
	}
	return &run, nil
}

func (s *SQLiteStorage) runExists(ctx context.Context, q queryable, id string) error {
	var exists int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM runs WHERE id = ?`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("run %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check run: %w", err)
	}
	return nil
}

func countTiers(results []model.MatchResult) map[model.Tier]int {
	counts := make(map[model.Tier]int, len(model.Tiers))
	for _, t := range model.Tiers {
		counts[t] = 0
	}
	for _, r := range results {
		counts[r.Tier]++
	}
	return counts
}
