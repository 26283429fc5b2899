package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/viper"

	"github.com/Veraticus/rplmatch/internal/common"
	"github.com/Veraticus/rplmatch/internal/config"
	"github.com/Veraticus/rplmatch/internal/llm"
	"github.com/Veraticus/rplmatch/internal/model"
	"github.com/Veraticus/rplmatch/internal/service"
	"github.com/Veraticus/rplmatch/internal/storage"
	"github.com/Veraticus/rplmatch/internal/table"
)

// initStorage opens the run history database and brings its schema up to date.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := config.DatabasePath(viper.GetString("database.path"))

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// closeStorage closes store, logging rather than returning any error.
func closeStorage(store service.Storage) {
	if err := store.Close(); err != nil {
		slog.Warn("Failed to close database", "error", err)
	}
}

// columnKeywords reads the header keywords used for column auto-detection.
func columnKeywords() table.Keywords {
	kw := table.DefaultKeywords()
	if s := viper.GetString("columns.customer_keyword"); s != "" {
		kw.Customer = s
	}
	if s := viper.GetString("columns.reference_keyword"); s != "" {
		kw.Reference = s
	}
	return kw
}

// resolveSelector auto-detects the matching columns and applies any
// explicit overrides, which must name existing headers.
func resolveSelector(headers []string, customer, reference string) (model.FieldSelector, error) {
	sel, err := table.DetectSelector(headers, columnKeywords())
	if err != nil {
		return model.FieldSelector{}, common.NewUserError("the input has no columns", err)
	}

	for _, override := range []struct {
		field *string
		value string
	}{
		{&sel.CustomerField, customer},
		{&sel.ReferenceField, reference},
	} {
		if override.value == "" {
			continue
		}
		if !slices.Contains(headers, override.value) {
			return model.FieldSelector{}, common.NewUserError(
				fmt.Sprintf("column %q not found", override.value),
				fmt.Errorf("%w: column %q", common.ErrInvalidConfig, override.value))
		}
		*override.field = override.value
	}

	return sel, nil
}

// newSummarizer returns the configured summarizer, or nil when no LLM
// provider is set up.
func newSummarizer() (service.Summarizer, error) {
	cfg := config.LoadLLMConfig(viper.GetViper())
	if !cfg.Enabled() {
		return nil, nil
	}

	s, err := llm.NewSummarizer(cfg, slog.Default())
	if err != nil {
		return nil, err
	}
	return s, nil
}

// loadRun finds a saved run by full ID or unique prefix and returns it with
// its results.
func loadRun(ctx context.Context, store *storage.SQLiteStorage, idOrPrefix string) (*model.Run, []model.MatchResult, error) {
	id, err := store.ResolveRunID(ctx, idOrPrefix)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil, common.NewUserError(fmt.Sprintf("no saved run matches %q", idOrPrefix), err)
		}
		if errors.Is(err, storage.ErrAmbiguousID) {
			return nil, nil, common.NewUserError(fmt.Sprintf("%q matches more than one run; use a longer prefix", idOrPrefix), err)
		}
		return nil, nil, err
	}

	run, err := store.GetRun(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	results, err := store.GetRunResults(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return run, results, nil
}
