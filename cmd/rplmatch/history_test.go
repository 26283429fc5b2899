package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/rplmatch/internal/cli"
	"github.com/Veraticus/rplmatch/internal/common"
	"github.com/Veraticus/rplmatch/internal/model"
	"github.com/Veraticus/rplmatch/internal/storage"
	"github.com/Veraticus/rplmatch/internal/table"
)

func savedRun(t *testing.T) (*storage.SQLiteStorage, model.Run) {
	t.Helper()
	setupConfig(t)
	store := memoryStore(t)

	opts, _, _ := baseOptions(t, writeInput(t, "customers.csv", customersCSV))
	opts.store = store
	opts.summary = false
	require.NoError(t, runMatch(context.Background(), opts))

	runs, err := store.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	return store, runs[0]
}

func TestRunHistory(t *testing.T) {
	store, run := savedRun(t)
	var out bytes.Buffer

	require.NoError(t, runHistory(context.Background(), &out, store, 20))
	assert.Contains(t, out.String(), cli.ShortID(run.ID))
	assert.Contains(t, out.String(), "customers.csv")
}

func TestRunShow(t *testing.T) {
	store, run := savedRun(t)
	var out bytes.Buffer

	require.NoError(t, runShow(context.Background(), &out, store, cli.ShortID(run.ID), showOptions{limit: 50}))

	s := out.String()
	assert.Contains(t, s, run.ID)
	assert.Contains(t, s, "Customer Name → RPL Entry")
	assert.Contains(t, s, "jon smith")
	assert.Contains(t, s, model.NoMatchText)
}

func TestRunShow_Export(t *testing.T) {
	store, run := savedRun(t)
	var out bytes.Buffer
	path := filepath.Join(t.TempDir(), "rerun.tsv")

	require.NoError(t, runShow(context.Background(), &out, store, run.ID, showOptions{export: path}))
	assert.Contains(t, out.String(), "Wrote")

	ds, err := table.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Customer Name", "RPL Entry",
		table.ColumnMatched, table.ColumnSimilarity, table.ColumnConfidence}, ds.Headers)
	require.Len(t, ds.Records, 3)
	assert.Equal(t, "jon smith", ds.Records[1].Text("Customer Name"))
}

func TestRunShow_UnknownRun(t *testing.T) {
	store, _ := savedRun(t)

	err := runShow(context.Background(), &bytes.Buffer{}, store, "zzzz", showOptions{})
	require.ErrorIs(t, err, common.ErrNotFound)
	assert.Contains(t, requireUserError(t, err).UserMessage, "no saved run")
}

func TestRunHistoryDelete(t *testing.T) {
	store, run := savedRun(t)
	ctx := context.Background()
	var out bytes.Buffer

	require.NoError(t, runHistoryDelete(ctx, &out, store, cli.ShortID(run.ID)))
	assert.Contains(t, out.String(), "Deleted run")

	_, _, err := loadRun(ctx, store, run.ID)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}
