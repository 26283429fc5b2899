package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/rplmatch/internal/engine"
	"github.com/Veraticus/rplmatch/internal/model"
	"github.com/Veraticus/rplmatch/internal/testutil"
)

func TestScreeningRunPersists(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)

	builder := testutil.NewRecordBuilder().
		WithFields("Client", "Denied Party").
		WithFixture(testutil.FixtureScreening).
		WithExtra("Country", model.Text("US"))
	records := builder.Build()

	session := engine.NewSession(records, builder.Selector())
	require.NoError(t, engine.New(engine.DefaultOptions()).Run(ctx, session, nil))

	results := session.Results
	require.Len(t, results, 5)

	wantTiers := []model.Tier{
		model.TierHigh,
		model.TierMedium,
		model.TierLow,
		model.TierNoMatch,
		model.TierNoMatch,
	}
	for i, r := range results {
		assert.Equal(t, i, r.SourceIndex)
		assert.Equal(t, wantTiers[i], r.Tier, "record %d (%q)", i, r.CustomerText)
	}
	assert.Equal(t, "ACME Corporation", results[0].MatchedReferenceText)
	assert.Equal(t, 64.29, results[1].SimilarityPercent)
	assert.Equal(t, "Umbrella", results[2].MatchedReferenceText)
	assert.Equal(t, 50.0, results[2].SimilarityPercent)
	assert.Equal(t, model.NoMatchText, results[3].MatchedReferenceText)

	samples := engine.SummarySamples(results)
	require.Len(t, samples, 2)
	assert.Equal(t, 1, samples[0].SourceIndex)
	assert.Equal(t, 2, samples[1].SourceIndex)

	stored := db.SeedRun(&model.Run{
		ID:             session.ID,
		SourceFile:     "screening.xlsx",
		CustomerField:  session.Selector.CustomerField,
		ReferenceField: session.Selector.ReferenceField,
		CandidateCount: session.Candidates.Len(),
		Duration:       session.Duration(),
	}, results)

	assert.Equal(t, engine.Tally(results), stored.TierCounts)
	assert.Equal(t, 5, stored.CandidateCount)
	assert.Equal(t, "Client", stored.CustomerField)

	reloaded, err := db.Storage.GetRunResults(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, results, reloaded)
}

func TestDuplicateReferencesCollapse(t *testing.T) {
	builder := testutil.NewRecordBuilder().WithFixture(testutil.FixtureDuplicates)

	session := engine.NewSession(builder.Build(), builder.Selector())
	require.NoError(t, engine.New(engine.Options{Workers: 4}).Run(context.Background(), session, nil))

	assert.Equal(t, []string{"Acme", "Globex"}, session.Candidates.Values())
	for _, r := range session.Results[:3] {
		assert.Equal(t, "Acme", r.MatchedReferenceText)
	}
	assert.Equal(t, model.TierHigh, session.Results[3].Tier)
}
