package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/rplmatch/internal/model"
)

func TestFormatHelpers(t *testing.T) {
	assert.Contains(t, FormatSuccess("done"), "done")
	assert.Contains(t, FormatSuccess("done"), SuccessIcon)
	assert.Contains(t, FormatError("bad"), ErrorIcon)
	assert.Contains(t, FormatWarning("careful"), "careful")
	assert.Contains(t, FormatInfo("fyi"), "fyi")
	assert.Contains(t, FormatTitle("Match"), "Match")
	assert.Contains(t, FormatPrompt("Columns"), "→")
}

func TestFormatTier(t *testing.T) {
	for _, tier := range model.Tiers {
		assert.Contains(t, FormatTier(tier), string(tier))
	}
	assert.True(t, TierStyle(model.TierHigh).GetBold())
	assert.False(t, TierStyle(model.TierLow).GetBold())
	assert.Equal(t, SubtleColor, TierStyle("unknown").GetForeground())
}

func TestRenderTierSummary(t *testing.T) {
	out := RenderTierSummary("Results", map[model.Tier]int{
		model.TierHigh:    1,
		model.TierMedium:  2,
		model.TierNoMatch: 1,
	}, 4)

	assert.Contains(t, out, "Results")
	assert.Contains(t, out, "(25.0%)")
	assert.Contains(t, out, "(50.0%)")
	assert.Contains(t, out, "(0.0%)")
	assert.Contains(t, out, "Total")

	empty := RenderTierSummary("Empty", nil, 0)
	assert.Contains(t, empty, "No Match")
}

func TestRenderRunList(t *testing.T) {
	assert.Contains(t, RenderRunList(nil), "No saved runs")

	out := RenderRunList([]model.Run{{
		ID:          "0123456789abcdef",
		CreatedAt:   time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
		SourceFile:  "customers.csv",
		RecordCount: 12,
		TierCounts:  map[model.Tier]int{model.TierHigh: 3},
	}})

	assert.Contains(t, out, "01234567")
	assert.NotContains(t, out, "0123456789abcdef")
	assert.Contains(t, out, "customers.csv")
	assert.Contains(t, out, "12")
}

func TestRenderRunDetails(t *testing.T) {
	out := RenderRunDetails(&model.Run{
		ID:             "run-1",
		CustomerField:  "Customer",
		ReferenceField: "RPL",
		RecordCount:    3,
		CandidateCount: 2,
		Summary:        "All clear.",
		Duration:       1234 * time.Millisecond,
	})

	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "Customer → RPL")
	assert.Contains(t, out, "3 records, 2 distinct RPL entries")
	assert.Contains(t, out, "All clear.")
}

func TestRenderResults(t *testing.T) {
	assert.Contains(t, RenderResults(nil, 0), "No results")

	results := []model.MatchResult{
		{CustomerText: "jon smith", MatchedReferenceText: "John Smith Ltd", SimilarityPercent: 64.29, Tier: model.TierMedium, SourceIndex: 0},
		{CustomerText: "acme", MatchedReferenceText: "ACME", SimilarityPercent: 100, Tier: model.TierHigh, SourceIndex: 1},
		{CustomerText: "", MatchedReferenceText: "N/A", Tier: model.TierNoMatch, SourceIndex: 2},
	}

	out := RenderResults(results, 2)
	assert.Contains(t, out, "jon smith")
	assert.Contains(t, out, "64.29%")
	assert.NotContains(t, out, "N/A")
	assert.Contains(t, out, "1 more rows")

	all := RenderResults(results, 0)
	assert.Contains(t, all, "N/A")
	assert.NotContains(t, all, "more rows")
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abc", ShortID("abc"))
	assert.Equal(t, "12345678", ShortID("1234567890"))
}
