package engine

import (
	"testing"

	"github.com/Veraticus/rplmatch/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestSummarySamples(t *testing.T) {
	tiers := []model.Tier{
		model.TierHigh, model.TierMedium, model.TierNoMatch, model.TierLow,
		model.TierMedium, model.TierLow, model.TierHigh, model.TierLow, model.TierMedium,
	}
	results := make([]model.MatchResult, len(tiers))
	for i, tier := range tiers {
		results[i] = model.MatchResult{Tier: tier, SourceIndex: i}
	}

	samples := SummarySamples(results)
	assert.Len(t, samples, MaxSummarySamples)

	indexes := make([]int, len(samples))
	for i, s := range samples {
		indexes[i] = s.SourceIndex
	}
	assert.Equal(t, []int{1, 3, 4, 5, 7}, indexes)
}

func TestSummarySamplesNone(t *testing.T) {
	results := []model.MatchResult{{Tier: model.TierHigh}, {Tier: model.TierNoMatch}}
	assert.Empty(t, SummarySamples(results))
	assert.Empty(t, SummarySamples(nil))
}

func TestTally(t *testing.T) {
	results := []model.MatchResult{
		{Tier: model.TierHigh}, {Tier: model.TierHigh}, {Tier: model.TierLow}, {Tier: model.TierNoMatch},
	}

	assert.Equal(t, map[model.Tier]int{
		model.TierHigh:    2,
		model.TierMedium:  0,
		model.TierLow:     1,
		model.TierNoMatch: 1,
	}, Tally(results))

	assert.Len(t, Tally(nil), len(model.Tiers))
}
