package engine

import "github.com/Veraticus/rplmatch/internal/model"

// MaxSummarySamples caps how many results are handed to a summarizer.
const MaxSummarySamples = 5

// SummarySamples picks the results worth a second look, the Medium and Low
// tiers, in input order and capped at MaxSummarySamples.
func SummarySamples(results []model.MatchResult) []model.MatchResult {
	samples := make([]model.MatchResult, 0, MaxSummarySamples)
	for _, r := range results {
		if r.Tier != model.TierMedium && r.Tier != model.TierLow {
			continue
		}
		samples = append(samples, r)
		if len(samples) == MaxSummarySamples {
			break
		}
	}
	return samples
}

// Tally counts results per tier. Every tier is present in the returned map.
func Tally(results []model.MatchResult) map[model.Tier]int {
	counts := make(map[model.Tier]int, len(model.Tiers))
	for _, t := range model.Tiers {
		counts[t] = 0
	}
	for _, r := range results {
		counts[r.Tier]++
	}
	return counts
}
