package fuzzy

import "github.com/Veraticus/rplmatch/internal/model"

// Tier lower bounds. A score must be strictly greater than a bound to reach
// its tier, so a score of exactly 0.85 is Medium.
const (
	HighThreshold   = 0.85
	MediumThreshold = 0.60
	LowThreshold    = 0.30
)

// Classify maps a similarity in [0,1] onto a confidence tier.
func Classify(similarity float64) model.Tier {
	switch {
	case similarity > HighThreshold:
		return model.TierHigh
	case similarity > MediumThreshold:
		return model.TierMedium
	case similarity > LowThreshold:
		return model.TierLow
	default:
		return model.TierNoMatch
	}
}
