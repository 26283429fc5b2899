package model

import "math"

// Tier is a discrete confidence level derived from a similarity score.
type Tier string

// Confidence tiers, highest first.
const (
	TierHigh    Tier = "High"
	TierMedium  Tier = "Medium"
	TierLow     Tier = "Low"
	TierNoMatch Tier = "No Match"
)

// Tiers lists every tier from highest to lowest.
var Tiers = []Tier{TierHigh, TierMedium, TierLow, TierNoMatch}

// NoMatchText is the matched reference text used when a record was not
// compared against anything.
const NoMatchText = "N/A"

// MatchResult is the outcome for one input record.
type MatchResult struct {
	CustomerText          string
	OriginalReferenceText string
	MatchedReferenceText  string
	Tier                  Tier
	Similarity            float64
	SimilarityPercent     float64
	SourceIndex           int
}

// Percent converts a [0,1] similarity into a percentage rounded to two decimals.
func Percent(similarity float64) float64 {
	return math.Round(similarity*10000) / 100
}
