package fuzzy

import (
	"fmt"
	"testing"

	"github.com/Veraticus/rplmatch/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		similarity float64
		expected   model.Tier
	}{
		{1.0, model.TierHigh},
		{0.8501, model.TierHigh},
		{0.85, model.TierMedium},
		{0.7, model.TierMedium},
		{0.6001, model.TierMedium},
		{0.60, model.TierLow},
		{0.45, model.TierLow},
		{0.3001, model.TierLow},
		{0.30, model.TierNoMatch},
		{0.1, model.TierNoMatch},
		{0.0, model.TierNoMatch},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%.4f", tt.similarity), func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.similarity))
		})
	}
}

func TestClassifyComputedBoundaries(t *testing.T) {
	// 1 - 3/20 and 1 - 2/5 land exactly on the High and Medium bounds.
	assert.Equal(t, model.TierMedium, Classify(Similarity("abcdefghijklmnopqrst", "abcdefghijklmnopqxyz", 3)))
	assert.Equal(t, model.TierLow, Classify(Similarity("abcde", "abcxy", 2)))
	assert.Equal(t, model.TierMedium, Classify(Compare("Jon Smith", "Jonathan Smith")))
}
