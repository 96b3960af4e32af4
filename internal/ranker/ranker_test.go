package ranker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"textcat/internal/domain"
)

func TestRank(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		probs    []float64
		topN     int
		expected []domain.ClassifyResult
	}{
		{
			name:  "sorted descending",
			probs: []float64{0.1, 0.6, 0.3},
			topN:  3,
			expected: []domain.ClassifyResult{
				{Label: 1, Probability: 0.6},
				{Label: 2, Probability: 0.3},
				{Label: 0, Probability: 0.1},
			},
		},
		{
			name:  "truncated",
			probs: []float64{0.1, 0.6, 0.3},
			topN:  1,
			expected: []domain.ClassifyResult{
				{Label: 1, Probability: 0.6},
			},
		},
		{
			name:  "topN larger than classes",
			probs: []float64{0.5, 0.5},
			topN:  10,
			expected: []domain.ClassifyResult{
				{Label: 0, Probability: 0.5},
				{Label: 1, Probability: 0.5},
			},
		},
		{
			name:  "ties keep class order",
			probs: []float64{0.2, 0.4, 0.2, 0.4},
			topN:  4,
			expected: []domain.ClassifyResult{
				{Label: 1, Probability: 0.4},
				{Label: 3, Probability: 0.4},
				{Label: 0, Probability: 0.2},
				{Label: 2, Probability: 0.2},
			},
		},
		{
			name:  "within epsilon counts as tie",
			probs: []float64{1e-21, 5e-21},
			topN:  2,
			expected: []domain.ClassifyResult{
				{Label: 0, Probability: 1e-21},
				{Label: 1, Probability: 5e-21},
			},
		},
		{
			name:     "zero topN",
			probs:    []float64{0.3, 0.7},
			topN:     0,
			expected: []domain.ClassifyResult{},
		},
		{
			name:     "no classes",
			probs:    nil,
			topN:     3,
			expected: []domain.ClassifyResult{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Rank(tt.probs, tt.topN)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	probs := []float64{0.1, 0.9, 0.5}
	Rank(probs, 3)
	assert.Equal(t, []float64{0.1, 0.9, 0.5}, probs)
}

func TestBest(t *testing.T) {
	t.Parallel()

	assert.Equal(t, domain.ClassifyResult{Label: 1, Probability: 0.7}, Best([]float64{0.2, 0.7, 0.1}))
	assert.Equal(t, domain.ClassifyResult{Label: 0, Probability: 0.5}, Best([]float64{0.5, 0.5}))
	assert.Equal(t, -1, Best(nil).Label)
}
