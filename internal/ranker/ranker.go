// Package ranker orders scorer output into bounded result lists.
package ranker

import (
	"sort"

	"textcat/internal/domain"
)

// Epsilon is the tolerance under which two probabilities rank as equal.
const Epsilon = 1e-20

// Rank returns up to min(topN, len(probs)) results ordered by descending
// probability. Probabilities within Epsilon of each other keep class-index
// order. probs is not modified.
func Rank(probs []float64, topN int) []domain.ClassifyResult {
	if topN > len(probs) {
		topN = len(probs)
	}
	if topN <= 0 {
		return []domain.ClassifyResult{}
	}
	results := make([]domain.ClassifyResult, len(probs))
	for i, p := range probs {
		results[i] = domain.ClassifyResult{Label: i, Probability: p}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Probability > results[j].Probability+Epsilon
	})
	return results[:topN:topN]
}

// Best returns the highest-probability class; ties go to the lowest index.
// An empty input yields Label -1.
func Best(probs []float64) domain.ClassifyResult {
	best := domain.ClassifyResult{Label: -1}
	for i, p := range probs {
		if best.Label < 0 || p > best.Probability {
			best = domain.ClassifyResult{Label: i, Probability: p}
		}
	}
	return best
}
