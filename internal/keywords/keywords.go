// Package keywords explains a document vector by its strongest features.
package keywords

import (
	"sort"

	"textcat/internal/domain"
)

// Vocabulary resolves feature ids back to their strings.
type Vocabulary interface {
	Word(id int) (string, bool)
}

// Keyword is one feature string with its weight in the document.
type Keyword struct {
	Term   string
	Weight float64
}

// Top returns the k highest-weighted features of vec. Equal weights keep the
// lower id first. Ids the vocabulary cannot resolve are skipped.
func Top(vec domain.Vector, vocab Vocabulary, k int) []Keyword {
	if k <= 0 {
		return nil
	}
	terms := append(domain.Vector(nil), vec...)
	sort.SliceStable(terms, func(i, j int) bool {
		if terms[i].Weight != terms[j].Weight {
			return terms[i].Weight > terms[j].Weight
		}
		return terms[i].ID < terms[j].ID
	})
	out := make([]Keyword, 0, min(k, len(terms)))
	for _, t := range terms {
		if len(out) == k {
			break
		}
		word, ok := vocab.Word(t.ID)
		if !ok {
			continue
		}
		out = append(out, Keyword{Term: word, Weight: t.Weight})
	}
	return out
}
