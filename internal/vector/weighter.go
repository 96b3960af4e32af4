// Package vector turns the resolved words of one document into a sparse
// feature vector.
package vector

import (
	"math"

	"textcat/internal/lexicon"
)

// Weighter assigns the feature weight of one resolved word.
type Weighter interface {
	Name() string
	Weight(w lexicon.Word) float64
}

// TF weights a word by its raw count in the document. It is used while the
// vocabulary is still being accumulated.
type TF struct{}

func (TF) Name() string { return "tf" }

func (TF) Weight(w lexicon.Word) float64 { return float64(w.TF) }

// TFIDF weights a word by tf * log(N/df). Document frequencies are copied
// from the lexicon when the weighter is created and never change afterwards.
type TFIDF struct {
	df    []int
	total int
}

// NewTFIDF snapshots the document statistics of lex.
func NewTFIDF(lex *lexicon.Lexicon) *TFIDF {
	df := make([]int, lex.Size())
	for id := range df {
		df[id] = lex.DocumentFrequency(id)
	}
	return &TFIDF{df: df, total: lex.TotalDocuments()}
}

func (*TFIDF) Name() string { return "tfidf" }

// Weight returns 0 for ids outside the snapshot or with no recorded documents.
func (t *TFIDF) Weight(w lexicon.Word) float64 {
	if w.ID < 0 || w.ID >= len(t.df) {
		return 0
	}
	df := t.df[w.ID]
	if df <= 0 || t.total <= 0 {
		return 0
	}
	return float64(w.TF) * math.Log(float64(t.total)/float64(df))
}
