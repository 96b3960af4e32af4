package domain

import "textcat/internal/lexicon"

// Term is a single nonzero coordinate of a sparse feature vector.
type Term struct {
	ID     int
	Weight float64
}

// Vector is a sparse document vector. Terms are unique by ID and sorted
// ascending by ID.
type Vector []Term

// ClassifyResult pairs a class index with the probability the scorer assigned to it.
type ClassifyResult struct {
	Label       int
	Probability float64
}

// NamedResult is a ClassifyResult resolved against the category list.
type NamedResult struct {
	Label       int
	Category    string
	Probability float64
}

// Segmenter turns raw text into the feature strings looked up in the lexicon.
// Implementations must be safe for concurrent use.
type Segmenter interface {
	Name() string
	Segment(text string) []string
}

// Scorer is the external multi-class probability model.
type Scorer interface {
	NumClasses() int
	// PredictProbabilities returns NumClasses probabilities, index-aligned
	// with the category list.
	PredictProbabilities(vec Vector) ([]float64, error)
}

// ScorerLoader decodes a scorer model artifact. dimension is the size of the
// locked lexicon the model was trained against.
type ScorerLoader interface {
	Load(model []byte, dimension int) (Scorer, error)
}

// TextClassifier defines the operations exposed by a loaded classifier.
type TextClassifier interface {
	LoadModel(dir string) error
	LoadFromString(blob string) error
	Classify(text string) (ClassifyResult, error)
	ClassifyTopN(text string, topN int) ([]ClassifyResult, error)
	// Lexicon returns the locked vocabulary of the loaded model, or nil.
	Lexicon() *lexicon.Lexicon
}
