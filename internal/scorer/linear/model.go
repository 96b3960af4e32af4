// Package linear is a softmax (multinomial logistic) scorer over sparse
// document vectors. It stands in for any margin-based multi-class model that
// turns a vector into per-class probabilities.
package linear

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"textcat/internal/codec"
	"textcat/internal/domain"
)

const formatVersion = 1

// ErrDimension reports a vector term outside the model's feature space.
var ErrDimension = errors.New("vector dimension mismatch")

// Model holds one weight row and bias per class. It is read-only after
// construction and safe for concurrent prediction.
type Model struct {
	classes  int
	features int
	weights  [][]float64
	bias     []float64
}

// NewModel returns a zero model.
func NewModel(classes, features int) *Model {
	weights := make([][]float64, classes)
	for c := range weights {
		weights[c] = make([]float64, features)
	}
	return &Model{
		classes:  classes,
		features: features,
		weights:  weights,
		bias:     make([]float64, classes),
	}
}

func (m *Model) NumClasses() int { return m.classes }

// NumFeatures returns the feature space size the model was trained on.
func (m *Model) NumFeatures() int { return m.features }

// PredictProbabilities returns the softmax of the per-class linear scores.
func (m *Model) PredictProbabilities(vec domain.Vector) ([]float64, error) {
	scores, err := m.scores(vec)
	if err != nil {
		return nil, err
	}
	softmax(scores)
	return scores, nil
}

func (m *Model) scores(vec domain.Vector) ([]float64, error) {
	for _, t := range vec {
		if t.ID < 0 || t.ID >= m.features {
			return nil, fmt.Errorf("%w: term %d outside %d features", ErrDimension, t.ID, m.features)
		}
	}
	scores := make([]float64, m.classes)
	copy(scores, m.bias)
	for c, row := range m.weights {
		for _, t := range vec {
			scores[c] += row[t.ID] * t.Weight
		}
	}
	return scores, nil
}

// softmax replaces scores with probabilities in place.
func softmax(scores []float64) {
	if len(scores) == 0 {
		return
	}
	lse := floats.LogSumExp(scores)
	for i, s := range scores {
		scores[i] = math.Exp(s - lse)
	}
}

type persisted struct {
	Version  int         `cbor:"version"`
	Classes  int         `cbor:"classes"`
	Features int         `cbor:"features"`
	Weights  [][]float64 `cbor:"weights"`
	Bias     []float64   `cbor:"bias"`
}

// MarshalBinary encodes the model as versioned CBOR.
func (m *Model) MarshalBinary() ([]byte, error) {
	return codec.Marshal(persisted{
		Version:  formatVersion,
		Classes:  m.classes,
		Features: m.features,
		Weights:  m.weights,
		Bias:     m.bias,
	})
}

// Decode parses a model written by MarshalBinary.
func Decode(data []byte) (*Model, error) {
	var p persisted
	if err := codec.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode linear model: %w", err)
	}
	if p.Version != formatVersion {
		return nil, fmt.Errorf("unsupported linear model version %d", p.Version)
	}
	if p.Classes <= 0 || p.Features < 0 {
		return nil, fmt.Errorf("invalid linear model shape %dx%d", p.Classes, p.Features)
	}
	if len(p.Weights) != p.Classes || len(p.Bias) != p.Classes {
		return nil, fmt.Errorf("linear model has %d weight rows and %d biases for %d classes",
			len(p.Weights), len(p.Bias), p.Classes)
	}
	for c, row := range p.Weights {
		if len(row) != p.Features {
			return nil, fmt.Errorf("linear model row %d has %d features, expected %d", c, len(row), p.Features)
		}
	}
	return &Model{classes: p.Classes, features: p.Features, weights: p.Weights, bias: p.Bias}, nil
}

// Loader decodes linear models for the classifier.
type Loader struct{}

// Load decodes model and checks it against the lexicon size.
func (Loader) Load(model []byte, dimension int) (domain.Scorer, error) {
	m, err := Decode(model)
	if err != nil {
		return nil, err
	}
	if m.features != dimension {
		return nil, fmt.Errorf("%w: model has %d features, lexicon has %d", ErrDimension, m.features, dimension)
	}
	return m, nil
}
