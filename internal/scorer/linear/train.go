package linear

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"

	"textcat/internal/domain"
)

// Example is one labelled training vector.
type Example struct {
	Label  int
	Vector domain.Vector
}

// TrainOptions configures stochastic gradient descent.
type TrainOptions struct {
	Epochs       int
	LearningRate float64
	L2           float64
	Seed         uint64
	Logger       *slog.Logger
}

func (o *TrainOptions) applyDefaults() {
	if o.Epochs <= 0 {
		o.Epochs = 10
	}
	if o.LearningRate <= 0 {
		o.LearningRate = 0.5
	}
	if o.L2 < 0 {
		o.L2 = 0
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// Train fits a model with the given shape by minimising cross-entropy. The
// visiting order of examples is shuffled per epoch from Seed, so equal
// inputs always produce equal models.
func Train(examples []Example, classes, features int, opts TrainOptions) (*Model, error) {
	opts.applyDefaults()
	if classes <= 0 {
		return nil, fmt.Errorf("invalid class count %d", classes)
	}
	if len(examples) == 0 {
		return nil, fmt.Errorf("no training examples")
	}
	for i, ex := range examples {
		if ex.Label < 0 || ex.Label >= classes {
			return nil, fmt.Errorf("example %d has label %d outside %d classes", i, ex.Label, classes)
		}
	}

	m := NewModel(classes, features)
	order := make([]int, len(examples))
	for i := range order {
		order[i] = i
	}
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	grad := make([]float64, classes)

	for epoch := 0; epoch < opts.Epochs; epoch++ {
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		// Decaying step size keeps late epochs from oscillating.
		lr := opts.LearningRate / (1 + float64(epoch))
		loss := 0.0
		for _, idx := range order {
			ex := examples[idx]
			probs, err := m.PredictProbabilities(ex.Vector)
			if err != nil {
				return nil, fmt.Errorf("example %d: %w", idx, err)
			}
			loss -= math.Log(math.Max(probs[ex.Label], 1e-300))

			copy(grad, probs)
			grad[ex.Label]--
			floats.AddScaled(m.bias, -lr, grad)
			for c, g := range grad {
				row := m.weights[c]
				for _, t := range ex.Vector {
					row[t.ID] -= lr * (g*t.Weight + opts.L2*row[t.ID])
				}
			}
		}
		opts.Logger.Debug("linear epoch complete",
			slog.Int("epoch", epoch+1),
			slog.Float64("loss", loss/float64(len(examples))))
	}
	return m, nil
}
