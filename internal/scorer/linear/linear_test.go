package linear

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textcat/internal/domain"
)

func separableExamples() []Example {
	return []Example{
		{Label: 0, Vector: domain.Vector{{ID: 0, Weight: 1}, {ID: 1, Weight: 1}}},
		{Label: 0, Vector: domain.Vector{{ID: 0, Weight: 2}}},
		{Label: 1, Vector: domain.Vector{{ID: 2, Weight: 1}, {ID: 3, Weight: 1}}},
		{Label: 1, Vector: domain.Vector{{ID: 3, Weight: 2}}},
		{Label: 2, Vector: domain.Vector{{ID: 4, Weight: 1}}},
		{Label: 2, Vector: domain.Vector{{ID: 4, Weight: 1}, {ID: 1, Weight: 0.5}}},
	}
}

func TestZeroModelIsUniform(t *testing.T) {
	t.Parallel()

	m := NewModel(4, 3)
	probs, err := m.PredictProbabilities(domain.Vector{{ID: 1, Weight: 2}})
	require.NoError(t, err)
	require.Len(t, probs, 4)
	for _, p := range probs {
		assert.InDelta(t, 0.25, p, 1e-12)
	}
}

func TestPredictRejectsOutOfRangeTerm(t *testing.T) {
	t.Parallel()

	m := NewModel(2, 3)
	_, err := m.PredictProbabilities(domain.Vector{{ID: 3, Weight: 1}})
	assert.ErrorIs(t, err, ErrDimension)
}

func TestTrainSeparates(t *testing.T) {
	t.Parallel()

	examples := separableExamples()
	m, err := Train(examples, 3, 5, TrainOptions{Epochs: 30, LearningRate: 0.5, Seed: 7})
	require.NoError(t, err)

	for _, ex := range examples {
		probs, err := m.PredictProbabilities(ex.Vector)
		require.NoError(t, err)
		sum := 0.0
		best := 0
		for c, p := range probs {
			sum += p
			if p > probs[best] {
				best = c
			}
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
		assert.Equal(t, ex.Label, best)
	}
}

func TestTrainDeterministic(t *testing.T) {
	t.Parallel()

	a, err := Train(separableExamples(), 3, 5, TrainOptions{Seed: 3})
	require.NoError(t, err)
	b, err := Train(separableExamples(), 3, 5, TrainOptions{Seed: 3})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestTrainValidatesInput(t *testing.T) {
	t.Parallel()

	_, err := Train(nil, 2, 2, TrainOptions{})
	assert.Error(t, err)
	_, err = Train([]Example{{Label: 5}}, 2, 2, TrainOptions{})
	assert.Error(t, err)
	_, err = Train([]Example{{Label: 0}}, 0, 2, TrainOptions{})
	assert.Error(t, err)
}

func TestMarshalDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	m, err := Train(separableExamples(), 3, 5, TrainOptions{Seed: 1})
	require.NoError(t, err)
	data, err := m.MarshalBinary()
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, m, decoded)

	_, err = Decode([]byte("garbage"))
	assert.Error(t, err)
}

func TestLoaderChecksDimension(t *testing.T) {
	t.Parallel()

	data, err := NewModel(2, 4).MarshalBinary()
	require.NoError(t, err)

	s, err := Loader{}.Load(data, 4)
	require.NoError(t, err)
	assert.Equal(t, 2, s.NumClasses())

	_, err = Loader{}.Load(data, 5)
	assert.ErrorIs(t, err, ErrDimension)
}
