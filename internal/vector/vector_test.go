package vector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textcat/internal/domain"
	"textcat/internal/lexicon"
)

func trainedLexicon(docs ...[]string) *lexicon.Lexicon {
	lex := lexicon.New()
	for _, d := range docs {
		lex.ConvertDocument(d)
	}
	lex.Lock()
	return lex
}

func TestTFWeighter(t *testing.T) {
	t.Parallel()

	lex := lexicon.New()
	words := lex.ConvertDocument([]string{"b", "a", "b", "b"})
	vec := NewBuilder(TF{}, Options{}).Build(words)

	assert.Equal(t, domain.Vector{{ID: 0, Weight: 3}, {ID: 1, Weight: 1}}, vec)
}

func TestTFIDFWeighter(t *testing.T) {
	t.Parallel()

	lex := trainedLexicon(
		[]string{"common", "rare"},
		[]string{"common", "mid"},
		[]string{"common", "mid"},
		[]string{"other"},
	)
	w := NewTFIDF(lex)
	words := lex.ConvertDocument([]string{"rare", "mid", "mid", "common", "unknown"})
	vec := NewBuilder(w, Options{}).Build(words)

	require.Len(t, vec, 3)
	assert.Equal(t, 0, vec[0].ID)
	assert.InDelta(t, math.Log(4.0/3.0), vec[0].Weight, 1e-12)
	assert.Equal(t, 1, vec[1].ID)
	assert.InDelta(t, math.Log(4.0), vec[1].Weight, 1e-12)
	assert.Equal(t, 2, vec[2].ID)
	assert.InDelta(t, 2*math.Log(2.0), vec[2].Weight, 1e-12)
	for _, term := range vec {
		assert.GreaterOrEqual(t, term.Weight, 0.0)
	}
}

func TestTFIDFMonotoneInDocumentFrequency(t *testing.T) {
	t.Parallel()

	w := &TFIDF{df: []int{1, 2, 3, 5, 8}, total: 10}
	prev := math.Inf(1)
	for id := range w.df {
		got := w.Weight(lexicon.Word{ID: id, TF: 2})
		assert.Less(t, got, prev, "df=%d", w.df[id])
		prev = got
	}
}

func TestTFIDFSnapshotIsFrozen(t *testing.T) {
	t.Parallel()

	lex := lexicon.New()
	lex.ConvertDocument([]string{"a"})
	lex.ConvertDocument([]string{"b"})
	w := NewTFIDF(lex)
	before := w.Weight(lexicon.Word{ID: 0, TF: 1})

	lex.ConvertDocument([]string{"a"})
	assert.Equal(t, before, w.Weight(lexicon.Word{ID: 0, TF: 1}))
	assert.Equal(t, 0.0, w.Weight(lexicon.Word{ID: 7, TF: 1}))
}

func TestBuildDropsZeroWeights(t *testing.T) {
	t.Parallel()

	lex := trainedLexicon([]string{"everywhere", "x"}, []string{"everywhere"})
	vec := NewBuilder(NewTFIDF(lex), Options{}).Build(lex.ConvertDocument([]string{"everywhere", "x"}))
	assert.Equal(t, domain.Vector{{ID: 1, Weight: math.Log(2)}}, vec)
}

func TestBuildMergesDuplicateIDs(t *testing.T) {
	t.Parallel()

	words := []lexicon.Word{{ID: 4, TF: 1}, {ID: 2, TF: 1}, {ID: 4, TF: 2}}
	vec := NewBuilder(TF{}, Options{}).Build(words)
	assert.Equal(t, domain.Vector{{ID: 2, Weight: 1}, {ID: 4, Weight: 3}}, vec)
}

func TestBuildTruncation(t *testing.T) {
	t.Parallel()

	words := []lexicon.Word{
		{ID: 0, TF: 1},
		{ID: 1, TF: 5},
		{ID: 2, TF: 3},
		{ID: 3, TF: 5},
	}
	fixed := weightFunc(func(w lexicon.Word) float64 {
		return []float64{9, 1, 4, 2}[w.ID]
	})

	tests := []struct {
		name       string
		truncation Truncation
		expected   []int
	}{
		{name: "weight", truncation: TruncateWeight, expected: []int{0, 2}},
		{name: "id", truncation: TruncateID, expected: []int{0, 1}},
		{name: "frequency", truncation: TruncateFrequency, expected: []int{1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			vec := NewBuilder(fixed, Options{MaxFeatures: 2, Truncation: tt.truncation}).Build(words)
			ids := make([]int, len(vec))
			for i, term := range vec {
				ids[i] = term.ID
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestBuildNormalize(t *testing.T) {
	t.Parallel()

	words := []lexicon.Word{{ID: 0, TF: 3}, {ID: 1, TF: 4}}
	vec := NewBuilder(TF{}, Options{Normalize: true}).Build(words)
	require.Len(t, vec, 2)
	assert.InDelta(t, 0.6, vec[0].Weight, 1e-12)
	assert.InDelta(t, 0.8, vec[1].Weight, 1e-12)
}

func TestParseTruncation(t *testing.T) {
	t.Parallel()

	got, err := ParseTruncation("")
	require.NoError(t, err)
	assert.Equal(t, TruncateWeight, got)

	got, err = ParseTruncation("id")
	require.NoError(t, err)
	assert.Equal(t, TruncateID, got)

	_, err = ParseTruncation("random")
	assert.Error(t, err)
}

type weightFunc func(w lexicon.Word) float64

func (weightFunc) Name() string { return "fixed" }

func (f weightFunc) Weight(w lexicon.Word) float64 { return f(w) }
