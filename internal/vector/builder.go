package vector

import (
	"fmt"
	"math"
	"sort"

	"textcat/internal/domain"
	"textcat/internal/lexicon"
)

// DefaultMaxFeatures bounds the number of terms in a document vector.
const DefaultMaxFeatures = 5000

// Truncation selects which terms survive when a document has more distinct
// ids than the configured maximum.
type Truncation string

const (
	// TruncateWeight keeps the highest weights; ties keep the lower id.
	TruncateWeight Truncation = "weight"
	// TruncateID keeps the lowest ids, i.e. the earliest vocabulary entries.
	TruncateID Truncation = "id"
	// TruncateFrequency keeps the highest in-document counts; ties keep the lower id.
	TruncateFrequency Truncation = "frequency"
)

// ParseTruncation validates a truncation name. Empty selects TruncateWeight.
func ParseTruncation(name string) (Truncation, error) {
	switch t := Truncation(name); t {
	case "":
		return TruncateWeight, nil
	case TruncateWeight, TruncateID, TruncateFrequency:
		return t, nil
	default:
		return "", fmt.Errorf("unknown truncation policy: %q", name)
	}
}

// Options configures a Builder.
type Options struct {
	MaxFeatures int
	Truncation  Truncation
	// Normalize scales the vector to unit L2 length.
	Normalize bool
}

// Builder converts resolved document words into a domain.Vector. It holds no
// per-call state.
type Builder struct {
	weighter Weighter
	opts     Options
}

func NewBuilder(weighter Weighter, opts Options) *Builder {
	if opts.MaxFeatures <= 0 {
		opts.MaxFeatures = DefaultMaxFeatures
	}
	if opts.Truncation == "" {
		opts.Truncation = TruncateWeight
	}
	return &Builder{weighter: weighter, opts: opts}
}

// Weighter returns the weighting strategy in use.
func (b *Builder) Weighter() Weighter { return b.weighter }

type candidate struct {
	word   lexicon.Word
	weight float64
}

// Build aggregates words by id, weights them, drops zero or non-finite
// weights, applies the feature bound and returns terms sorted by id.
func (b *Builder) Build(words []lexicon.Word) domain.Vector {
	byID := make(map[int]int, len(words))
	merged := make([]lexicon.Word, 0, len(words))
	for _, w := range words {
		if i, ok := byID[w.ID]; ok {
			merged[i].TF += w.TF
			continue
		}
		byID[w.ID] = len(merged)
		merged = append(merged, w)
	}

	cands := make([]candidate, 0, len(merged))
	for _, w := range merged {
		weight := b.weighter.Weight(w)
		if weight == 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
			continue
		}
		cands = append(cands, candidate{word: w, weight: weight})
	}

	if len(cands) > b.opts.MaxFeatures {
		b.truncate(cands)
		cands = cands[:b.opts.MaxFeatures]
	}

	vec := make(domain.Vector, len(cands))
	for i, c := range cands {
		vec[i] = domain.Term{ID: c.word.ID, Weight: c.weight}
	}
	sort.Slice(vec, func(i, j int) bool { return vec[i].ID < vec[j].ID })

	if b.opts.Normalize {
		normalize(vec)
	}
	return vec
}

// truncate orders cands so the terms to keep come first.
func (b *Builder) truncate(cands []candidate) {
	var less func(x, y candidate) bool
	switch b.opts.Truncation {
	case TruncateID:
		less = func(x, y candidate) bool { return x.word.ID < y.word.ID }
	case TruncateFrequency:
		less = func(x, y candidate) bool {
			if x.word.TF != y.word.TF {
				return x.word.TF > y.word.TF
			}
			return x.word.ID < y.word.ID
		}
	default:
		less = func(x, y candidate) bool {
			if x.weight != y.weight {
				return x.weight > y.weight
			}
			return x.word.ID < y.word.ID
		}
	}
	sort.Slice(cands, func(i, j int) bool { return less(cands[i], cands[j]) })
}

func normalize(vec domain.Vector) {
	norm := 0.0
	for _, t := range vec {
		norm += t.Weight * t.Weight
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return
	}
	for i := range vec {
		vec[i].Weight /= norm
	}
}
