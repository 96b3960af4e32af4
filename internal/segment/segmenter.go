package segment

import (
	"fmt"
	"sort"

	"textcat/internal/domain"
)

// Segmenter type names accepted by New.
const (
	TypeUnigram         = "unigram"
	TypeEnglishBigram   = "english_bigram"
	TypeBilingualBigram = "bilingual_bigram"
)

// Unigram emits the CJK-aware word tokens themselves as features: one
// feature per ideograph, one per Latin word.
type Unigram struct{}

func (Unigram) Name() string { return TypeUnigram }

func (Unigram) Segment(text string) []string { return CJK(text) }

// EnglishBigram forms bigrams over Latin word tokens.
type EnglishBigram struct {
	WithSpace bool
}

func (EnglishBigram) Name() string { return TypeEnglishBigram }

func (s EnglishBigram) Segment(text string) []string {
	return Bigrams(Latin(text), s.WithSpace)
}

// BilingualBigram forms bigrams over mixed Chinese/English text, where every
// CJK ideograph counts as one word.
type BilingualBigram struct {
	WithSpace bool
}

func (BilingualBigram) Name() string { return TypeBilingualBigram }

func (s BilingualBigram) Segment(text string) []string {
	return Bigrams(Bilingual(text), s.WithSpace)
}

type constructor func(withSpace bool) domain.Segmenter

var constructors = map[string]constructor{
	TypeUnigram:         func(bool) domain.Segmenter { return Unigram{} },
	TypeEnglishBigram:   func(ws bool) domain.Segmenter { return EnglishBigram{WithSpace: ws} },
	TypeBilingualBigram: func(ws bool) domain.Segmenter { return BilingualBigram{WithSpace: ws} },
}

// New returns the segmenter registered under typ. An empty type selects the
// bilingual bigram segmenter.
func New(typ string, withSpace bool) (domain.Segmenter, error) {
	if typ == "" {
		typ = TypeBilingualBigram
	}
	c, ok := constructors[typ]
	if !ok {
		return nil, fmt.Errorf("segmenter type unsupported: %v", typ)
	}
	return c(withSpace), nil
}

// Types lists the registered segmenter names in sorted order.
func Types() []string {
	out := make([]string, 0, len(constructors))
	for typ := range constructors {
		out = append(out, typ)
	}
	sort.Strings(out)
	return out
}
