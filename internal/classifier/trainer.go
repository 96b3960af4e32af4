package classifier

import (
	"encoding"
	"fmt"
	"log/slog"

	"textcat/internal/codec"
	"textcat/internal/domain"
	"textcat/internal/lexicon"
	"textcat/internal/scorer/linear"
	"textcat/internal/vector"
)

type trainingDoc struct {
	label  int
	counts domain.Vector
}

// Trainer accumulates vocabulary from labelled documents with the raw
// frequency weighter, then fits a linear scorer on TF-IDF vectors.
//
// A Trainer is not safe for concurrent use.
type Trainer struct {
	opts    Options
	classes int
	lexicon *lexicon.Lexicon
	counts  *vector.Builder
	docs    []trainingDoc
}

// NewTrainer creates a trainer for the given number of classes.
func NewTrainer(classes int, opts Options) *Trainer {
	opts.applyDefaults()
	counts := opts.Vector
	counts.Normalize = false
	return &Trainer{
		opts:    opts,
		classes: classes,
		lexicon: lexicon.New(),
		counts:  vector.NewBuilder(vector.TF{}, counts),
	}
}

// Lexicon returns the growing training lexicon.
func (t *Trainer) Lexicon() *lexicon.Lexicon { return t.lexicon }

// NumDocuments returns the number of documents added so far.
func (t *Trainer) NumDocuments() int { return len(t.docs) }

// AddDocument segments text, grows the lexicon and records the raw term
// counts under label.
func (t *Trainer) AddDocument(label int, text string) error {
	if label < 0 || label >= t.classes {
		return fmt.Errorf("label %d outside %d classes", label, t.classes)
	}
	words := t.lexicon.ConvertDocument(t.opts.Segmenter.Segment(text))
	t.docs = append(t.docs, trainingDoc{label: label, counts: t.counts.Build(words)})
	return nil
}

// Artifacts is a trained model ready to be persisted or served.
type Artifacts struct {
	Lexicon *lexicon.Lexicon
	Model   encoding.BinaryMarshaler
}

// Train locks a copy of the vocabulary, reweights every recorded document
// with TF-IDF and fits the scorer.
func (t *Trainer) Train(opts linear.TrainOptions) (*Artifacts, error) {
	if len(t.docs) == 0 {
		return nil, fmt.Errorf("no training documents")
	}
	if opts.Logger == nil {
		opts.Logger = t.opts.Logger
	}
	lex := t.lexicon.Clone()
	lex.Lock()
	tfidf := vector.NewBuilder(vector.NewTFIDF(lex), t.opts.Vector)

	examples := make([]linear.Example, len(t.docs))
	for i, d := range t.docs {
		words := make([]lexicon.Word, len(d.counts))
		for j, term := range d.counts {
			words[j] = lexicon.Word{ID: term.ID, TF: int(term.Weight)}
		}
		examples[i] = linear.Example{Label: d.label, Vector: tfidf.Build(words)}
	}

	t.opts.Logger.Info("training scorer",
		slog.Int("documents", len(examples)),
		slog.Int("vocabulary", lex.Size()),
		slog.Int("classes", t.classes))
	model, err := linear.Train(examples, t.classes, lex.Size(), opts)
	if err != nil {
		return nil, fmt.Errorf("train scorer: %w", err)
	}
	return &Artifacts{Lexicon: lex, Model: model}, nil
}

func (a *Artifacts) encode() (lexData, modelData []byte, err error) {
	lexData, err = a.Lexicon.MarshalBinary()
	if err != nil {
		return nil, nil, fmt.Errorf("encode lexicon: %w", err)
	}
	modelData, err = a.Model.MarshalBinary()
	if err != nil {
		return nil, nil, fmt.Errorf("encode model: %w", err)
	}
	return lexData, modelData, nil
}

// Save writes the artifacts into dir using the LoadModel layout.
func (a *Artifacts) Save(dir string) error {
	_, modelData, err := a.encode()
	if err != nil {
		return err
	}
	return writeArtifacts(dir, a.Lexicon, modelData)
}

// MarshalString encodes the artifacts as a portable blob for LoadFromString.
func (a *Artifacts) MarshalString() (string, error) {
	lexData, modelData, err := a.encode()
	if err != nil {
		return "", err
	}
	return codec.Pack(lexData, modelData)
}
