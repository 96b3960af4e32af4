// Package classifier wires segmentation, the lexicon, feature weighting, an
// external scorer and ranking into a text classifier.
//
// A Classifier is unusable until a model has been loaded. Each load builds a
// complete snapshot (locked lexicon, TF-IDF builder, scorer) and publishes it
// atomically, so a failed load leaves the previous model serving and
// concurrent Classify calls always see a consistent pair.
package classifier

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"textcat/internal/codec"
	"textcat/internal/domain"
	"textcat/internal/lexicon"
	"textcat/internal/ranker"
	"textcat/internal/scorer/linear"
	"textcat/internal/segment"
	"textcat/internal/vector"
)

// Artifact names inside a model directory.
const (
	LexiconFile = "lexicon"
	ModelFile   = "model"
)

var (
	// ErrNotLoaded is returned when classifying before a model is loaded.
	ErrNotLoaded = errors.New("classifier: model not loaded")
	// ErrCorruptModel wraps every failure to decode model artifacts.
	ErrCorruptModel = errors.New("classifier: corrupt model data")
	// ErrModelDir reports a missing or incomplete model directory.
	ErrModelDir = errors.New("classifier: invalid model directory")
)

// Options configures a Classifier or Trainer.
type Options struct {
	Segmenter domain.Segmenter
	Vector    vector.Options
	// Loader decodes the scorer model artifact. Defaults to the linear scorer.
	Loader domain.ScorerLoader
	Logger *slog.Logger
}

func (o *Options) applyDefaults() {
	if o.Segmenter == nil {
		o.Segmenter = segment.BilingualBigram{}
	}
	if o.Loader == nil {
		o.Loader = linear.Loader{}
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

type snapshot struct {
	lexicon   *lexicon.Lexicon
	builder   *vector.Builder
	scorer    domain.Scorer
	modelData []byte
}

// Classifier is safe for concurrent use once loaded.
type Classifier struct {
	opts  Options
	ready atomic.Pointer[snapshot]
}

var _ domain.TextClassifier = (*Classifier)(nil)

// New creates an unloaded classifier.
func New(opts Options) *Classifier {
	opts.applyDefaults()
	return &Classifier{opts: opts}
}

// NewBilingualBigram creates a classifier for mixed Chinese/English text.
func NewBilingualBigram(withSpace bool, opts Options) *Classifier {
	opts.Segmenter = segment.BilingualBigram{WithSpace: withSpace}
	return New(opts)
}

// NewEnglishBigram creates a classifier over Latin word bigrams.
func NewEnglishBigram(withSpace bool, opts Options) *Classifier {
	opts.Segmenter = segment.EnglishBigram{WithSpace: withSpace}
	return New(opts)
}

// NewUnigram creates a classifier over single word tokens.
func NewUnigram(opts Options) *Classifier {
	opts.Segmenter = segment.Unigram{}
	return New(opts)
}

// Segmenter returns the tokenization variant in use.
func (c *Classifier) Segmenter() domain.Segmenter { return c.opts.Segmenter }

// Loaded reports whether a model is being served.
func (c *Classifier) Loaded() bool { return c.ready.Load() != nil }

// Lexicon returns the locked lexicon of the loaded model, or nil. The
// lexicon is shared with in-flight Classify calls; being locked, it rejects
// every mutation.
func (c *Classifier) Lexicon() *lexicon.Lexicon {
	if s := c.ready.Load(); s != nil {
		return s.lexicon
	}
	return nil
}

// NumClasses returns the class count of the loaded model, or 0.
func (c *Classifier) NumClasses() int {
	if s := c.ready.Load(); s != nil {
		return s.scorer.NumClasses()
	}
	return 0
}

// LoadModel loads the lexicon and model artifacts from dir.
func (c *Classifier) LoadModel(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return c.loadFailed(dir, fmt.Errorf("%w: %v", ErrModelDir, err))
	}
	if !info.IsDir() {
		return c.loadFailed(dir, fmt.Errorf("%w: %s is not a directory", ErrModelDir, dir))
	}
	return c.LoadModelFiles(filepath.Join(dir, LexiconFile), filepath.Join(dir, ModelFile))
}

// LoadModelFiles loads the lexicon and model artifacts from explicit paths.
func (c *Classifier) LoadModelFiles(lexiconPath, modelPath string) error {
	lexData, err := os.ReadFile(lexiconPath)
	if err != nil {
		return c.loadFailed(lexiconPath, fmt.Errorf("%w: %v", ErrModelDir, err))
	}
	modelData, err := os.ReadFile(modelPath)
	if err != nil {
		return c.loadFailed(modelPath, fmt.Errorf("%w: %v", ErrModelDir, err))
	}
	return c.load(filepath.Dir(lexiconPath), lexData, modelData)
}

// LoadFromString loads a portable blob produced by MarshalString.
func (c *Classifier) LoadFromString(blob string) error {
	lexData, modelData, err := codec.Unpack(blob)
	if err != nil {
		return c.loadFailed("blob", fmt.Errorf("%w: %v", ErrCorruptModel, err))
	}
	return c.load("blob", lexData, modelData)
}

func (c *Classifier) load(source string, lexData, modelData []byte) error {
	snap, err := c.buildSnapshot(lexData, modelData)
	if err != nil {
		return c.loadFailed(source, err)
	}
	c.ready.Store(snap)
	c.opts.Logger.Info("model loaded",
		slog.String("source", source),
		slog.String("segmenter", c.opts.Segmenter.Name()),
		slog.Int("vocabulary", snap.lexicon.Size()),
		slog.Int("documents", snap.lexicon.TotalDocuments()),
		slog.Int("classes", snap.scorer.NumClasses()))
	return nil
}

func (c *Classifier) buildSnapshot(lexData, modelData []byte) (*snapshot, error) {
	lex := lexicon.New()
	if err := lex.UnmarshalBinary(lexData); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptModel, err)
	}
	lex.Lock()
	scorer, err := c.opts.Loader.Load(modelData, lex.Size())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptModel, err)
	}
	return &snapshot{
		lexicon:   lex,
		builder:   vector.NewBuilder(vector.NewTFIDF(lex), c.opts.Vector),
		scorer:    scorer,
		modelData: modelData,
	}, nil
}

func (c *Classifier) loadFailed(source string, err error) error {
	c.opts.Logger.Warn("model load failed",
		slog.String("source", source),
		slog.Bool("previous_model_kept", c.Loaded()),
		slog.String("error", err.Error()))
	return err
}

// Vectorize returns the TF-IDF vector of text under the loaded model.
func (c *Classifier) Vectorize(text string) (domain.Vector, error) {
	snap := c.ready.Load()
	if snap == nil {
		return nil, ErrNotLoaded
	}
	return snap.vectorize(c.opts.Segmenter, text), nil
}

func (s *snapshot) vectorize(seg domain.Segmenter, text string) domain.Vector {
	return s.builder.Build(s.lexicon.ConvertDocument(seg.Segment(text)))
}

func (c *Classifier) probabilities(text string) ([]float64, error) {
	snap := c.ready.Load()
	if snap == nil {
		return nil, ErrNotLoaded
	}
	probs, err := snap.scorer.PredictProbabilities(snap.vectorize(c.opts.Segmenter, text))
	if err != nil {
		return nil, fmt.Errorf("classifier: score: %w", err)
	}
	if n := snap.scorer.NumClasses(); len(probs) != n {
		return nil, fmt.Errorf("classifier: scorer returned %d probabilities for %d classes", len(probs), n)
	}
	return probs, nil
}

// Classify returns the most probable class of text.
func (c *Classifier) Classify(text string) (domain.ClassifyResult, error) {
	probs, err := c.probabilities(text)
	if err != nil {
		return domain.ClassifyResult{Label: -1}, err
	}
	return ranker.Best(probs), nil
}

// ClassifyTopN returns up to min(topN, classes) results by descending probability.
func (c *Classifier) ClassifyTopN(text string, topN int) ([]domain.ClassifyResult, error) {
	probs, err := c.probabilities(text)
	if err != nil {
		return nil, err
	}
	return ranker.Rank(probs, topN), nil
}

// SaveModel writes the loaded model's artifacts to dir.
func (c *Classifier) SaveModel(dir string) error {
	snap := c.ready.Load()
	if snap == nil {
		return ErrNotLoaded
	}
	return writeArtifacts(dir, snap.lexicon, snap.modelData)
}

// MarshalString encodes the loaded model as a portable blob.
func (c *Classifier) MarshalString() (string, error) {
	snap := c.ready.Load()
	if snap == nil {
		return "", ErrNotLoaded
	}
	lexData, err := snap.lexicon.MarshalBinary()
	if err != nil {
		return "", err
	}
	return codec.Pack(lexData, snap.modelData)
}

func writeArtifacts(dir string, lex *lexicon.Lexicon, modelData []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := lex.SaveToFile(filepath.Join(dir, LexiconFile)); err != nil {
		return fmt.Errorf("write lexicon: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ModelFile), modelData, 0o644); err != nil {
		return fmt.Errorf("write model: %w", err)
	}
	return nil
}
