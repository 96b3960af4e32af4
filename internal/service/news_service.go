package service

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"textcat/internal/category"
	"textcat/internal/classifier"
	"textcat/internal/config"
	"textcat/internal/domain"
	"textcat/internal/keywords"
	"textcat/internal/scorer/linear"
	"textcat/internal/segment"
	"textcat/internal/textio"
	"textcat/internal/vector"
)

// NewsService resolves classifier output against the category list.
type NewsService struct {
	classifier *classifier.Classifier
	categories *category.List
	encoding   string
	logger     *slog.Logger
}

func NewNewsService(cls *classifier.Classifier, categories *category.List, logger *slog.Logger) *NewsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &NewsService{classifier: cls, categories: categories, encoding: textio.DefaultEncoding, logger: logger}
}

// ClassifierOptions translates the segmenter and vector sections of cfg.
func ClassifierOptions(cfg *config.AppConfig, logger *slog.Logger) (classifier.Options, error) {
	seg, err := segment.New(cfg.Segmenter.Type, cfg.Segmenter.WithSpace)
	if err != nil {
		return classifier.Options{}, err
	}
	trunc, err := vector.ParseTruncation(cfg.Vector.Truncation)
	if err != nil {
		return classifier.Options{}, err
	}
	return classifier.Options{
		Segmenter: seg,
		Vector: vector.Options{
			MaxFeatures: cfg.Vector.MaxFeatures,
			Truncation:  trunc,
			Normalize:   cfg.Vector.Normalize,
		},
		Logger: logger,
	}, nil
}

// TrainOptions translates the train section of cfg.
func TrainOptions(cfg *config.AppConfig, logger *slog.Logger) linear.TrainOptions {
	return linear.TrainOptions{
		Epochs:       cfg.Train.Epochs,
		LearningRate: cfg.Train.LearningRate,
		L2:           cfg.Train.L2,
		Seed:         cfg.Train.Seed,
		Logger:       logger,
	}
}

// Open loads the model directory and category file named by cfg.
func Open(cfg *config.AppConfig, logger *slog.Logger) (*NewsService, error) {
	return open(cfg, logger, func(c *classifier.Classifier) error {
		return c.LoadModel(cfg.Model.Dir)
	})
}

// OpenBlob loads the model from a portable blob instead of cfg.Model.Dir.
func OpenBlob(cfg *config.AppConfig, blob string, logger *slog.Logger) (*NewsService, error) {
	return open(cfg, logger, func(c *classifier.Classifier) error {
		return c.LoadFromString(blob)
	})
}

func open(cfg *config.AppConfig, logger *slog.Logger, load func(*classifier.Classifier) error) (*NewsService, error) {
	opts, err := ClassifierOptions(cfg, logger)
	if err != nil {
		return nil, err
	}
	cats, err := category.LoadFile(cfg.Model.CategoryFile, cfg.Model.Encoding)
	if err != nil {
		return nil, err
	}
	cls := classifier.New(opts)
	if err := load(cls); err != nil {
		return nil, err
	}
	if n := cls.NumClasses(); n != cats.Len() {
		return nil, fmt.Errorf("model has %d classes but %s lists %d categories",
			n, filepath.Base(cfg.Model.CategoryFile), cats.Len())
	}
	svc := NewNewsService(cls, cats, logger)
	svc.encoding = cfg.Model.Encoding
	return svc, nil
}

// Classifier returns the underlying classifier.
func (s *NewsService) Classifier() *classifier.Classifier { return s.classifier }

func (s *NewsService) NumCategories() int { return s.categories.Len() }

func (s *NewsService) CategoryName(id int) (string, bool) { return s.categories.Name(id) }

func (s *NewsService) CategoryIndex(name string) (int, bool) { return s.categories.Index(name) }

// Classify returns the best category for text.
func (s *NewsService) Classify(text string) (domain.NamedResult, error) {
	res, err := s.classifier.Classify(text)
	if err != nil {
		return domain.NamedResult{Label: -1}, err
	}
	return s.named(res), nil
}

// TopN returns up to topN named results. topN is clamped to the number of
// categories.
func (s *NewsService) TopN(text string, topN int) ([]domain.NamedResult, error) {
	if n := s.categories.Len(); topN > n {
		topN = n
	}
	res, err := s.classifier.ClassifyTopN(text, topN)
	if err != nil {
		return nil, err
	}
	out := make([]domain.NamedResult, len(res))
	for i, r := range res {
		out[i] = s.named(r)
	}
	return out, nil
}

// ClassifyFile reads path in the configured encoding and ranks it.
func (s *NewsService) ClassifyFile(path string, topN int) ([]domain.NamedResult, error) {
	text, err := textio.ReadAll(path, s.encoding)
	if err != nil {
		return nil, err
	}
	return s.TopN(text, topN)
}

// Keywords returns the k strongest lexicon features of text.
func (s *NewsService) Keywords(text string, k int) ([]keywords.Keyword, error) {
	vec, err := s.classifier.Vectorize(text)
	if err != nil {
		return nil, err
	}
	return keywords.Top(vec, s.classifier.Lexicon(), k), nil
}

func (s *NewsService) named(r domain.ClassifyResult) domain.NamedResult {
	name, ok := s.categories.Name(r.Label)
	if !ok {
		s.logger.Warn("label has no category", slog.Int("label", r.Label))
	}
	return domain.NamedResult{Label: r.Label, Category: name, Probability: r.Probability}
}
