package service

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"textcat/internal/category"
	"textcat/internal/classifier"
	"textcat/internal/scorer/linear"
	"textcat/internal/textio"
)

// CategoryFile is the name of the category list written next to trained artifacts.
const CategoryFile = "category"

// Corpus is a labelled training set laid out as <root>/<category>/*.txt.
type Corpus struct {
	Categories *category.List
	// Files[i] holds the documents of category i.
	Files [][]string
}

// ScanCorpus lists the category directories under root in name order and the
// .txt files inside each.
func ScanCorpus(root string) (*Corpus, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("scan corpus: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("scan corpus %s: no category directories", root)
	}
	sort.Strings(names)

	files := make([][]string, len(names))
	total := 0
	for i, name := range names {
		matches, err := filepath.Glob(filepath.Join(root, name, "*"))
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if strings.HasSuffix(strings.ToLower(m), ".txt") {
				files[i] = append(files[i], m)
			}
		}
		total += len(files[i])
	}
	if total == 0 {
		return nil, errors.New("no .txt documents found")
	}
	return &Corpus{Categories: category.New(names), Files: files}, nil
}

// NumDocuments returns the number of files across all categories.
func (c *Corpus) NumDocuments() int {
	n := 0
	for _, f := range c.Files {
		n += len(f)
	}
	return n
}

// TrainCorpus reads every corpus document in encoding and fits a model.
func TrainCorpus(c *Corpus, encoding string, opts classifier.Options, topts linear.TrainOptions) (*classifier.Artifacts, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	tr := classifier.NewTrainer(c.Categories.Len(), opts)
	for label, files := range c.Files {
		name, _ := c.Categories.Name(label)
		for _, path := range files {
			text, err := textio.ReadAll(path, encoding)
			if err != nil {
				return nil, err
			}
			if err := tr.AddDocument(label, text); err != nil {
				return nil, err
			}
		}
		logger.Debug("category ingested", slog.String("category", name), slog.Int("documents", len(files)))
	}
	logger.Info("corpus ingested",
		slog.Int("documents", tr.NumDocuments()),
		slog.Int("vocabulary", tr.Lexicon().Size()))
	return tr.Train(topts)
}

// SaveTrained writes the artifacts and the category list into dir.
func SaveTrained(dir string, a *classifier.Artifacts, cats *category.List) error {
	if err := a.Save(dir); err != nil {
		return err
	}
	return cats.WriteFile(filepath.Join(dir, CategoryFile))
}
