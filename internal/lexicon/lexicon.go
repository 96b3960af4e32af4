// Package lexicon maps vocabulary strings to dense integer ids and tracks
// document frequencies. A lexicon grows while training and is locked before
// inference, after which it is read-only and safe to share between
// goroutines.
package lexicon

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"textcat/internal/codec"
)

// ErrLocked is returned when decoding into a locked lexicon.
var ErrLocked = errors.New("lexicon is locked")

// NotFound is the id returned for a word the lexicon cannot resolve.
const NotFound = -1

// formatVersion is the persisted lexicon layout written by MarshalBinary.
const formatVersion = 1

// Word is a lexicon entry resolved within one document.
type Word struct {
	ID   int
	Name string
	// TF is the number of occurrences in the document.
	TF int
	// DF is the lexicon-wide document frequency.
	DF int
}

// Lexicon is a growable, then lockable, bijection between words and ids.
// Ids are assigned in first-seen order starting at 0 and never change.
//
// An unlocked Lexicon is not safe for concurrent use.
type Lexicon struct {
	ids       map[string]int
	words     []string
	df        []int
	totalDocs int
	locked    bool
}

// New creates an empty, unlocked lexicon.
func New() *Lexicon {
	return &Lexicon{ids: make(map[string]int)}
}

// Size returns the number of distinct words.
func (l *Lexicon) Size() int { return len(l.words) }

// TotalDocuments returns the number of documents added while unlocked.
func (l *Lexicon) TotalDocuments() int { return l.totalDocs }

// Locked reports whether the lexicon has been frozen.
func (l *Lexicon) Locked() bool { return l.locked }

// Lock freezes the lexicon. It cannot be undone.
func (l *Lexicon) Lock() { l.locked = true }

// Lookup returns the id of word without modifying the lexicon.
func (l *Lexicon) Lookup(word string) (int, bool) {
	id, ok := l.ids[word]
	if !ok {
		return NotFound, false
	}
	return id, true
}

// LookupOrInsert returns the id of word, assigning the next id if the word is
// new and the lexicon is unlocked. On a locked lexicon unseen words resolve
// to NotFound. Document frequencies are maintained by ConvertDocument.
func (l *Lexicon) LookupOrInsert(word string) (int, bool) {
	if id, ok := l.ids[word]; ok {
		return id, true
	}
	if l.locked {
		return NotFound, false
	}
	id := len(l.words)
	l.ids[word] = id
	l.words = append(l.words, word)
	l.df = append(l.df, 0)
	return id, true
}

// Word returns the string for id.
func (l *Lexicon) Word(id int) (string, bool) {
	if id < 0 || id >= len(l.words) {
		return "", false
	}
	return l.words[id], true
}

// DocumentFrequency returns the number of documents containing id.
func (l *Lexicon) DocumentFrequency(id int) int {
	if id < 0 || id >= len(l.df) {
		return 0
	}
	return l.df[id]
}

// ConvertDocument resolves the tokens of one document, aggregating repeated
// tokens into a single Word with its term frequency. Words are returned in
// first-occurrence order. Unresolvable tokens are dropped.
//
// While unlocked the document is also counted: every distinct word's
// document frequency and the total document count each grow by one.
func (l *Lexicon) ConvertDocument(tokens []string) []Word {
	index := make(map[int]int, len(tokens))
	words := make([]Word, 0, len(tokens))
	for _, tok := range tokens {
		id, ok := l.LookupOrInsert(tok)
		if !ok {
			continue
		}
		if i, seen := index[id]; seen {
			words[i].TF++
			continue
		}
		index[id] = len(words)
		words = append(words, Word{ID: id, Name: tok, TF: 1})
	}
	if !l.locked {
		l.totalDocs++
		for _, w := range words {
			l.df[w.ID]++
		}
	}
	for i := range words {
		words[i].DF = l.df[words[i].ID]
	}
	return words
}

// Clone returns a deep copy.
func (l *Lexicon) Clone() *Lexicon {
	c := &Lexicon{
		ids:       make(map[string]int, len(l.ids)),
		words:     append([]string(nil), l.words...),
		df:        append([]int(nil), l.df...),
		totalDocs: l.totalDocs,
		locked:    l.locked,
	}
	for w, id := range l.ids {
		c.ids[w] = id
	}
	return c
}

type persisted struct {
	Version        int      `cbor:"version"`
	Words          []string `cbor:"words"`
	DF             []int    `cbor:"df"`
	TotalDocuments int      `cbor:"total_documents"`
	Locked         bool     `cbor:"locked"`
}

// MarshalBinary encodes the word table, document frequencies, document count
// and lock state. Ids are implied by word position.
func (l *Lexicon) MarshalBinary() ([]byte, error) {
	return codec.Marshal(persisted{
		Version:        formatVersion,
		Words:          l.words,
		DF:             l.df,
		TotalDocuments: l.totalDocs,
		Locked:         l.locked,
	})
}

// UnmarshalBinary replaces the lexicon with the decoded data. A locked
// receiver is never replaced and returns ErrLocked. On error the receiver is
// left unchanged.
func (l *Lexicon) UnmarshalBinary(data []byte) error {
	if l.locked {
		return ErrLocked
	}
	var p persisted
	if err := codec.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("decode lexicon: %w", err)
	}
	if p.Version != formatVersion {
		return fmt.Errorf("unsupported lexicon version %d", p.Version)
	}
	if len(p.Words) != len(p.DF) {
		return fmt.Errorf("lexicon has %d words but %d frequencies", len(p.Words), len(p.DF))
	}
	if p.TotalDocuments < 0 {
		return errors.New("lexicon has negative document count")
	}
	ids := make(map[string]int, len(p.Words))
	for id, w := range p.Words {
		if _, dup := ids[w]; dup {
			return fmt.Errorf("lexicon word %q appears twice", w)
		}
		if p.DF[id] < 0 || p.DF[id] > p.TotalDocuments {
			return fmt.Errorf("lexicon word %q has document frequency %d of %d documents", w, p.DF[id], p.TotalDocuments)
		}
		ids[w] = id
	}
	l.ids = ids
	l.words = p.Words
	l.df = p.DF
	l.totalDocs = p.TotalDocuments
	l.locked = p.Locked
	return nil
}

// SaveToFile writes the lexicon to path, creating directories as needed.
func (l *Lexicon) SaveToFile(path string) error {
	data, err := l.MarshalBinary()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadFromFile reads a lexicon written by SaveToFile.
func LoadFromFile(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	l := New()
	if err := l.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}
