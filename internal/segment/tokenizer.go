// Package segment splits raw text into word tokens and the bigram features
// built from them. Every function here allocates its own result, so a single
// Segmenter can be shared by concurrent callers.
package segment

import (
	"strings"
	"unicode"

	bleveunicode "github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
)

var wordTokenizer = bleveunicode.NewUnicodeTokenizer()

// Latin splits text into word tokens on whitespace and punctuation
// boundaries (Unicode word segmentation). Empty input yields no tokens.
func Latin(text string) []string {
	if text == "" {
		return nil
	}
	stream := wordTokenizer.Tokenize([]byte(text))
	tokens := make([]string, 0, len(stream))
	for _, tok := range stream {
		tokens = append(tokens, string(tok.Term))
	}
	return tokens
}

// IsCJK reports whether r is a CJK ideograph.
func IsCJK(r rune) bool {
	return unicode.Is(unicode.Han, r)
}

// CJK emits every CJK ideograph as its own token and tokenizes the runs of
// other characters between them as Latin does.
func CJK(text string) []string {
	var tokens []string
	start := 0
	for i, r := range text {
		if !IsCJK(r) {
			continue
		}
		tokens = append(tokens, Latin(text[start:i])...)
		tokens = append(tokens, string(r))
		start = i + len(string(r))
	}
	return append(tokens, Latin(text[start:])...)
}

// SplitCJK surrounds every CJK ideograph with single spaces so that it is
// never fused with an adjacent Latin run. Other characters are kept as is.
func SplitCJK(text string) string {
	var sb strings.Builder
	sb.Grow(len(text) * 2)
	runes := []rune(text)
	lastSpace := false
	for i, r := range runes {
		if !IsCJK(r) {
			sb.WriteRune(r)
			lastSpace = r == ' '
			continue
		}
		if i > 0 && !lastSpace {
			sb.WriteByte(' ')
		}
		sb.WriteRune(r)
		lastSpace = false
		if i+1 < len(runes) {
			sb.WriteByte(' ')
			lastSpace = true
		}
	}
	return sb.String()
}

// Bilingual runs the CJK character split and then the Latin tokenizer over
// the result.
func Bilingual(text string) []string {
	return Latin(SplitCJK(text))
}
