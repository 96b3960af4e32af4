// Package textio reads text files stored in a named character encoding.
package textio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// DefaultEncoding is used when no encoding is named.
const DefaultEncoding = "utf-8"

// ErrUnknownEncoding reports an encoding name that is not recognised.
var ErrUnknownEncoding = errors.New("unknown text encoding")

const bom = "\uFEFF"

// Lookup resolves an encoding by its WHATWG name or label (utf-8, gbk,
// gb18030, big5, ...).
func Lookup(name string) (encoding.Encoding, error) {
	if name == "" {
		name = DefaultEncoding
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	return enc, nil
}

// NewReader decodes r from the named encoding into UTF-8.
func NewReader(r io.Reader, encodingName string) (io.Reader, error) {
	enc, err := Lookup(encodingName)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

// ReadAll returns the full decoded contents of path.
func ReadAll(path, encodingName string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	r, err := NewReader(f, encodingName)
	if err != nil {
		return "", err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return strings.TrimPrefix(string(data), bom), nil
}

// ReadLines returns the decoded lines of path without line terminators.
func ReadLines(path, encodingName string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r, err := NewReader(f, encodingName)
	if err != nil {
		return nil, err
	}
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if len(lines) == 0 {
			line = strings.TrimPrefix(line, bom)
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, nil
}
