// Package category loads the ordered list of class names. Line i of the
// category file names class i.
package category

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"textcat/internal/textio"
)

// ErrEmpty reports a category file without any lines.
var ErrEmpty = errors.New("category list is empty")

// List is an immutable, index-ordered set of category names.
type List struct {
	names []string
	index map[string]int
}

// New builds a list from names in class-index order.
func New(names []string) *List {
	l := &List{
		names: append([]string(nil), names...),
		index: make(map[string]int, len(names)),
	}
	for i, n := range l.names {
		l.index[n] = i
	}
	return l
}

// LoadFile reads a newline-delimited category file in the named encoding.
func LoadFile(path, encoding string) (*List, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("load category list: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("load category list: %s is a directory", path)
	}
	lines, err := textio.ReadLines(path, encoding)
	if err != nil {
		return nil, fmt.Errorf("load category list: %w", err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("load category list %s: %w", path, ErrEmpty)
	}
	return New(lines), nil
}

// Len returns the number of categories.
func (l *List) Len() int { return len(l.names) }

// Name returns the name of class id.
func (l *List) Name(id int) (string, bool) {
	if id < 0 || id >= len(l.names) {
		return "", false
	}
	return l.names[id], true
}

// Index returns the class index of name. Duplicate names resolve to their
// last line.
func (l *List) Index(name string) (int, bool) {
	id, ok := l.index[name]
	return id, ok
}

// Names returns a copy of the names in class order.
func (l *List) Names() []string {
	return append([]string(nil), l.names...)
}

// WriteFile stores the list as UTF-8, one name per line.
func (l *List) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	var sb strings.Builder
	for _, n := range l.names {
		sb.WriteString(n)
		sb.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(sb.String()), 0o644)
}
