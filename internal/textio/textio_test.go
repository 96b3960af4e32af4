package textio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestReadAllUTF8(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "doc.txt", []byte("\uFEFF体育新闻\nsports"))
	got, err := ReadAll(path, "")
	require.NoError(t, err)
	assert.Equal(t, "体育新闻\nsports", got)
}

func TestReadLinesGBK(t *testing.T) {
	t.Parallel()

	encoded, err := simplifiedchinese.GBK.NewEncoder().Bytes([]byte("体育\r\n财经\n科技\n"))
	require.NoError(t, err)
	path := writeFile(t, "category", encoded)

	lines, err := ReadLines(path, "gbk")
	require.NoError(t, err)
	assert.Equal(t, []string{"体育", "财经", "科技"}, lines)
}

func TestUnknownEncoding(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "doc.txt", []byte("x"))
	_, err := ReadAll(path, "klingon-8")
	assert.ErrorIs(t, err, ErrUnknownEncoding)
	_, err = ReadLines(path, "klingon-8")
	assert.ErrorIs(t, err, ErrUnknownEncoding)
}

func TestMissingFile(t *testing.T) {
	t.Parallel()

	_, err := ReadAll(filepath.Join(t.TempDir(), "nope"), "utf-8")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
