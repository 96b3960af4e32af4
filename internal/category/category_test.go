package category

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "category")
	require.NoError(t, os.WriteFile(path, []byte("体育\n财经\n科技\n"), 0o644))

	list, err := LoadFile(path, "")
	require.NoError(t, err)
	assert.Equal(t, 3, list.Len())
	assert.Equal(t, []string{"体育", "财经", "科技"}, list.Names())

	name, ok := list.Name(1)
	require.True(t, ok)
	assert.Equal(t, "财经", name)
	_, ok = list.Name(3)
	assert.False(t, ok)

	id, ok := list.Index("科技")
	require.True(t, ok)
	assert.Equal(t, 2, id)
	_, ok = list.Index("娱乐")
	assert.False(t, ok)
}

func TestLoadFileErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := LoadFile(filepath.Join(dir, "missing"), "utf-8")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadFile(dir, "utf-8")
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = LoadFile(empty, "utf-8")
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestNamesIsACopy(t *testing.T) {
	t.Parallel()

	list := New([]string{"a", "b"})
	names := list.Names()
	names[0] = "z"
	got, _ := list.Name(0)
	assert.Equal(t, "a", got)
}

func TestWriteFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model", "category")
	require.NoError(t, New([]string{"体育", "finance"}).WriteFile(path))

	list, err := LoadFile(path, "utf-8")
	require.NoError(t, err)
	assert.Equal(t, []string{"体育", "finance"}, list.Names())
}

func TestIndexDuplicateResolvesToLastLine(t *testing.T) {
	t.Parallel()

	list := New([]string{"体育", "财经", "体育"})
	assert.Equal(t, 3, list.Len())
	id, ok := list.Index("体育")
	require.True(t, ok)
	assert.Equal(t, 2, id)
	name, _ := list.Name(0)
	assert.Equal(t, "体育", name)
}
