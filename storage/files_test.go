package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveKeepsExtensionAndWritesContent(t *testing.T) {
	fs := NewFileStorage(t.TempDir())

	name, err := fs.Save("poster.png", strings.NewReader("image-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".png"))
	assert.True(t, fs.Exists(name))
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	fs := NewFileStorage(t.TempDir())

	first, err := fs.Save("poster.jpg", strings.NewReader("a"))
	require.NoError(t, err)
	second, err := fs.Save("poster.jpg", strings.NewReader("b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDeleteRemovesFile(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileStorage(dir)

	name, err := fs.Save("poster.png", strings.NewReader("image-bytes"))
	require.NoError(t, err)

	require.NoError(t, fs.Delete(name))
	assert.False(t, fs.Exists(name))

	_, err = os.Stat(filepath.Join(dir, name))
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteMissingFileFails(t *testing.T) {
	fs := NewFileStorage(t.TempDir())
	assert.Error(t, fs.Delete("nope.png"))
}
