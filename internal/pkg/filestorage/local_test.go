package filestorage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndDelete(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	stored, err := ls.Save(strings.NewReader("document body"), "letter.pdf", "absence-requests")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored, "absence-requests/"))
	assert.True(t, strings.HasSuffix(stored, ".pdf"))

	content, err := os.ReadFile(ls.FullPath(stored))
	require.NoError(t, err)
	assert.Equal(t, "document body", string(content))

	require.NoError(t, ls.Delete(stored))
	_, err = os.Stat(ls.FullPath(stored))
	assert.True(t, os.IsNotExist(err))
}

func TestStoredNamesDoNotCollide(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	first, err := ls.Save(strings.NewReader("a"), "same.txt", "")
	require.NoError(t, err)
	second, err := ls.Save(strings.NewReader("b"), "same.txt", "")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestFullPathRejectsEscape(t *testing.T) {
	base := t.TempDir()
	ls, err := NewLocalStorage(base)
	require.NoError(t, err)

	assert.Empty(t, ls.FullPath("../outside.txt"))
	assert.Equal(t, filepath.Join(base, "inside.txt"), ls.FullPath("inside.txt"))
}
