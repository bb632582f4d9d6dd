package fetch

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range entries {
		entry, err := w.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
}

func TestExtractZip(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "cm01JAN2014bhav.csv.zip")
	writeTestZip(t, archive, map[string]string{
		"cm01JAN2014bhav.csv": "FOO,EQ,100.00",
	})

	dest := filepath.Join(dir, "extracted")
	paths, err := ExtractZip(archive, dest)
	require.NoError(t, err)
	require.Len(t, paths, 1)

	assert.Equal(t, filepath.Join(dest, "cm01JAN2014bhav.csv"), paths[0])
	content, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Equal(t, "FOO,EQ,100.00", string(content))
}

func TestExtractZip_MissingArchive(t *testing.T) {
	_, err := ExtractZip(filepath.Join(t.TempDir(), "nope.zip"), t.TempDir())
	assert.Error(t, err)
}

func TestExtractZip_RejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "evil.zip")
	writeTestZip(t, archive, map[string]string{
		"../escape.csv": "payload",
	})

	_, err := ExtractZip(archive, filepath.Join(dir, "out"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsafe archive entry")
	assert.NoFileExists(t, filepath.Join(dir, "escape.csv"))
}
