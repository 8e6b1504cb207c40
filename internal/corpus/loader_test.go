package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCorpusFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeCorpusFile(t, dir, "p1.json", `{"patent_number": "P1", "titles": [{"text": "Chip cooler"}]}`)
	writeCorpusFile(t, dir, "p2.json", `{"patent_number": "P2"}`)
	writeCorpusFile(t, dir, "notes.txt", "not a patent")

	loader := NewLoader(dir, nil)
	raws, err := loader.Load()
	require.NoError(t, err)

	require.Len(t, raws, 2)
	numbers := []string{raws[0].PatentNumber, raws[1].PatentNumber}
	assert.ElementsMatch(t, []string{"P1", "P2"}, numbers)
}

func TestLoad_SkipsMalformedFiles(t *testing.T) {
	dir := t.TempDir()
	writeCorpusFile(t, dir, "good.json", `{"patent_number": "P1"}`)
	writeCorpusFile(t, dir, "bad.json", `{not json`)

	loader := NewLoader(dir, nil)
	raws, err := loader.Load()
	require.NoError(t, err)

	require.Len(t, raws, 1)
	assert.Equal(t, "P1", raws[0].PatentNumber)
}

func TestLoad_MissingDirectory(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "does-not-exist"), nil)

	_, err := loader.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corpus directory")
}

func TestLoad_EmptyDirectory(t *testing.T) {
	loader := NewLoader(t.TempDir(), nil)

	raws, err := loader.Load()
	require.NoError(t, err)
	assert.Empty(t, raws)
}
