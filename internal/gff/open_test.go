package gff

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Plain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genes.gff3")
	require.NoError(t, os.WriteFile(path, []byte(scenarioA), 0644))

	in, err := Open(path)
	require.NoError(t, err)
	defer in.Close()

	data, err := io.ReadAll(in)
	require.NoError(t, err)
	assert.Equal(t, scenarioA, string(data))
}

func TestOpen_Gzip(t *testing.T) {
	// No .gz suffix: compression is detected from the content.
	path := filepath.Join(t.TempDir(), "genes.gff3")
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(scenarioA))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	in, err := Open(path)
	require.NoError(t, err)
	defer in.Close()

	genes, err := NewReader(in).All()
	require.NoError(t, err)
	require.Len(t, genes, 1)
	assert.Equal(t, "a", genes[0].ID)
}

func TestOpen_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.gff3")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	in, err := Open(path)
	require.NoError(t, err)
	defer in.Close()

	g, err := NewReader(in).Next()
	require.NoError(t, err)
	assert.Nil(t, g)
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.gff3"))
	assert.Error(t, err)
}
