package qr

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateWritesArtifact(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(dir)

	res, err := g.Generate("GA678JP")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "GA678JP.png"), res.Path)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	// PNG magic bytes
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data[:4])
}

func TestGenerateInlineMatchesStoredFile(t *testing.T) {
	g := NewGenerator(t.TempDir())

	res, err := g.Generate("GA678JP")
	require.NoError(t, err)

	decoded, err := base64.StdEncoding.DecodeString(res.Inline)
	require.NoError(t, err)

	stored, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, stored, decoded)
}

func TestGenerateIsIdempotent(t *testing.T) {
	g := NewGenerator(t.TempDir())

	first, err := g.Generate("GA678JP")
	require.NoError(t, err)
	second, err := g.Generate("GA678JP")
	require.NoError(t, err)

	assert.Equal(t, first.Path, second.Path)
	assert.Equal(t, first.Inline, second.Inline)
}

func TestGenerateEmptyCode(t *testing.T) {
	g := NewGenerator(t.TempDir())

	_, err := g.Generate("")
	assert.ErrorIs(t, err, ErrGeneracion)
}
