package document

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileProviderOpen(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "App.VUE"), []byte("<template/>"), 0o644))

	doc, err := FileProvider{Root: dir}.Open(context.Background(), "App.VUE")
	require.NoError(t, err)
	assert.Equal(t, ".vue", doc.Ext)
	assert.Equal(t, "<template/>", doc.Text)
	assert.Equal(t, "App.VUE", doc.Path)
}

func TestFileProviderNotFound(t *testing.T) {
	_, err := FileProvider{Root: t.TempDir()}.Open(context.Background(), "missing.js")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryProvider(t *testing.T) {
	p := MemoryProvider{"a.ts": "const a = 1"}
	doc, err := p.Open(context.Background(), "a.ts")
	require.NoError(t, err)
	assert.Equal(t, ".ts", doc.Ext)

	_, err = p.Open(context.Background(), "b.ts")
	assert.ErrorIs(t, err, ErrNotFound)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Open(ctx, "a.ts")
	assert.ErrorIs(t, err, context.Canceled)
}
