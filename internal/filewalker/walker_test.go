package filewalker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type exts map[string]bool

func (e exts) Supports(ext string) bool { return e[ext] }

func write(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestWalk(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{"a.vue", "src/b.TS", "src/c.md", "node_modules/lib/d.js", "src/e.jsx"} {
		write(t, root, rel)
	}

	entries, err := NewWalker(exts{".vue": true, ".ts": true, ".js": true, ".jsx": true}).Walk(root)
	require.NoError(t, err)

	var rels []string
	for _, e := range entries {
		rel, err := filepath.Rel(root, e.Path)
		require.NoError(t, err)
		rels = append(rels, filepath.ToSlash(rel))
	}
	assert.Equal(t, []string{"a.vue", "src/b.TS", "src/e.jsx"}, rels)
	assert.Equal(t, ".ts", entries[1].Ext)
}

func TestWalkRejectsFile(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.js")

	_, err := NewWalker(exts{}).Walk(filepath.Join(root, "a.js"))

	assert.Error(t, err)
}
