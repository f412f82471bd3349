package filewalker

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"i18n-extract/internal/document"
)

// Registry reports which extensions can be extracted.
type Registry interface {
	Supports(ext string) bool
}

// skipDirs are directory names never descended into.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"dist":         true,
}

// Walker discovers source files that a registered walker can handle.
type Walker struct {
	registry Registry
}

func NewWalker(r Registry) *Walker {
	return &Walker{registry: r}
}

// FileEntry represents a discovered file ready for extraction.
type FileEntry struct {
	Path string
	Ext  string
}

// Walk discovers all supported files under root, in lexical order.
func (w *Walker) Walk(root string) ([]FileEntry, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", root)
	}

	var entries []FileEntry
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error walking path")
			return nil
		}
		if info.IsDir() {
			if path != root && skipDirs[info.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		ext := document.Ext(path)
		if w.registry.Supports(ext) {
			entries = append(entries, FileEntry{Path: path, Ext: ext})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	log.Info().Int("count", len(entries)).Str("root", root).Msg("Discovered files")
	return entries, nil
}
