// Package document provides the text buffers extraction runs over.
package document

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"i18n-extract/internal/position"
)

// ErrNotFound is returned when a document identifier cannot be opened.
var ErrNotFound = errors.New("document not found")

// Document is the full text of one source file.
type Document struct {
	// Path identifies the document.
	Path string
	// Ext is the lower-cased file extension including the dot.
	Ext string
	// Text is the current buffer content.
	Text string
}

// New builds a Document for path with the given text.
func New(path, text string) Document {
	return Document{Path: path, Ext: Ext(path), Text: text}
}

// Ext returns the lower-cased extension of path.
func Ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// Mapper returns a position mapper over the document text.
func (d Document) Mapper() *position.Mapper {
	return position.NewMapper(d.Text)
}

// Provider opens documents by identifier.
type Provider interface {
	Open(ctx context.Context, id string) (Document, error)
}

// FileProvider reads documents from the filesystem. Relative ids resolve against Root.
type FileProvider struct {
	Root string
}

var _ Provider = FileProvider{}

func (p FileProvider) Open(ctx context.Context, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	path := id
	if p.Root != "" && !filepath.IsAbs(path) {
		path = filepath.Join(p.Root, path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Document{}, fmt.Errorf("open %s: %w", id, ErrNotFound)
		}
		return Document{}, fmt.Errorf("open %s: %w", id, err)
	}
	return New(id, string(b)), nil
}

// MemoryProvider serves documents from a map, keyed by id.
type MemoryProvider map[string]string

var _ Provider = MemoryProvider(nil)

func (p MemoryProvider) Open(ctx context.Context, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	text, ok := p[id]
	if !ok {
		return Document{}, fmt.Errorf("open %s: %w", id, ErrNotFound)
	}
	return New(id, text), nil
}
