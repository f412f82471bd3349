package extractor

import (
	"context"
	"sort"
	"strings"

	"i18n-extract/internal/document"
	"i18n-extract/internal/rules"
)

// Options groups the per-dialect settings of the default registry.
type Options struct {
	Script ScriptOptions
	SFC    SFCOptions
}

// DefaultOptions returns the built-in attribute lists.
func DefaultOptions() Options {
	return Options{Script: DefaultScriptOptions(), SFC: DefaultSFCOptions()}
}

// Dispatcher maps file extensions to walkers. It holds no extraction logic itself.
type Dispatcher struct {
	walkers map[string]Walker
}

// NewDispatcher returns an empty registry.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{walkers: make(map[string]Walker)}
}

// NewDefault returns a registry for .vue, .js, .jsx, .ts and .tsx files.
func NewDefault(r rules.Rules, opts Options) *Dispatcher {
	d := NewDispatcher()
	d.Register(".vue", NewSFCWalker(r, opts.SFC))
	for _, ext := range []string{".js", ".jsx", ".ts", ".tsx"} {
		d.Register(ext, NewScriptWalker(ScriptLanguage(ext), r, opts.Script))
	}
	return d
}

// Register binds ext (with or without the leading dot) to w.
func (d *Dispatcher) Register(ext string, w Walker) {
	d.walkers[normaliseExt(ext)] = w
}

// Lookup returns the walker registered for ext.
func (d *Dispatcher) Lookup(ext string) (Walker, bool) {
	w, ok := d.walkers[normaliseExt(ext)]
	return w, ok
}

// Supports reports whether ext has a walker.
func (d *Dispatcher) Supports(ext string) bool {
	_, ok := d.Lookup(ext)
	return ok
}

// Extensions lists the registered extensions in sorted order.
func (d *Dispatcher) Extensions() []string {
	out := make([]string, 0, len(d.walkers))
	for ext := range d.walkers {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// Extract runs the walker registered for ext over doc. Unsupported extensions yield no
// segments and no error.
func (d *Dispatcher) Extract(ctx context.Context, ext string, doc document.Document) ([]Segment, error) {
	w, ok := d.Lookup(ext)
	if !ok {
		return nil, nil
	}
	return w.Walk(ctx, doc)
}

func normaliseExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
