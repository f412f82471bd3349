package extractor

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	sitter "github.com/smacker/go-tree-sitter"

	"i18n-extract/internal/document"
	"i18n-extract/internal/exclusion"
	"i18n-extract/internal/position"
	"i18n-extract/internal/rules"
)

// ScriptOptions configures the plain-script walker.
type ScriptOptions struct {
	// IgnoreAttributes are JSX attribute names whose whole element, children included, is
	// never extracted from.
	IgnoreAttributes []string
}

// DefaultScriptOptions returns the attribute denylist used for .js/.jsx/.ts/.tsx files.
func DefaultScriptOptions() ScriptOptions {
	return ScriptOptions{
		IgnoreAttributes: []string{"class", "className", "key", "style", "ref", "onClick"},
	}
}

// ScriptWalker extracts text from JavaScript and TypeScript sources, including JSX.
type ScriptWalker struct {
	lang    *sitter.Language
	rules   rules.Rules
	ignore  map[string]bool
	tracker exclusion.Tracker
}

// NewScriptWalker returns a walker parsing with lang.
func NewScriptWalker(lang *sitter.Language, r rules.Rules, opts ScriptOptions) *ScriptWalker {
	return &ScriptWalker{
		lang:   lang,
		rules:  r,
		ignore: toSet(opts.IgnoreAttributes),
	}
}

var _ Walker = (*ScriptWalker)(nil)

func (w *ScriptWalker) Dialect() Dialect { return DialectScript }

func (w *ScriptWalker) Walk(ctx context.Context, doc document.Document) ([]Segment, error) {
	started := time.Now()
	w.tracker.Reset()
	defer w.tracker.Reset()

	m := doc.Mapper()
	root, err := parse(ctx, w.lang, []byte(doc.Text), 0, m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", doc.Path, err)
	}

	p := &scriptPass{
		src:     doc.Text,
		mapper:  m,
		rules:   w.rules,
		ignore:  w.ignore,
		tracker: &w.tracker,
		dialect: DialectScript,
	}
	if err := p.visit(root, false); err != nil {
		return nil, fmt.Errorf("%s: %w", doc.Path, err)
	}

	log.Debug().
		Str("file", doc.Path).
		Str("dialect", string(DialectScript)).
		Int("segments", len(p.segments)).
		Dur("took", time.Since(started)).
		Msg("Extracted script text")
	return p.segments, nil
}

// scriptPass walks one parsed script. Node offsets are relative to base; src is the whole
// document, so base+offset indexes it directly.
type scriptPass struct {
	src     string
	base    int
	mapper  *position.Mapper
	rules   rules.Rules
	ignore  map[string]bool
	tracker *exclusion.Tracker
	dialect Dialect

	// wholeLiterals emits a string literal's entire content when it qualifies, instead of
	// running it through ExtractFromText. Component script blocks work this way.
	wholeLiterals bool
	isSetup       bool

	segments []Segment
}

func (p *scriptPass) text(n *sitter.Node) string {
	s, e := span(n, p.base)
	return p.src[s:e]
}

// visit walks n in document order. Exclusions found on a node are recorded before its
// descendants are looked at.
func (p *scriptPass) visit(n *sitter.Node, inJSX bool) error {
	switch n.Type() {
	case "import_statement":
		p.tracker.Record(span(n, p.base))
		return nil
	case "export_statement":
		if src := n.ChildByFieldName("source"); src != nil {
			p.tracker.Record(span(src, p.base))
		}
	case "call_expression":
		if fn := n.ChildByFieldName("function"); fn != nil && fn.Type() == "import" {
			if args := n.ChildByFieldName("arguments"); args != nil {
				p.tracker.Record(span(args, p.base))
			}
		}
	case "jsx_element":
		inJSX = true
		if open := childOfType(n, "jsx_opening_element"); open != nil && p.hasIgnoredAttribute(open) {
			p.tracker.Record(span(n, p.base))
		}
	case "jsx_self_closing_element":
		inJSX = true
		if p.hasIgnoredAttribute(n) {
			p.tracker.Record(span(n, p.base))
		}
	case "jsx_fragment", "jsx_opening_element":
		inJSX = true
	case "string":
		return p.visitString(n, inJSX)
	case "template_string":
		if err := p.visitTemplate(n, inJSX); err != nil {
			return err
		}
	case "jsx_text":
		return p.visitJSXText(n)
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		if err := p.visit(n.Child(i), inJSX); err != nil {
			return err
		}
	}
	return nil
}

func (p *scriptPass) hasIgnoredAttribute(el *sitter.Node) bool {
	for i := 0; i < int(el.ChildCount()); i++ {
		attr := el.Child(i)
		if attr.Type() != "jsx_attribute" || attr.ChildCount() == 0 {
			continue
		}
		if p.ignore[p.text(attr.Child(0))] {
			return true
		}
	}
	return false
}

func (p *scriptPass) visitString(n *sitter.Node, inJSX bool) error {
	start, end := span(n, p.base)
	if end-start < 2 || p.tracker.IsExcluded(start, end) {
		return nil
	}
	cs, ce := start+1, end-1
	raw := p.src[cs:ce]
	full := p.fullSpan(start, end)

	if p.wholeLiterals {
		if raw == "" || !p.rules.ShouldExtract(raw) {
			return nil
		}
		p.emit(Segment{Text: raw, Start: cs, End: ce, Kind: KindScriptString, IsJSX: inJSX}, full)
		return nil
	}

	cur := newCursor(p.src, cs, ce)
	for _, c := range p.rules.ExtractFromText(raw) {
		off, err := cur.next(c)
		if err != nil {
			return err
		}
		p.emit(Segment{Text: c, Start: off, End: off + len(c), Kind: KindScriptString, IsJSX: inJSX}, full)
	}
	return nil
}

// visitTemplate runs every static chunk (quasi) of a template literal through the rules.
// Substitutions are visited afterwards by the normal descent.
func (p *scriptPass) visitTemplate(n *sitter.Node, inJSX bool) error {
	start, end := span(n, p.base)
	if end-start < 2 || p.tracker.IsExcluded(start, end) {
		return nil
	}
	for _, q := range p.quasis(n, start+1, end-1) {
		cur := newCursor(p.src, q[0], q[1])
		for _, c := range p.rules.ExtractFromText(p.src[q[0]:q[1]]) {
			off, err := cur.next(c)
			if err != nil {
				return err
			}
			p.emit(Segment{
				Text:      c,
				Start:     off,
				End:       off + len(c),
				Kind:      KindScriptTemplate,
				IsDynamic: true,
				IsJSX:     inJSX,
			}, nil)
		}
	}
	return nil
}

// quasis returns the spans between template substitutions inside [start, end).
func (p *scriptPass) quasis(n *sitter.Node, start, end int) [][2]int {
	var out [][2]int
	last := start
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.Type() != "template_substitution" {
			continue
		}
		s, e := span(c, p.base)
		if s > last {
			out = append(out, [2]int{last, s})
		}
		last = e
	}
	if end > last {
		out = append(out, [2]int{last, end})
	}
	return out
}

func (p *scriptPass) visitJSXText(n *sitter.Node) error {
	start, end := span(n, p.base)
	if p.tracker.IsExcluded(start, end) {
		return nil
	}
	cur := newCursor(p.src, start, end)
	for _, c := range p.rules.ExtractFromPlainText(p.src[start:end]) {
		off, err := cur.next(c)
		if err != nil {
			return err
		}
		p.emit(Segment{Text: c, Start: off, End: off + len(c), Kind: KindMarkupText, IsJSX: true}, nil)
	}
	return nil
}

type fullSpan struct {
	text       string
	start, end int
}

func (p *scriptPass) fullSpan(start, end int) *fullSpan {
	return &fullSpan{text: p.src[start:end], start: start, end: end}
}

func (p *scriptPass) emit(s Segment, full *fullSpan) {
	s.Dialect = p.dialect
	s.IsSetup = p.isSetup
	s.Range = p.mapper.RangeOf(s.Start, s.End)
	if full != nil {
		r := p.mapper.RangeOf(full.start, full.end)
		s.FullText, s.FullStart, s.FullEnd, s.FullRange = full.text, full.start, full.end, &r
	}
	p.segments = append(p.segments, s)
}

// hasSetupMember reports whether the script defines a member function named "setup"
// anywhere, as an object method or as a key bound to a function value.
func (p *scriptPass) hasSetupMember(n *sitter.Node) bool {
	switch n.Type() {
	case "method_definition":
		if name := n.ChildByFieldName("name"); name != nil && p.text(name) == "setup" {
			return true
		}
	case "pair":
		key, value := n.ChildByFieldName("key"), n.ChildByFieldName("value")
		if key != nil && value != nil && p.text(key) == "setup" && isFunction(value) {
			return true
		}
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if p.hasSetupMember(n.Child(i)) {
			return true
		}
	}
	return false
}

func isFunction(n *sitter.Node) bool {
	switch n.Type() {
	case "function", "function_expression", "arrow_function":
		return true
	}
	return false
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
