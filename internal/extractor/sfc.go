package extractor

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/html"

	"i18n-extract/internal/document"
	"i18n-extract/internal/exclusion"
	"i18n-extract/internal/position"
	"i18n-extract/internal/rules"
)

// SFCOptions configures the single-file-component walker.
type SFCOptions struct {
	// ImportantAttributes are static attribute names whose values are extracted.
	ImportantAttributes []string
	// ImportantBinds are directive names (bind, model, or a custom name) whose bound
	// expressions are extracted.
	ImportantBinds []string
	// IgnoreAttributes are JSX attribute names honoured inside <script lang="tsx"> blocks.
	IgnoreAttributes []string
}

// DefaultSFCOptions returns the allow-lists used for .vue files.
func DefaultSFCOptions() SFCOptions {
	important := []string{"bind", "title", "name", "label", "placeholder", "tooltip", "tip"}
	return SFCOptions{
		ImportantAttributes: important,
		ImportantBinds:      append([]string(nil), important...),
		IgnoreAttributes:    []string{"class", "id", "style"},
	}
}

// templatePattern matches a backtick template literal.
var templatePattern = regexp.MustCompile("`[^`]*`")

// SFCWalker extracts text from .vue components: the <template> markup and every <script> block.
type SFCWalker struct {
	rules   rules.Rules
	attrs   map[string]bool
	binds   map[string]bool
	ignore  map[string]bool
	tracker exclusion.Tracker
}

// NewSFCWalker returns a component walker.
func NewSFCWalker(r rules.Rules, opts SFCOptions) *SFCWalker {
	return &SFCWalker{
		rules:  r,
		attrs:  toSet(opts.ImportantAttributes),
		binds:  toSet(opts.ImportantBinds),
		ignore: toSet(opts.IgnoreAttributes),
	}
}

var _ Walker = (*SFCWalker)(nil)

func (w *SFCWalker) Dialect() Dialect { return DialectSFC }

func (w *SFCWalker) Walk(ctx context.Context, doc document.Document) ([]Segment, error) {
	started := time.Now()
	w.tracker.Reset()
	defer w.tracker.Reset()

	m := doc.Mapper()
	root, err := parse(ctx, html.GetLanguage(), maskInterpolations(doc.Text), 0, m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", doc.Path, err)
	}

	p := &sfcPass{w: w, src: doc.Text, mapper: m}
	for i := 0; i < int(root.NamedChildCount()); i++ {
		n := root.NamedChild(i)
		switch {
		case n.Type() == "element" && tagName(n, p.src) == "template":
			err = p.walkTemplate(n)
		case n.Type() == "script_element":
			err = p.walkScript(ctx, n)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", doc.Path, err)
		}
	}

	log.Debug().
		Str("file", doc.Path).
		Str("dialect", string(DialectSFC)).
		Int("segments", len(p.segments)).
		Dur("took", time.Since(started)).
		Msg("Extracted component text")
	return p.segments, nil
}

type sfcPass struct {
	w        *SFCWalker
	src      string
	mapper   *position.Mapper
	segments []Segment
}

func (p *sfcPass) text(n *sitter.Node) string {
	s, e := span(n, 0)
	return p.src[s:e]
}

func (p *sfcPass) emit(s Segment) {
	s.Dialect = DialectSFC
	s.Range = p.mapper.RangeOf(s.Start, s.End)
	p.segments = append(p.segments, s)
}

// walkTemplate extracts from the root <template>. A template in a non-html language is a
// single opaque text block.
func (p *sfcPass) walkTemplate(n *sitter.Node) error {
	lang, _ := attributeValue(startTag(n), p.src, "lang")
	if lang == "" || lang == "html" {
		return p.visitElement(n)
	}
	open, end := startTag(n), childOfType(n, "end_tag")
	if open == nil || end == nil {
		return nil
	}
	return p.plainText(int(open.EndByte()), int(end.StartByte()))
}

// visitElement handles an element's attributes, then its content in source order.
func (p *sfcPass) visitElement(n *sitter.Node) error {
	if tag := startTag(n); tag != nil {
		for i := 0; i < int(tag.NamedChildCount()); i++ {
			if attr := tag.NamedChild(i); attr.Type() == "attribute" {
				if err := p.visitAttribute(attr); err != nil {
					return err
				}
			}
		}
	}

	runStart, runEnd := -1, -1
	flush := func() error {
		if runStart < 0 {
			return nil
		}
		s, e := runStart, runEnd
		runStart, runEnd = -1, -1
		return p.textRun(s, e)
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch c.Type() {
		case "text", "entity":
			if runStart < 0 {
				runStart = int(c.StartByte())
			}
			runEnd = int(c.EndByte())
			continue
		}
		if err := flush(); err != nil {
			return err
		}
		if c.Type() == "element" {
			if err := p.visitElement(c); err != nil {
				return err
			}
		}
	}
	return flush()
}

// textRun splits [start, end) into plain text and {{ }} interpolations.
func (p *sfcPass) textRun(start, end int) error {
	i := start
	for i < end {
		open := strings.Index(p.src[i:end], "{{")
		if open < 0 {
			break
		}
		exprStart := i + open + 2
		exprEnd := interpolationEnd(p.src, exprStart, end)
		if exprEnd < 0 {
			break
		}
		if err := p.plainText(i, i+open); err != nil {
			return err
		}
		if err := p.expression(exprStart, exprEnd, KindInterpolation, KindInterpolationTemplate, ""); err != nil {
			return err
		}
		i = exprEnd + 2
	}
	return p.plainText(i, end)
}

func (p *sfcPass) plainText(start, end int) error {
	if start >= end {
		return nil
	}
	cur := newCursor(p.src, start, end)
	for _, c := range p.w.rules.ExtractFromPlainText(p.src[start:end]) {
		off, err := cur.next(c)
		if err != nil {
			return err
		}
		p.emit(Segment{Text: c, Start: off, End: off + len(c), Kind: KindMarkupText})
	}
	return nil
}

// expression extracts from a bound expression. A candidate that also appears inside a
// backtick template of the same expression gets the template kind.
func (p *sfcPass) expression(start, end int, plain, template Kind, attrName string) error {
	content := p.src[start:end]
	templates := templatePattern.FindAllString(content, -1)
	cur := newCursor(p.src, start, end)
	for _, c := range p.w.rules.ExtractFromText(content) {
		off, err := cur.next(c)
		if err != nil {
			return err
		}
		kind := plain
		for _, t := range templates {
			if strings.Contains(t, c) {
				kind = template
				break
			}
		}
		p.emit(Segment{
			Text:          c,
			Start:         off,
			End:           off + len(c),
			Kind:          kind,
			IsDynamic:     true,
			AttributeName: attrName,
		})
	}
	return nil
}

func (p *sfcPass) visitAttribute(attr *sitter.Node) error {
	nameNode := childOfType(attr, "attribute_name")
	if nameNode == nil {
		return nil
	}
	name := p.text(nameNode)
	value := attrValueNode(attr)

	if dir, ok := parseDirective(name); ok {
		if !p.w.binds[dir] || value == nil {
			return nil
		}
		return p.expression(int(value.StartByte()), int(value.EndByte()), KindAttribute, KindAttributeTemplate, name)
	}

	if !p.w.attrs[name] || value == nil {
		return nil
	}
	start, end := span(value, 0)
	fullStart, fullEnd := span(attr, 0)
	full := p.mapper.RangeOf(fullStart, fullEnd)
	p.emit(Segment{
		Text:          p.src[start:end],
		Start:         start,
		End:           end,
		Kind:          KindAttribute,
		AttributeName: name,
		FullText:      p.src[fullStart:fullEnd],
		FullStart:     fullStart,
		FullEnd:       fullEnd,
		FullRange:     &full,
	})
	return nil
}

// walkScript parses every raw text block of a <script> element as its own fragment,
// offset by the block's position in the component.
func (p *sfcPass) walkScript(ctx context.Context, n *sitter.Node) error {
	tag := startTag(n)
	lang, _ := attributeValue(tag, p.src, "lang")
	_, setupAttr := attributeValue(tag, p.src, "setup")

	for i := 0; i < int(n.ChildCount()); i++ {
		block := n.Child(i)
		if block.Type() != "raw_text" {
			continue
		}
		base, end := span(block, 0)
		root, err := parse(ctx, ScriptLanguage(lang), []byte(p.src[base:end]), base, p.mapper)
		if err != nil {
			return err
		}
		sp := &scriptPass{
			src:           p.src,
			base:          base,
			mapper:        p.mapper,
			rules:         p.w.rules,
			ignore:        p.w.ignore,
			tracker:       &p.w.tracker,
			dialect:       DialectSFC,
			wholeLiterals: true,
		}
		sp.isSetup = setupAttr || sp.hasSetupMember(root)
		if err := sp.visit(root, false); err != nil {
			return err
		}
		p.segments = append(p.segments, sp.segments...)
	}
	return nil
}

// parseDirective recognises v-name:arg, :arg, @arg and #arg attribute names and returns
// the directive name.
func parseDirective(attr string) (string, bool) {
	switch {
	case strings.HasPrefix(attr, "v-"):
		name := attr[2:]
		if i := strings.IndexAny(name, ":."); i >= 0 {
			name = name[:i]
		}
		return name, name != ""
	case strings.HasPrefix(attr, ":"), strings.HasPrefix(attr, "."):
		return "bind", true
	case strings.HasPrefix(attr, "@"):
		return "on", true
	case strings.HasPrefix(attr, "#"):
		return "slot", true
	}
	return "", false
}

func startTag(n *sitter.Node) *sitter.Node {
	if n == nil {
		return nil
	}
	if t := childOfType(n, "start_tag"); t != nil {
		return t
	}
	return childOfType(n, "self_closing_tag")
}

func tagName(n *sitter.Node, src string) string {
	tag := startTag(n)
	if tag == nil {
		return ""
	}
	if name := childOfType(tag, "tag_name"); name != nil {
		return strings.ToLower(src[name.StartByte():name.EndByte()])
	}
	return ""
}

// attrValueNode returns the node holding an attribute's value text, without quotes.
func attrValueNode(attr *sitter.Node) *sitter.Node {
	if v := childOfType(attr, "attribute_value"); v != nil {
		return v
	}
	if q := childOfType(attr, "quoted_attribute_value"); q != nil {
		return childOfType(q, "attribute_value")
	}
	return nil
}

// attributeValue looks up a static attribute on a start tag. The bool reports presence.
func attributeValue(tag *sitter.Node, src, name string) (string, bool) {
	if tag == nil {
		return "", false
	}
	for i := 0; i < int(tag.NamedChildCount()); i++ {
		attr := tag.NamedChild(i)
		if attr.Type() != "attribute" {
			continue
		}
		n := childOfType(attr, "attribute_name")
		if n == nil || src[n.StartByte():n.EndByte()] != name {
			continue
		}
		if v := attrValueNode(attr); v != nil {
			return src[v.StartByte():v.EndByte()], true
		}
		return "", true
	}
	return "", false
}
