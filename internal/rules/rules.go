// Package rules decides which substrings of source text are worth extracting.
//
// Every function returns candidates in order of first occurrence in the input, and every
// candidate is a literal substring of the input. Walkers rely on both properties when they
// resolve candidates back to offsets.
package rules

import (
	"fmt"
	"strings"

	"i18n-extract/internal/textutil"
)

// Rules is the text qualification capability consumed by the walkers.
type Rules interface {
	// ExtractFromText handles literal and expression content.
	ExtractFromText(s string) []string
	// ExtractFromPlainText handles prose-like text blocks.
	ExtractFromPlainText(s string) []string
	// ShouldExtract is a fast-path filter for whole values.
	ShouldExtract(s string) bool
}

// Qualifier reports whether a piece of text looks like human text.
type Qualifier func(s string) bool

// HanQualifier accepts text containing Chinese characters.
func HanQualifier(s string) bool { return textutil.ContainsChinese(s) }

// NonASCIIQualifier accepts text containing any non-ASCII rune.
func NonASCIIQualifier(s string) bool { return textutil.ContainsNonASCII(s) }

// ByName returns the qualifier registered under name.
func ByName(name string) (Qualifier, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "han":
		return HanQualifier, nil
	case "non-ascii", "nonascii":
		return NonASCIIQualifier, nil
	default:
		return nil, fmt.Errorf("unknown qualification rule %q", name)
	}
}

// Default is the line-and-quote based rule set.
type Default struct {
	Qualify Qualifier
}

// New returns the default rule set using q.
func New(q Qualifier) *Default {
	if q == nil {
		q = HanQualifier
	}
	return &Default{Qualify: q}
}

var _ Rules = (*Default)(nil)

func (d *Default) ShouldExtract(s string) bool {
	return d.Qualify(s)
}

// ExtractFromPlainText returns every trimmed line of s that qualifies.
func (d *Default) ExtractFromPlainText(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && d.Qualify(line) {
			out = append(out, line)
		}
	}
	return out
}

// ExtractFromText splits s into quoted and unquoted pieces and applies the plain-text
// variant to each. Inside backtick templates the ${...} holes are skipped, so static
// template text is returned without the substitution source.
func (d *Default) ExtractFromText(s string) []string {
	var out []string
	for _, piece := range splitQuoted(s) {
		out = append(out, d.ExtractFromPlainText(piece)...)
	}
	return out
}

// splitQuoted cuts s into unquoted runs and quote inners, in source order.
func splitQuoted(s string) []string {
	var pieces []string
	last := 0
	for i := 0; i < len(s); i++ {
		q := s[i]
		if q != '"' && q != '\'' && q != '`' {
			continue
		}
		end := closingQuote(s, i)
		if end < 0 {
			continue
		}
		if i > last {
			pieces = append(pieces, s[last:i])
		}
		inner := s[i+1 : end]
		if q == '`' {
			pieces = append(pieces, templatePieces(inner)...)
		} else {
			pieces = append(pieces, inner)
		}
		last = end + 1
		i = end
	}
	if last < len(s) {
		pieces = append(pieces, s[last:])
	}
	return pieces
}

// closingQuote returns the index of the quote closing the one at open, or -1.
func closingQuote(s string, open int) int {
	q := s[open]
	depth := 0
	for j := open + 1; j < len(s); j++ {
		switch {
		case s[j] == '\\':
			j++
		case q == '`' && s[j] == '$' && j+1 < len(s) && s[j+1] == '{':
			depth++
			j++
		case q == '`' && depth > 0 && s[j] == '{':
			depth++
		case q == '`' && depth > 0 && s[j] == '}':
			depth--
		case s[j] == q && depth == 0:
			return j
		}
	}
	return -1
}

// templatePieces returns the static chunks of a template body.
func templatePieces(body string) []string {
	var pieces []string
	last := 0
	depth := 0
	for i := 0; i < len(body); i++ {
		switch {
		case body[i] == '\\':
			i++
		case body[i] == '$' && i+1 < len(body) && body[i+1] == '{':
			if depth == 0 && i > last {
				pieces = append(pieces, body[last:i])
			}
			depth++
			i++
		case body[i] == '{' && depth > 0:
			depth++
		case body[i] == '}' && depth > 0:
			depth--
			if depth == 0 {
				last = i + 1
			}
		}
	}
	if depth == 0 && last < len(body) {
		pieces = append(pieces, body[last:])
	}
	return pieces
}
