// Package pending builds the translation records awaiting keys and translations from the
// segments of one extraction pass.
package pending

import (
	"strings"
	"unicode"

	"i18n-extract/internal/aggregate"
	"i18n-extract/internal/extractor"
)

// Locales describes the known locales and where each one is stored.
type Locales struct {
	All    []string
	Source string
	// Files maps a locale to its candidate resource files, most preferred first.
	Files map[string][]string
}

// FromSegments returns one record per distinct segment text, in first-occurrence order.
// Keys are left empty. The source locale carries the segment text; every other locale is
// empty until translated. A locale without candidate files gets an empty insertion path.
func FromSegments(segs []extractor.Segment, l Locales) []aggregate.Record {
	seen := make(map[string]bool, len(segs))
	var out []aggregate.Record
	for _, s := range segs {
		if seen[s.Text] {
			continue
		}
		seen[s.Text] = true

		r := aggregate.Record{
			Languages:     make(map[string]string, len(l.All)),
			InsertionPath: make(map[string]string, len(l.All)),
		}
		for _, locale := range l.All {
			r.Languages[locale] = ""
			if files := l.Files[locale]; len(files) > 0 {
				r.InsertionPath[locale] = files[0]
			} else {
				r.InsertionPath[locale] = ""
			}
		}
		r.Languages[l.Source] = s.Text
		out = append(out, r)
	}
	return out
}

// SuggestKey camel-cases a translation into a key segment: "Save the file" -> "saveTheFile".
// Words are separated by whitespace, '-' and '_'; other characters are kept.
func SuggestKey(text string) string {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-' || r == '_'
	})
	var b strings.Builder
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		if i > 0 {
			runes[0] = unicode.ToUpper(runes[0])
		}
		b.WriteString(string(runes))
	}
	return b.String()
}
