package extractor

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"i18n-extract/internal/document"
	"i18n-extract/internal/position"
	"i18n-extract/internal/rules"
)

var hanRules = rules.New(rules.HanQualifier)

func containsRule(word string) rules.Rules {
	return rules.New(func(s string) bool { return strings.Contains(s, word) })
}

// brokenRules returns a candidate that is never present in the input.
type brokenRules struct{}

func (brokenRules) ExtractFromText(string) []string      { return []string{"\x00missing"} }
func (brokenRules) ExtractFromPlainText(string) []string { return []string{"\x00missing"} }
func (brokenRules) ShouldExtract(string) bool            { return true }

func extract(t *testing.T, w Walker, path, src string) []Segment {
	t.Helper()
	segs, err := w.Walk(context.Background(), document.New(path, src))
	require.NoError(t, err)
	assertWellFormed(t, src, segs)
	return segs
}

// assertWellFormed checks the offset and range invariants every segment must satisfy.
func assertWellFormed(t *testing.T, src string, segs []Segment) {
	t.Helper()
	m := position.NewMapper(src)
	for _, s := range segs {
		require.True(t, 0 <= s.Start && s.Start <= s.End && s.End <= len(src), "bad span %d..%d", s.Start, s.End)
		assert.Equal(t, s.Text, src[s.Start:s.End])
		assert.Equal(t, m.RangeOf(s.Start, s.End), s.Range)
		if s.FullRange != nil {
			assert.Equal(t, s.FullText, src[s.FullStart:s.FullEnd])
			assert.LessOrEqual(t, s.FullStart, s.Start)
			assert.GreaterOrEqual(t, s.FullEnd, s.End)
		}
	}
}

func texts(segs []Segment) []string {
	out := make([]string, 0, len(segs))
	for _, s := range segs {
		out = append(out, s.Text)
	}
	return out
}
