package pending

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"i18n-extract/internal/extractor"
)

func TestFromSegments(t *testing.T) {
	segs := []extractor.Segment{{Text: "你好"}, {Text: "世界"}, {Text: "你好"}}
	l := Locales{
		All:    []string{"zh-CN", "en"},
		Source: "zh-CN",
		Files: map[string][]string{
			"zh-CN": {"locales/zh-CN.json", "locales/zh-CN.yaml"},
			"en":    {"locales/en.json"},
		},
	}

	got := FromSegments(segs, l)

	require.Len(t, got, 2)
	assert.Equal(t, "", got[0].Key)
	assert.Equal(t, map[string]string{"zh-CN": "你好", "en": ""}, got[0].Languages)
	assert.Equal(t, map[string]string{"zh-CN": "locales/zh-CN.json", "en": "locales/en.json"}, got[0].InsertionPath)
	assert.Equal(t, "世界", got[1].Languages["zh-CN"])
	for _, r := range got {
		assert.Len(t, r.InsertionPath, len(r.Languages))
	}
}

func TestFromSegmentsMissingFiles(t *testing.T) {
	got := FromSegments([]extractor.Segment{{Text: "x"}}, Locales{All: []string{"en", "fr"}, Source: "en"})

	require.Len(t, got, 1)
	assert.Equal(t, map[string]string{"en": "", "fr": ""}, got[0].InsertionPath)
}

func TestSuggestKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Save the file", "saveTheFile"},
		{"user-name_field", "userNameField"},
		{"HELLO world!", "helloWorld!"},
		{"a.b c", "a.bC"},
		{"tab\tand\nnewline", "tabAndNewline"},
		{"Page 2 of 3", "page2Of3"},
		{"  ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SuggestKey(tt.in))
		})
	}
}
