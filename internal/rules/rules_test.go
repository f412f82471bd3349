package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFromPlainText(t *testing.T) {
	r := New(HanQualifier)
	got := r.ExtractFromPlainText("  你好\n  hello\n\t世界 ok  \n")
	assert.Equal(t, []string{"你好", "世界 ok"}, got)
}

func TestExtractFromText(t *testing.T) {
	r := New(HanQualifier)

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"bare literal content", "你好", []string{"你好"}},
		{"quoted in expression", `ok ? '成功' : "失败"`, []string{"成功", "失败"}},
		{"template holes skipped", "`共 ${n} 条`", []string{"共", "条"}},
		{"nested braces in hole", "`前${ {a: 1}.a }后`", []string{"前", "后"}},
		{"unterminated quote falls through", "It's 你好", []string{"It's 你好"}},
		{"mixed quoted and bare", `他说"你好"`, []string{"他说", "你好"}},
		{"nothing qualifies", `a + "b"`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.ExtractFromText(tt.in))
		})
	}
}

func TestCandidatesAreSubstringsInOrder(t *testing.T) {
	r := New(NonASCIIQualifier)
	in := "`é ${x} ü` + 'é'"
	cursor := 0
	for _, c := range r.ExtractFromText(in) {
		idx := strings.Index(in[cursor:], c)
		require.GreaterOrEqual(t, idx, 0, "candidate %q not found after %d", c, cursor)
		cursor += idx + len(c)
	}
}

func TestByName(t *testing.T) {
	q, err := ByName("non-ascii")
	require.NoError(t, err)
	assert.True(t, q("é"))

	q, err = ByName("")
	require.NoError(t, err)
	assert.False(t, q("é"))

	_, err = ByName("klingon")
	assert.Error(t, err)
}

func TestShouldExtract(t *testing.T) {
	r := New(nil)
	assert.True(t, r.ShouldExtract("欢迎"))
	assert.False(t, r.ShouldExtract("welcome"))
}
