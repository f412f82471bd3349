package extractor

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"i18n-extract/internal/document"
	"i18n-extract/internal/rules"
)

func TestScriptImportSpecifierExcluded(t *testing.T) {
	w := NewScriptWalker(ScriptLanguage(".js"), rules.New(rules.NonASCIIQualifier), DefaultScriptOptions())
	src := `const x = "你好"; import y from "你好吗"`

	segs := extract(t, w, "a.js", src)

	require.Len(t, segs, 1)
	assert.Equal(t, "你好", segs[0].Text)
	assert.Equal(t, 11, segs[0].Start)
	assert.Equal(t, KindScriptString, segs[0].Kind)
	assert.Equal(t, DialectScript, segs[0].Dialect)
	assert.False(t, segs[0].IsJSX)
	assert.Equal(t, `"你好"`, segs[0].FullText)
}

func TestScriptDuplicateLiteralsKeepDistinctOffsets(t *testing.T) {
	w := NewScriptWalker(ScriptLanguage(".js"), containsRule("hi"), DefaultScriptOptions())
	src := `say("hi"); say("hi");`

	segs := extract(t, w, "a.js", src)

	require.Len(t, segs, 2)
	assert.Equal(t, 5, segs[0].Start)
	assert.Equal(t, 16, segs[1].Start)
}

func TestScriptTemplateRepeatsWithinOneNode(t *testing.T) {
	w := NewScriptWalker(ScriptLanguage(".js"), hanRules, DefaultScriptOptions())
	src := "const t = `你好 ${a} 你好`;"

	segs := extract(t, w, "a.js", src)

	require.Len(t, segs, 2)
	assert.Equal(t, 11, segs[0].Start)
	assert.Equal(t, 23, segs[1].Start)
	for _, s := range segs {
		assert.Equal(t, KindScriptTemplate, s.Kind)
		assert.True(t, s.IsDynamic)
	}
}

func TestScriptNestedTemplateInSubstitution(t *testing.T) {
	w := NewScriptWalker(ScriptLanguage(".js"), hanRules, DefaultScriptOptions())
	src := "const t = `外层${ok ? `内层` : \"否\"}`;"

	segs := extract(t, w, "a.js", src)

	assert.Equal(t, []string{"外层", "内层", "否"}, texts(segs))
}

func TestScriptJSXIgnoredAttributeExcludesElement(t *testing.T) {
	w := NewScriptWalker(ScriptLanguage(".jsx"), hanRules, DefaultScriptOptions())
	src := "const a = <p title=\"标题\">世界</p>;\n" +
		"const b = <div className=\"x\" title=\"忽略\">忽略<b>也忽略</b></div>;\n" +
		"const c = <p><span key=\"k\">跳过</span>保留</p>;\n" +
		"const d = <p><img ref={r} alt=\"图\" />后面</p>;\n"

	segs := extract(t, w, "a.jsx", src)

	assert.Equal(t, []string{"标题", "世界", "保留", "后面"}, texts(segs))
	for _, s := range segs {
		assert.True(t, s.IsJSX, s.Text)
	}
	assert.Equal(t, KindScriptString, segs[0].Kind)
	assert.Equal(t, KindMarkupText, segs[1].Kind)
}

func TestScriptNodeAfterImportIsKept(t *testing.T) {
	w := NewScriptWalker(ScriptLanguage(".js"), hanRules, DefaultScriptOptions())

	segs := extract(t, w, "a.js", `import "x";"你好"`)
	assert.Equal(t, []string{"你好"}, texts(segs))

	segs = extract(t, w, "b.js", `import a from "./甲";const b = "乙";`)
	assert.Equal(t, []string{"乙"}, texts(segs))
}

func TestScriptModuleSourcesExcluded(t *testing.T) {
	w := NewScriptWalker(ScriptLanguage(".js"), hanRules, DefaultScriptOptions())
	src := "export { a } from \"./模块\";\n" +
		"const m = import(\"./页面\");\n" +
		"const s = \"保留\";\n"

	segs := extract(t, w, "a.js", src)

	assert.Equal(t, []string{"保留"}, texts(segs))
}

func TestScriptTypeScript(t *testing.T) {
	w := NewScriptWalker(ScriptLanguage(".ts"), hanRules, DefaultScriptOptions())
	src := "const n: string = \"名字\";\nfunction f(a: number): string { return `第${a}个`; }\n"

	segs := extract(t, w, "a.ts", src)

	assert.Equal(t, []string{"名字", "第", "个"}, texts(segs))
}

func TestScriptParseErrorYieldsNoSegments(t *testing.T) {
	w := NewScriptWalker(ScriptLanguage(".js"), hanRules, DefaultScriptOptions())

	segs, err := w.Walk(context.Background(), document.New("bad.js", "const = \"你好\" (;"))

	assert.ErrorIs(t, err, ErrParse)
	assert.Nil(t, segs)
}

func TestScriptBrokenRuleFailsFast(t *testing.T) {
	w := NewScriptWalker(ScriptLanguage(".js"), brokenRules{}, DefaultScriptOptions())

	segs, err := w.Walk(context.Background(), document.New("a.js", `const a = "x";`))

	assert.ErrorIs(t, err, ErrCandidateNotFound)
	assert.Nil(t, segs)
}

func TestScriptWalkerReusableAcrossPasses(t *testing.T) {
	w := NewScriptWalker(ScriptLanguage(".jsx"), hanRules, DefaultScriptOptions())

	first := extract(t, w, "a.jsx", `const a = <div key="k" title="一">x</div>;`)
	assert.Empty(t, first)

	// the exclusion from the previous pass must not leak into this one
	src := strings.Repeat(" ", 12) + `const b = "二";`
	second := extract(t, w, "b.jsx", src)
	assert.Equal(t, []string{"二"}, texts(second))
}
