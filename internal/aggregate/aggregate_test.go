package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paths() map[string]string {
	return map[string]string{"en": "en.json", "zh": "zh.json"}
}

func TestAggregateNestedScenario(t *testing.T) {
	records := []Record{
		{Key: "home.title", Languages: map[string]string{"en": "Hi", "zh": "你好"}, InsertionPath: paths()},
		{Key: "home.sub.note", Languages: map[string]string{"en": "X", "zh": "Y"}, InsertionPath: paths()},
	}

	groups := Aggregate(records)

	require.Equal(t, []string{"en.json", "zh.json"}, Files(groups))
	en := groups["en.json"]
	assert.Equal(t, []string{"home"}, en.RootKeys)
	assert.Equal(t, map[string]any{
		"home": map[string]any{
			"title": "Hi",
			"sub":   map[string]any{"note": "X"},
		},
	}, en.NestedTree)
	assert.Equal(t, map[string]string{"home.title": "Hi", "home.sub.note": "X"}, en.Flattened)

	zh := groups["zh.json"]
	assert.Equal(t, map[string]any{
		"home": map[string]any{
			"title": "你好",
			"sub":   map[string]any{"note": "Y"},
		},
	}, zh.NestedTree)
}

func TestAggregateRootKeyScoping(t *testing.T) {
	one := map[string]string{"en": "en.json"}
	records := []Record{
		{Key: "a.b", Languages: map[string]string{"en": "1"}, InsertionPath: one},
		{Key: "c.d", Languages: map[string]string{"en": "2"}, InsertionPath: one},
		{Key: "a.e", Languages: map[string]string{"en": "3"}, InsertionPath: one},
	}

	g := Aggregate(records)["en.json"]

	assert.Equal(t, []string{"a", "c"}, g.RootKeys)
	assert.Len(t, g.NestedTree, 2)
	assert.Contains(t, g.NestedTree, "a")
	assert.Contains(t, g.NestedTree, "c")
}

func TestAggregateIdempotent(t *testing.T) {
	batch := []Record{{Key: "x.y.z", Languages: map[string]string{"en": "v"}, InsertionPath: map[string]string{"en": "en.json"}}}

	first := Aggregate(batch)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, Aggregate(batch))
	}
}

func TestAggregateSkipsInertRecords(t *testing.T) {
	records := []Record{
		{Key: "", Languages: map[string]string{"en": "a"}, InsertionPath: map[string]string{"en": "en.json"}},
		{Key: ".leading", Languages: map[string]string{"en": "b"}, InsertionPath: map[string]string{"en": "en.json"}},
	}

	assert.Empty(t, Aggregate(records))
}

func TestAggregatePermissiveLocales(t *testing.T) {
	records := []Record{{
		Key:           "k",
		Languages:     map[string]string{"en": "A", "fr": "B"},
		InsertionPath: map[string]string{"en": "en.json", "de": "de.json"},
	}}

	groups := Aggregate(records)

	require.Equal(t, []string{"de.json", "en.json"}, Files(groups))
	assert.Equal(t, map[string]any{"k": ""}, groups["de.json"].NestedTree)
	assert.Equal(t, map[string]any{"k": "A"}, groups["en.json"].NestedTree)
}

func TestAggregateLaterRecordWins(t *testing.T) {
	en := map[string]string{"en": "en.json"}
	records := []Record{
		{Key: "a.b", Languages: map[string]string{"en": "old"}, InsertionPath: en},
		{Key: "a.b", Languages: map[string]string{"en": "new"}, InsertionPath: en},
	}

	g := Aggregate(records)["en.json"]

	assert.Equal(t, map[string]any{"a": map[string]any{"b": "new"}}, g.NestedTree)
	assert.Equal(t, []string{"a"}, g.RootKeys)
}

func TestNestPrefixConflict(t *testing.T) {
	tree := Nest(map[string]string{"a": "leaf", "a.b": "deep"})

	assert.Equal(t, map[string]any{"a": map[string]any{"b": "deep"}}, tree)
}

func TestReplaceNamespaces(t *testing.T) {
	existing := map[string]any{
		"home":   map[string]any{"stale": "gone", "title": "old"},
		"footer": map[string]any{"copy": "keep"},
		"about":  "untouched",
	}
	g := Aggregate([]Record{{
		Key:           "home.title",
		Languages:     map[string]string{"en": "Hi"},
		InsertionPath: map[string]string{"en": "en.json"},
	}})["en.json"]

	got := ReplaceNamespaces(existing, g)

	assert.Equal(t, map[string]any{
		"home":   map[string]any{"title": "Hi"},
		"footer": map[string]any{"copy": "keep"},
		"about":  "untouched",
	}, got)
	assert.Equal(t, "old", existing["home"].(map[string]any)["title"], "input must not be modified")
}
