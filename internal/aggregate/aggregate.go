// Package aggregate turns finished translation records into one write group per
// destination locale file.
package aggregate

import (
	"sort"
	"strings"
)

// Record is one translation key with its text for every known locale.
type Record struct {
	Key string `json:"key"`
	// Languages maps locale to translated text.
	Languages map[string]string `json:"languages"`
	// InsertionPath maps locale to the file that stores that locale's tree.
	InsertionPath map[string]string `json:"insertionPath"`
}

// RootKey returns the namespace of the record's key, the text before the first dot.
// The bool is false for records that must be skipped.
func (r Record) RootKey() (string, bool) {
	if r.Key == "" {
		return "", false
	}
	root, _, _ := strings.Cut(r.Key, ".")
	return root, root != ""
}

// WriteGroup is everything the persistence layer needs for one file.
type WriteGroup struct {
	// RootKeys lists the touched namespaces in first-seen order, without duplicates.
	RootKeys   []string          `json:"rootKeys"`
	Flattened  map[string]string `json:"flattenedTree"`
	NestedTree map[string]any    `json:"nestedTree"`
}

func newWriteGroup() *WriteGroup {
	return &WriteGroup{
		Flattened:  make(map[string]string),
		NestedTree: make(map[string]any),
	}
}

func (g *WriteGroup) addRoot(root string) {
	for _, k := range g.RootKeys {
		if k == root {
			return
		}
	}
	g.RootKeys = append(g.RootKeys, root)
}

// Aggregate groups records by destination file. Records are applied in order, locales of
// one record in sorted order, so a later record wins over an earlier one for the same key.
// Only locales present in InsertionPath are written; a missing Languages entry writes "".
func Aggregate(records []Record) map[string]*WriteGroup {
	groups := make(map[string]*WriteGroup)
	for _, r := range records {
		root, ok := r.RootKey()
		if !ok {
			continue
		}
		for _, locale := range sortedKeys(r.InsertionPath) {
			path := r.InsertionPath[locale]
			g, ok := groups[path]
			if !ok {
				g = newWriteGroup()
				groups[path] = g
			}
			g.addRoot(root)
			g.Flattened[r.Key] = r.Languages[locale]
			g.NestedTree = Nest(g.Flattened)
		}
	}
	return groups
}

// Nest rebuilds a hierarchical tree from dot-delimited keys. Keys are applied in sorted
// order; when a key is both a leaf and a prefix of another key the deeper key wins.
func Nest(flat map[string]string) map[string]any {
	tree := make(map[string]any)
	for _, key := range sortedKeys(flat) {
		parts := strings.Split(key, ".")
		node := tree
		for _, p := range parts[:len(parts)-1] {
			child, ok := node[p].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[p] = child
			}
			node = child
		}
		leaf := parts[len(parts)-1]
		if _, isMap := node[leaf].(map[string]any); isMap {
			continue
		}
		node[leaf] = flat[key]
	}
	return tree
}

// ReplaceNamespaces returns a copy of existing in which every root key of g is replaced by
// the corresponding subtree of g.NestedTree. Keys outside those namespaces are kept.
func ReplaceNamespaces(existing map[string]any, g *WriteGroup) map[string]any {
	out := make(map[string]any, len(existing)+len(g.RootKeys))
	for k, v := range existing {
		out[k] = v
	}
	for _, root := range g.RootKeys {
		if v, ok := g.NestedTree[root]; ok {
			out[root] = v
		} else {
			delete(out, root)
		}
	}
	return out
}

// Files returns the destination paths of groups in sorted order.
func Files(groups map[string]*WriteGroup) []string {
	return sortedKeys(groups)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
