// Package position maps byte offsets in a document buffer to editor positions.
package position

import "sort"

// Position is a 0-based line and a 0-based character offset within that line.
// Characters are counted in UTF-16 code units, the unit editors address text in.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is a start/end position pair.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Mapper converts byte offsets of one buffer into positions.
type Mapper struct {
	text       string
	lineStarts []int
}

// NewMapper indexes the line starts of text.
func NewMapper(text string) *Mapper {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Mapper{text: text, lineStarts: starts}
}

// PositionAt returns the position of a byte offset. Offsets outside the buffer are clamped.
func (m *Mapper) PositionAt(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(m.text) {
		offset = len(m.text)
	}
	line := sort.Search(len(m.lineStarts), func(i int) bool {
		return m.lineStarts[i] > offset
	}) - 1

	lineStart := m.lineStarts[line]
	char := 0
	for _, r := range m.text[lineStart:offset] {
		if r >= 0x10000 {
			char += 2
		} else {
			char++
		}
	}
	return Position{Line: line, Character: char}
}

// RangeOf returns the range covering the byte interval [start, end).
func (m *Mapper) RangeOf(start, end int) Range {
	return Range{Start: m.PositionAt(start), End: m.PositionAt(end)}
}
