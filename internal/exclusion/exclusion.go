// Package exclusion tracks byte intervals in which no segment may be emitted.
package exclusion

// Range is a half-open byte interval [Start, End), matching node spans.
type Range struct {
	Start int
	End   int
}

// Tracker accumulates exclusion ranges for one extraction pass.
// Documents are single files, so a linear scan is enough.
type Tracker struct {
	ranges []Range
}

// Record registers [start, end).
func (t *Tracker) Record(start, end int) {
	if end < start {
		start, end = end, start
	}
	t.ranges = append(t.ranges, Range{Start: start, End: end})
}

// IsExcluded reports whether either endpoint of [start, end) falls within a recorded range.
// A span that merely touches a recorded range does not overlap it.
func (t *Tracker) IsExcluded(start, end int) bool {
	for _, r := range t.ranges {
		if (r.Start <= start && start < r.End) || (r.Start < end && end <= r.End) {
			return true
		}
	}
	return false
}

// Reset drops every recorded range.
func (t *Tracker) Reset() {
	t.ranges = t.ranges[:0]
}

// Ranges returns a copy of the recorded ranges.
func (t *Tracker) Ranges() []Range {
	out := make([]Range, len(t.ranges))
	copy(out, t.ranges)
	return out
}
