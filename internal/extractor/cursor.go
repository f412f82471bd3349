package extractor

import (
	"fmt"
	"strings"

	"i18n-extract/internal/textutil"
)

// cursor resolves rule candidates to offsets inside one node. It only moves forward, so a
// repeated candidate resolves to its next occurrence instead of the first one.
type cursor struct {
	text  string
	pos   int
	limit int
}

func newCursor(text string, start, end int) *cursor {
	return &cursor{text: text, pos: start, limit: end}
}

// next returns the offset of candidate at or after the cursor and advances past it.
func (c *cursor) next(candidate string) (int, error) {
	if candidate == "" || c.pos > c.limit {
		return 0, fmt.Errorf("%w: %q at offset %d", ErrCandidateNotFound, textutil.Truncate(candidate, 40), c.pos)
	}
	idx := strings.Index(c.text[c.pos:c.limit], candidate)
	if idx < 0 {
		return 0, fmt.Errorf("%w: %q in [%d, %d)", ErrCandidateNotFound, textutil.Truncate(candidate, 40), c.pos, c.limit)
	}
	start := c.pos + idx
	c.pos = start + len(candidate)
	return start, nil
}
