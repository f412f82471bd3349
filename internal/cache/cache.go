package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"i18n-extract/internal/extractor"
	"i18n-extract/internal/textutil"
)

// SegmentCache keeps recent extraction results keyed by extension and content hash, so an
// unchanged buffer is not walked again.
type SegmentCache struct {
	entries *lru.Cache[string, []extractor.Segment]
}

// New creates a cache holding at most size results.
func New(size int) (*SegmentCache, error) {
	entries, err := lru.New[string, []extractor.Segment](size)
	if err != nil {
		return nil, fmt.Errorf("segment cache: %w", err)
	}
	return &SegmentCache{entries: entries}, nil
}

func key(ext, text string) string {
	return ext + ":" + textutil.Hash(text)
}

// Get returns a copy of the cached segments for text. Returns false if not found.
func (c *SegmentCache) Get(ext, text string) ([]extractor.Segment, bool) {
	segs, ok := c.entries.Get(key(ext, text))
	if !ok {
		return nil, false
	}
	return extractor.CloneSegments(segs), true
}

// Set stores the result of walking text.
func (c *SegmentCache) Set(ext, text string, segs []extractor.Segment) {
	c.entries.Add(key(ext, text), extractor.CloneSegments(segs))
}

// Len reports the number of cached results.
func (c *SegmentCache) Len() int {
	return c.entries.Len()
}

// Purge drops every cached result.
func (c *SegmentCache) Purge() {
	c.entries.Purge()
}

