// Package session tracks the active document and keeps its latest extraction result.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"i18n-extract/internal/aggregate"
	"i18n-extract/internal/cache"
	"i18n-extract/internal/document"
	"i18n-extract/internal/extractor"
	"i18n-extract/internal/pending"
)

// ErrSuperseded is returned by Update when a newer Update started before it finished.
var ErrSuperseded = errors.New("extraction superseded by a newer request")

// Session extracts the active document on request. Concurrent Update calls are allowed;
// only the most recently started one publishes its result.
type Session struct {
	provider   document.Provider
	dispatcher *extractor.Dispatcher
	cache      *cache.SegmentCache

	mu       sync.Mutex
	gen      uint64
	path     string
	segments []extractor.Segment

	// walkMu serialises walks; walkers keep per-pass state.
	walkMu sync.Mutex
	ext    string
	walker extractor.Walker
}

// New creates a session. cacheSize bounds the number of remembered results.
func New(p document.Provider, d *extractor.Dispatcher, cacheSize int) (*Session, error) {
	c, err := cache.New(cacheSize)
	if err != nil {
		return nil, err
	}
	return &Session{provider: p, dispatcher: d, cache: c}, nil
}

// Update makes id the active document and extracts it. On a parse or rule failure the active
// result becomes empty and the error is returned.
func (s *Session) Update(ctx context.Context, id string) ([]extractor.Segment, error) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	doc, err := s.provider.Open(ctx, id)
	if err != nil {
		return nil, s.publish(gen, id, nil, err)
	}

	s.walkMu.Lock()
	if !s.latest(gen) {
		s.walkMu.Unlock()
		log.Debug().Str("file", id).Uint64("generation", gen).Msg("Skipped stale extraction")
		return nil, ErrSuperseded
	}
	segs, err := s.extract(ctx, doc)
	s.walkMu.Unlock()

	if err != nil {
		return nil, s.publish(gen, id, nil, err)
	}
	return segs, s.publish(gen, id, segs, nil)
}

func (s *Session) extract(ctx context.Context, doc document.Document) ([]extractor.Segment, error) {
	if doc.Ext != s.ext || s.walker == nil {
		s.ext = doc.Ext
		s.walker, _ = s.dispatcher.Lookup(doc.Ext)
	}
	if s.walker == nil {
		return nil, nil
	}
	if segs, ok := s.cache.Get(doc.Ext, doc.Text); ok {
		return segs, nil
	}
	segs, err := s.walker.Walk(ctx, doc)
	if err != nil {
		return nil, err
	}
	s.cache.Set(doc.Ext, doc.Text, segs)
	return segs, nil
}

func (s *Session) latest(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen == s.gen
}

// publish stores the result of generation gen if it is still the newest request and
// returns the error the caller should see.
func (s *Session) publish(gen uint64, path string, segs []extractor.Segment, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		log.Debug().Str("file", path).Uint64("generation", gen).Msg("Discarded stale extraction")
		return ErrSuperseded
	}
	s.path, s.segments = path, extractor.CloneSegments(segs)
	if err != nil {
		return fmt.Errorf("extract %s: %w", path, err)
	}
	return nil
}

// Path returns the identifier of the document behind Segments.
func (s *Session) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// Segments returns the latest published result.
func (s *Session) Segments() []extractor.Segment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return extractor.CloneSegments(s.segments)
}

// PendingWrite returns translation records for the latest result.
func (s *Session) PendingWrite(l pending.Locales) []aggregate.Record {
	return pending.FromSegments(s.Segments(), l)
}
