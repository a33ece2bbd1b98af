// Package cache provides the boundary-layer result cache for word
// analysis: a TTL cache plus coalescing of concurrent identical
// requests, keyed by the folded search term. The analysis engine itself
// stays a pure function of (corpus, term, config); all memoization lives
// here.
package cache

import (
	"context"
	"sync"
	"time"

	"stream-search/pkg/domain"
)

// AnalyzeFunc produces a report for a term. It is called at most once
// per term per TTL window, however many callers ask concurrently.
type AnalyzeFunc func(ctx context.Context, term string) (*domain.Report, error)

type entry struct {
	report   *domain.Report
	storedAt time.Time
}

type inflight struct {
	done   chan struct{}
	report *domain.Report
	err    error
}

// Service memoizes analysis results with a TTL and coalesces concurrent
// requests for the same term into a single engine call.
type Service struct {
	analyze AnalyzeFunc
	ttl     time.Duration
	now     func() time.Time

	mu       sync.Mutex
	entries  map[string]entry
	inflight map[string]*inflight
}

// New creates a cache service in front of analyze with the given TTL.
func New(analyze AnalyzeFunc, ttl time.Duration) *Service {
	return &Service{
		analyze:  analyze,
		ttl:      ttl,
		now:      time.Now,
		entries:  make(map[string]entry),
		inflight: make(map[string]*inflight),
	}
}

// Get returns the cached report for term, or runs the analysis when the
// cache is cold or expired. Concurrent callers for the same term share
// one analysis run. Errors are never cached.
func (s *Service) Get(ctx context.Context, term string) (*domain.Report, error) {
	s.mu.Lock()

	if e, ok := s.entries[term]; ok {
		if s.now().Sub(e.storedAt) < s.ttl {
			s.mu.Unlock()
			return e.report, nil
		}
		delete(s.entries, term)
	}

	if f, ok := s.inflight[term]; ok {
		s.mu.Unlock()
		select {
		case <-f.done:
			return f.report, f.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f := &inflight{done: make(chan struct{})}
	s.inflight[term] = f
	s.mu.Unlock()

	f.report, f.err = s.analyze(ctx, term)
	close(f.done)

	s.mu.Lock()
	delete(s.inflight, term)
	if f.err == nil {
		s.entries[term] = entry{report: f.report, storedAt: s.now()}
	}
	s.mu.Unlock()

	return f.report, f.err
}

// Clear drops all cached reports.
func (s *Service) Clear() {
	s.mu.Lock()
	s.entries = make(map[string]entry)
	s.mu.Unlock()
}
