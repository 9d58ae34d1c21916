// Package store provides the per-key request counters behind inbound throttling.
package store

import (
	"context"
	"sync"
	"time"

	"represent/internal/ratelimit/models"
)

// InMemoryStore implements sliding-window limiting local to one process.
// It serves single-instance deployments and the degraded fallback when
// redis is failing.
type InMemoryStore struct {
	mu      sync.Mutex
	windows map[string]*slidingWindow
	now     func() time.Time
}

// slidingWindow tracks request timestamps inside the trailing window.
type slidingWindow struct {
	timestamps []time.Time
	window     time.Duration
}

// MemoryOption configures an InMemoryStore.
type MemoryOption func(*InMemoryStore)

// WithClock overrides the time source.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *InMemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore(opts ...MemoryOption) *InMemoryStore {
	s := &InMemoryStore{
		windows: make(map[string]*slidingWindow),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Allow records one request for key and reports whether it fits in limit.
// Rejected requests are not recorded.
func (s *InMemoryStore) Allow(_ context.Context, key string, limit models.Limit) (*models.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sw := s.getOrCreate(key, limit.Window)
	sw.cleanup(now)

	if len(sw.timestamps) < limit.Requests {
		sw.timestamps = append(sw.timestamps, now)
		return &models.Result{
			Allowed:   true,
			Limit:     limit.Requests,
			Remaining: limit.Requests - len(sw.timestamps),
			ResetAt:   sw.timestamps[0].Add(limit.Window),
		}, nil
	}

	// the oldest request leaving the window frees the next slot
	resetAt := now.Add(limit.Window)
	if len(sw.timestamps) > 0 {
		resetAt = sw.timestamps[0].Add(limit.Window)
	}
	return &models.Result{
		Allowed:    false,
		Limit:      limit.Requests,
		Remaining:  0,
		ResetAt:    resetAt,
		RetryAfter: models.RetryAfterSeconds(now, resetAt),
	}, nil
}

// Sweep drops keys whose windows hold no live requests. It returns the
// number of keys removed.
func (s *InMemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, sw := range s.windows {
		sw.cleanup(now)
		if len(sw.timestamps) == 0 {
			delete(s.windows, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked keys.
func (s *InMemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.windows)
}

// cleanup removes timestamps that fell out of the window.
func (sw *slidingWindow) cleanup(now time.Time) {
	cutoff := now.Add(-sw.window)
	i := 0
	for ; i < len(sw.timestamps); i++ {
		if sw.timestamps[i].After(cutoff) {
			break
		}
	}
	sw.timestamps = sw.timestamps[i:]
}

// getOrCreate must be called while holding s.mu.
func (s *InMemoryStore) getOrCreate(key string, window time.Duration) *slidingWindow {
	if sw := s.windows[key]; sw != nil {
		sw.window = window
		return sw
	}
	sw := &slidingWindow{timestamps: []time.Time{}, window: window}
	s.windows[key] = sw
	return sw
}
