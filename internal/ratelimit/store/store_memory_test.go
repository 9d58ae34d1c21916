package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"represent/internal/ratelimit/models"
)

var testLimit = models.Limit{Requests: 3, Window: time.Minute}

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	now   time.Time
	ctx   context.Context
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.store = NewInMemoryStore(WithClock(func() time.Time { return s.now }))
	s.ctx = context.Background()
}

func (s *InMemoryStoreSuite) allow(key string) *models.Result {
	res, err := s.store.Allow(s.ctx, key, testLimit)
	s.Require().NoError(err)
	return res
}

func (s *InMemoryStoreSuite) TestAllow() {
	s.Run("first request allowed", func() {
		res := s.allow("k:first")
		s.True(res.Allowed)
		s.Equal(testLimit.Requests, res.Limit)
		s.Equal(testLimit.Requests-1, res.Remaining)
		s.Equal(s.now.Add(time.Minute), res.ResetAt)
	})

	s.Run("requests up to limit allowed", func() {
		var res *models.Result
		for range testLimit.Requests {
			res = s.allow("k:limit")
		}
		s.True(res.Allowed)
		s.Equal(0, res.Remaining)
	})

	s.Run("request over limit denied with retry after", func() {
		for range testLimit.Requests {
			s.allow("k:over")
		}
		res := s.allow("k:over")
		s.False(res.Allowed)
		s.Equal(0, res.Remaining)
		s.Equal(60, res.RetryAfter)
	})

	s.Run("keys are independent", func() {
		for range testLimit.Requests {
			s.allow("k:a")
		}
		s.True(s.allow("k:b").Allowed)
	})
}

func (s *InMemoryStoreSuite) TestSlidingWindow() {
	s.allow("k:slide")
	s.now = s.now.Add(30 * time.Second)
	s.allow("k:slide")
	s.allow("k:slide")
	s.False(s.allow("k:slide").Allowed)

	// the first request leaves the window, freeing exactly one slot
	s.now = s.now.Add(31 * time.Second)
	s.True(s.allow("k:slide").Allowed)
	res := s.allow("k:slide")
	s.False(res.Allowed)
	s.Equal(29, res.RetryAfter)
}

func (s *InMemoryStoreSuite) TestSweep() {
	s.allow("k:old")
	s.now = s.now.Add(90 * time.Second)
	s.allow("k:new")

	s.Equal(1, s.store.Sweep())
	s.Equal(1, s.store.Len())
}

func (s *InMemoryStoreSuite) TestConcurrentAllowNeverExceedsLimit() {
	limit := models.Limit{Requests: 50, Window: time.Minute}
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for range 200 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := s.store.Allow(s.ctx, "k:race", limit)
			s.NoError(err)
			if res.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	s.Equal(limit.Requests, allowed)
}
