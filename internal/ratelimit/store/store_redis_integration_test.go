//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"represent/internal/ratelimit/models"
	"represent/internal/ratelimit/store"
	"represent/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *store.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = store.NewRedisStore(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestAllowCountsWithinWindow() {
	ctx := context.Background()
	// a long window keeps the test away from a window boundary
	limit := models.Limit{Requests: 2, Window: time.Hour}

	first, err := s.store.Allow(ctx, "rl:ip:198.51.100.1", limit)
	s.Require().NoError(err)
	s.True(first.Allowed)
	s.Equal(1, first.Remaining)

	second, err := s.store.Allow(ctx, "rl:ip:198.51.100.1", limit)
	s.Require().NoError(err)
	s.True(second.Allowed)
	s.Equal(0, second.Remaining)

	third, err := s.store.Allow(ctx, "rl:ip:198.51.100.1", limit)
	s.Require().NoError(err)
	s.False(third.Allowed)
	s.Positive(third.RetryAfter)

	other, err := s.store.Allow(ctx, "rl:ip:198.51.100.2", limit)
	s.Require().NoError(err)
	s.True(other.Allowed)
}

func (s *RedisStoreSuite) TestWindowKeyExpires() {
	ctx := context.Background()
	limit := models.Limit{Requests: 5, Window: time.Hour}

	_, err := s.store.Allow(ctx, "rl:ip:ttl", limit)
	s.Require().NoError(err)

	keys, err := s.redis.Client.Keys(ctx, "rl:ip:ttl:*").Result()
	s.Require().NoError(err)
	s.Require().Len(keys, 1)

	ttl, err := s.redis.Client.PTTL(ctx, keys[0]).Result()
	s.Require().NoError(err)
	s.Positive(ttl)
	s.LessOrEqual(ttl, time.Hour)
}

func (s *RedisStoreSuite) TestUnreachableServerReturnsError() {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer client.Close()

	_, err := store.NewRedisStore(client).Allow(context.Background(), "rl:ip:closed", models.Limit{Requests: 1, Window: time.Minute})
	s.Error(err)
}
