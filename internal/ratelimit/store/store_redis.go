package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"represent/internal/ratelimit/models"
)

// RedisStore implements fixed-window limiting shared by every instance.
// Each window gets its own counter key that expires with the window.
type RedisStore struct {
	client redis.Cmdable
	now    func() time.Time
}

// NewRedisStore constructs a store on top of a go-redis client.
func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

// Allow increments the counter of the current window for key.
func (s *RedisStore) Allow(ctx context.Context, key string, limit models.Limit) (*models.Result, error) {
	now := s.now()
	windowStart := now.Truncate(limit.Window)
	resetAt := windowStart.Add(limit.Window)
	windowKey := fmt.Sprintf("%s:%d", key, windowStart.UnixMilli())

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, windowKey)
	pipe.PExpire(ctx, windowKey, limit.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("increment window counter: %w", err)
	}

	count := int(incr.Val())
	if count <= limit.Requests {
		return &models.Result{
			Allowed:   true,
			Limit:     limit.Requests,
			Remaining: limit.Requests - count,
			ResetAt:   resetAt,
		}, nil
	}
	return &models.Result{
		Allowed:    false,
		Limit:      limit.Requests,
		Remaining:  0,
		ResetAt:    resetAt,
		RetryAfter: models.RetryAfterSeconds(now, resetAt),
	}, nil
}
