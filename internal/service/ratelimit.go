package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RateLimiter guards repeated actions per user.
type RateLimiter interface {
	// Acquire arms the cooldown and reports whether the action is allowed.
	Acquire(ctx context.Context, userID uuid.UUID, action string) (bool, error)
	// Remaining returns how long until the cooldown expires.
	Remaining(ctx context.Context, userID uuid.UUID, action string) (time.Duration, error)
}

type redisRateLimiter struct {
	rdb   *redis.Client
	limit time.Duration
}

// NewRedisRateLimiter builds a SetNX-based limiter. A nil client disables
// limiting.
func NewRedisRateLimiter(rdb *redis.Client, limit time.Duration) RateLimiter {
	return &redisRateLimiter{rdb: rdb, limit: limit}
}

func rateLimitKey(userID uuid.UUID, action string) string {
	return fmt.Sprintf("rate_limit:user:%s:%s", userID.String(), action)
}

func (l *redisRateLimiter) Acquire(ctx context.Context, userID uuid.UUID, action string) (bool, error) {
	if l.rdb == nil {
		return true, nil
	}

	wasSet, err := l.rdb.SetNX(ctx, rateLimitKey(userID, action), "locked", l.limit).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}

	return wasSet, nil
}

func (l *redisRateLimiter) Remaining(ctx context.Context, userID uuid.UUID, action string) (time.Duration, error) {
	if l.rdb == nil {
		return 0, nil
	}
	return l.rdb.TTL(ctx, rateLimitKey(userID, action)).Result()
}
