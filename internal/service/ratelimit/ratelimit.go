package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/driveline/driveline/internal/ports"
	"github.com/driveline/driveline/internal/service/logger"
)

// redisLimiter implements ports.RateLimiter on Redis counters
type redisLimiter struct {
	client *redis.Client
	log    logger.Logger
}

// New connects to Redis and returns a rate limiter. When disabled, a
// no-op limiter is returned so callers need no conditional wiring.
func New(redisURL string, enabled bool, log logger.Logger) (ports.RateLimiter, error) {
	if !enabled {
		return &noopLimiter{}, nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisLimiter{client: client, log: log}, nil
}

func (s *redisLimiter) CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := s.client.Get(ctx, key).Int()
	if err != nil {
		if err == redis.Nil {
			return true, nil
		}
		return false, fmt.Errorf("failed to get attempts: %w", err)
	}
	return count < limit, nil
}

func (s *redisLimiter) Increment(ctx context.Context, key string, window time.Duration) error {
	pipeline := s.client.Pipeline()
	pipeline.Incr(ctx, key)
	pipeline.Expire(ctx, key, window)

	if _, err := pipeline.Exec(ctx); err != nil {
		return fmt.Errorf("failed to increment rate limit: %w", err)
	}
	return nil
}

func (s *redisLimiter) Block(ctx context.Context, key string, duration time.Duration, reason string) error {
	blockKey := "blocked:" + key

	pipeline := s.client.Pipeline()
	pipeline.HSet(ctx, blockKey, map[string]interface{}{
		"reason":     reason,
		"blocked_at": time.Now().Unix(),
	})
	pipeline.Expire(ctx, blockKey, duration)

	if _, err := pipeline.Exec(ctx); err != nil {
		return fmt.Errorf("failed to block key: %w", err)
	}

	s.log.Warn(ctx, "client blocked", map[string]interface{}{
		"key":      key,
		"duration": duration.String(),
		"reason":   reason,
	})
	return nil
}

func (s *redisLimiter) IsBlocked(ctx context.Context, key string) (bool, error) {
	exists, err := s.client.Exists(ctx, "blocked:"+key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check block status: %w", err)
	}
	return exists > 0, nil
}

// noopLimiter always allows
type noopLimiter struct{}

func (n *noopLimiter) CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return true, nil
}

func (n *noopLimiter) Increment(ctx context.Context, key string, window time.Duration) error {
	return nil
}

func (n *noopLimiter) Block(ctx context.Context, key string, duration time.Duration, reason string) error {
	return nil
}

func (n *noopLimiter) IsBlocked(ctx context.Context, key string) (bool, error) {
	return false, nil
}
