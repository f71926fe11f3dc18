package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	redisclient "finecho-server/internal/clients/redis"
	"finecho-server/internal/observability"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const window = time.Minute

// RateLimitResult represents the result of a rate limit check
type RateLimitResult struct {
	Allowed      bool      `json:"allowed"`
	Limit        int       `json:"limit"`
	Remaining    int       `json:"remaining"`
	ResetAt      time.Time `json:"reset_at"`
	RetryAfterMs int       `json:"retry_after_ms,omitempty"`
}

// Service limits how many requests a user makes per minute
type Service struct {
	redis  *redisclient.Client
	limit  int
	logger *observability.Logger

	mu     sync.Mutex
	local  map[string][]time.Time
	prefix string
	now    func() time.Time
}

// NewService creates a limiter allowing limit requests per user per minute under
// the given key prefix. A nil redis client keeps counters in process memory.
func NewService(redis *redisclient.Client, prefix string, limit int, logger *observability.Logger) *Service {
	return &Service{
		redis:  redis,
		limit:  limit,
		logger: logger,
		local:  make(map[string][]time.Time),
		prefix: prefix,
		now:    time.Now,
	}
}

// CheckRateLimit records one request for userID and reports whether it is allowed.
// Redis is preferred; on a Redis error the in-memory window is used instead.
func (s *Service) CheckRateLimit(ctx context.Context, userID uuid.UUID) (RateLimitResult, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "user_id", Value: userID.String()},
		observability.Field{Key: "rate_limit", Value: s.limit},
	)
	key := fmt.Sprintf("rl:%s:%s", s.prefix, userID.String())

	if s.redis != nil && s.redis.IsEnabled() {
		result, err := s.checkRateLimitRedis(ctx, key)
		if err == nil {
			return result, nil
		}
		s.logger.Error(ctx, "Redis rate limit check failed, falling back to memory", err)
	}

	return s.checkRateLimitMemory(key), nil
}

// checkRateLimitRedis implements a sliding window with a sorted set per user.
// Members are request ids scored by their timestamp in milliseconds.
func (s *Service) checkRateLimitRedis(ctx context.Context, key string) (RateLimitResult, error) {
	now := s.now()
	nowMs := now.UnixMilli()
	windowStartMs := now.Add(-window).UnixMilli()
	client := s.redis.GetClient()

	var count *redis.IntCmd
	var oldest *redis.ZSliceCmd
	_, err := client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		// Remove old entries outside the window
		pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStartMs, 10))
		count = pipe.ZCard(ctx, key)
		oldest = pipe.ZRangeWithScores(ctx, key, 0, 0)
		return nil
	})
	if err != nil {
		return RateLimitResult{}, fmt.Errorf("failed to read rate limit window: %w", err)
	}

	if int(count.Val()) >= s.limit {
		resetAt := now.Add(window)
		if entries := oldest.Val(); len(entries) > 0 {
			resetAt = time.UnixMilli(int64(entries[0].Score)).Add(window)
		}
		return s.denied(now, resetAt), nil
	}

	_, err = client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, key, redis.Z{
			Score:  float64(nowMs),
			Member: fmt.Sprintf("%d-%s", nowMs, uuid.NewString()),
		})
		// Expire idle windows
		pipe.Expire(ctx, key, 2*window)
		return nil
	})
	if err != nil {
		return RateLimitResult{}, fmt.Errorf("failed to record request: %w", err)
	}

	return RateLimitResult{
		Allowed:   true,
		Limit:     s.limit,
		Remaining: s.limit - int(count.Val()) - 1,
		ResetAt:   now.Add(window),
	}, nil
}

func (s *Service) checkRateLimitMemory(key string) RateLimitResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	windowStart := now.Add(-window)

	hits := s.local[key][:0]
	for _, hit := range s.local[key] {
		if hit.After(windowStart) {
			hits = append(hits, hit)
		}
	}

	if len(hits) >= s.limit {
		s.local[key] = hits
		return s.denied(now, hits[0].Add(window))
	}

	s.local[key] = append(hits, now)
	return RateLimitResult{
		Allowed:   true,
		Limit:     s.limit,
		Remaining: s.limit - len(hits) - 1,
		ResetAt:   now.Add(window),
	}
}

func (s *Service) denied(now, resetAt time.Time) RateLimitResult {
	retryAfter := resetAt.Sub(now)
	if retryAfter < 0 {
		retryAfter = 0
	}
	return RateLimitResult{
		Allowed:      false,
		Limit:        s.limit,
		Remaining:    0,
		ResetAt:      resetAt,
		RetryAfterMs: int(retryAfter.Milliseconds()),
	}
}
