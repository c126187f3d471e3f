package ratelimit

import (
	"context"
	"fmt"
	"time"

	"anoa.com/bloodconnect/pkg/apperror"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Limiter allows one action per subject per window. A nil redis client
// disables limiting.
type Limiter struct {
	rdb    *redis.Client
	action string
	window time.Duration
}

func New(rdb *redis.Client, action string, window time.Duration) *Limiter {
	return &Limiter{rdb: rdb, action: action, window: window}
}

func (l *Limiter) key(subject uuid.UUID) string {
	return fmt.Sprintf("rate_limit:%s:%s", l.action, subject.String())
}

// Allow reports whether subject may perform the action now and, if so,
// starts a new window.
func (l *Limiter) Allow(ctx context.Context, subject uuid.UUID) (bool, error) {
	if l == nil || l.rdb == nil || l.window <= 0 {
		return true, nil
	}

	wasSet, err := l.rdb.SetNX(ctx, l.key(subject), "locked", l.window).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}

	return wasSet, nil
}

// Remaining returns how long subject still has to wait.
func (l *Limiter) Remaining(ctx context.Context, subject uuid.UUID) (time.Duration, error) {
	if l == nil || l.rdb == nil {
		return 0, nil
	}
	ttl, err := l.rdb.TTL(ctx, l.key(subject)).Result()
	if err != nil {
		return 0, err
	}
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}

// Reset drops the current window, used when the guarded action failed.
func (l *Limiter) Reset(ctx context.Context, subject uuid.UUID) error {
	if l == nil || l.rdb == nil {
		return nil
	}
	return l.rdb.Del(ctx, l.key(subject)).Err()
}

// Error is returned to callers that hit the limit.
type Error struct {
	Message    string
	RetryAfter time.Duration
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return apperror.ErrRateLimitExceeded
}
