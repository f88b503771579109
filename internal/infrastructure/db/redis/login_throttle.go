package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginThrottle counts failed logins per username in a fixed window.
// Key format: login:fail:<username>
type LoginThrottle struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
}

// NewLoginThrottle creates a LoginThrottle wrapping the given Redis client.
func NewLoginThrottle(client *redis.Client, maxAttempts int, window time.Duration) *LoginThrottle {
	return &LoginThrottle{client: client, maxAttempts: int64(maxAttempts), window: window}
}

// Allow reports whether username is still under the failure limit.
func (t *LoginThrottle) Allow(ctx context.Context, username string) (bool, error) {
	n, err := t.client.Get(ctx, key(username)).Int64()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("login throttle check: %w", err)
	}
	return n < t.maxAttempts, nil
}

// RecordFailure increments the counter, starting the window on the first
// failure. INCR and EXPIRE NX run in one transaction; requires Redis 7+.
func (t *LoginThrottle) RecordFailure(ctx context.Context, username string) error {
	k := key(username)
	_, err := t.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, k)
		pipe.ExpireNX(ctx, k, t.window)
		return nil
	})
	if err != nil {
		return fmt.Errorf("login throttle record: %w", err)
	}
	return nil
}

func (t *LoginThrottle) Reset(ctx context.Context, username string) error {
	return t.client.Del(ctx, key(username)).Err()
}

func key(username string) string {
	return "login:fail:" + username
}
