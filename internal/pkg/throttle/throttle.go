// Package throttle limits repeated failed logins per client.
package throttle

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/apperrors"
)

// LoginLimiter tracks failed login attempts for a key (usually the client IP).
type LoginLimiter interface {
	// Allow returns apperrors.ErrTooManyAttempts when the key is locked out.
	Allow(ctx context.Context, key string) error
	// Fail records a failed attempt.
	Fail(ctx context.Context, key string)
	// Reset clears the counter after a successful login.
	Reset(ctx context.Context, key string)
}

// Noop never throttles. Used when Redis is not configured.
type Noop struct{}

func (Noop) Allow(context.Context, string) error { return nil }
func (Noop) Fail(context.Context, string)        {}
func (Noop) Reset(context.Context, string)       {}

// RedisLimiter keeps a fixed-window failure counter per key.
type RedisLimiter struct {
	client      redis.Cmdable
	maxAttempts int64
	window      time.Duration
	logger      zerolog.Logger
}

// NewRedisLimiter creates a limiter allowing maxAttempts failures per window.
func NewRedisLimiter(client redis.Cmdable, maxAttempts int, window time.Duration, logger zerolog.Logger) *RedisLimiter {
	return &RedisLimiter{
		client:      client,
		maxAttempts: int64(maxAttempts),
		window:      window,
		logger:      logger,
	}
}

func loginKey(key string) string {
	return fmt.Sprintf("login_failures:%s", key)
}

// Allow fails open on Redis errors so an outage does not lock the admin out.
func (l *RedisLimiter) Allow(ctx context.Context, key string) error {
	value, err := l.client.Get(ctx, loginKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		l.logger.Warn().Err(err).Str("key", key).Msg("Login throttle lookup failed")
		return nil
	}
	count, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil
	}
	if count >= l.maxAttempts {
		return apperrors.ErrTooManyAttempts
	}
	return nil
}

// Fail increments the counter. The window starts with the first failure; the
// key is created with its expiry and the increment runs in the same MULTI.
func (l *RedisLimiter) Fail(ctx context.Context, key string) {
	k := loginKey(key)
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, k, 0, l.window)
		pipe.Incr(ctx, k)
		return nil
	})
	if err != nil {
		l.logger.Warn().Err(err).Str("key", key).Msg("Failed to record login failure")
	}
}

func (l *RedisLimiter) Reset(ctx context.Context, key string) {
	if err := l.client.Del(ctx, loginKey(key)).Err(); err != nil {
		l.logger.Warn().Err(err).Str("key", key).Msg("Failed to reset login failures")
	}
}

// NewRedisClient opens a client and verifies it with PING.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
