package productgrid

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultRedisPrefix = "seedly:grid:cursor:"

// RedisStore shares grid cursors between processes. Reads slide the expiry.
type RedisStore struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

// RedisOption customises a RedisStore.
type RedisOption func(*RedisStore)

// WithRedisPrefix overrides the key prefix.
func WithRedisPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithRedisLogger attaches a logger for degraded reads and writes.
func WithRedisLogger(logger *zap.Logger) RedisOption {
	return func(s *RedisStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewRedisStore wraps a redis client. A non-positive ttl uses DefaultCursorTTL.
func NewRedisStore(client redis.Cmdable, ttl time.Duration, opts ...RedisOption) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultCursorTTL
	}
	s := &RedisStore{
		client: client,
		prefix: defaultRedisPrefix,
		ttl:    ttl,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the redis key used for a page session.
func (s *RedisStore) Key(key string) string {
	return s.prefix + key
}

// Cursor returns the stored cursor, or zero when absent or redis is unavailable.
func (s *RedisStore) Cursor(ctx context.Context, key string) int {
	if key == "" || s.client == nil {
		return 0
	}
	n, err := s.client.GetEx(ctx, s.Key(key), s.ttl).Int()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("grid cursor read failed", zap.String("key", key), zap.Error(err))
		}
		return 0
	}
	return max(n, 0)
}

// SetCursor stores n for key. Failures are logged and otherwise ignored.
func (s *RedisStore) SetCursor(ctx context.Context, key string, n int) {
	if key == "" || s.client == nil {
		return
	}
	if err := s.client.Set(ctx, s.Key(key), max(n, 0), s.ttl).Err(); err != nil {
		s.logger.Warn("grid cursor write failed", zap.String("key", key), zap.Error(err))
	}
}
