package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisBackend keeps the document slots in Redis. Useful when the service
// should survive host restarts without a writable local disk.
type RedisBackend struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisBackend wraps an established Redis client.
func NewRedisBackend(client *redis.Client, logger *zap.Logger) *RedisBackend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisBackend{client: client, logger: logger}
}

// Probe reports whether Redis currently accepts writes.
func (b *RedisBackend) Probe(ctx context.Context) bool {
	if b.client == nil {
		return false
	}
	if err := b.client.Set(ctx, sentinelKey, "ok", time.Minute).Err(); err != nil {
		b.logger.Warn("storage probe failed", zap.Error(err))
		return false
	}
	_ = b.client.Del(ctx, sentinelKey).Err()
	return true
}

// Read returns the stored document for key, or ok=false on miss.
func (b *RedisBackend) Read(ctx context.Context, key string) (string, bool) {
	raw, err := b.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			b.logger.Warn("storage read failed", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return raw, true
}

// Write stores the document for key and reports success.
func (b *RedisBackend) Write(ctx context.Context, key, value string) bool {
	if err := b.client.Set(ctx, key, value, 0).Err(); err != nil {
		b.logger.Warn("storage write failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}
