package store

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisBackend keeps tenant values in Redis. Production default.
type RedisBackend struct {
	conn *redis.Client
}

func NewRedisBackend(url string) (*RedisBackend, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &RedisBackend{conn: redis.NewClient(opts)}, nil
}

func (b *RedisBackend) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := b.conn.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (b *RedisBackend) Set(ctx context.Context, key, value string) error {
	return b.conn.Set(ctx, key, value, 0).Err()
}

func (b *RedisBackend) Del(ctx context.Context, key string) error {
	return b.conn.Del(ctx, key).Err()
}

func (b *RedisBackend) Ping(ctx context.Context) error {
	return b.conn.Ping(ctx).Err()
}
