package idempotency

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "inotebook:idem"

// RedisDeduper records idempotency keys in Redis so every server instance
// sees the same set of already-processed requests.
type RedisDeduper struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDeduper(client *redis.Client, ttl time.Duration) *RedisDeduper {
	return &RedisDeduper{client: client, ttl: ttl}
}

func (d *RedisDeduper) key(userID, key string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, userID, key)
}

// Add records the key and reports true when it was not already present.
func (d *RedisDeduper) Add(ctx context.Context, userID, key string) (bool, error) {
	return d.client.SetNX(ctx, d.key(userID, key), 1, d.ttl).Result()
}

func (d *RedisDeduper) Remove(ctx context.Context, userID, key string) error {
	return d.client.Del(ctx, d.key(userID, key)).Err()
}

// Connect parses a redis:// URL and verifies the server answers PING.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to reach redis: %w", err)
	}

	return client, nil
}
