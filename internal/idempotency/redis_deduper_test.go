package idempotency

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDeduper(t *testing.T, ttl time.Duration) (*RedisDeduper, *miniredis.Miniredis) {
	t.Helper()

	m := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	t.Cleanup(func() {
		if err := client.Close(); err != nil {
			t.Logf("redis close: %v", err)
		}
	})

	return NewRedisDeduper(client, ttl), m
}

func TestRedisDeduperAdd(t *testing.T) {
	deduper, _ := newTestDeduper(t, time.Minute)
	ctx := context.Background()

	added, err := deduper.Add(ctx, "user", "k1")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = deduper.Add(ctx, "user", "k1")
	require.NoError(t, err)
	assert.False(t, added, "second add of the same key must report a duplicate")
}

func TestRedisDeduperKeyNamespacing(t *testing.T) {
	deduper, m := newTestDeduper(t, time.Minute)
	ctx := context.Background()

	added, err := deduper.Add(ctx, "user-a", "shared")
	require.NoError(t, err)
	require.True(t, added)

	added, err = deduper.Add(ctx, "user-b", "shared")
	require.NoError(t, err)
	assert.True(t, added, "keys are scoped per user")

	assert.True(t, m.Exists("inotebook:idem:user-a:shared"))
	assert.True(t, m.Exists("inotebook:idem:user-b:shared"))
}

func TestRedisDeduperRemove(t *testing.T) {
	deduper, _ := newTestDeduper(t, time.Minute)
	ctx := context.Background()

	_, err := deduper.Add(ctx, "user", "retry")
	require.NoError(t, err)
	require.NoError(t, deduper.Remove(ctx, "user", "retry"))

	added, err := deduper.Add(ctx, "user", "retry")
	require.NoError(t, err)
	assert.True(t, added, "removed key can be used again")
}

func TestRedisDeduperTTL(t *testing.T) {
	deduper, m := newTestDeduper(t, time.Minute)
	ctx := context.Background()

	_, err := deduper.Add(ctx, "user", "expiring")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, m.TTL("inotebook:idem:user:expiring"))

	m.FastForward(2 * time.Minute)

	added, err := deduper.Add(ctx, "user", "expiring")
	require.NoError(t, err)
	assert.True(t, added, "expired key can be used again")
}

func TestConnect(t *testing.T) {
	m := miniredis.RunT(t)

	client, err := Connect(context.Background(), "redis://"+m.Addr())
	require.NoError(t, err)
	require.NoError(t, client.Close())

	_, err = Connect(context.Background(), "not a url")
	assert.Error(t, err)
}
