package cache

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// newTestRedis connects to the server named by REDIS_ADDR and skips the test
// when it is unset.
func newTestRedis(t *testing.T) *RedisCache {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	c, err := NewRedisCache(context.Background(), RedisConfig{
		Addr:   addr,
		Prefix: "bmpedit-test:" + t.Name() + ":",
	})
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	c := newTestRedis(t)

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Errorf("Get(missing) = %v, %v, want miss", hit, err)
	}

	data := []byte("BM\x00\x01\x02")
	if err := c.Set(ctx, "k", data, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, hit, err := c.Get(ctx, "k")
	if err != nil || !hit {
		t.Fatalf("Get = %v, %v, want hit", hit, err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("Get = %q, want %q", got, data)
	}

	ttl, err := c.client.TTL(ctx, c.key("k")).Result()
	if err != nil {
		t.Fatalf("TTL: %v", err)
	}
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("TTL = %v, want within (0, 1m]", ttl)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after Delete hit")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of a missing key: %v", err)
	}
}

func TestRedisCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := newTestRedis(t)

	if err := c.Set(ctx, "short", []byte("x"), 50*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(200 * time.Millisecond)
	if _, hit, err := c.Get(ctx, "short"); err != nil || hit {
		t.Errorf("Get after expiry = %v, %v, want miss", hit, err)
	}
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	_, err := NewRedisCache(context.Background(), RedisConfig{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
	})
	if err == nil {
		t.Fatal("NewRedisCache with nothing listening should fail")
	}
}

func TestNewRedisCacheFromClientPrefix(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()

	tests := []struct {
		prefix string
		want   string
	}{
		{"", "bmpedit:result:abc"},
		{"api:", "api:result:abc"},
	}
	for _, tt := range tests {
		c := NewRedisCacheFromClient(client, tt.prefix)
		if got := c.key("result:abc"); got != tt.want {
			t.Errorf("key with prefix %q = %q, want %q", tt.prefix, got, tt.want)
		}
	}
}
