package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestCacheLifecycle(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	key := client.CacheKey("dashboard")
	if err := client.Set(ctx, key, `{"totalBatches":3}`, 30*time.Second); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	value, err := client.Get(ctx, key)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if value != `{"totalBatches":3}` {
		t.Fatalf("expected cached payload back, got %q", value)
	}

	if err := client.Del(ctx, key); err != nil {
		t.Fatalf("del failed: %v", err)
	}
	if _, err := client.Get(ctx, key); !IsMiss(err) {
		t.Fatalf("expected miss after delete, got %v", err)
	}
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	if got := client.CacheKey("dashboard"); got != "bh:cache:dashboard" {
		t.Fatalf("unexpected cache key %s", got)
	}
	if got := client.CacheKey("dashboard", "counts"); got != "bh:cache:dashboard:counts" {
		t.Fatalf("unexpected nested cache key %s", got)
	}
}

func TestNilClientIsSafe(t *testing.T) {
	var client *Client
	if err := client.Set(context.Background(), "k", "v", 0); err == nil {
		t.Fatal("expected error from nil client")
	}
	if err := client.Ping(context.Background()); err == nil {
		t.Fatal("expected ping error from nil client")
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close on nil client should be a no-op, got %v", err)
	}
}

type mockCmdable struct {
	data map[string]string
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{data: make(map[string]string)}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	m.data[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(m.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}
