package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisStore(t *testing.T, ttl time.Duration) (*RedisTokenStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewRedisTokenStore(rdb, "kiosk:test:token", ttl), mr
}

func TestRedisTokenStoreRoundtrip(t *testing.T) {
	store, _ := newTestRedisStore(t, 0)
	ctx := context.Background()

	tok, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load on empty key failed: %v", err)
	}
	if tok != "" {
		t.Fatalf("Load on empty key = %q, want empty", tok)
	}

	if err := store.Save(ctx, "tok123"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	tok, err = store.Load(ctx)
	if err != nil || tok != "tok123" {
		t.Fatalf("Load = %q, %v; want tok123, nil", tok, err)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear of absent key failed: %v", err)
	}
	tok, _ = store.Load(ctx)
	if tok != "" {
		t.Fatalf("Load after Clear = %q, want empty", tok)
	}
}

func TestRedisTokenStoreTTLRefreshedOnSave(t *testing.T) {
	store, mr := newTestRedisStore(t, time.Minute)
	ctx := context.Background()

	if err := store.Save(ctx, "tok123"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	mr.FastForward(45 * time.Second)
	if err := store.Save(ctx, "tok123"); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	mr.FastForward(45 * time.Second)

	tok, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if tok != "tok123" {
		t.Fatalf("Load = %q, want tok123 (TTL should have been refreshed)", tok)
	}
}

func TestRedisTokenStoreUnavailable(t *testing.T) {
	store, mr := newTestRedisStore(t, 0)
	mr.Close()

	_, err := store.Load(context.Background())
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("Load error = %v, want ErrStorageUnavailable", err)
	}
	if err := store.Save(context.Background(), "tok123"); !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("Save error = %v, want ErrStorageUnavailable", err)
	}
}

func TestRedisTokenStoreDefaultKey(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	store := NewRedisTokenStore(rdb, "", 0)
	if err := store.Save(context.Background(), "tok123"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := rdb.Get(context.Background(), DefaultStorageKey).Result()
	if err != nil {
		t.Fatalf("direct Get failed: %v", err)
	}
	if got != "tok123" {
		t.Fatalf("value under default key = %q, want tok123", got)
	}
}
