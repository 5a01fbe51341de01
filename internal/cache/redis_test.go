package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestDefaultCacheConfig(t *testing.T) {
	config := DefaultCacheConfig()

	if config.Addr != "localhost:6379" {
		t.Errorf("Expected Addr to be localhost:6379, got %s", config.Addr)
	}
	if config.PoolSize != 10 {
		t.Errorf("Expected PoolSize to be 10, got %d", config.PoolSize)
	}
	if config.DialTimeout != 5*time.Second {
		t.Errorf("Expected DialTimeout to be 5s, got %v", config.DialTimeout)
	}
}

func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	config := DefaultCacheConfig()
	config.Addr = mr.Addr()
	return NewRedisCache(config), mr
}

type testRecord struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestRedisCache_SetGet(t *testing.T) {
	cache, _ := setupTestRedis(t)
	ctx := context.Background()

	in := testRecord{Name: "session", Count: 3}
	if err := cache.Set(ctx, "test:key", in, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var out testRecord
	if err := cache.Get(ctx, "test:key", &out); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if out != in {
		t.Errorf("Expected %+v, got %+v", in, out)
	}
}

func TestRedisCache_GetMiss(t *testing.T) {
	cache, _ := setupTestRedis(t)

	var out testRecord
	err := cache.Get(context.Background(), "missing", &out)
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Expected ErrCacheMiss, got %v", err)
	}
}

func TestRedisCache_Expiration(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "ttl:key", testRecord{Name: "x"}, time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	mr.FastForward(2 * time.Second)

	var out testRecord
	if err := cache.Get(ctx, "ttl:key", &out); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Expected ErrCacheMiss after expiry, got %v", err)
	}
}

func TestRedisCache_Delete(t *testing.T) {
	cache, _ := setupTestRedis(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "del:key", testRecord{}, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := cache.Delete(ctx, "del:key"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	var out testRecord
	if err := cache.Get(ctx, "del:key", &out); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Expected ErrCacheMiss after delete, got %v", err)
	}

	if err := cache.Delete(ctx); err != nil {
		t.Errorf("Delete with no keys should be a no-op, got %v", err)
	}
}

func TestRedisCache_DeletePattern(t *testing.T) {
	cache, _ := setupTestRedis(t)
	ctx := context.Background()

	for _, key := range []string{"session:a:1", "session:a:2", "session:b:1"} {
		if err := cache.Set(ctx, key, testRecord{}, time.Minute); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	if err := cache.DeletePattern(ctx, "session:a:*"); err != nil {
		t.Fatalf("DeletePattern failed: %v", err)
	}

	var out testRecord
	if err := cache.Get(ctx, "session:a:1", &out); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Expected session:a:1 to be gone, got %v", err)
	}
	if err := cache.Get(ctx, "session:b:1", &out); err != nil {
		t.Errorf("Expected session:b:1 to survive, got %v", err)
	}

	if err := cache.DeletePattern(ctx, "nothing:*"); err != nil {
		t.Errorf("DeletePattern with no matches should be a no-op, got %v", err)
	}
}

func TestRedisCache_FindKey(t *testing.T) {
	cache, _ := setupTestRedis(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "session:user-1:tok", testRecord{}, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	key, err := cache.FindKey(ctx, "session:*:tok")
	if err != nil {
		t.Fatalf("FindKey failed: %v", err)
	}
	if key != "session:user-1:tok" {
		t.Errorf("Expected session:user-1:tok, got %q", key)
	}

	key, err = cache.FindKey(ctx, "session:*:other")
	if err != nil {
		t.Fatalf("FindKey failed: %v", err)
	}
	if key != "" {
		t.Errorf("Expected empty key on no match, got %q", key)
	}
}

func TestRedisCache_Health(t *testing.T) {
	cache, mr := setupTestRedis(t)

	if err := cache.Health(context.Background()); err != nil {
		t.Errorf("Health failed: %v", err)
	}

	mr.Close()
	if err := cache.Health(context.Background()); err == nil {
		t.Error("Expected Health to fail after server shutdown")
	}
}

func TestRedisCache_Close(t *testing.T) {
	cache, _ := setupTestRedis(t)

	if err := cache.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
