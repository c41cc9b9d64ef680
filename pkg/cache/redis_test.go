package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/matzehuels/wfgraph/pkg/errors"
)

func setupRedis(t *testing.T, prefix string) (*miniredis.Miniredis, *RedisCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewRedisCache(context.Background(), RedisConfig{Addr: mr.Addr(), Prefix: prefix})
	if err != nil {
		t.Fatalf("NewRedisCache error: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return mr, c
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	mr, c := setupRedis(t, "")

	if _, hit, err := c.Get(ctx, "layout:x"); hit || err != nil {
		t.Errorf("empty: hit=%v err=%v", hit, err)
	}
	if err := c.Set(ctx, "layout:x", []byte("payload"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if !mr.Exists(DefaultRedisPrefix + "layout:x") {
		t.Error("key should be stored under the default prefix")
	}
	data, hit, err := c.Get(ctx, "layout:x")
	if err != nil || !hit || string(data) != "payload" {
		t.Errorf("Get = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "layout:x"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "layout:x"); hit {
		t.Error("deleted key should miss")
	}
}

func TestRedisCache_Expiry(t *testing.T) {
	ctx := context.Background()
	mr, c := setupRedis(t, "t:")

	c.Set(ctx, "k", []byte("v"), time.Minute)
	mr.FastForward(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired key should miss")
	}
}

func TestRedisCache_ClearKeepsForeignKeys(t *testing.T) {
	ctx := context.Background()
	mr, c := setupRedis(t, "t:")

	for _, k := range []string{"a", "b", "c"} {
		c.Set(ctx, k, []byte(k), 0)
	}
	mr.Set("other:key", "keep")

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if n := len(mr.Keys()); n != 1 || !mr.Exists("other:key") {
		t.Errorf("keys after Clear = %v, want [other:key]", mr.Keys())
	}
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	addr := mr.Addr()
	mr.Close()

	_, err = NewRedisCache(context.Background(), RedisConfig{Addr: addr})
	if !errors.Is(err, errors.ErrCodeCache) {
		t.Errorf("error = %v, want CACHE_ERROR", err)
	}
}
