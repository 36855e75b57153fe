package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	redisad "stayhub/internal/adapters/redis"
)

func testClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()}), mr
}

func TestFixedWindow_LimitAndReject(t *testing.T) {
	c, _ := testClient(t)
	lim := redisad.NewFixedWindow(c, 20, 15*time.Minute)
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		if !lim.Allow(ctx, "1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if lim.Allow(ctx, "1.2.3.4") {
		t.Fatalf("21st request should be rejected")
	}

	// other clients are unaffected
	if !lim.Allow(ctx, "5.6.7.8") {
		t.Fatalf("different address should be allowed")
	}
}

func TestFixedWindow_WindowRollsOver(t *testing.T) {
	c, mr := testClient(t)
	lim := redisad.NewFixedWindow(c, 2, time.Minute)
	ctx := context.Background()

	lim.Allow(ctx, "a")
	lim.Allow(ctx, "a")
	if lim.Allow(ctx, "a") {
		t.Fatalf("over-limit request should be rejected")
	}

	mr.FastForward(61 * time.Second)
	if !lim.Allow(ctx, "a") {
		t.Fatalf("request after window expiry should be allowed")
	}
}

func TestFixedWindow_FailsOpenWhenRedisDown(t *testing.T) {
	c, mr := testClient(t)
	lim := redisad.NewFixedWindow(c, 1, time.Minute)
	mr.Close()

	if !lim.Allow(context.Background(), "x") {
		t.Fatalf("limiter should fail open when redis is unreachable")
	}
}

func TestCache_RoundtripAndDel(t *testing.T) {
	c, _ := testClient(t)
	cache := redisad.NewWithClient(c)
	ctx := context.Background()

	type doc struct {
		Title string `json:"title"`
	}

	ok, err := cache.Get(ctx, "k", &doc{})
	if err != nil || ok {
		t.Fatalf("expected clean miss, ok=%v err=%v", ok, err)
	}

	if err := cache.Set(ctx, "k", doc{Title: "beach house"}, 60); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got doc
	ok, err = cache.Get(ctx, "k", &got)
	if err != nil || !ok || got.Title != "beach house" {
		t.Fatalf("get after set: ok=%v err=%v got=%+v", ok, err, got)
	}

	if err := cache.Del(ctx, "k"); err != nil {
		t.Fatalf("del: %v", err)
	}
	ok, _ = cache.Get(ctx, "k", &got)
	if ok {
		t.Fatalf("expected miss after del")
	}
}
