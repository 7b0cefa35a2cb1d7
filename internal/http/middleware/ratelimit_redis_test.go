package middleware

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisLimiter(t *testing.T, window time.Duration, limit int) (*RedisLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisLimiter(client, "ratelimit:test", window, limit), mr
}

func TestRedisLimiterThreshold(t *testing.T) {
	l, _ := newRedisLimiter(t, time.Hour, 5)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	l.now = func() time.Time { return now }

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		now = now.Add(time.Minute)
		ok, err := l.Allow(ctx, "203.0.113.7")
		if err != nil {
			t.Fatalf("Allow: %v", err)
		}
		if !ok {
			t.Fatalf("request %d: expected allowed", i+1)
		}
	}

	now = now.Add(time.Minute)
	if ok, err := l.Allow(ctx, "203.0.113.7"); err != nil || ok {
		t.Fatalf("expected sixth request denied, got ok=%v err=%v", ok, err)
	}

	// Other clients keep their own window.
	if ok, _ := l.Allow(ctx, "198.51.100.2"); !ok {
		t.Fatal("expected other client allowed")
	}

	// After the window elapses the instants are pruned and the client is
	// admitted again.
	now = base.Add(2*time.Hour + time.Minute)
	if ok, err := l.Allow(ctx, "203.0.113.7"); err != nil || !ok {
		t.Fatalf("expected admission after window elapsed, got ok=%v err=%v", ok, err)
	}
}

func TestRedisLimiterDenialNotRecorded(t *testing.T) {
	l, mr := newRedisLimiter(t, time.Hour, 2)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if ok, _ := l.Allow(ctx, "c"); !ok {
			t.Fatalf("request %d should pass", i+1)
		}
	}
	if ok, _ := l.Allow(ctx, "c"); ok {
		t.Fatal("expected denial")
	}

	// Exactly the two admitted instants remain in the set.
	if n, err := mr.ZMembers("ratelimit:test:c"); err != nil || len(n) != 2 {
		t.Fatalf("expected 2 recorded instants, got %d (err=%v)", len(n), err)
	}
}

func TestRedisLimiterErrorFailsOpenAtMiddleware(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	l := NewRedisLimiter(client, "ratelimit:test", time.Hour, 1)
	mr.Close()

	if _, err := l.Allow(context.Background(), "c"); err == nil {
		t.Fatal("expected error from closed redis")
	}
}
