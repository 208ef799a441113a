package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/riskibarqy/football-scout/internal/platform/resilience"
)

func TestRedisStore_OpensBreakerWhenUnreachable(t *testing.T) {
	t.Parallel()

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	breaker := resilience.NewCircuitBreaker(2, time.Minute, 1)
	store := NewRedisStore(client, "scout", time.Minute, breaker)
	ctx := context.Background()

	var dst map[string]int
	for range 2 {
		if _, err := store.GetJSON(ctx, "board", &dst); err == nil {
			t.Fatalf("expected dial error")
		}
	}
	if state := breaker.State(); state != resilience.CircuitStateOpen {
		t.Fatalf("expected open breaker, got %s", state)
	}

	_, err := store.GetJSON(ctx, "board", &dst)
	if !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}
	if err := store.SetJSON(ctx, "board", map[string]int{"a": 1}); !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected circuit open error on set, got %v", err)
	}
}
