package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b := NewCircuitBreaker(2, 5*time.Second, 1)

	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	var transitions []string
	b.OnStateChange(func(from, to CircuitState) {
		transitions = append(transitions, string(from)+">"+string(to))
	})

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected a second probe to be rejected, got %v", err)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open probe, got %s", state)
	}

	want := []string{"closed>open", "open>half_open", "half_open>closed"}
	if len(transitions) != len(want) {
		t.Fatalf("unexpected transitions: got=%v want=%v", transitions, want)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Fatalf("unexpected transitions: got=%v want=%v", transitions, want)
		}
	}
}

func TestCircuitBreaker_Execute(t *testing.T) {
	b := NewCircuitBreaker(1, time.Minute, 1)
	errRedis := errors.New("redis down")

	if err := b.Execute(context.Background(), func(context.Context) error { return errRedis }); !errors.Is(err, errRedis) {
		t.Fatalf("expected dependency error, got %v", err)
	}

	called := false
	err := b.Execute(context.Background(), func(context.Context) error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrCircuitOpen) || called {
		t.Fatalf("expected open breaker to short-circuit: err=%v called=%v", err, called)
	}
}

func TestCircuitBreaker_Disabled(t *testing.T) {
	b := NewCircuitBreakerFromConfig(CircuitBreakerConfig{Enabled: false})
	if b != nil {
		t.Fatalf("expected nil breaker when disabled")
	}
	for range 10 {
		b.RecordFailure()
	}
	if err := b.Allow(); err != nil {
		t.Fatalf("nil breaker must allow every call: %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("nil breaker must report closed, got %s", state)
	}
}

func TestCircuitBreaker_CanceledCallDoesNotTrip(t *testing.T) {
	b := NewCircuitBreaker(1, time.Minute, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := b.Execute(ctx, func(ctx context.Context) error { return ctx.Err() })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("canceled call must not open the breaker, got %s", state)
	}
}

func TestCircuitBreakerConfig_Defaults(t *testing.T) {
	got := CircuitBreakerConfig{Enabled: true, FailureThreshold: -2}.withDefaults()
	want := CircuitBreakerConfig{Enabled: true, FailureThreshold: 3, OpenTimeout: 10 * time.Second, HalfOpenMaxReq: 1}
	if got != want {
		t.Fatalf("unexpected defaults: got=%+v want=%+v", got, want)
	}
}
