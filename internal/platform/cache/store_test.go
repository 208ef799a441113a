package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type countingObserver struct {
	hits   atomic.Int32
	misses atomic.Int32
}

func (o *countingObserver) CacheHit(string)  { o.hits.Add(1) }
func (o *countingObserver) CacheMiss(string) { o.misses.Add(1) }

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "board", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for range workers {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "board:arg:career:shots", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "board" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_Load_TypedAndObserved(t *testing.T) {
	t.Parallel()

	obs := &countingObserver{}
	store := NewNamedStore("boards", time.Minute, obs)
	var calls atomic.Int32

	loader := func(context.Context) ([]string, error) {
		calls.Add(1)
		return []string{"p1", "p2"}, nil
	}

	for range 2 {
		got, err := Load(context.Background(), store, "k", loader)
		if err != nil {
			t.Fatalf("Load error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("unexpected value: %v", got)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
	if obs.hits.Load() != 1 || obs.misses.Load() != 1 {
		t.Fatalf("unexpected hit/miss: hits=%d misses=%d", obs.hits.Load(), obs.misses.Load())
	}

	if _, err := Load(context.Background(), store, "k", func(context.Context) (int, error) { return 1, nil }); err == nil {
		t.Fatalf("expected type mismatch error")
	}
}

func TestStore_Expiry(t *testing.T) {
	t.Parallel()

	store := NewStore(30 * time.Second)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "k", 1)
	if _, ok := store.Get(context.Background(), "k"); !ok {
		t.Fatalf("expected fresh entry")
	}

	now = now.Add(31 * time.Second)
	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatalf("expected entry to expire")
	}
	if store.Len() != 0 {
		t.Fatalf("expected expired entry to be evicted")
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()
	store.Set(ctx, Key("board", "arg", "career"), 1)
	store.Set(ctx, Key("board", "arg", "last5"), 2)
	store.Set(ctx, Key("board", "bra", "career"), 3)

	if removed := store.DeletePrefix(ctx, "board:arg:"); removed != 2 {
		t.Fatalf("unexpected removed count: %d", removed)
	}
	if _, ok := store.Get(ctx, "board:bra:career"); !ok {
		t.Fatalf("expected other league to stay cached")
	}
}

func TestStore_LoaderError(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	boom := errors.New("boom")
	if _, err := store.GetOrLoad(context.Background(), "k", func(context.Context) (any, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatalf("failed loads must not be cached")
	}
}

func TestKey(t *testing.T) {
	t.Parallel()

	if got := Key("board", "", "arg", "career"); got != "board:arg:career" {
		t.Fatalf("unexpected key: %q", got)
	}
	if got := Key(); got != "" {
		t.Fatalf("expected empty key, got %q", got)
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")

func TestStore_DeleteDuringLoadIsNotMemoized(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()
	key := Key("board", "arg", "career")

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan any)
	go func() {
		v, _ := store.GetOrLoad(ctx, key, func(context.Context) (any, error) {
			close(started)
			<-release
			return "pre-import", nil
		})
		done <- v
	}()

	<-started
	store.DeletePrefix(ctx, "board:arg:")

	var calls atomic.Int32
	fresh, err := store.GetOrLoad(ctx, key, func(context.Context) (any, error) {
		calls.Add(1)
		return "post-import", nil
	})
	if err != nil || fresh != "post-import" || calls.Load() != 1 {
		t.Fatalf("expected a fresh load after delete: value=%v err=%v calls=%d", fresh, err, calls.Load())
	}

	close(release)
	if stale := <-done; stale != "pre-import" {
		t.Fatalf("in-flight caller should still get its value, got %v", stale)
	}
	if got, ok := store.Get(ctx, key); !ok || got != "post-import" {
		t.Fatalf("stale load overwrote the memo: %v %v", got, ok)
	}
}
