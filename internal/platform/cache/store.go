package cache

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/football-scout/internal/platform/resilience"
)

// Observer is told about every lookup. Used for hit/miss metrics.
type Observer interface {
	CacheHit(name string)
	CacheMiss(name string)
}

type entry struct {
	value     any
	expiresAt time.Time
}

// Store is an in-process TTL map. Concurrent loads of one key run once.
// Deletes bump the generation; a load that started before a delete returns
// its value to its callers but does not memoize it.
type Store struct {
	name     string
	mu       sync.RWMutex
	entries  map[string]entry
	gen      uint64
	ttl      time.Duration
	flight   resilience.SingleFlight
	observer Observer
	now      func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return NewNamedStore("default", ttl, nil)
}

func NewNamedStore(name string, ttl time.Duration, observer Observer) *Store {
	return &Store{
		name:     name,
		entries:  make(map[string]entry),
		ttl:      ttl,
		observer: observer,
		now:      time.Now,
	}
}

func (s *Store) TTL() time.Duration {
	return s.ttl
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.expired(e) {
		s.mu.Lock()
		if cur, ok := s.entries[key]; ok && s.expired(cur) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

func (s *Store) expired(e entry) bool {
	return s.ttl > 0 && !e.expiresAt.After(s.now())
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}

	e := entry{value: value}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
}

func (s *Store) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	delete(s.entries, key)
	s.gen++
	s.mu.Unlock()
}

// DeletePrefix drops every key starting with prefix, e.g. all boards of one
// league after an import.
func (s *Store) DeletePrefix(_ context.Context, prefix string) int {
	if prefix == "" {
		return 0
	}

	removed := 0
	s.mu.Lock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
			removed++
		}
	}
	s.gen++
	s.mu.Unlock()
	return removed
}

// Generation changes on every Delete and DeletePrefix.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

func (s *Store) setIfGeneration(key string, value any, gen uint64) {
	e := entry{value: value}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	s.mu.Lock()
	if s.gen == gen {
		s.entries[key] = e
	}
	s.mu.Unlock()
}

// Len counts live and not yet evicted entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, crerr.New("cache: loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		s.hit()
		return value, nil
	}
	s.miss()

	// Callers arriving after a delete start a fresh flight.
	gen := s.Generation()
	value, err, _ := s.flight.Do(key+"@"+strconv.FormatUint(gen, 10), func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.setIfGeneration(key, loaded, gen)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

// Load is GetOrLoad for a concrete value type.
func Load[T any](ctx context.Context, s *Store, key string, loader func(context.Context) (T, error)) (T, error) {
	var zero T
	value, err := s.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return loader(ctx)
	})
	if err != nil {
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		return zero, crerr.Newf("cache: key %q holds %T", key, value)
	}
	return typed, nil
}

func (s *Store) hit() {
	if s.observer != nil {
		s.observer.CacheHit(s.name)
	}
}

func (s *Store) miss() {
	if s.observer != nil {
		s.observer.CacheMiss(s.name)
	}
}
