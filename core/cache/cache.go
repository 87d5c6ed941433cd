package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Entry is a cached value together with the time it was built.
type Entry[V any] struct {
	Value V
	Built time.Time
}

// Store is a concurrency-safe keyed cache.
type Store[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]Entry[V]
	ttl     time.Duration
	sf      singleflight.Group
	now     func() time.Time
	// generation is bumped by Clear and Invalidate. Builds that started before
	// the bump are neither stored nor shared with later readers.
	generation uint64
}

// New creates a Store. A ttl of zero disables expiry.
func New[K comparable, V any](ttl time.Duration) *Store[K, V] {
	return &Store[K, V]{
		entries: make(map[K]Entry[V]),
		ttl:     ttl,
		now:     time.Now,
	}
}

// SetClock replaces the clock used for expiry checks.
func (s *Store[K, V]) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

func (s *Store[K, V]) expired(e Entry[V]) bool {
	if s.ttl <= 0 {
		return false
	}
	return s.now().Sub(e.Built) > s.ttl
}

// Get returns the cached value for key if present and fresh.
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok || s.expired(e) {
		var zero V
		return zero, false
	}
	return e.Value, true
}

// Put stores value under key, replacing any previous entry.
func (s *Store[K, V]) Put(key K, value V) {
	s.mu.Lock()
	s.entries[key] = Entry[V]{Value: value, Built: s.now()}
	s.mu.Unlock()
}

// GetOrBuild returns the cached value for key, or builds and stores it.
// Uses singleflight to prevent stampedes on the same key.
func (s *Store[K, V]) GetOrBuild(ctx context.Context, key K, build func(ctx context.Context) (V, error)) (V, error) {
	if v, ok := s.Get(key); ok {
		return v, nil
	}

	s.mu.RLock()
	gen := s.generation
	s.mu.RUnlock()

	// Builds are shared per generation so a reader arriving after Clear never
	// joins a build that started before it.
	result, err, _ := s.sf.Do(fmt.Sprint(gen, "/", key), func() (interface{}, error) {
		// Double-check after acquiring singleflight lock
		if v, ok := s.Get(key); ok {
			return v, nil
		}

		v, err := build(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		if s.generation == gen {
			s.entries[key] = Entry[V]{Value: v, Built: s.now()}
		}
		s.mu.Unlock()

		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}

	return result.(V), nil
}

// Invalidate removes the entry for key.
func (s *Store[K, V]) Invalidate(key K) {
	s.mu.Lock()
	delete(s.entries, key)
	s.generation++
	s.mu.Unlock()
}

// Clear drops every entry.
func (s *Store[K, V]) Clear() {
	s.mu.Lock()
	s.entries = make(map[K]Entry[V])
	s.generation++
	s.mu.Unlock()
}

// Len returns the number of stored entries, expired ones included.
func (s *Store[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
