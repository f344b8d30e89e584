// pkg/mem/ttl_store.go
package mem

import (
	"sync"
	"time"
)

type Store[V any] interface {
	Set(key string, value V, ttl time.Duration)

	// Peek returns the value if present and not expired. It does not extend the ttl.
	Peek(key string) (V, bool)

	// Touch pushes the expiry of a live entry to now+ttl.
	Touch(key string, ttl time.Duration) bool

	// Consume returns the value and removes it (single-use).
	Consume(key string) (V, bool)

	// Sweep drops expired entries and reports how many were removed.
	Sweep() int

	Len() int
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

type TTLStore[V any] struct {
	mu   sync.RWMutex
	data map[string]entry[V]
	now  func() time.Time
}

func NewTTLStore[V any]() *TTLStore[V] {
	return &TTLStore[V]{
		data: make(map[string]entry[V]),
		now:  time.Now,
	}
}

func (s *TTLStore[V]) Set(key string, value V, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = entry[V]{
		value:     value,
		expiresAt: s.now().Add(ttl),
	}
}

func (s *TTLStore[V]) Peek(key string) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var zero V
	e, ok := s.data[key]
	if !ok || s.now().After(e.expiresAt) {
		return zero, false
	}
	return e.value, true
}

func (s *TTLStore[V]) Touch(key string, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[key]
	if !ok || s.now().After(e.expiresAt) {
		return false
	}
	e.expiresAt = s.now().Add(ttl)
	s.data[key] = e
	return true
}

func (s *TTLStore[V]) Consume(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero V
	e, ok := s.data[key]
	if !ok {
		return zero, false
	}
	delete(s.data, key)
	if s.now().After(e.expiresAt) {
		return zero, false
	}
	return e.value, true
}

func (s *TTLStore[V]) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for k, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, k)
			removed++
		}
	}
	return removed
}

func (s *TTLStore[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
