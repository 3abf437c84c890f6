package cache

import (
	"sync"
	"time"
)

// Snapshot holds one value that is reloaded once it is older than its
// TTL. Concurrent callers of Load share a single reload.
type Snapshot[T any] struct {
	mu        sync.Mutex
	value     T
	timestamp time.Time
	ttl       time.Duration
	now       func() time.Time
}

// NewSnapshot creates an empty Snapshot. A ttl of zero reloads on every
// Load.
func NewSnapshot[T any](ttl time.Duration) *Snapshot[T] {
	return &Snapshot[T]{ttl: ttl, now: time.Now}
}

// Load returns the cached value, calling load first if the snapshot is
// empty or expired. A failed load leaves the previous value in place.
func (s *Snapshot[T]) Load(load func() (T, error)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.timestamp.IsZero() && s.now().Sub(s.timestamp) < s.ttl {
		return s.value, nil
	}
	value, err := load()
	if err != nil {
		var zero T
		return zero, err
	}
	s.value = value
	s.timestamp = s.now()
	return value, nil
}

// Invalidate forces the next Load to reload.
func (s *Snapshot[T]) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timestamp = time.Time{}
}
