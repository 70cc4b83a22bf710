package store

import (
	"context"
	"sync"

	"github.com/oklog/ulid/v2"
)

// MemoryStore holds up to a fixed number of values, dropping the oldest
// when full. A limit of 0 or less keeps everything.
type MemoryStore[T any] struct {
	mu    sync.RWMutex
	m     map[string]T
	order []string
	limit int
}

func NewMemoryStore[T any](limit int) *MemoryStore[T] {
	return &MemoryStore[T]{m: map[string]T{}, limit: limit}
}

func (s *MemoryStore[T]) Get(_ context.Context, id string) (T, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[id]
	return v, ok, nil
}

// Put stores v under id. Overwriting keeps the original insertion slot.
func (s *MemoryStore[T]) Put(_ context.Context, id string, v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[id]; !ok {
		s.order = append(s.order, id)
	}
	s.m[id] = v
	for s.limit > 0 && len(s.order) > s.limit {
		delete(s.m, s.order[0])
		s.order = s.order[1:]
	}
	return nil
}

func (s *MemoryStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

// NewID returns a ULID, so ids sort by creation time.
func (s *MemoryStore[T]) NewID() string {
	return ulid.Make().String()
}
