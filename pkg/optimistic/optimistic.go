// Package optimistic holds local state that is changed before the remote
// write confirms it, and restored from a snapshot when the write fails.
package optimistic

import (
	"context"
	"sync"
)

// CloneFunc deep-copies a state value so snapshots never alias live data.
type CloneFunc[T any] func(T) T

// Store owns one piece of local state.
type Store[T any] struct {
	mu      sync.RWMutex
	value   T
	clone   CloneFunc[T]
	version uint64
}

// NewStore returns a store seeded with initial. A nil clone copies by value.
func NewStore[T any](initial T, clone CloneFunc[T]) *Store[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &Store[T]{value: clone(initial), clone: clone}
}

// Get returns a copy of the current state.
func (s *Store[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clone(s.value)
}

// Set replaces the state, e.g. after a fresh load from the store.
func (s *Store[T]) Set(v T) {
	s.mu.Lock()
	s.value = s.clone(v)
	s.version++
	s.mu.Unlock()
}

// Apply runs mutate against a copy of the current state, publishes the
// result immediately, then calls persist. If persist fails the state is
// restored to the snapshot taken before mutate and the snapshot is returned
// with the error. A mutate error leaves the state untouched.
//
// If another writer replaced the state while persist was running, a failed
// persist does not clobber that newer value.
func (s *Store[T]) Apply(ctx context.Context, mutate func(T) (T, error), persist func(context.Context, T) error) (T, error) {
	s.mu.Lock()
	snapshot := s.clone(s.value)
	next, err := mutate(s.clone(s.value))
	if err != nil {
		s.mu.Unlock()
		return snapshot, err
	}
	s.value = s.clone(next)
	s.version++
	applied := s.version
	s.mu.Unlock()

	if err := persist(ctx, s.clone(next)); err != nil {
		s.mu.Lock()
		if s.version == applied {
			s.value = s.clone(snapshot)
			s.version++
		}
		s.mu.Unlock()
		return snapshot, err
	}
	return next, nil
}
