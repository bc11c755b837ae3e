package concurrent

import "sync"

// Slice is a slice safe for concurrent use, mostly meant to record events from concurrent tests.
type Slice[T any] struct {
	mu    sync.RWMutex
	inner []T
}

// NewSlice creates a new concurrent slice.
func NewSlice[T any]() *Slice[T] {
	return &Slice[T]{
		inner: make([]T, 0),
	}
}

func (s *Slice[T]) Append(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner = append(s.inner, v)
}

// Get returns a copy of the current slice contents.
func (s *Slice[T]) Get() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]T, len(s.inner))
	copy(result, s.inner)
	return result
}

// GetAt returns the element at the specified index, it panics if the index is out of bounds.
func (s *Slice[T]) GetAt(i int) T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner[i]
}

func (s *Slice[T]) Length() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.inner)
}

func (s *Slice[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner = s.inner[:0]
}
