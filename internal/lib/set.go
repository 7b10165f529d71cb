package lib

import "sync"

// Set is thread-safe and can be passed by value.
type Set[T comparable] struct {
	data map[T]struct{}
	mu   *sync.RWMutex
}

func NewSet[T comparable](elems ...T) Set[T] {
	s := Set[T]{
		data: make(map[T]struct{}, len(elems)),
		mu:   &sync.RWMutex{},
	}
	for _, e := range elems {
		s.data[e] = struct{}{}
	}
	return s
}

func (s Set[T]) Add(elem T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[elem] = struct{}{}
}

func (s Set[T]) Contains(elem T) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.data[elem]
	return exists
}
