package ds

import (
	"fmt"
	"iter"
)

// Set is a set data structure that maintains insertion order.
type Set[T comparable] struct {
	m map[T]struct{}
	l []T
}

func NewSet[T comparable](capacity int) *Set[T] {
	return &Set[T]{
		m: make(map[T]struct{}, capacity),
		l: make([]T, 0, capacity),
	}
}

func SetOf[T comparable](vs ...T) *Set[T] {
	s := NewSet[T](len(vs))
	s.Add(vs...)
	return s
}

func (s *Set[T]) Add(v ...T) {
	for _, v := range v {
		if !s.Has(v) {
			s.m[v] = struct{}{}
			s.l = append(s.l, v)
		}
	}
}

// The number of items in the set.
func (s *Set[T]) Size() int {
	if s == nil {
		return 0
	}
	return len(s.l)
}

func (s *Set[T]) All() iter.Seq[T] {
	if s == nil {
		return func(yield func(T) bool) {}
	}

	return func(yield func(T) bool) {
		for _, item := range s.l {
			if !yield(item) {
				return
			}
		}
	}
}

// Has reports membership. A nil set contains nothing.
func (s *Set[T]) Has(v T) bool {
	if s == nil {
		return false
	}
	_, ok := s.m[v]
	return ok
}

func (s *Set[T]) String() string {
	if s == nil {
		return "[]"
	}
	return fmt.Sprintf("%v", s.l)
}
