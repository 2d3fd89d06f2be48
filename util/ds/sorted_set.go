package ds

import (
	"cmp"
	"iter"

	"github.com/google/btree"
)

// SortedSet keeps unique values in ascending order.
type SortedSet[T cmp.Ordered] struct {
	tree *btree.BTreeG[T]
}

func NewSortedSet[T cmp.Ordered]() *SortedSet[T] {
	return &SortedSet[T]{
		tree: btree.NewG(2, cmp.Less[T]),
	}
}

// Add inserts v and reports whether it was not already present.
func (s *SortedSet[T]) Add(v T) bool {
	_, replaced := s.tree.ReplaceOrInsert(v)
	return !replaced
}

func (s *SortedSet[T]) Has(v T) bool {
	return s.tree.Has(v)
}

func (s *SortedSet[T]) Size() int {
	return s.tree.Len()
}

// All iterates the values in ascending order.
func (s *SortedSet[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		s.tree.Ascend(func(v T) bool {
			return yield(v)
		})
	}
}
