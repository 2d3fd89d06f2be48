package iteru

import (
	"iter"
)

// Reduce combines the values in seq using f.
// For each value v in seq, it updates sum = f(sum, v)
// and then returns the final sum.
// For example, if iterating over seq yields v1, v2, v3,
// Reduce returns f(f(f(sum, v1), v2), v3).
func Reduce[Sum, V any](f func(Sum, V) Sum, sum Sum, seq iter.Seq[V]) Sum {
	for v := range seq {
		sum = f(sum, v)
	}
	return sum
}

// Collect both iterator values into 2 separate slices.
func Collect2[T1, T2 any](it iter.Seq2[T1, T2]) ([]T1, []T2) {
	var values1 []T1
	var values2 []T2
	for v1, v2 := range it {
		values1 = append(values1, v1)
		values2 = append(values2, v2)
	}
	return values1, values2
}

// Map returns a sequence of f applied to every value in seq.
func Map[V, R any](seq iter.Seq[V], f func(V) R) iter.Seq[R] {
	return func(yield func(R) bool) {
		for v := range seq {
			if !yield(f(v)) {
				return
			}
		}
	}
}
