// Package runlength collapses consecutive equal elements of a sequence
// into (count, element) pairs.
package runlength

import "iter"

// Pairs returns a lazy sequence of (count, element) pairs, where count is
// the length of the maximal run of consecutive equal elements starting at
// that position. The input is consumed exactly once, left to right, with a
// one-element peek-ahead; an empty input yields no pairs.
func Pairs[T comparable](seq iter.Seq[T]) iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		next, stop := iter.Pull(seq)
		defer stop()

		cur, ok := next()
		for ok {
			count := 1
			peek, more := next()
			for more && peek == cur {
				count++
				peek, more = next()
			}
			if !yield(count, cur) {
				return
			}
			cur, ok = peek, more
		}
	}
}

// Slice is a convenience wrapper over Pairs for in-memory inputs.
func Slice[T comparable](elems []T) iter.Seq2[int, T] {
	return Pairs(func(yield func(T) bool) {
		for _, e := range elems {
			if !yield(e) {
				return
			}
		}
	})
}
