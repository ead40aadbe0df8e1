package skipset

import "cmp"

// Comparer is implemented by element types that define their own natural
// order. Compare returns a negative number when the receiver sorts before
// other, zero when they are equal and a positive number otherwise.
type Comparer[T any] interface {
	Compare(other T) int
}

func compareOrdered[T cmp.Ordered](a, b T) int {
	return cmp.Compare(a, b)
}

func compareComparer[T Comparer[T]](a, b T) int {
	return a.Compare(b)
}
