package skipset

import "iter"

// Iterator provides a forward-only view over the set in ascending order.
// A single iterator never rewinds; call SkipListSet.Iterator again to start
// over. Changing the set other than through Iterator.Remove while iterating
// leaves the cursor position unspecified.
type Iterator[T any] struct {
	s     *SkipListSet[T]
	pos   int
	value T
	valid bool
}

// Iterator returns a new iterator positioned before the first element.
func (s *SkipListSet[T]) Iterator() *Iterator[T] {
	return &Iterator[T]{s: s, pos: -1}
}

// Valid reports whether the iterator currently points at an element.
func (it *Iterator[T]) Valid() bool {
	if it == nil {
		return false
	}
	return it.valid
}

// Value returns the element at the iterator's current position.
// It should only be called when Valid reports true.
func (it *Iterator[T]) Value() T {
	var zero T
	if it == nil || !it.valid {
		return zero
	}
	return it.value
}

// Next advances the iterator to the next element and reports whether it
// successfully moved forward.
func (it *Iterator[T]) Next() bool {
	if it == nil || it.s == nil {
		return false
	}

	base := it.s.levels[0]
	if it.pos+1 >= len(base) {
		it.invalidate()
		it.pos = len(base)
		return false
	}

	it.pos++
	it.value = base[it.pos].value
	it.valid = true
	return true
}

// Remove deletes the current element from every level it occupies. The
// iterator stays in place: the following Next yields the element after the
// removed one.
func (it *Iterator[T]) Remove() bool {
	if !it.Valid() {
		return false
	}
	s := it.s
	base := s.levels[0]
	if it.pos < 0 || it.pos >= len(base) || s.compare(base[it.pos].value, it.value) != 0 {
		// The set changed underneath the iterator; fall back to a search.
		removed := s.Remove(it.value)
		if removed {
			it.pos--
		}
		it.invalidate()
		return removed
	}

	s.unlinkAt(it.pos)
	s.metrics.removes++
	it.pos--
	it.invalidate()
	s.mutated()
	return true
}

func (it *Iterator[T]) invalidate() {
	it.valid = false
	var zero T
	it.value = zero
}

// All returns a sequence over the elements in ascending order.
func (s *SkipListSet[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < len(s.levels[0]); i++ {
			if !yield(s.levels[0][i].value) {
				return
			}
		}
	}
}
