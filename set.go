package skipset

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// SkipListSet is an ordered set of unique elements kept in a skip list.
//
// Every level is a sorted slice of node pointers: level 0 holds all elements
// and level k holds the nodes whose height is at least k. A SkipListSet is
// not safe for concurrent use; guard it with a single mutex if it has to be
// shared.
type SkipListSet[T any] struct {
	compare func(a, b T) int
	levels  [][]*node[T]
	length  int
	cfg     config
	heights *heightSource
	filter  *membershipFilter[T]
	metrics metrics
}

func newSet[T any](compare func(a, b T) int, ordered bool, opts []Option) *SkipListSet[T] {
	cfg := newConfig(opts...)
	s := &SkipListSet[T]{
		compare: compare,
		levels:  [][]*node[T]{make([]*node[T], 0)},
		cfg:     cfg,
		heights: newHeightSource(cfg),
	}
	if cfg.filterExpected > 0 {
		s.filter = newMembershipFilter[T](cfg.filterExpected, cfg.filterFPRate, ordered)
	}
	return s
}

// New returns an empty set ordered by cmp.Compare.
func New[T cmp.Ordered](opts ...Option) *SkipListSet[T] {
	return newSet(compareOrdered[T], true, opts)
}

// NewComparer returns an empty set ordered by the elements' Compare method.
func NewComparer[T Comparer[T]](opts ...Option) *SkipListSet[T] {
	return newSet(compareComparer[T], false, opts)
}

// From returns a set holding values. Duplicates collapse.
func From[T cmp.Ordered](values []T, opts ...Option) *SkipListSet[T] {
	s := New[T](opts...)
	s.AddAll(values...)
	return s
}

// FromComparer is From for element types ordered by their Compare method.
func FromComparer[T Comparer[T]](values []T, opts ...Option) *SkipListSet[T] {
	s := NewComparer[T](opts...)
	s.AddAll(values...)
	return s
}

// Len returns the number of elements in the set.
func (s *SkipListSet[T]) Len() int {
	return s.length
}

// IsEmpty reports whether the set holds no elements.
func (s *SkipListSet[T]) IsEmpty() bool {
	return len(s.levels[0]) == 0
}

// Height returns the number of populated levels, or 1 for an empty set.
func (s *SkipListSet[T]) Height() int {
	return len(s.levels)
}

// LevelSizes returns the number of entries on each level, level 0 first.
func (s *SkipListSet[T]) LevelSizes() []int {
	sizes := make([]int, len(s.levels))
	for k, level := range s.levels {
		sizes[k] = len(level)
	}
	return sizes
}

// Stats returns the set's work counters.
func (s *SkipListSet[T]) Stats() Stats {
	return s.metrics.snapshot()
}

// Contains reports whether value is in the set.
func (s *SkipListSet[T]) Contains(value T) bool {
	if s.rejectedByFilter(value) {
		return false
	}
	_, found := s.locate(value, nil)
	return found
}

// Add inserts value. It returns false, leaving the set unchanged, if an equal
// element is already present.
func (s *SkipListSet[T]) Add(value T) bool {
	if !s.insert(value, s.length) {
		return false
	}
	s.metrics.inserts++
	s.mutated()
	return true
}

// Remove deletes value from the set and reports whether it was present.
func (s *SkipListSet[T]) Remove(value T) bool {
	if s.rejectedByFilter(value) {
		return false
	}
	if !s.delete(value) {
		return false
	}
	s.metrics.removes++
	s.mutated()
	return true
}

func (s *SkipListSet[T]) rejectedByFilter(value T) bool {
	if s.filter == nil || s.filter.mayContain(value) {
		return false
	}
	s.metrics.filterRejects++
	return true
}

// ContainsAll reports whether every value is in the set.
func (s *SkipListSet[T]) ContainsAll(values ...T) bool {
	for _, v := range values {
		if !s.Contains(v) {
			return false
		}
	}
	return true
}

// AddAll inserts every value and reports whether the set changed.
func (s *SkipListSet[T]) AddAll(values ...T) bool {
	changed := false
	for _, v := range values {
		if s.Add(v) {
			changed = true
		}
	}
	return changed
}

// RemoveAll deletes every value that is present and reports whether the set
// changed. Absent values are skipped.
func (s *SkipListSet[T]) RemoveAll(values ...T) bool {
	changed := false
	for _, v := range values {
		if s.Remove(v) {
			changed = true
		}
	}
	return changed
}

// RetainAll deletes every element that is not among values. It reports
// whether the set ends up with exactly as many elements as there are distinct
// values, that is, whether every value was present.
func (s *SkipListSet[T]) RetainAll(values ...T) bool {
	keep := slices.Clone(values)
	slices.SortFunc(keep, s.compare)
	keep = slices.CompactFunc(keep, func(a, b T) bool { return s.compare(a, b) == 0 })

	var drop []T
	for _, n := range s.levels[0] {
		if _, ok := slices.BinarySearchFunc(keep, n.value, s.compare); !ok {
			drop = append(drop, n.value)
		}
	}
	for _, v := range drop {
		s.Remove(v)
	}
	return s.length == len(keep)
}

// Clear removes every element.
func (s *SkipListSet[T]) Clear() {
	s.reset()
	s.mustValidate()
}

// Rebalance discards every node and reinserts all elements with freshly
// drawn heights. The elements and their order are unchanged.
func (s *SkipListSet[T]) Rebalance() {
	s.rebalance()
	s.mustValidate()
}

// First returns the smallest element, or ErrEmptySet.
func (s *SkipListSet[T]) First() (T, error) {
	base := s.levels[0]
	if len(base) == 0 {
		var zero T
		return zero, ErrEmptySet
	}
	return base[0].value, nil
}

// Last returns the largest element, or ErrEmptySet.
func (s *SkipListSet[T]) Last() (T, error) {
	base := s.levels[0]
	if len(base) == 0 {
		var zero T
		return zero, ErrEmptySet
	}
	return base[len(base)-1].value, nil
}

// ToSlice returns the elements in ascending order.
func (s *SkipListSet[T]) ToSlice() []T {
	return s.AppendTo(make([]T, 0, s.length))
}

// AppendTo appends the elements in ascending order to dst.
func (s *SkipListSet[T]) AppendTo(dst []T) []T {
	for _, n := range s.levels[0] {
		dst = append(dst, n.value)
	}
	return dst
}

// Comparator always fails: the set orders elements by their natural order
// only.
func (s *SkipListSet[T]) Comparator() error {
	return ErrUnsupported
}

// SubSet is not supported.
func (s *SkipListSet[T]) SubSet(from, to T) (*SkipListSet[T], error) {
	return nil, ErrUnsupported
}

// HeadSet is not supported.
func (s *SkipListSet[T]) HeadSet(to T) (*SkipListSet[T], error) {
	return nil, ErrUnsupported
}

// TailSet is not supported.
func (s *SkipListSet[T]) TailSet(from T) (*SkipListSet[T], error) {
	return nil, ErrUnsupported
}

// String dumps every level from the highest down, each element followed by
// its height in parentheses.
func (s *SkipListSet[T]) String() string {
	var b strings.Builder
	for k := len(s.levels) - 1; k >= 0; k-- {
		fmt.Fprintf(&b, "L%d:", k)
		for _, n := range s.levels[k] {
			fmt.Fprintf(&b, " %v(%d)", n.value, n.height)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
