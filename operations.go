package skipset

import (
	"fmt"
	"slices"
)

// insert adds value unless it is already present. bound is the size handed to
// the height policy.
func (s *SkipListSet[T]) insert(value T, bound int) bool {
	p := acquirePath(len(s.levels))
	defer releasePath(p)

	path := *p
	if _, found := s.locate(value, path); found {
		return false
	}

	n := newNode(value, s.heights.next(bound))
	for k := 0; k <= n.height; k++ {
		if k == len(s.levels) {
			s.levels = append(s.levels, nil)
		}
		at := 0
		if k < len(path) {
			at = path[k] + 1
		}
		s.levels[k] = slices.Insert(s.levels[k], at, n)
	}
	s.length++

	if s.filter != nil {
		s.filter.add(value)
	}
	return true
}

// delete removes value from every level it occupies.
func (s *SkipListSet[T]) delete(value T) bool {
	p := acquirePath(len(s.levels))
	defer releasePath(p)

	path := *p
	n, found := s.locate(value, path)
	if !found {
		return false
	}

	// n is the last entry <= value on each of its levels, so path holds
	// its exact index there.
	for k := 0; k <= n.height; k++ {
		s.levels[k] = slices.Delete(s.levels[k], path[k], path[k]+1)
	}
	s.length--
	s.trimLevels()
	return true
}

// unlinkAt removes the node at index pos of level 0 from every level it
// occupies. Each upper level is sorted, so the node's index there is found by
// binary search on its value.
func (s *SkipListSet[T]) unlinkAt(pos int) {
	n := s.levels[0][pos]
	s.levels[0] = slices.Delete(s.levels[0], pos, pos+1)
	for k := 1; k <= n.height; k++ {
		i, _ := slices.BinarySearchFunc(s.levels[k], n.value, func(e *node[T], v T) int {
			return s.compare(e.value, v)
		})
		s.levels[k] = slices.Delete(s.levels[k], i, i+1)
	}
	s.length--
	s.trimLevels()
}

// trimLevels drops empty levels above level 0.
func (s *SkipListSet[T]) trimLevels() {
	for top := len(s.levels) - 1; top > 0 && len(s.levels[top]) == 0; top-- {
		s.levels[top] = nil
		s.levels = s.levels[:top]
	}
}

func (s *SkipListSet[T]) reset() {
	clear(s.levels)
	s.levels = s.levels[:1]
	s.levels[0] = make([]*node[T], 0)
	s.length = 0
	if s.filter != nil {
		s.filter.reset()
	}
}

// rebalance rebuilds every node with a freshly drawn height. The policy sees
// the full element count as its bound throughout the rebuild.
func (s *SkipListSet[T]) rebalance() {
	values := s.AppendTo(make([]T, 0, s.length))
	s.reset()
	if s.filter != nil {
		s.filter.resize(uint(len(values)))
	}
	for _, v := range values {
		s.insert(v, len(values))
	}
	s.metrics.rebalances++
	s.metrics.sinceRebalance = 0
}

// mutated runs after every successful add or remove.
func (s *SkipListSet[T]) mutated() {
	s.metrics.sinceRebalance++
	if every := s.cfg.rebalanceEvery; every > 0 && s.metrics.sinceRebalance >= every {
		s.rebalance()
	}
	s.mustValidate()
}

func (s *SkipListSet[T]) mustValidate() {
	if !s.cfg.checkInvariants {
		return
	}
	if err := s.validate(); err != nil {
		panic(err)
	}
}

// validate checks every structural invariant and reports the first one that
// does not hold.
func (s *SkipListSet[T]) validate() error {
	if len(s.levels) == 0 {
		return fmt.Errorf("%w: level 0 missing", ErrInvariantViolation)
	}
	if s.length != len(s.levels[0]) {
		return fmt.Errorf("%w: size %d but level 0 holds %d", ErrInvariantViolation, s.length, len(s.levels[0]))
	}
	if top := len(s.levels) - 1; top > 0 && len(s.levels[top]) == 0 {
		return fmt.Errorf("%w: empty top level %d", ErrInvariantViolation, top)
	}

	for k, level := range s.levels {
		for i, n := range level {
			if n.height < k {
				return fmt.Errorf("%w: node %v of height %d on level %d", ErrInvariantViolation, n.value, n.height, k)
			}
			if n.height >= len(s.levels) {
				return fmt.Errorf("%w: node %v of height %d above top level %d", ErrInvariantViolation, n.value, n.height, len(s.levels)-1)
			}
			if i > 0 && s.compare(level[i-1].value, n.value) >= 0 {
				return fmt.Errorf("%w: level %d unsorted at index %d", ErrInvariantViolation, k, i)
			}
		}
		if k == 0 {
			continue
		}

		// Level k must be exactly the nodes of level k-1 with height >= k.
		j := 0
		for _, n := range s.levels[k-1] {
			if n.height < k {
				continue
			}
			if j >= len(level) || level[j] != n {
				return fmt.Errorf("%w: level %d is not the height>=%d subsequence of level %d", ErrInvariantViolation, k, k, k-1)
			}
			j++
		}
		if j != len(level) {
			return fmt.Errorf("%w: level %d holds %d extra entries", ErrInvariantViolation, k, len(level)-j)
		}
	}
	return nil
}
