package skipset

import "slices"

// locate searches for value from the highest level down to level 0.
//
// On each level the scan moves right while the next entry is <= value. When
// it stops, the position of the last confirmed entry is carried to the level
// below, where that same node sits at or after the carried index, so the scan
// never restarts from the beginning of a level.
//
// When path is non-nil it must have len(s.levels) slots; path[k] receives the
// index of the last entry at level k that is <= value, or -1 when there is
// none. With a nil path the search returns as soon as value is seen.
func (s *SkipListSet[T]) locate(value T, path []int) (*node[T], bool) {
	s.metrics.searches++

	var hit *node[T]
	pos := -1
	for k := len(s.levels) - 1; k >= 0; k-- {
		level := s.levels[k]
		for pos+1 < len(level) {
			s.metrics.steps++
			c := s.compare(level[pos+1].value, value)
			if c > 0 {
				break
			}
			pos++
			if c == 0 {
				hit = level[pos]
				if path == nil {
					return hit, true
				}
				break
			}
		}
		if path != nil {
			path[k] = pos
		}
		if k > 0 {
			pos = s.carryDown(k, pos)
			s.metrics.steps++
			if descendHook != nil {
				descendHook(k, pos)
			}
		}
	}

	return hit, hit != nil
}

// carryDown translates index pos at level k into the index of the same node
// at level k-1. Level k is a subsequence of level k-1, so the node can only
// have moved right by the number of entries level k-1 has in excess.
func (s *SkipListSet[T]) carryDown(k, pos int) int {
	if pos < 0 {
		return -1
	}
	upper, lower := s.levels[k], s.levels[k-1]
	target := upper[pos]
	hi := pos + len(lower) - len(upper) + 1
	i, _ := slices.BinarySearchFunc(lower[pos:hi], target.value, func(n *node[T], v T) int {
		s.metrics.steps++
		return s.compare(n.value, v)
	})
	return pos + i
}
