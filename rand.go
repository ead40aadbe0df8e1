package skipset

import (
	"math/bits"
	randv2 "math/rand/v2"
	"time"
)

const (
	defaultSeed = uint64(0xdeadbeefcafebabe)
	float64Unit = 1.0 / (1 << 53)
)

func newRandomSeed() uint64 {
	seed := uint64(time.Now().UnixNano())
	if seed == 0 {
		seed = defaultSeed
	}
	return seed
}

// heightSource draws node heights. Heights are zero based: a node of height h
// is linked into levels 0..h, so the largest height is maxLevel-1.
type heightSource struct {
	rng      *randv2.Rand
	maxLevel int
	p        float64
	policy   HeightPolicy
}

func newHeightSource(c config) *heightSource {
	return &heightSource{
		rng:      randv2.New(c.src),
		maxLevel: c.maxLevel,
		p:        c.p,
		policy:   c.policy,
	}
}

// next returns the height for a node inserted into a set whose size bound is
// size.
func (h *heightSource) next(size int) int {
	if h.policy == HeightBySize {
		return h.bySize(size)
	}
	return h.geometric()
}

func (h *heightSource) geometric() int {
	top := h.maxLevel - 1
	if top <= 0 {
		return 0
	}

	if h.p == 0.5 {
		return min(bits.TrailingZeros64(h.rng.Uint64()), top)
	}

	lvl := 0
	for lvl < top {
		if float64(h.rng.Uint64()>>11)*float64Unit >= h.p {
			break
		}
		lvl++
	}
	return lvl
}

func (h *heightSource) bySize(size int) int {
	if size <= 0 {
		return 0
	}
	return min(h.rng.IntN(size), h.maxLevel-1)
}
