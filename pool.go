package skipset

import "sync"

// pathPool recycles the per-level position buffers filled by locate.
var pathPool = sync.Pool{
	New: func() any {
		p := make([]int, 0, DefaultMaxLevel)
		return &p
	},
}

func acquirePath(levels int) *[]int {
	p := pathPool.Get().(*[]int)
	if cap(*p) < levels {
		*p = make([]int, levels)
	} else {
		*p = (*p)[:levels]
	}
	return p
}

func releasePath(p *[]int) {
	if p == nil {
		return
	}
	*p = (*p)[:0]
	pathPool.Put(p)
}
