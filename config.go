package skipset

import randv2 "math/rand/v2"

// HeightPolicy selects how a new node's height is drawn.
type HeightPolicy int

const (
	// HeightGeometric promotes a node one level at a time with probability P,
	// the classic skip list coin flip.
	HeightGeometric HeightPolicy = iota
	// HeightBySize draws the height uniformly from [0, Len()), so the expected
	// height grows with the set. It is kept for comparison runs.
	HeightBySize
)

func (p HeightPolicy) String() string {
	switch p {
	case HeightGeometric:
		return "geometric"
	case HeightBySize:
		return "size"
	default:
		return "unknown"
	}
}

// config holds configuration for a SkipListSet.
type config struct {
	// maxLevel is the number of levels a node may occupy at most
	maxLevel int

	// p is probability for level promotion under HeightGeometric
	p float64

	policy HeightPolicy

	// src feeds every random height; nil means a fresh PCG source
	src randv2.Source

	// rebalanceEvery triggers Rebalance after that many mutations; 0 disables it
	rebalanceEvery int

	filterExpected uint
	filterFPRate   float64

	checkInvariants bool
}

// Option configures a SkipListSet at construction time.
type Option func(*config)

func newConfig(opts ...Option) config {
	c := config{
		maxLevel: DefaultMaxLevel,
		p:        DefaultP,
		policy:   HeightGeometric,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.maxLevel < 1 {
		c.maxLevel = DefaultMaxLevel
	}
	if c.p <= 0 || c.p >= 1 {
		c.p = DefaultP
	}
	if c.rebalanceEvery < 0 {
		c.rebalanceEvery = 0
	}
	if c.src == nil {
		c.src = randv2.NewPCG(newRandomSeed(), newRandomSeed())
	}
	return c
}

// WithSeed makes height generation deterministic.
func WithSeed(seed uint64) Option {
	return func(c *config) { c.src = randv2.NewPCG(seed, seed^defaultSeed) }
}

// WithRandSource uses src for every height draw.
func WithRandSource(src randv2.Source) Option {
	return func(c *config) { c.src = src }
}

// WithMaxLevel sets the maximum number of levels. Values below one fall back
// to DefaultMaxLevel.
func WithMaxLevel(maxLevel int) Option {
	return func(c *config) { c.maxLevel = maxLevel }
}

// WithP sets the promotion probability used by HeightGeometric. Values
// outside (0, 1) fall back to DefaultP.
func WithP(p float64) Option {
	return func(c *config) { c.p = p }
}

// WithHeightPolicy selects the height distribution.
func WithHeightPolicy(policy HeightPolicy) Option {
	return func(c *config) { c.policy = policy }
}

// WithRebalanceEvery rebalances the set automatically once n successful adds
// and removes have accumulated since the previous rebalance.
func WithRebalanceEvery(n int) Option {
	return func(c *config) { c.rebalanceEvery = n }
}

// WithBloomFilter places a bloom filter sized for expected elements with the
// given false positive rate in front of every lookup. Rebalance grows it when
// the set has outgrown expected.
//
// Sets built with New or From always get the filter. Sets built with
// NewComparer or FromComparer get it only when the element type implements
// encoding.BinaryMarshaler, and MarshalBinary must return equal bytes exactly
// when Compare returns 0. For any other element type the option is ignored.
func WithBloomFilter(expected uint, fpRate float64) Option {
	return func(c *config) {
		c.filterExpected = expected
		c.filterFPRate = fpRate
	}
}

// WithInvariantChecks validates the whole structure after every mutation and
// panics on the first inconsistency. Intended for tests.
func WithInvariantChecks() Option {
	return func(c *config) { c.checkInvariants = true }
}
