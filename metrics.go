package skipset

// Stats is a snapshot of the work a set has performed since construction.
type Stats struct {
	Inserts       int64
	Removes       int64
	Searches      int64
	Steps         int64 // comparisons plus one per level descent
	Rebalances    int64
	FilterRejects int64 // lookups answered by the bloom filter alone
}

// AvgSteps reports the mean search cost, or zero before any search.
func (s Stats) AvgSteps() float64 {
	if s.Searches == 0 {
		return 0
	}
	return float64(s.Steps) / float64(s.Searches)
}

type metrics struct {
	inserts       int64
	removes       int64
	searches      int64
	steps         int64
	rebalances    int64
	filterRejects int64

	// sinceRebalance counts mutations that drive WithRebalanceEvery.
	sinceRebalance int
}

func (m *metrics) snapshot() Stats {
	return Stats{
		Inserts:       m.inserts,
		Removes:       m.removes,
		Searches:      m.searches,
		Steps:         m.steps,
		Rebalances:    m.rebalances,
		FilterRejects: m.filterRejects,
	}
}
