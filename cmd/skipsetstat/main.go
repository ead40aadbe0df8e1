// Command skipsetstat loads a skip list set with a synthetic workload and
// reports level occupancy and search cost before and after a rebalance.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/metailurini/skipset"
)

type params struct {
	n       int
	seed    int64
	policy  skipset.HeightPolicy
	queries int
	zipf    float64
	remove  float64
}

type phase struct {
	name     string
	searches int64
	avgSteps float64
	elapsed  time.Duration
}

type report struct {
	before []int
	after  []int
	phases []phase
	size   int
}

func main() {
	var p params
	var policy string

	flag.IntVar(&p.n, "n", 10000, "number of elements to insert")
	flag.Int64Var(&p.seed, "seed", time.Now().UnixNano(), "seed for the workload and node heights")
	flag.StringVar(&policy, "policy", "geometric", "height policy: geometric or size")
	flag.IntVar(&p.queries, "queries", 50000, "number of lookups per query phase")
	flag.Float64Var(&p.zipf, "zipf", 0, "zipf skew s (> 1) for lookups; 0 means uniform")
	flag.Float64Var(&p.remove, "remove", 0.3, "fraction of elements removed before rebalancing")
	flag.Parse()

	var err error
	if p.policy, err = parsePolicy(policy); err != nil {
		log.Fatalf("parse -policy: %v", err)
	}
	if p.n <= 0 || p.queries < 0 {
		log.Fatalf("invalid -n or -queries: n=%d queries=%d", p.n, p.queries)
	}
	if p.remove < 0 || p.remove > 1 {
		log.Fatalf("invalid -remove %.2f: want a fraction in [0, 1]", p.remove)
	}
	if p.zipf != 0 && p.zipf <= 1 {
		log.Fatalf("invalid -zipf %.2f: skew must be > 1", p.zipf)
	}

	log.Printf("n=%d policy=%s queries=%d zipf=%.2f remove=%.2f seed=%d",
		p.n, p.policy, p.queries, p.zipf, p.remove, p.seed)

	render(os.Stdout, run(p))
}

func parsePolicy(s string) (skipset.HeightPolicy, error) {
	switch s {
	case "geometric":
		return skipset.HeightGeometric, nil
	case "size":
		return skipset.HeightBySize, nil
	default:
		return 0, fmt.Errorf("unknown policy %q", s)
	}
}

func run(p params) report {
	r := rand.New(rand.NewSource(p.seed))
	s := skipset.New[int](skipset.WithSeed(uint64(p.seed)), skipset.WithHeightPolicy(p.policy))

	var rep report
	start := time.Now()
	for _, k := range r.Perm(p.n) {
		s.Add(k)
	}
	rep.phases = append(rep.phases, measure("build", s, start, skipset.Stats{}))

	next := lookupKeys(r, p)
	rep.phases = append(rep.phases, query("query", s, next, p.queries))

	removals := int(float64(p.n) * p.remove)
	for _, k := range r.Perm(p.n)[:removals] {
		s.Remove(k)
	}
	rep.phases = append(rep.phases, query("query after remove", s, next, p.queries))
	rep.before = s.LevelSizes()

	start = time.Now()
	s.Rebalance()
	log.Printf("rebalanced %d elements in %s", s.Len(), time.Since(start))
	rep.after = s.LevelSizes()

	rep.phases = append(rep.phases, query("query after rebalance", s, next, p.queries))
	rep.size = s.Len()
	return rep
}

func lookupKeys(r *rand.Rand, p params) func() int {
	if p.zipf > 1 && p.n > 1 {
		z := rand.NewZipf(r, p.zipf, 1, uint64(p.n-1))
		return func() int { return int(z.Uint64()) }
	}
	return func() int { return r.Intn(p.n) }
}

func query(name string, s *skipset.SkipListSet[int], next func() int, queries int) phase {
	base := s.Stats()
	start := time.Now()
	for i := 0; i < queries; i++ {
		s.Contains(next())
	}
	return measure(name, s, start, base)
}

func measure(name string, s *skipset.SkipListSet[int], start time.Time, base skipset.Stats) phase {
	st := s.Stats()
	delta := skipset.Stats{
		Searches: st.Searches - base.Searches,
		Steps:    st.Steps - base.Steps,
	}
	return phase{
		name:     name,
		searches: delta.Searches,
		avgSteps: delta.AvgSteps(),
		elapsed:  time.Since(start),
	}
}

func render(w io.Writer, rep report) {
	fmt.Fprintf(w, "elements after removals: %d\n", rep.size)

	levels := tablewriter.NewWriter(w)
	levels.SetHeader([]string{"Level", "Before", "After"})
	levels.SetAlignment(tablewriter.ALIGN_RIGHT)
	levels.SetAutoWrapText(false)
	for k := max(len(rep.before), len(rep.after)) - 1; k >= 0; k-- {
		levels.Append([]string{strconv.Itoa(k), levelCell(rep.before, k), levelCell(rep.after, k)})
	}
	levels.Render()

	phases := tablewriter.NewWriter(w)
	phases.SetHeader([]string{"Phase", "Searches", "AvgSteps", "Elapsed(ms)"})
	phases.SetAlignment(tablewriter.ALIGN_CENTER)
	phases.SetAutoWrapText(false)
	rows := make([][]string, 0, len(rep.phases))
	for _, ph := range rep.phases {
		rows = append(rows, []string{
			ph.name,
			strconv.FormatInt(ph.searches, 10),
			fmt.Sprintf("%.2f", ph.avgSteps),
			fmt.Sprintf("%.3f", float64(ph.elapsed.Microseconds())/1000),
		})
	}
	phases.AppendBulk(rows)
	phases.Render()
}

func levelCell(sizes []int, k int) string {
	if k >= len(sizes) {
		return "-"
	}
	return strconv.Itoa(sizes[k])
}
