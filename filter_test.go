package skipset

import (
	"math"
	"net/netip"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type myInt int

type addr struct {
	ip netip.Addr
}

func (a addr) Compare(other addr) int { return a.ip.Compare(other.ip) }

func (a addr) MarshalBinary() ([]byte, error) { return a.ip.MarshalBinary() }

// foldString compares case-insensitively, so equal elements can differ in
// their bytes.
type foldString string

func (f foldString) Compare(other foldString) int {
	return strings.Compare(strings.ToLower(string(f)), strings.ToLower(string(other)))
}

func TestBloomFilter_NoFalseNegatives(t *testing.T) {
	t.Parallel()

	s := New[int](WithSeed(5), WithBloomFilter(1000, 0.01), WithInvariantChecks())
	require.NotNil(t, s.filter)

	for i := 0; i < 1000; i++ {
		s.Add(i * 3)
	}
	for i := 0; i < 1000; i++ {
		require.True(t, s.Contains(i*3), "value %d", i*3)
	}

	s.RemoveAll(0, 3, 6)
	assert.False(t, s.Contains(3))
	assert.True(t, s.Contains(9))

	s.Rebalance()
	for i := 3; i < 1000; i++ {
		require.True(t, s.Contains(i*3), "value %d after rebalance", i*3)
	}

	s.Clear()
	assert.False(t, s.Contains(9))
	s.Add(9)
	assert.True(t, s.Contains(9))
}

func TestBloomFilter_RejectsAbsentValues(t *testing.T) {
	t.Parallel()

	s := New[int](WithBloomFilter(1000, 0.001))
	for i := 0; i < 100; i++ {
		s.Add(i)
	}

	before := s.Stats()
	for i := 1000; i < 2000; i++ {
		assert.False(t, s.Contains(i))
		assert.False(t, s.Remove(i))
	}
	after := s.Stats()

	assert.Greater(t, after.FilterRejects-before.FilterRejects, int64(1900))
	assert.Less(t, after.Searches-before.Searches, int64(100))
}

func TestBloomFilter_FloatZeroes(t *testing.T) {
	t.Parallel()

	s := New[float64](WithBloomFilter(100, 0.01))
	s.Add(math.Copysign(0, -1))
	assert.True(t, s.Contains(0))
	assert.False(t, s.Add(0))

	s.Add(math.NaN())
	assert.True(t, s.Contains(math.NaN()))
}

func TestBloomFilter_Encoders(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, newMembershipFilter[string](10, 0.01, true))
	assert.NotNil(t, newMembershipFilter[uint16](10, 0.01, true))
	assert.NotNil(t, newMembershipFilter[myInt](10, 0.01, true))
	assert.NotNil(t, newMembershipFilter[addr](10, 0.01, false))

	assert.Nil(t, newMembershipFilter[version](10, 0.01, false), "no byte encoding")
	assert.Nil(t, newMembershipFilter[foldString](10, 0.01, false), "string kind alone does not key a Comparer")
	assert.Nil(t, newMembershipFilter[int](0, 0.01, true))
	assert.Nil(t, newMembershipFilter[int](10, 1, true))
}

func TestBloomFilter_BinaryMarshalerElements(t *testing.T) {
	t.Parallel()

	s := NewComparer[addr](WithBloomFilter(16, 0.01), WithInvariantChecks())
	require.NotNil(t, s.filter)

	s.AddAll(
		addr{netip.MustParseAddr("10.0.0.2")},
		addr{netip.MustParseAddr("10.0.0.1")},
		addr{netip.MustParseAddr("192.168.1.1")},
	)
	assert.True(t, s.Contains(addr{netip.MustParseAddr("10.0.0.1")}))
	assert.False(t, s.Contains(addr{netip.MustParseAddr("10.0.0.3")}))

	first, err := s.First()
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", first.ip.String())
}

func TestBloomFilter_DisabledForUnencodableElements(t *testing.T) {
	t.Parallel()

	s := NewComparer[version](WithBloomFilter(16, 0.01))
	assert.Nil(t, s.filter)
	s.Add(version{1, 0})
	assert.True(t, s.Contains(version{1, 0}))
}

func TestBloomFilter_ComparerEqualityWins(t *testing.T) {
	t.Parallel()

	s := NewComparer[foldString](WithBloomFilter(100, 0.01), WithInvariantChecks())
	assert.Nil(t, s.filter)

	require.True(t, s.Add("Go"))
	assert.True(t, s.Contains("go"))
	assert.True(t, s.Contains("GO"))
	assert.False(t, s.Add("gO"))

	assert.True(t, s.Remove("go"))
	assert.Zero(t, s.Len())
}

func TestBloomFilter_RebalanceGrowsFilter(t *testing.T) {
	t.Parallel()

	s := New[int](WithSeed(2), WithBloomFilter(16, 0.01), WithInvariantChecks())
	require.NotNil(t, s.filter)
	small := s.filter.bf.Cap()

	for i := 0; i < 4000; i++ {
		s.Add(i)
	}
	s.Rebalance()
	assert.Equal(t, uint(4000), s.filter.expected)
	assert.Greater(t, s.filter.bf.Cap(), small)

	for i := 0; i < 4000; i++ {
		require.True(t, s.Contains(i), "value %d", i)
	}
	before := s.Stats()
	for i := 4000; i < 8000; i++ {
		s.Contains(i)
	}
	rejects := s.Stats().FilterRejects - before.FilterRejects
	assert.Greater(t, rejects, int64(3800))

	s.Clear()
	s.Rebalance()
	assert.Equal(t, uint(4000), s.filter.expected, "never shrinks")
}
