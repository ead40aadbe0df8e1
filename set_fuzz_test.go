package skipset

import (
	"slices"
	"testing"
)

type fuzzOp struct {
	typ   byte
	value int
}

func decodeFuzzOps(input []byte, maxOps int) []fuzzOp {
	ops := make([]fuzzOp, 0, maxOps)
	for i := 0; i+1 < len(input) && len(ops) < maxOps; i += 2 {
		ops = append(ops, fuzzOp{typ: input[i] % 5, value: int(input[i+1] % 64)})
	}
	return ops
}

// FuzzSkipListSetModel replays random operations against the set and a
// sorted slice model, checking results and structure after every step.
func FuzzSkipListSetModel(f *testing.F) {
	f.Add([]byte{0, 5, 0, 3, 0, 8, 0, 1, 1, 3, 2, 3})
	f.Add([]byte{0, 2, 0, 2, 0, 2, 3, 0, 4, 0})
	f.Add([]byte{0, 63, 0, 0, 1, 63, 1, 0, 2, 10})

	f.Fuzz(func(t *testing.T, input []byte) {
		ops := decodeFuzzOps(input, 256)
		if len(ops) == 0 {
			t.Skip()
		}

		s := New[int](WithSeed(uint64(len(input))), WithRebalanceEvery(17), WithBloomFilter(64, 0.05))
		var model []int

		for i, op := range ops {
			idx, present := slices.BinarySearch(model, op.value)
			switch op.typ {
			case 0: // Add
				if got := s.Add(op.value); got == present {
					t.Fatalf("op %d: Add(%d) = %t with present=%t", i, op.value, got, present)
				}
				if !present {
					model = slices.Insert(model, idx, op.value)
				}
			case 1: // Remove
				if got := s.Remove(op.value); got != present {
					t.Fatalf("op %d: Remove(%d) = %t with present=%t", i, op.value, got, present)
				}
				if present {
					model = slices.Delete(model, idx, idx+1)
				}
			case 2: // Contains
				if got := s.Contains(op.value); got != present {
					t.Fatalf("op %d: Contains(%d) = %t with present=%t", i, op.value, got, present)
				}
			case 3: // Rebalance
				s.Rebalance()
			case 4: // iterator removal of the first element >= value
				it := s.Iterator()
				for it.Next() {
					if it.Value() >= op.value {
						v := it.Value()
						it.Remove()
						j, _ := slices.BinarySearch(model, v)
						model = slices.Delete(model, j, j+1)
						break
					}
				}
			}

			if err := s.validate(); err != nil {
				t.Fatalf("op %d (%+v): %v\n%s", i, op, err, s)
			}
			if got := s.ToSlice(); !slices.Equal(got, model) {
				t.Fatalf("op %d (%+v): set %v, model %v", i, op, got, model)
			}
		}
	})
}
