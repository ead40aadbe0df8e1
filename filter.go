package skipset

import (
	"encoding"
	"encoding/binary"
	"math"
	"reflect"

	"github.com/bits-and-blooms/bloom/v3"
)

// membershipFilter answers "definitely absent" for lookups before the skip
// list is searched. Removals leave their bits behind, so the false positive
// rate only drifts upward until the next rebuild.
type membershipFilter[T any] struct {
	bf       *bloom.BloomFilter
	expected uint
	fpRate   float64
	encode   func(dst []byte, v T) ([]byte, bool)
	buf      []byte
}

// newMembershipFilter returns nil when the sizing is invalid or T has no
// encoding that agrees with the set's equality. ordered is true for sets
// compared with cmp.Compare.
func newMembershipFilter[T any](expected uint, fpRate float64, ordered bool) *membershipFilter[T] {
	if expected == 0 || fpRate <= 0 || fpRate >= 1 {
		return nil
	}
	encode := keyEncoder[T](ordered)
	if encode == nil {
		return nil
	}
	return &membershipFilter[T]{
		bf:       bloom.NewWithEstimates(expected, fpRate),
		expected: expected,
		fpRate:   fpRate,
		encode:   encode,
	}
}

func (f *membershipFilter[T]) add(v T) {
	key, ok := f.encode(f.buf[:0], v)
	f.buf = key
	if !ok {
		return
	}
	f.bf.Add(key)
}

// mayContain reports false only when v was never added since the last reset.
func (f *membershipFilter[T]) mayContain(v T) bool {
	key, ok := f.encode(f.buf[:0], v)
	f.buf = key
	if !ok {
		return true
	}
	return f.bf.Test(key)
}

func (f *membershipFilter[T]) reset() {
	f.bf.ClearAll()
}

// resize empties the filter and grows it to hold n elements at the
// configured false positive rate. It never shrinks below the original size.
func (f *membershipFilter[T]) resize(n uint) {
	if n <= f.expected {
		f.bf.ClearAll()
		return
	}
	f.expected = n
	f.bf = bloom.NewWithEstimates(n, f.fpRate)
}

// keyEncoder returns a function producing bytes that are equal exactly when
// the elements compare equal, or nil when T has no such encoding.
//
// Ordered sets are keyed by the value's kind. Comparer sets have their own
// notion of equality, so only MarshalBinary can key them, and its bytes must
// be equal exactly when Compare returns 0.
func keyEncoder[T any](ordered bool) func([]byte, T) ([]byte, bool) {
	typ := reflect.TypeFor[T]()
	if !ordered {
		if !typ.Implements(reflect.TypeFor[encoding.BinaryMarshaler]()) {
			return nil
		}
		return func(dst []byte, v T) ([]byte, bool) {
			b, err := any(v).(encoding.BinaryMarshaler).MarshalBinary()
			if err != nil {
				return dst, false
			}
			return append(dst, b...), true
		}
	}

	switch typ.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(dst []byte, v T) ([]byte, bool) {
			return binary.BigEndian.AppendUint64(dst, uint64(reflect.ValueOf(v).Int())), true
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(dst []byte, v T) ([]byte, bool) {
			return binary.BigEndian.AppendUint64(dst, reflect.ValueOf(v).Uint()), true
		}
	case reflect.Float32, reflect.Float64:
		return func(dst []byte, v T) ([]byte, bool) {
			f := reflect.ValueOf(v).Float()
			switch {
			case f == 0:
				// -0 and +0 compare equal.
				f = 0
			case math.IsNaN(f):
				f = math.NaN()
			}
			return binary.BigEndian.AppendUint64(dst, math.Float64bits(f)), true
		}
	case reflect.String:
		return func(dst []byte, v T) ([]byte, bool) {
			return append(dst, reflect.ValueOf(v).String()...), true
		}
	default:
		return nil
	}
}
