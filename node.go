package skipset

// node holds one element and the highest level it is linked into.
// A node with height h appears in levels 0..h.
type node[T any] struct {
	value  T
	height int
}

const (
	DefaultMaxLevel = 32
	DefaultP        = 1.0 / 2.0
)

func newNode[T any](value T, height int) *node[T] {
	return &node[T]{value: value, height: height}
}
