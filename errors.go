package skipset

import "errors"

var (
	// ErrEmptySet is returned by First and Last when the set holds no elements.
	ErrEmptySet = errors.New("skipset: empty set")

	// ErrUnsupported is returned by operations the set deliberately does not
	// provide: range views and custom comparators.
	ErrUnsupported = errors.New("skipset: unsupported operation")

	// ErrInvariantViolation wraps every structural inconsistency reported by
	// the internal validator. It should never surface from a correct build.
	ErrInvariantViolation = errors.New("skipset: invariant violation")
)
