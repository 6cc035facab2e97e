package matcher

import (
	"errors"
	"fmt"
)

// Key is the set of integer types accepted as crossmatch keys.
// Keys are widened to int64 before matching.
type Key interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32
}

// Widen converts keys to int64.
func Widen[K Key](keys []K) []int64 {
	out := make([]int64, len(keys))
	for i, k := range keys {
		out[i] = int64(k)
	}
	return out
}

// Matcher finds the equality pairs between x and y.
// Implementations must be safe for concurrent use.
type Matcher interface {
	Match(x, y []int64, skipBoundsChecking bool) (inds1, inds2 []int, err error)
}

// Index is a prepared reference array that can be probed repeatedly.
// Probe must be safe for concurrent use.
type Index interface {
	Probe(x []int64, skipBoundsChecking bool) (inds1, inds2 []int)
	Len() int
}

// Preparer is implemented by matchers that can build a reusable Index.
type Preparer interface {
	Prepare(y []int64, skipBoundsChecking bool) (Index, error)
}

// Func adapts a plain function to the Matcher interface.
type Func func(x, y []int64, skipBoundsChecking bool) ([]int, []int, error)

// Match implements Matcher.
func (f Func) Match(x, y []int64, skipBoundsChecking bool) ([]int, []int, error) {
	return f(x, y, skipBoundsChecking)
}

// Default is the matcher used when none is configured.
var Default Matcher = Lookup{}

// ErrInvalidInput is matched by BoundsError and DuplicateError: the
// reference array is outside what the matcher can process.
var ErrInvalidInput = errors.New("matcher: invalid input")

// BoundsError reports a reference range that does not fit the matcher's
// 32-bit index domain.
type BoundsError struct {
	Min, Max int64
	cause    error
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("matcher: reference range [%d, %d] exceeds 32-bit span", e.Min, e.Max)
}

func (e *BoundsError) Unwrap() error { return e.cause }

// Is reports ErrInvalidInput as a match.
func (e *BoundsError) Is(target error) bool { return target == ErrInvalidInput }

// DuplicateError reports a value that occurs more than once in the reference array.
type DuplicateError struct {
	Value         int64
	First, Second int
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("matcher: reference value %d is not unique (positions %d and %d)", e.Value, e.First, e.Second)
}

func (e *DuplicateError) Unwrap() error { return ErrInvalidInput }
