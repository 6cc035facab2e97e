package array

import (
	"cmp"
	"fmt"
	"slices"
)

// IndexError reports an index outside [0, Len).
type IndexError struct {
	Pos   int // position in the index array
	Index int // offending index value
	Len   int // length of the indexed slice
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d at position %d out of range [0, %d)", e.Index, e.Pos, e.Len)
}

// Argsort returns the permutation that stably sorts s in ascending order.
// Equal elements keep their relative order.
func Argsort[E cmp.Ordered](s []E) []int {
	order := make([]int, len(s))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(s[a], s[b])
	})
	return order
}

// Permute applies order to every slice in place: s[i] = old[order[i]].
// All slices must have len(order) elements.
func Permute(order []int, s ...[]int) {
	tmp := make([]int, len(order))
	for _, a := range s {
		for i, o := range order {
			tmp[i] = a[o]
		}
		copy(a, tmp)
	}
}

// Take gathers src at idx into a new slice.
func Take[V any](src []V, idx []int) ([]V, error) {
	out := make([]V, len(idx))
	for k, i := range idx {
		if i < 0 || i >= len(src) {
			return nil, &IndexError{Pos: k, Index: i, Len: len(src)}
		}
		out[k] = src[i]
	}
	return out, nil
}

// Put assigns dst[idx[k]] = vals[k] for every k, in order.
// With repeated indices the last write wins. idx is validated before any
// write so dst is left untouched on error.
func Put[V any](dst []V, idx []int, vals []V) error {
	if len(idx) != len(vals) {
		return fmt.Errorf("put: %d indices for %d values", len(idx), len(vals))
	}
	for k, i := range idx {
		if i < 0 || i >= len(dst) {
			return &IndexError{Pos: k, Index: i, Len: len(dst)}
		}
	}
	for k, i := range idx {
		dst[i] = vals[k]
	}
	return nil
}

// Clone returns an independent copy of s. A nil input yields an empty,
// non-nil slice so callers can always write into the result.
func Clone[V any](s []V) []V {
	out := make([]V, len(s))
	copy(out, s)
	return out
}
