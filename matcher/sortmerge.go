package matcher

import "github.com/hupe1980/xmatch/internal/array"

// SortMerge matches by sorting both arrays and merging them.
//
// It accepts the full int64 domain and never validates its input. Pairs
// come out in ascending key order; for equal keys, query order and then
// reference order. Repeated reference values yield every equal pair.
type SortMerge struct{}

// Match implements Matcher.
func (s SortMerge) Match(x, y []int64, skipBoundsChecking bool) ([]int, []int, error) {
	idx, _ := s.Prepare(y, skipBoundsChecking)
	inds1, inds2 := idx.Probe(x, skipBoundsChecking)
	return inds1, inds2, nil
}

// Prepare implements Preparer.
func (SortMerge) Prepare(y []int64, _ bool) (Index, error) {
	order := array.Argsort(y)
	keys := make([]int64, len(y))
	for i, o := range order {
		keys[i] = y[o]
	}
	return &sortedIndex{keys: keys, order: order}, nil
}

type sortedIndex struct {
	keys  []int64 // reference values, ascending
	order []int   // reference position of keys[i]
}

func (si *sortedIndex) Len() int { return len(si.keys) }

// Probe implements Index.
func (si *sortedIndex) Probe(x []int64, _ bool) ([]int, []int) {
	xo := array.Argsort(x)
	var inds1, inds2 []int
	i, j := 0, 0
	for i < len(xo) && j < len(si.keys) {
		xv := x[xo[i]]
		switch {
		case xv < si.keys[j]:
			i++
		case xv > si.keys[j]:
			j++
		default:
			// Emit every reference position holding xv for this query element.
			for k := j; k < len(si.keys) && si.keys[k] == xv; k++ {
				inds1 = append(inds1, xo[i])
				inds2 = append(inds2, si.order[k])
			}
			i++
		}
	}
	if inds1 == nil {
		inds1, inds2 = []int{}, []int{}
	}
	return inds1, inds2
}
