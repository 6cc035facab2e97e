package matcher

import (
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/xmatch/internal/array"
	"github.com/hupe1980/xmatch/internal/conv"
)

// Lookup matches through a roaring bitmap of reference offsets.
//
// The offsets y[i]-min(y) are added to a 32-bit bitmap. For a query value
// present in the bitmap, Rank(offset)-1 is its position among the sorted
// reference values, and a stable argsort of y maps that back to the
// reference index.
type Lookup struct{}

// Match implements Matcher.
func (l Lookup) Match(x, y []int64, skipBoundsChecking bool) ([]int, []int, error) {
	idx, err := l.Prepare(y, skipBoundsChecking)
	if err != nil {
		return nil, nil, err
	}
	inds1, inds2 := idx.Probe(x, skipBoundsChecking)
	return inds1, inds2, nil
}

// Prepare implements Preparer.
func (Lookup) Prepare(y []int64, skipBoundsChecking bool) (Index, error) {
	li := &lookupIndex{n: len(y)}
	if len(y) == 0 {
		return li, nil
	}

	li.min, li.max = slices.Min(y), slices.Max(y)
	if !skipBoundsChecking {
		span, err := conv.Span(li.min, li.max)
		if err != nil {
			return nil, &BoundsError{Min: li.min, Max: li.max, cause: err}
		}
		li.span = span
	} else {
		li.span = conv.WrapOffset(li.max, li.min)
	}

	li.bm = roaring.New()
	for i, v := range y {
		off := conv.WrapOffset(v, li.min)
		if !li.bm.CheckedAdd(off) && !skipBoundsChecking {
			return nil, &DuplicateError{Value: v, First: slices.Index(y, v), Second: i}
		}
	}
	li.bm.RunOptimize()
	li.sorted = array.Argsort(y)
	return li, nil
}

type lookupIndex struct {
	bm       *roaring.Bitmap
	sorted   []int // argsort of the reference array
	min, max int64
	span     uint32
	n        int
}

func (li *lookupIndex) Len() int { return li.n }

// Probe implements Index. Pairs are emitted in query order.
func (li *lookupIndex) Probe(x []int64, skipBoundsChecking bool) ([]int, []int) {
	inds1 := make([]int, 0, min(len(x), li.n))
	inds2 := make([]int, 0, min(len(x), li.n))
	if li.bm == nil {
		return inds1, inds2
	}
	for i, v := range x {
		off, ok := conv.Offset(v, li.min, li.span)
		if !ok || !li.bm.Contains(off) {
			continue
		}
		r := int(li.bm.Rank(off)) - 1
		// Without validation a duplicated or wrapped reference set can
		// leave fewer bitmap entries than sorted positions.
		if r < 0 || r >= len(li.sorted) {
			continue
		}
		inds1 = append(inds1, i)
		inds2 = append(inds2, li.sorted[r])
	}
	return inds1, inds2
}
