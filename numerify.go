package xmatch

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/hupe1980/xmatch/codebook"
)

// Numerify maps values to dense integer codes in first-seen order.
//
// Pass nil to start a new codebook, or a codebook from an earlier call to
// keep codes consistent across calls. The returned codebook is cb itself
// when cb is not nil.
//
//	codes, cb := xmatch.Numerify([]string{"b", "a", "b"}, nil)
//	// codes = [0 1 0], cb: "b" -> 0, "a" -> 1
func Numerify[K comparable](values []K, cb *codebook.Codebook[K], optFns ...Option) ([]int, *codebook.Codebook[K]) {
	o := applyOptions(optFns)
	start := time.Now()

	before := 0
	if cb != nil {
		before = cb.Len()
	}

	codes, cb := numerify(values, cb)

	o.observeNumerify(context.Background(), len(values), cb.Len()-before, start, nil)
	return codes, cb
}

func numerify[K comparable](values []K, cb *codebook.Codebook[K]) ([]int, *codebook.Codebook[K]) {
	if cb == nil {
		cb = codebook.New[K]()
	}
	codes := make([]int, len(values))
	for i, v := range values {
		codes[i] = cb.Encode(v)
	}
	return codes, cb
}

// NumerifyAny maps dynamically typed values to codes.
//
// With combineTuples, each item is first converted to a codebook.Tuple,
// which makes slices and arrays usable as keys (their elements may be nil,
// scalars or nested sequences); items that are not sequences fail with
// ErrNotSequence. Without it, items must be comparable (ErrUnhashable
// otherwise). nil is a valid key.
//
// On error the codes assigned for earlier items remain in cb.
func NumerifyAny(values []any, combineTuples bool, cb *codebook.Codebook[any], optFns ...Option) ([]int, *codebook.Codebook[any], error) {
	o := applyOptions(optFns)
	start := time.Now()
	if cb == nil {
		cb = codebook.New[any]()
	}
	before := cb.Len()

	codes, err := numerifyAny(values, combineTuples, cb)

	o.observeNumerify(context.Background(), len(values), cb.Len()-before, start, err)
	if err != nil {
		return nil, cb, err
	}
	return codes, cb, nil
}

func numerifyAny(values []any, combineTuples bool, cb *codebook.Codebook[any]) ([]int, error) {
	codes := make([]int, len(values))
	for i, v := range values {
		key := v
		if combineTuples {
			t, err := codebook.TupleOf(v)
			if err != nil {
				return nil, fmt.Errorf("numerify item %d: %w", i, err)
			}
			key = t
		} else if !codebook.Hashable(v) {
			return nil, fmt.Errorf("numerify item %d: %w: %T", i, ErrUnhashable, v)
		}
		codes[i] = cb.Encode(key)
	}
	return codes, nil
}

// CrossmatchNonNumeric crossmatches arbitrary values.
//
// x is numerified into a fresh codebook which is then extended with y, so
// equal items get equal codes on both sides; the configured matcher runs
// on the codes. Items are converted to tuples first unless
// WithCombineTuples(false) is given. With WithNumerify(false) the items
// must already be integers.
//
// The pairs are returned in the matcher's order, not sorted by query index.
func CrossmatchNonNumeric(x, y []any, optFns ...Option) (inds1, inds2 []int, err error) {
	o := applyOptions(optFns)
	start := time.Now()

	inds1, inds2, err = crossmatchNonNumeric(&o, x, y)

	o.observeMatch(context.Background(), OpCrossmatchNonNumeric, len(x), len(y), len(inds1), start, err)
	return inds1, inds2, err
}

func crossmatchNonNumeric(o *options, x, y []any) ([]int, []int, error) {
	var xs, ys []int64
	if o.numerify {
		cb := codebook.New[any]()
		cx, err := numerifyAny(x, o.combineTuples, cb)
		if err != nil {
			return nil, nil, err
		}
		cy, err := numerifyAny(y, o.combineTuples, cb)
		if err != nil {
			return nil, nil, err
		}
		xs, ys = codesToKeys(cx), codesToKeys(cy)
	} else {
		var err error
		if xs, err = integerKeys("x", x); err != nil {
			return nil, nil, err
		}
		if ys, err = integerKeys("y", y); err != nil {
			return nil, nil, err
		}
	}
	return o.matcher.Match(xs, ys, o.skipBoundsChecking)
}

// CrossmatchComparable is CrossmatchNonNumeric for a statically typed
// comparable key. It also returns the matcher's raw pair order.
func CrossmatchComparable[K comparable](x, y []K, optFns ...Option) (inds1, inds2 []int, err error) {
	o := applyOptions(optFns)
	start := time.Now()

	cx, cb := numerify(x, nil)
	cy, _ := numerify(y, cb)
	inds1, inds2, err = o.matcher.Match(codesToKeys(cx), codesToKeys(cy), o.skipBoundsChecking)

	o.observeMatch(context.Background(), OpCrossmatchComparable, len(x), len(y), len(inds1), start, err)
	return inds1, inds2, err
}

func codesToKeys(codes []int) []int64 {
	keys := make([]int64, len(codes))
	for i, c := range codes {
		keys[i] = int64(c)
	}
	return keys
}

func integerKeys(side string, items []any) ([]int64, error) {
	keys := make([]int64, len(items))
	for i, item := range items {
		var k int64
		switch v := item.(type) {
		case int:
			k = int64(v)
		case int8:
			k = int64(v)
		case int16:
			k = int64(v)
		case int32:
			k = int64(v)
		case int64:
			k = v
		case uint:
			if uint64(v) > math.MaxInt64 {
				return nil, &ErrNotNumeric{Side: side, Index: i, Value: item}
			}
			k = int64(v)
		case uint8:
			k = int64(v)
		case uint16:
			k = int64(v)
		case uint32:
			k = int64(v)
		case uint64:
			if v > math.MaxInt64 {
				return nil, &ErrNotNumeric{Side: side, Index: i, Value: item}
			}
			k = int64(v)
		default:
			return nil, &ErrNotNumeric{Side: side, Index: i, Value: item}
		}
		keys[i] = k
	}
	return keys, nil
}
