package xmatch

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/hupe1980/xmatch/internal/array"
	"github.com/hupe1980/xmatch/matcher"
)

// Key is the set of integer types accepted as crossmatch keys.
type Key = matcher.Key

// OrderedMatch crossmatches query against reference and returns the
// matched index pairs sorted by query index.
//
// The sort is stable: for one query index, pairs keep the order the
// matcher produced them in. Matcher errors are returned unchanged.
func OrderedMatch[K Key](query, reference []K, optFns ...Option) (inds1, inds2 []int, err error) {
	o := applyOptions(optFns)
	start := time.Now()

	inds1, inds2, err = orderedMatch(&o, matcher.Widen(query), matcher.Widen(reference))

	o.observeMatch(context.Background(), OpOrderedMatch, len(query), len(reference), len(inds1), start, err)
	return inds1, inds2, err
}

// FetchAssociated returns associated[j] for every reference position j
// matched by query, in ascending query order.
//
// associated must be parallel to reference; its element type may itself
// be a row (an array, slice or struct).
func FetchAssociated[K Key, V any](query, reference []K, associated []V, optFns ...Option) ([]V, error) {
	o := applyOptions(optFns)
	start := time.Now()

	gathered, err := fetchAssociated(&o, query, reference, associated)

	o.observeMatch(context.Background(), OpFetchAssociated, len(query), len(reference), len(gathered), start, err)
	return gathered, err
}

func fetchAssociated[K Key, V any](o *options, query, reference []K, associated []V) ([]V, error) {
	if len(associated) != len(reference) {
		return nil, &ErrShapeMismatch{Name: "associated", Expected: len(reference), Actual: len(associated)}
	}
	_, inds2, err := orderedMatch(o, matcher.Widen(query), matcher.Widen(reference))
	if err != nil {
		return nil, err
	}
	gathered, err := array.Take(associated, inds2)
	if err != nil {
		return nil, indexError(err)
	}
	return gathered, nil
}

// ScatterResult is the result of ScatterJoinWithIndices.
type ScatterResult[V any] struct {
	// Target is the updated copy of the target array.
	Target []V
	// Inds1 and Inds2 are the ordered match between target and reference keys.
	Inds1, Inds2 []int
	// Values holds Target[Inds1[k]] after assignment.
	Values []V
}

// ScatterJoin returns a copy of target in which every row whose key in
// targetKeys matches a key in refKeys is replaced by the corresponding row
// of source.
//
// targetKeys is parallel to target and refKeys is parallel to source.
// Assignment is applied as one batch in ascending target order; when a
// target position is matched more than once the last assignment wins.
// target itself is never modified.
func ScatterJoin[K Key, V any](target []V, targetKeys, refKeys []K, source []V, optFns ...Option) ([]V, error) {
	o := applyOptions(optFns)
	start := time.Now()

	res, err := scatterJoin(&o, target, targetKeys, refKeys, source, false)
	var (
		out     []V
		matches int
	)
	if res != nil {
		out, matches = res.Target, len(res.Inds1)
	}

	o.observeMatch(context.Background(), OpScatterJoin, len(targetKeys), len(refKeys), matches, start, err)
	return out, err
}

// ScatterJoinWithIndices is ScatterJoin that also returns the ordered
// match and the post-assignment values at the matched positions.
func ScatterJoinWithIndices[K Key, V any](target []V, targetKeys, refKeys []K, source []V, optFns ...Option) (*ScatterResult[V], error) {
	o := applyOptions(optFns)
	start := time.Now()

	res, err := scatterJoin(&o, target, targetKeys, refKeys, source, true)
	matches := 0
	if res != nil {
		matches = len(res.Inds1)
	}

	o.observeMatch(context.Background(), OpScatterJoin, len(targetKeys), len(refKeys), matches, start, err)
	return res, err
}

func scatterJoin[K Key, V any](o *options, target []V, targetKeys, refKeys []K, source []V, withValues bool) (*ScatterResult[V], error) {
	if len(source) != len(refKeys) {
		return nil, &ErrShapeMismatch{Name: "source", Expected: len(refKeys), Actual: len(source)}
	}

	inds1, inds2, err := orderedMatch(o, matcher.Widen(targetKeys), matcher.Widen(refKeys))
	if err != nil {
		return nil, err
	}

	vals, err := array.Take(source, inds2)
	if err != nil {
		return nil, indexError(err)
	}

	out := array.Clone(target)
	if err := array.Put(out, inds1, vals); err != nil {
		return nil, indexError(err)
	}

	res := &ScatterResult[V]{Target: out, Inds1: inds1, Inds2: inds2}
	if withValues {
		// Cannot fail: every index was validated by Put.
		res.Values, _ = array.Take(out, inds1)
	}
	return res, nil
}

func orderedMatch(o *options, x, y []int64) ([]int, []int, error) {
	inds1, inds2, err := o.matcher.Match(x, y, o.skipBoundsChecking)
	if err != nil {
		return nil, nil, err
	}
	if err := sortByQuery(inds1, inds2); err != nil {
		return nil, nil, err
	}
	return inds1, inds2, nil
}

// indexError converts a gather/scatter bounds failure into ErrIndexOutOfRange.
func indexError(err error) error {
	var ie *array.IndexError
	if errors.As(err, &ie) {
		return &ErrIndexOutOfRange{Index: ie.Index, Len: ie.Len, cause: err}
	}
	return err
}

// sortByQuery stably reorders both index arrays by inds1. Matcher output
// with unequal lengths is rejected before anything is permuted.
func sortByQuery(inds1, inds2 []int) error {
	if len(inds1) != len(inds2) {
		return fmt.Errorf("xmatch: matcher returned %d query and %d reference indices", len(inds1), len(inds2))
	}
	if !slices.IsSorted(inds1) {
		array.Permute(array.Argsort(inds1), inds1, inds2)
	}
	return nil
}
