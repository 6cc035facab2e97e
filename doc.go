// Package xmatch provides ordered crossmatch joins.
//
// A crossmatch finds where the elements of a query array appear in a
// reference array. Query values may repeat, reference values must be
// unique, and the two arrays may only partially overlap. The result is a
// pair of parallel index arrays (inds1, inds2) with
// query[inds1[k]] == reference[inds2[k]].
//
// # Quick Start
//
//	inds1, inds2, _ := xmatch.OrderedMatch([]int{5, 3, 3, 9}, []int{3, 9, 5})
//	// inds1 = [0 1 2 3], inds2 = [2 0 0 1]
//
// # Use Modes
//
// The ordered join comes in three shapes:
//
//	// 1. Matched index pairs, sorted by query index.
//	inds1, inds2, err := xmatch.OrderedMatch(query, reference)
//
//	// 2. Gather a second array that is parallel to the reference.
//	mags, err := xmatch.FetchAssociated(query, reference, magnitudes)
//
//	// 3. Copy a target array and overwrite its matched rows.
//	updated, err := xmatch.ScatterJoin(target, targetKeys, refKeys, source)
//
// # Non-numeric Data
//
// Matchers work on integer keys. Numerify turns arbitrary comparable
// values into dense codes in first-seen order; sharing one Codebook across
// calls keeps codes consistent:
//
//	codesX, cb := xmatch.Numerify(names, nil)
//	codesY, _ := xmatch.Numerify(otherNames, cb)
//
// CrossmatchNonNumeric does this for []any input, converting sequence
// items (such as coordinate pairs) into tuples first. Unlike the ordered
// operations it returns the matcher's raw pair order.
//
// # Matchers
//
// The default matcher (matcher.Lookup) indexes the reference array in a
// roaring bitmap and validates that its value span fits 32 bits and that
// its values are unique. WithSkipBoundsChecking disables that validation
// for callers that guarantee well-formed input; WithMatcher swaps in
// another implementation such as matcher.SortMerge.
//
// # Concurrency
//
// All operations are synchronous and never mutate their inputs.
// A Codebook is owned by the caller and is not synchronized.
// OrderedMatchBatch probes one prepared reference index from several
// goroutines; WithMaxInFlightKeys and WithRateLimit bound how much query
// data it admits at once.
package xmatch
