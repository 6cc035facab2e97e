// Package testutil provides testing utilities for xmatch.
//
// This package is intended for use in tests and benchmarks only.
// It provides seeded generators for key arrays and a brute-force matcher
// that serves as ground truth.
//
// # Key Generation
//
//	rng := testutil.NewRNG(seed)
//	ref := rng.UniqueKeys(1000, 0, 1<<20)   // unique reference keys
//	query := rng.Keys(5000, 0, 1<<20)       // repeats allowed
//	skewed := rng.ZipfKeys(5000, ref, 1.5)  // heavy repeats of a few keys
//
// # Ground Truth
//
//	inds1, inds2 := testutil.BruteForceMatch(query, ref)
//	ok := testutil.SamePairs(inds1, inds2, got1, got2)
package testutil
